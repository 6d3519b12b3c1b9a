package core

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                       = errors.New("no matching row found")
	ErrTableNotFound                  = errors.New("table not found")
	ErrEmptySearchTerm                = errors.New("empty search term")
	ErrValueCount                     = errors.New("value count does not match table columns")
	ErrNullKey                        = errors.New("matched row has no key value")
	ErrAborted                        = errors.New("operation aborted")
	ErrConnectionClosed               = errors.New("connection is closed")
	ErrDatabaseManagementNotSupported = errors.New("database management not supported")
	ErrInvalidIdentifier              = errors.New("invalid identifier")
)

// OpError is returned when the database rejects a statement.
type OpError struct {
	// Op is the name of the failed operation (e.g. "UpdateRow")
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func opError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Err: err}
}

// Status classifies the outcome of an operation.
type Status int

const (
	StatusOK Status = iota
	StatusNotFound
	StatusAborted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not found"
	case StatusAborted:
		return "aborted"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StatusOf returns the status of an operation from its error.
// An empty search term counts as not found, since it never matches a row.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrTableNotFound),
		errors.Is(err, ErrEmptySearchTerm):
		return StatusNotFound
	case errors.Is(err, ErrAborted):
		return StatusAborted
	default:
		return StatusFailed
	}
}
