package builders

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sqladmin/sqladmin/core"
)

// default sql client used by other specific implementations
type Client struct {
	db             *sql.DB
	typeProcessors map[string]func(any) any
}

// NewClient wraps db. The pool is limited to a single open connection, so
// session state (e.g. attached sqlite databases) survives between statements.
func NewClient(db *sql.DB, opts ...ClientOption) *Client {
	config := clientConfig{
		typeProcessors: make(map[string]func(any) any),
		maxOpenConns:   1,
	}
	for _, opt := range opts {
		opt(&config)
	}

	db.SetMaxOpenConns(config.maxOpenConns)
	db.SetMaxIdleConns(config.maxOpenConns)

	return &Client{
		db:             db,
		typeProcessors: config.typeProcessors,
	}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *Client) Close() {
	c.db.Close()
}

// Exec executes a statement and returns the number of affected rows.
// Drivers that can't report affected rows return -1.
func (c *Client) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return -1, nil
	}

	return affected, nil
}

// ColumnsFromQuery executes a given query and converts the results to
// columns. A query should return a result that is at least 2 columns wide
// and have the following structure:
//
//	1st elem: name - string
//	2nd elem: type - string
//
// Identifiers are sprintf-ed into the query, values are bound as args.
func (c *Client) ColumnsFromQuery(ctx context.Context, query string, args ...any) ([]*core.Column, error) {
	result, err := c.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	return ColumnsFromResultStream(result)
}

// StringsFromQuery returns the first column of every row as string.
func (c *Client) StringsFromQuery(ctx context.Context, query string, args ...any) ([]string, error) {
	result, err := c.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	return StringsFromResultStream(result)
}

func (c *Client) getTypeProcessor(typ string) func(any) any {
	proc, ok := c.typeProcessors[strings.ToLower(typ)]
	if ok {
		return proc
	}

	return func(val any) any {
		valb, ok := val.([]byte)
		if ok {
			return string(valb)
		}
		return val
	}
}

// Query executes a query and returns a result stream.
// The stream must be closed to give the connection back.
func (c *Client) Query(ctx context.Context, query string, args ...any) (*Result, error) {
	dbRows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	header, err := dbRows.Columns()
	if err != nil {
		_ = dbRows.Close()
		return nil, err
	}

	dbCols, err := dbRows.ColumnTypes()
	if err != nil {
		_ = dbRows.Close()
		return nil, err
	}

	processors := make([]func(any) any, len(dbCols))
	for i := range dbCols {
		processors[i] = c.getTypeProcessor(dbCols[i].DatabaseTypeName())
	}

	// rows.Next has to be called before every Scan, so it is called by
	// hasNext and remembered until the row is consumed. An iteration error
	// counts as a pending row, so that Next returns it.
	var (
		advanced, hasRow bool
		rowsErr          error
	)
	hasNextFunc := func() bool {
		if !advanced {
			hasRow = dbRows.Next()
			if !hasRow {
				rowsErr = dbRows.Err()
			}
			advanced = true
		}
		return hasRow || rowsErr != nil
	}

	nextFunc := func() (core.Row, error) {
		if !hasNextFunc() {
			return nil, ErrNoNextRow
		}
		if rowsErr != nil {
			err := rowsErr
			rowsErr = nil
			return nil, err
		}
		advanced = false

		columns := make([]any, len(dbCols))
		columnPointers := make([]any, len(dbCols))
		for i := range columns {
			columnPointers[i] = &columns[i]
		}

		if err := dbRows.Scan(columnPointers...); err != nil {
			return nil, err
		}

		row := make(core.Row, len(dbCols))
		for i := range dbCols {
			row[i] = processors[i](columns[i])
		}

		return row, nil
	}

	rows := NewResultBuilder().
		WithNextFunc(nextFunc, hasNextFunc).
		WithHeader(header).
		WithCloseFunc(func() {
			_ = dbRows.Close()
		}).
		Build()

	return rows, nil
}
