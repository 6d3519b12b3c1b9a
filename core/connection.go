package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

type (
	// Adapter is an object which allows to connect to database via url
	Adapter interface {
		Connect(url string) (Driver, error)
	}

	// Dialect holds the statement building rules of a database.
	// Identifiers can't be bound as arguments, so they are quoted instead.
	Dialect interface {
		// Quote quotes a single identifier (column, table or database name)
		Quote(ident string) string
		// TableName returns a quoted reference to a table in the given database
		TableName(database, table string) string
		// Placeholder returns the bind placeholder for the n-th (1-based) argument
		Placeholder(n int) string
		// TextCast casts the expression to the text type of the database
		TextCast(expr string) string
	}

	// Driver is an interface for a specific database driver
	Driver interface {
		Dialect

		Ping(ctx context.Context) error
		Query(ctx context.Context, query string, args ...any) (ResultStream, error)
		Exec(ctx context.Context, query string, args ...any) (int64, error)
		Columns(ctx context.Context, opts *TableOptions) ([]*Column, error)
		Tables(ctx context.Context, database string) ([]string, error)
		Close()
	}

	// DatabaseManager is an optional interface for drivers that can create and list databases
	DatabaseManager interface {
		CreateDatabase(ctx context.Context, name string) error
		ListDatabases(ctx context.Context) ([]string, error)
	}
)

// Connection owns a single driver and exposes the administrative operations on it.
type Connection struct {
	params           *ConnectionParams
	unexpandedParams *ConnectionParams

	driver Driver
	log    *slog.Logger
	closed bool
}

type ConnectionOption func(*Connection)

// WithLogger sets the logger used for statement level debug logs.
func WithLogger(logger *slog.Logger) ConnectionOption {
	return func(c *Connection) {
		c.log = logger
	}
}

// NewConnection connects to the database described by params and verifies
// the connection with a ping. There are no retries: on failure the driver is
// released and an error is returned.
func NewConnection(ctx context.Context, params *ConnectionParams, adapter Adapter, opts ...ConnectionOption) (*Connection, error) {
	expanded := params.Expand()

	if expanded.ID == "" {
		expanded.ID = ConnectionID(uuid.New().String())
	}

	driver, err := adapter.Connect(expanded.URL)
	if err != nil {
		return nil, fmt.Errorf("adapter.Connect: %w", err)
	}

	c := &Connection{
		params:           expanded,
		unexpandedParams: params,

		driver: driver,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("connection_id", string(expanded.ID))

	pingCtx := ctx
	if expanded.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, expanded.ConnectTimeout)
		defer cancel()
	}

	if err := driver.Ping(pingCtx); err != nil {
		driver.Close()
		return nil, fmt.Errorf("driver.Ping: %w", err)
	}

	c.log.Debug("connection established", "type", expanded.Type, "database", expanded.Database)

	return c, nil
}

func (c *Connection) GetID() ConnectionID {
	return c.params.ID
}

func (c *Connection) GetName() string {
	return c.params.Name
}

func (c *Connection) GetType() string {
	return c.params.Type
}

// GetDatabase returns the database all table operations are scoped to.
func (c *Connection) GetDatabase() string {
	return c.params.Database
}

// GetParams returns the original source for this connection
func (c *Connection) GetParams() *ConnectionParams {
	return c.unexpandedParams
}

// IsClosed reports whether Close was already called.
func (c *Connection) IsClosed() bool {
	return c.closed
}

// Close releases the driver. Calling it more than once is a no-op.
func (c *Connection) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.driver.Close()
	c.log.Debug("connection closed")
}

func (c *Connection) getDriver() (Driver, error) {
	if c.closed {
		return nil, ErrConnectionClosed
	}
	return c.driver, nil
}
