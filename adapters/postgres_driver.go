package adapters

import (
	"context"

	"github.com/sqladmin/sqladmin/core"
	"github.com/sqladmin/sqladmin/core/builders"
)

var (
	_ core.Driver          = (*postgresDriver)(nil)
	_ core.DatabaseManager = (*postgresDriver)(nil)
)

// postgresDriver works on the database named in the connection url. A
// postgres session can't reach tables of other databases, so the database
// argument of the table operations is not used.
type postgresDriver struct {
	c *builders.Client
}

func (c *postgresDriver) Ping(ctx context.Context) error {
	return c.c.Ping(ctx)
}

func (c *postgresDriver) Query(ctx context.Context, query string, args ...any) (core.ResultStream, error) {
	rows, err := c.c.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *postgresDriver) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return c.c.Exec(ctx, query, args...)
}

func (c *postgresDriver) Columns(ctx context.Context, opts *core.TableOptions) ([]*core.Column, error) {
	return c.c.ColumnsFromQuery(ctx, `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE
			table_schema = current_schema() AND
			table_name = $1
		ORDER BY ordinal_position`,
		opts.Table)
}

func (c *postgresDriver) Tables(ctx context.Context, _ string) ([]string, error) {
	return c.c.StringsFromQuery(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE
			table_schema = current_schema() AND
			table_type = 'BASE TABLE'
		ORDER BY table_name`)
}

func (c *postgresDriver) CreateDatabase(ctx context.Context, name string) error {
	existing, err := c.c.StringsFromQuery(ctx, "SELECT datname FROM pg_database WHERE datname = $1", name)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	_, err = c.c.Exec(ctx, "CREATE DATABASE "+c.Quote(name))
	return err
}

func (c *postgresDriver) ListDatabases(ctx context.Context) ([]string, error) {
	return c.c.StringsFromQuery(ctx, `
		SELECT datname FROM pg_database
		WHERE datistemplate = false
		ORDER BY datname`)
}

func (c *postgresDriver) Quote(ident string) string {
	return builders.QuoteIdent(ident, `"`, `"`)
}

func (c *postgresDriver) TableName(_, table string) string {
	return c.Quote(table)
}

func (c *postgresDriver) Placeholder(n int) string {
	return builders.PlaceholderDollar(n)
}

func (c *postgresDriver) TextCast(expr string) string {
	return "CAST(" + expr + " AS TEXT)"
}

func (c *postgresDriver) Close() {
	c.c.Close()
}
