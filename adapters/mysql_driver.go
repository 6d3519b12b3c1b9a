package adapters

import (
	"context"

	"github.com/sqladmin/sqladmin/core"
	"github.com/sqladmin/sqladmin/core/builders"
)

var (
	_ core.Driver          = (*mySQLDriver)(nil)
	_ core.DatabaseManager = (*mySQLDriver)(nil)
)

type mySQLDriver struct {
	c *builders.Client
}

func (c *mySQLDriver) Ping(ctx context.Context) error {
	return c.c.Ping(ctx)
}

func (c *mySQLDriver) Query(ctx context.Context, query string, args ...any) (core.ResultStream, error) {
	rows, err := c.c.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *mySQLDriver) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return c.c.Exec(ctx, query, args...)
}

func (c *mySQLDriver) Columns(ctx context.Context, opts *core.TableOptions) ([]*core.Column, error) {
	return c.c.ColumnsFromQuery(ctx, `
		SELECT column_name, column_type
		FROM information_schema.columns
		WHERE table_schema = ? AND table_name = ?
		ORDER BY ordinal_position`,
		opts.Database, opts.Table)
}

func (c *mySQLDriver) Tables(ctx context.Context, database string) ([]string, error) {
	return c.c.StringsFromQuery(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = ?
		ORDER BY table_name`,
		database)
}

func (c *mySQLDriver) CreateDatabase(ctx context.Context, name string) error {
	_, err := c.c.Exec(ctx, "CREATE DATABASE IF NOT EXISTS "+c.Quote(name))
	return err
}

func (c *mySQLDriver) ListDatabases(ctx context.Context) ([]string, error) {
	return c.c.StringsFromQuery(ctx, "SHOW DATABASES")
}

func (c *mySQLDriver) Quote(ident string) string {
	return builders.QuoteIdent(ident, "`", "`")
}

func (c *mySQLDriver) TableName(database, table string) string {
	if database == "" {
		return c.Quote(table)
	}
	return c.Quote(database) + "." + c.Quote(table)
}

func (c *mySQLDriver) Placeholder(n int) string {
	return builders.PlaceholderQuestion(n)
}

func (c *mySQLDriver) TextCast(expr string) string {
	return "CAST(" + expr + " AS CHAR)"
}

func (c *mySQLDriver) Close() {
	c.c.Close()
}
