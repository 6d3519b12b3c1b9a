package adapters

import (
	"context"
	"fmt"

	"github.com/sqladmin/sqladmin/core"
	"github.com/sqladmin/sqladmin/core/builders"
)

var (
	_ core.Driver          = (*sqlServerDriver)(nil)
	_ core.DatabaseManager = (*sqlServerDriver)(nil)
	_ core.TableCreator    = (*sqlServerDriver)(nil)
)

type sqlServerDriver struct {
	c *builders.Client
}

func (c *sqlServerDriver) Ping(ctx context.Context) error {
	return c.c.Ping(ctx)
}

func (c *sqlServerDriver) Query(ctx context.Context, query string, args ...any) (core.ResultStream, error) {
	rows, err := c.c.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *sqlServerDriver) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return c.c.Exec(ctx, query, args...)
}

func (c *sqlServerDriver) Columns(ctx context.Context, opts *core.TableOptions) ([]*core.Column, error) {
	query := fmt.Sprintf(`
		SELECT
			column_name,
			data_type
		FROM %sinformation_schema.columns
			WHERE table_name = @p1
		ORDER BY ordinal_position`,
		c.catalog(opts.Database),
	)
	return c.c.ColumnsFromQuery(ctx, query, opts.Table)
}

func (c *sqlServerDriver) Tables(ctx context.Context, database string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT table_name
		FROM %sinformation_schema.tables
			WHERE table_type = 'BASE TABLE'
		ORDER BY table_name`,
		c.catalog(database),
	)
	return c.c.StringsFromQuery(ctx, query)
}

// CreateTable is needed since sqlserver has no CREATE TABLE IF NOT EXISTS.
func (c *sqlServerDriver) CreateTable(ctx context.Context, opts *core.TableOptions, definition string) error {
	name := c.TableName(opts.Database, opts.Table)
	query := fmt.Sprintf("IF OBJECT_ID(@p1, 'U') IS NULL CREATE TABLE %s (%s)", name, definition)

	_, err := c.c.Exec(ctx, query, name)
	return err
}

func (c *sqlServerDriver) CreateDatabase(ctx context.Context, name string) error {
	existing, err := c.c.StringsFromQuery(ctx, "SELECT name FROM sys.databases WHERE name = @p1", name)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	_, err = c.c.Exec(ctx, "CREATE DATABASE "+c.Quote(name))
	return err
}

func (c *sqlServerDriver) ListDatabases(ctx context.Context) ([]string, error) {
	return c.c.StringsFromQuery(ctx, "SELECT name FROM sys.databases ORDER BY database_id")
}

func (c *sqlServerDriver) Quote(ident string) string {
	return builders.QuoteIdent(ident, "[", "]")
}

// TableName uses the default schema of the database (db..table).
func (c *sqlServerDriver) TableName(database, table string) string {
	if database == "" {
		return c.Quote(table)
	}
	return c.Quote(database) + ".." + c.Quote(table)
}

func (c *sqlServerDriver) Placeholder(n int) string {
	return builders.PlaceholderAtP(n)
}

func (c *sqlServerDriver) TextCast(expr string) string {
	return "CAST(" + expr + " AS NVARCHAR(MAX))"
}

func (c *sqlServerDriver) Close() {
	c.c.Close()
}

// catalog returns the "[db]." prefix of catalog views, empty for the current database.
func (c *sqlServerDriver) catalog(database string) string {
	if database == "" {
		return ""
	}
	return c.Quote(database) + "."
}
