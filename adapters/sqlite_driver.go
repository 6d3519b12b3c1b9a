package adapters

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sqladmin/sqladmin/core"
	"github.com/sqladmin/sqladmin/core/builders"
)

var (
	_ core.Driver          = (*sqliteDriver)(nil)
	_ core.DatabaseManager = (*sqliteDriver)(nil)
)

// sqliteMainDatabase is the schema name of the opened file.
const sqliteMainDatabase = "main"

type sqliteDriver struct {
	c *builders.Client
	// dir holds attached database files, empty for in-memory databases
	dir string
}

func (d *sqliteDriver) Ping(ctx context.Context) error {
	return d.c.Ping(ctx)
}

func (d *sqliteDriver) Query(ctx context.Context, query string, args ...any) (core.ResultStream, error) {
	rows, err := d.c.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (d *sqliteDriver) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return d.c.Exec(ctx, query, args...)
}

func (d *sqliteDriver) Columns(ctx context.Context, opts *core.TableOptions) ([]*core.Column, error) {
	return d.c.ColumnsFromQuery(ctx, "SELECT name, type FROM pragma_table_info(?, ?) ORDER BY cid",
		opts.Table, schemaOrMain(opts.Database))
}

func (d *sqliteDriver) Tables(ctx context.Context, database string) ([]string, error) {
	query := fmt.Sprintf(
		"SELECT name FROM %s.sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%%' ORDER BY name",
		d.Quote(schemaOrMain(database)),
	)
	return d.c.StringsFromQuery(ctx, query)
}

// CreateDatabase attaches a new database file named after the database.
// Attaching is per connection, the client keeps a single one open.
func (d *sqliteDriver) CreateDatabase(ctx context.Context, name string) error {
	existing, err := d.ListDatabases(ctx)
	if err != nil {
		return err
	}
	for _, db := range existing {
		if db == name {
			return nil
		}
	}

	path := ":memory:"
	if d.dir != "" {
		path = filepath.Join(d.dir, name+".db")
	}

	_, err = d.c.Exec(ctx, "ATTACH DATABASE ? AS "+d.Quote(name), path)
	return err
}

func (d *sqliteDriver) ListDatabases(ctx context.Context) ([]string, error) {
	return d.c.StringsFromQuery(ctx, "SELECT name FROM pragma_database_list ORDER BY seq")
}

func (d *sqliteDriver) Quote(ident string) string {
	return builders.QuoteIdent(ident, `"`, `"`)
}

func (d *sqliteDriver) TableName(database, table string) string {
	if database == "" {
		return d.Quote(table)
	}
	return d.Quote(database) + "." + d.Quote(table)
}

func (d *sqliteDriver) Placeholder(n int) string {
	return builders.PlaceholderQuestion(n)
}

func (d *sqliteDriver) TextCast(expr string) string {
	return "CAST(" + expr + " AS TEXT)"
}

func (d *sqliteDriver) Close() { d.c.Close() }

func schemaOrMain(database string) string {
	if database == "" {
		return sqliteMainDatabase
	}
	return database
}
