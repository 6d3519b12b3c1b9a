package mock

import (
	"context"
	"fmt"
	"sort"

	"github.com/sqladmin/sqladmin/core"
	"github.com/sqladmin/sqladmin/core/builders"
)

// Statement is a statement received by the mocked driver.
type Statement struct {
	Query string
	Args  []any
}

var (
	_ core.Driver          = (*driver)(nil)
	_ core.DatabaseManager = (*driver)(nil)
)

type driver struct {
	adapter *Adapter
}

func (d *driver) record(query string, args []any) error {
	d.adapter.statements = append(d.adapter.statements, Statement{Query: query, Args: args})

	eff, ok := d.adapter.config.querySideEffects[query]
	if ok {
		if err := eff(args); err != nil {
			return fmt.Errorf("side effect error: %w", err)
		}
	}
	return nil
}

func (d *driver) Ping(context.Context) error {
	return d.adapter.config.pingErr
}

func (d *driver) Query(_ context.Context, query string, args ...any) (core.ResultStream, error) {
	if err := d.record(query, args); err != nil {
		return nil, err
	}

	rows := d.adapter.config.queryResults[query]
	return NewResultStream(rows, d.adapter.config.resultStreamOptions...), nil
}

func (d *driver) Exec(_ context.Context, query string, args ...any) (int64, error) {
	if err := d.record(query, args); err != nil {
		return 0, err
	}
	return 1, nil
}

func (d *driver) Columns(_ context.Context, opts *core.TableOptions) ([]*core.Column, error) {
	columns, ok := d.adapter.config.tableColumns[opts.Table]
	if !ok {
		return []*core.Column{}, nil
	}

	return columns, nil
}

func (d *driver) Tables(_ context.Context, _ string) ([]string, error) {
	tables := make([]string, 0, len(d.adapter.config.tableColumns))
	for table := range d.adapter.config.tableColumns {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	return tables, nil
}

func (d *driver) CreateDatabase(_ context.Context, name string) error {
	for _, db := range d.adapter.databases {
		if db == name {
			return nil
		}
	}
	d.adapter.databases = append(d.adapter.databases, name)
	return nil
}

func (d *driver) ListDatabases(context.Context) ([]string, error) {
	return append([]string(nil), d.adapter.databases...), nil
}

func (d *driver) Quote(ident string) string {
	return builders.QuoteIdent(ident, `"`, `"`)
}

func (d *driver) TableName(_, table string) string {
	return d.Quote(table)
}

func (d *driver) Placeholder(n int) string {
	return builders.PlaceholderQuestion(n)
}

func (d *driver) TextCast(expr string) string {
	return "CAST(" + expr + " AS TEXT)"
}

func (d *driver) Close() {
	d.adapter.closed++
}

var _ core.Adapter = (*Adapter)(nil)

// Adapter returns drivers that answer queries from a fixed configuration
// and remember every statement they receive.
type Adapter struct {
	config     *adapterConfig
	statements []Statement
	databases  []string
	closed     int
}

func NewAdapter(opts ...AdapterOption) *Adapter {
	config := &adapterConfig{
		querySideEffects: make(map[string]func([]any) error),
		queryResults:     make(map[string][]core.Row),
		tableColumns:     make(map[string][]*core.Column),

		resultStreamOptions: []ResultStreamOption{},
	}
	for _, opt := range opts {
		opt(config)
	}

	return &Adapter{
		config:    config,
		databases: append([]string(nil), config.databases...),
	}
}

func (a *Adapter) Connect(_ string) (core.Driver, error) {
	if a.config.connectErr != nil {
		return nil, a.config.connectErr
	}
	return &driver{adapter: a}, nil
}

// Statements returns every statement received so far.
func (a *Adapter) Statements() []Statement {
	return a.statements
}

// LastStatement returns the most recent statement or an empty one.
func (a *Adapter) LastStatement() Statement {
	if len(a.statements) == 0 {
		return Statement{}
	}
	return a.statements[len(a.statements)-1]
}

// Closed returns how many times a driver was closed.
func (a *Adapter) Closed() int {
	return a.closed
}
