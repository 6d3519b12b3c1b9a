package mock

import (
	"github.com/sqladmin/sqladmin/core"
)

type adapterConfig struct {
	querySideEffects map[string]func([]any) error
	queryResults     map[string][]core.Row
	tableColumns     map[string][]*core.Column
	databases        []string
	connectErr       error
	pingErr          error

	resultStreamOptions []ResultStreamOption
}

type AdapterOption func(*adapterConfig)

// AdapterWithQuerySideEffect runs sideEffect with the bound arguments every
// time query is received. A returned error fails the statement.
func AdapterWithQuerySideEffect(query string, sideEffect func(args []any) error) AdapterOption {
	return func(c *adapterConfig) {
		_, ok := c.querySideEffects[query]
		if ok {
			panic("side effect already registered for query: " + query)
		}

		c.querySideEffects[query] = sideEffect
	}
}

// AdapterWithQueryResult makes query return rows.
func AdapterWithQueryResult(query string, rows []core.Row) AdapterOption {
	return func(c *adapterConfig) {
		_, ok := c.queryResults[query]
		if ok {
			panic("result already registered for query: " + query)
		}

		c.queryResults[query] = rows
	}
}

func AdapterWithTableDefinition(table string, columns []*core.Column) AdapterOption {
	return func(c *adapterConfig) {
		_, ok := c.tableColumns[table]
		if ok {
			panic("columns already registered for table: " + table)
		}

		c.tableColumns[table] = columns
	}
}

func AdapterWithDatabases(names ...string) AdapterOption {
	return func(c *adapterConfig) {
		c.databases = append(c.databases, names...)
	}
}

func AdapterWithConnectError(err error) AdapterOption {
	return func(c *adapterConfig) {
		c.connectErr = err
	}
}

func AdapterWithPingError(err error) AdapterOption {
	return func(c *adapterConfig) {
		c.pingErr = err
	}
}

func AdapterWithResultStreamOpts(opts ...ResultStreamOption) AdapterOption {
	return func(c *adapterConfig) {
		c.resultStreamOptions = append(c.resultStreamOptions, opts...)
	}
}
