package mock

import (
	"fmt"

	"github.com/sqladmin/sqladmin/core"
	"github.com/sqladmin/sqladmin/core/builders"
)

var _ core.ResultStream = (*ResultStream)(nil)

type ResultStream struct {
	next    func() (core.Row, error)
	hasNext func() bool
	config  *resultStreamConfig
	served  int
	closed  bool
}

func makeDefaultHeader(rows []core.Row) core.Header {
	var header core.Header
	if len(rows) > 0 {
		for i := range rows[0] {
			header = append(header, fmt.Sprintf("header_%d", i))
		}
	}
	return header
}

// NewResultStream returns a mocked result stream with provided rows.
// It creates a header that matches the number of columns in the first row
// in form of: <header_0>, <header_1>, etc.
func NewResultStream(rows []core.Row, opts ...ResultStreamOption) *ResultStream {
	config := &resultStreamConfig{
		meta:      &core.Meta{},
		header:    makeDefaultHeader(rows),
		failAfter: -1,
	}
	for _, opt := range opts {
		opt(config)
	}

	next, hasNext := builders.NextRows(rows)

	return &ResultStream{
		next:    next,
		hasNext: hasNext,
		config:  config,
	}
}

func (rs *ResultStream) Meta() *core.Meta {
	return rs.config.meta
}

func (rs *ResultStream) Header() core.Header {
	return rs.config.header
}

func (rs *ResultStream) Next() (core.Row, error) {
	if rs.config.failAfter >= 0 && rs.served >= rs.config.failAfter {
		return nil, rs.config.failErr
	}
	rs.served++
	return rs.next()
}

func (rs *ResultStream) HasNext() bool {
	return !rs.closed && rs.hasNext()
}

func (rs *ResultStream) Close() {
	rs.closed = true
}

// IsClosed reports whether Close was called.
func (rs *ResultStream) IsClosed() bool {
	return rs.closed
}

// NewRows returns a slice of rows in form of:
//
//	{ <index>(int), "row_<index>"(string) }
//
// where the first index is "from" and the last one is one less than "to".
func NewRows(from, to int) []core.Row {
	var rows []core.Row

	for i := from; i < to; i++ {
		rows = append(rows, core.Row{i, fmt.Sprintf("row_%d", i)})
	}
	return rows
}
