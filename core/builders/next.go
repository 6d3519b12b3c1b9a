package builders

import (
	"errors"

	"github.com/sqladmin/sqladmin/core"
)

// ErrNoNextRow is returned by next functions called after the last row.
var ErrNoNextRow = errors.New("no next row")

// NextRows creates next and hasNext functions that return provided rows in order
func NextRows(rows []core.Row) (func() (core.Row, error), func() bool) {
	index := 0

	hasNext := func() bool {
		return index < len(rows)
	}

	next := func() (core.Row, error) {
		if !hasNext() {
			return nil, ErrNoNextRow
		}

		row := rows[index]
		index++
		return row, nil
	}

	return next, hasNext
}
