package builders

import (
	"errors"
	"fmt"

	"github.com/sqladmin/sqladmin/core"
)

// ColumnsFromResultStream converts the result stream to columns.
// A result stream should return rows that are at least 2 columns wide and
// have the following structure:
//
//	1st elem: name - string
//	2nd elem: type - string
func ColumnsFromResultStream(rows core.ResultStream) ([]*core.Column, error) {
	out := []*core.Column{}

	for rows.HasNext() {
		row, err := rows.Next()
		if err != nil {
			return nil, fmt.Errorf("result.Next: %w", err)
		}

		if len(row) < 2 {
			return nil, errors.New("could not retrieve column info: insufficient data")
		}

		name, ok := row[0].(string)
		if !ok {
			return nil, errors.New("could not retrieve column info: name not a string")
		}

		typ, ok := row[1].(string)
		if !ok {
			return nil, errors.New("could not retrieve column info: type not a string")
		}

		out = append(out, &core.Column{
			Name: name,
			Type: typ,
		})
	}

	return out, nil
}

// StringsFromResultStream collects the first element of every row.
// Non-string values are formatted with core.TextOf.
func StringsFromResultStream(rows core.ResultStream) ([]string, error) {
	out := []string{}

	for rows.HasNext() {
		row, err := rows.Next()
		if err != nil {
			return nil, fmt.Errorf("result.Next: %w", err)
		}
		if len(row) < 1 {
			continue
		}

		out = append(out, core.TextOf(row[0]))
	}

	return out, nil
}
