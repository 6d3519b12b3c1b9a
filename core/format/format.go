// Package format renders query results for the terminal.
package format

import (
	"fmt"
	"strings"

	"github.com/sqladmin/sqladmin/core"
)

// Names lists the formats accepted by New.
var Names = []string{"table", "json", "csv"}

// New returns the formatter registered under name.
func New(name string) (core.Formatter, error) {
	switch strings.ToLower(name) {
	case "", "table":
		return NewTable(), nil
	case "json":
		return NewJSON(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("output format %q is not supported", name)
	}
}
