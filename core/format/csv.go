package format

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/sqladmin/sqladmin/core"
)

var _ core.Formatter = (*CSV)(nil)

// CSV renders the header line followed by one line per row. NULL becomes an
// empty field.
type CSV struct{}

func NewCSV() *CSV {
	return &CSV{}
}

func (cf *CSV) Format(header core.Header, rows []core.Row, _ *core.FormatterOptions) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("w.Write: %w", err)
	}

	fields := make([]string, 0, len(header))
	for _, row := range rows {
		fields = fields[:0]
		for _, val := range row {
			fields = append(fields, core.TextOf(val))
		}
		if err := w.Write(fields); err != nil {
			return nil, fmt.Errorf("w.Write: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("w.Flush: %w", err)
	}

	return buf.Bytes(), nil
}
