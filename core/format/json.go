package format

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sqladmin/sqladmin/core"
)

var _ core.Formatter = (*JSON)(nil)

// JSON renders rows as an array of objects keyed by column name.
// Numbers and booleans keep their type, everything else is printed as text.
type JSON struct{}

func NewJSON() *JSON {
	return &JSON{}
}

func (jf *JSON) Format(header core.Header, rows []core.Row, _ *core.FormatterOptions) ([]byte, error) {
	records := make([]map[string]any, 0, len(rows))

	for _, row := range rows {
		if len(row) > len(header) {
			return nil, fmt.Errorf("row has %d values for %d columns", len(row), len(header))
		}

		record := make(map[string]any, len(row))
		for i, val := range row {
			record[header[i]] = jsonValue(val)
		}
		records = append(records, record)
	}

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json.MarshalIndent: %w", err)
	}

	return out, nil
}

func jsonValue(val any) any {
	switch v := val.(type) {
	case nil, bool, int, int32, int64, uint, uint32, uint64, float32, float64:
		return v
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return core.TextOf(v)
	}
}
