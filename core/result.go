package core

import (
	"fmt"
)

var ErrInvalidRange = func(from, to int) error { return fmt.Errorf("invalid selection range: %d ... %d", from, to) }

// Result is the drained form of the ResultStream iterator
type Result struct {
	header Header
	meta   *Meta
	rows   []Row
}

// NewResult drains the stream into a new result. The stream is closed on return.
func NewResult(iter ResultStream) (*Result, error) {
	r := &Result{}
	if err := r.SetIter(iter); err != nil {
		return nil, err
	}
	return r, nil
}

// SetIter replaces the contents of result with the rows of iter.
func (cr *Result) SetIter(iter ResultStream) error {
	// close iterator on return
	defer iter.Close()

	cr.header = iter.Header()
	cr.meta = iter.Meta()
	cr.rows = make([]Row, 0)

	for iter.HasNext() {
		row, err := iter.Next()
		if err != nil {
			cr.rows = nil
			return fmt.Errorf("iter.Next: %w", err)
		}

		cr.rows = append(cr.rows, row)
	}

	return nil
}

func (cr *Result) Format(formatter Formatter, from, to int) ([]byte, error) {
	rows, fromAdjusted, _, err := cr.getRows(from, to)
	if err != nil {
		return nil, fmt.Errorf("cr.getRows: %w", err)
	}

	opts := &FormatterOptions{
		ChunkStart: fromAdjusted,
	}

	f, err := formatter.Format(cr.header, rows, opts)
	if err != nil {
		return nil, fmt.Errorf("formatter.Format: %w", err)
	}

	return f, nil
}

func (cr *Result) Len() int {
	return len(cr.rows)
}

func (cr *Result) IsEmpty() bool {
	return len(cr.rows) == 0
}

func (cr *Result) Header() Header {
	return cr.header
}

func (cr *Result) Meta() *Meta {
	if cr.meta == nil {
		return &Meta{}
	}
	return cr.meta
}

func (cr *Result) Rows(from, to int) ([]Row, error) {
	rows, _, _, err := cr.getRows(from, to)
	return rows, err
}

// Records maps every row to its header.
func (cr *Result) Records() []Record {
	out := make([]Record, 0, len(cr.rows))
	for _, row := range cr.rows {
		out = append(out, newRecord(cr.header, row))
	}
	return out
}

// getRows returns the row range and adjusted from-to values.
// Negative indexes count from the end: (0, -1) selects all rows.
func (cr *Result) getRows(from, to int) (rows []Row, rangeFrom, rangeTo int, err error) {
	// validation
	if (from < 0 && to < 0) || (from >= 0 && to >= 0) {
		if from > to {
			return nil, 0, 0, ErrInvalidRange(from, to)
		}
	}
	// undefined -> error
	if from < 0 && to >= 0 {
		return nil, 0, 0, ErrInvalidRange(from, to)
	}

	// calculate range
	length := len(cr.rows)
	if from < 0 {
		from += length + 1
		if from < 0 {
			from = 0
		}
	}
	if to < 0 {
		to += length + 1
		if to < 0 {
			to = 0
		}
	}

	if from > length {
		from = length
	}
	if to > length {
		to = length
	}

	return cr.rows[from:to], from, to, nil
}

func newRecord(header Header, row Row) Record {
	rec := make(Record, len(row))
	for i, val := range row {
		var h string
		if i < len(header) {
			h = header[i]
		} else {
			h = fmt.Sprintf("<unknown-field-%d>", i)
		}
		rec[h] = val
	}
	return rec
}
