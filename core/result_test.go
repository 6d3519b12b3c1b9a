package core

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockedResultStream struct {
	max     int
	current int
	failAt  int
	closed  bool
}

func newMockedResultStream(maxRows int) *mockedResultStream {
	return &mockedResultStream{
		max:    maxRows,
		failAt: -1,
	}
}

func (mir *mockedResultStream) Meta() *Meta {
	return &Meta{}
}

func (mir *mockedResultStream) Header() Header {
	return Header{"header1", "header2"}
}

func (mir *mockedResultStream) Next() (Row, error) {
	if mir.current == mir.failAt {
		return nil, errors.New("stream broke")
	}
	if mir.current < mir.max {
		num := mir.current
		mir.current += 1
		return Row{num, strconv.Itoa(num)}, nil
	}

	return nil, errors.New("no next row")
}

func (mir *mockedResultStream) HasNext() bool {
	return mir.current < mir.max
}

func (mir *mockedResultStream) Close() {
	mir.closed = true
}

func (mir *mockedResultStream) Range(from int, to int) []Row {
	var rows []Row

	for i := from; i < to; i++ {
		rows = append(rows, Row{i, strconv.Itoa(i)})
	}
	return rows
}

func TestResult_Rows(t *testing.T) {
	numOfRows := 10
	stream := newMockedResultStream(numOfRows)

	result, err := NewResult(stream)
	require.NoError(t, err)
	require.True(t, stream.closed)

	type testCase struct {
		name          string
		from          int
		to            int
		expectedRows  []Row
		expectedError error
	}

	testCases := []testCase{
		{
			name:         "get all",
			from:         0,
			to:           -1,
			expectedRows: stream.Range(0, numOfRows),
		},
		{
			name:         "get basic range",
			from:         0,
			to:           3,
			expectedRows: stream.Range(0, 3),
		},
		{
			name:         "get last 2",
			from:         -3,
			to:           -1,
			expectedRows: stream.Range(numOfRows-2, numOfRows),
		},
		{
			name:         "get only one",
			from:         0,
			to:           1,
			expectedRows: stream.Range(0, 1),
		},
		{
			name:         "range past the end is clamped",
			from:         8,
			to:           100,
			expectedRows: stream.Range(8, numOfRows),
		},
		{
			name:          "invalid range",
			from:          5,
			to:            1,
			expectedError: ErrInvalidRange(5, 1),
		},
		{
			name:          "invalid range (even if 10 can be higher than -1, its undefined and should fail)",
			from:          -5,
			to:            10,
			expectedError: ErrInvalidRange(-5, 10),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := result.Rows(tc.from, tc.to)
			if tc.expectedError != nil {
				assert.EqualError(t, err, tc.expectedError.Error())
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expectedRows, rows)
		})
	}
}

func TestResult_Records(t *testing.T) {
	result, err := NewResult(newMockedResultStream(2))
	require.NoError(t, err)

	assert.Equal(t, []Record{
		{"header1": 0, "header2": "0"},
		{"header1": 1, "header2": "1"},
	}, result.Records())
}

func TestResult_Empty(t *testing.T) {
	result, err := NewResult(newMockedResultStream(0))
	require.NoError(t, err)

	assert.True(t, result.IsEmpty())
	assert.Equal(t, 0, result.Len())
	assert.Equal(t, []Record{}, result.Records())
}

func TestResult_StreamError(t *testing.T) {
	stream := newMockedResultStream(5)
	stream.failAt = 2

	_, err := NewResult(stream)
	assert.ErrorContains(t, err, "stream broke")
	assert.True(t, stream.closed)
}

type recordingFormatter struct {
	header Header
	rows   []Row
	opts   *FormatterOptions
}

func (f *recordingFormatter) Format(header Header, rows []Row, opts *FormatterOptions) ([]byte, error) {
	f.header, f.rows, f.opts = header, rows, opts
	return []byte("formatted"), nil
}

func TestResult_Format(t *testing.T) {
	result, err := NewResult(newMockedResultStream(5))
	require.NoError(t, err)

	f := &recordingFormatter{}
	out, err := result.Format(f, -3, -1)
	require.NoError(t, err)

	assert.Equal(t, "formatted", string(out))
	assert.Equal(t, Header{"header1", "header2"}, f.header)
	assert.Len(t, f.rows, 2)
	assert.Equal(t, 3, f.opts.ChunkStart)
}

func TestNewRecord_UnknownField(t *testing.T) {
	rec := newRecord(Header{"a"}, Row{1, 2})
	assert.Equal(t, Record{"a": 1, "<unknown-field-1>": 2}, rec)
}
