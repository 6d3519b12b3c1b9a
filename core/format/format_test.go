package format_test

import (
	"strings"
	"testing"
	"time"

	"github.com/sqladmin/sqladmin/core"
	"github.com/sqladmin/sqladmin/core/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testHeader = core.Header{"id", "name", "role"}
	testRows   = []core.Row{
		{int64(1), "Alice", "Engineer"},
		{int64(2), "Bob", nil},
	}
)

func TestCSV_Format(t *testing.T) {
	got, err := format.NewCSV().Format(testHeader, testRows, &core.FormatterOptions{})
	require.NoError(t, err)

	want := "id,name,role\n1,Alice,Engineer\n2,Bob,\n"
	assert.Equal(t, want, string(got))
}

func TestJSON_Format(t *testing.T) {
	got, err := format.NewJSON().Format(testHeader, testRows[:1], &core.FormatterOptions{})
	require.NoError(t, err)

	assert.JSONEq(t, `[{"id": 1, "name": "Alice", "role": "Engineer"}]`, string(got))
}

func TestJSON_FormatDriverValues(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	rows := []core.Row{{[]byte("raw"), created, true}}

	got, err := format.NewJSON().Format(core.Header{"blob", "created", "active"}, rows, nil)
	require.NoError(t, err)

	assert.JSONEq(t, `[{"blob": "raw", "created": "2024-03-01T12:30:00Z", "active": true}]`, string(got))
}

func TestJSON_FormatTooManyValues(t *testing.T) {
	_, err := format.NewJSON().Format(core.Header{"id"}, []core.Row{{1, 2}}, nil)
	assert.Error(t, err)
}

func TestJSON_FormatEmpty(t *testing.T) {
	got, err := format.NewJSON().Format(testHeader, nil, &core.FormatterOptions{})
	require.NoError(t, err)

	assert.Equal(t, "[]", string(got))
}

func TestTable_Format(t *testing.T) {
	got, err := format.NewTable().Format(testHeader, testRows, &core.FormatterOptions{ChunkStart: 10})
	require.NoError(t, err)

	out := string(got)
	for _, want := range []string{"id", "name", "role", "Alice", "Engineer", "Bob", "NULL", "11", "12"} {
		assert.Contains(t, out, want)
	}

	// header line, separator and one line per row
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.GreaterOrEqual(t, len(lines), 4)
}

func TestNew(t *testing.T) {
	for _, name := range format.Names {
		f, err := format.New(name)
		assert.NoError(t, err)
		assert.NotNil(t, f)
	}

	f, err := format.New("")
	assert.NoError(t, err)
	assert.IsType(t, &format.Table{}, f)

	_, err = format.New("yaml")
	assert.Error(t, err)
}
