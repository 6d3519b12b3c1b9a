package builders_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sqladmin/sqladmin/core"
	"github.com/sqladmin/sqladmin/core/builders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupClient helper function to create a client on top of sqlmock
func setupClient(t *testing.T, opts ...builders.ClientOption) (*builders.Client, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return builders.NewClient(db, opts...), mock
}

func TestClient_Query(t *testing.T) {
	r := require.New(t)
	client, mock := setupClient(t)

	mock.ExpectQuery("SELECT id, name FROM people WHERE name = ?").
		WithArgs("Alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), []byte("Alice")).
			AddRow(int64(2), []byte("Alice")))

	stream, err := client.Query(context.Background(), "SELECT id, name FROM people WHERE name = ?", "Alice")
	r.NoError(err)

	result, err := core.NewResult(stream)
	r.NoError(err)

	r.Equal(core.Header{"id", "name"}, result.Header())
	rows, err := result.Rows(0, -1)
	r.NoError(err)
	// []byte values are converted to strings by default
	r.Equal([]core.Row{{int64(1), "Alice"}, {int64(2), "Alice"}}, rows)

	r.NoError(mock.ExpectationsWereMet())
}

func TestClient_QueryError(t *testing.T) {
	client, mock := setupClient(t)

	mock.ExpectQuery("SELECT broken").WillReturnError(sql.ErrConnDone)

	got, err := client.Query(context.Background(), "SELECT broken")
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClient_Exec(t *testing.T) {
	r := require.New(t)
	client, mock := setupClient(t)

	mock.ExpectExec("DELETE FROM people WHERE id = ?").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := client.Exec(context.Background(), "DELETE FROM people WHERE id = ?", int64(3))
	r.NoError(err)
	r.Equal(int64(1), affected)
	r.NoError(mock.ExpectationsWereMet())
}

func TestClient_ColumnsFromQuery(t *testing.T) {
	r := require.New(t)
	client, mock := setupClient(t)

	mock.ExpectQuery("SELECT name, type FROM columns WHERE table_name = ?").
		WithArgs("people").
		WillReturnRows(sqlmock.NewRows([]string{"name", "type"}).
			AddRow("id", "int").
			AddRow("name", []byte("varchar(255)")))

	got, err := client.ColumnsFromQuery(context.Background(), "SELECT name, type FROM columns WHERE table_name = ?", "people")
	r.NoError(err)
	r.Equal([]*core.Column{
		{Name: "id", Type: "int"},
		{Name: "name", Type: "varchar(255)"},
	}, got)
	r.NoError(mock.ExpectationsWereMet())
}

func TestClient_StringsFromQuery(t *testing.T) {
	r := require.New(t)
	client, mock := setupClient(t)

	mock.ExpectQuery("SHOW DATABASES").
		WillReturnRows(sqlmock.NewRows([]string{"Database"}).
			AddRow("information_schema").
			AddRow([]byte("SoftwareIndustry")))

	got, err := client.StringsFromQuery(context.Background(), "SHOW DATABASES")
	r.NoError(err)
	r.Equal([]string{"information_schema", "SoftwareIndustry"}, got)
	r.NoError(mock.ExpectationsWereMet())
}

func TestClient_CustomTypeProcessor(t *testing.T) {
	r := require.New(t)
	client, mock := setupClient(t,
		builders.WithCustomTypeProcessor("BOOL", func(a any) any {
			return a == int64(1)
		}),
	)

	mock.ExpectQuery("SELECT flag FROM flags").
		WillReturnRows(sqlmock.NewRowsWithColumnDefinition(
			sqlmock.NewColumn("flag").OfType("BOOL", int64(0)),
		).AddRow(int64(1)))

	stream, err := client.Query(context.Background(), "SELECT flag FROM flags")
	r.NoError(err)

	result, err := core.NewResult(stream)
	r.NoError(err)
	rows, err := result.Rows(0, -1)
	r.NoError(err)
	r.Equal([]core.Row{{true}}, rows)
}

func TestQuoteIdent(t *testing.T) {
	testCases := []struct {
		ident, open, close, want string
	}{
		{"people", "`", "`", "`people`"},
		{"we`ird", "`", "`", "`we``ird`"},
		{`say "hi"`, `"`, `"`, `"say ""hi"""`},
		{"a]b", "[", "]", "[a]]b]"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, builders.QuoteIdent(tc.ident, tc.open, tc.close))
	}
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?", builders.PlaceholderQuestion(3))
	assert.Equal(t, "$3", builders.PlaceholderDollar(3))
	assert.Equal(t, "@p3", builders.PlaceholderAtP(3))
}

func TestClient_RowErrorIsReturned(t *testing.T) {
	errReset := errors.New("connection reset")

	newRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"name", "type"}).
			AddRow("a", "int").
			AddRow("b", "text").
			RowError(1, errReset)
	}

	t.Run("strings", func(t *testing.T) {
		client, mock := setupClient(t)
		mock.ExpectQuery("SELECT name").WillReturnRows(newRows())

		got, err := client.StringsFromQuery(context.Background(), "SELECT name")
		assert.ErrorIs(t, err, errReset)
		assert.Nil(t, got)
	})

	t.Run("columns", func(t *testing.T) {
		client, mock := setupClient(t)
		mock.ExpectQuery("SELECT name, type").WillReturnRows(newRows())

		got, err := client.ColumnsFromQuery(context.Background(), "SELECT name, type")
		assert.ErrorIs(t, err, errReset)
		assert.Nil(t, got)
	})

	t.Run("result", func(t *testing.T) {
		r := require.New(t)
		client, mock := setupClient(t)
		mock.ExpectQuery("SELECT name, type").WillReturnRows(newRows())

		stream, err := client.Query(context.Background(), "SELECT name, type")
		r.NoError(err)

		_, err = core.NewResult(stream)
		r.ErrorIs(err, errReset)
		r.False(stream.HasNext())
	})

	t.Run("first row", func(t *testing.T) {
		r := require.New(t)
		client, mock := setupClient(t)
		mock.ExpectQuery("SELECT name").WillReturnRows(
			sqlmock.NewRows([]string{"name"}).AddRow("a").RowError(0, errReset),
		)

		stream, err := client.Query(context.Background(), "SELECT name")
		r.NoError(err)

		// a failed read is not an empty result
		r.True(stream.HasNext())
		_, err = stream.Next()
		r.ErrorIs(err, errReset)
		r.False(stream.HasNext())
	})
}
