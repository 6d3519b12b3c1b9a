// Package testhelpers provides helpers for integration tests.
package testhelpers

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sqladmin/sqladmin/adapters"
	"github.com/sqladmin/sqladmin/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"golang.org/x/sync/errgroup"
)

// GetContainerProvider returns the container provider type to use for the tests.
// If we detect podman is available, we use it, otherwise we use docker.
func GetContainerProvider() testcontainers.ProviderType {
	if _, err := exec.LookPath("podman"); err == nil {
		fmt.Println("Podman detected. Remember to set TESTCONTAINERS_RYUK_CONTAINER_PRIVILEGED=true;")
		return testcontainers.ProviderPodman
	}
	return testcontainers.ProviderDocker
}

// seedDatabase is the database the seed scripts create and fill.
const seedDatabase = "dev"

// connect fills the unset connection params with the container defaults and
// opens a connection.
func connect(ctx context.Context, params *core.ConnectionParams, typ, url string) (*core.Connection, error) {
	if params.Type == "" {
		params.Type = typ
	}
	if params.URL == "" {
		params.URL = url
	}
	if params.Database == "" {
		params.Database = seedDatabase
	}

	return adapters.NewConnection(ctx, params)
}

// StartAll runs the container starters concurrently and returns the first error.
func StartAll(ctx context.Context, starters ...func(ctx context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, start := range starters {
		g.Go(func() error {
			return start(ctx)
		})
	}
	return g.Wait()
}

// GetTestDataPath returns the path to the testdata directory.
func GetTestDataPath() (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to get current file path")
	}

	return filepath.Join(filepath.Dir(currentFile), "../testdata"), nil
}

// GetTestDataFile returns a file from the testdata directory.
func GetTestDataFile(filename string) (*os.File, error) {
	testDataPath, err := GetTestDataPath()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(testDataPath, filename)
	return os.Open(path)
}

// SeededPeople is the content of the people table created by every seed script.
var SeededPeople = []core.Record{
	{"id": "1", "name": "john_doe", "role": "engineer"},
	{"id": "2", "name": "jane_smith", "role": "designer"},
	{"id": "3", "name": "bob_wilson", "role": "manager"},
}

// Normalize converts every record value to its display text so records from
// different drivers can be compared.
func Normalize(records []core.Record) []core.Record {
	out := make([]core.Record, 0, len(records))
	for _, rec := range records {
		n := make(core.Record, len(rec))
		for k, v := range rec {
			n[k] = core.TextOf(v)
		}
		out = append(out, n)
	}
	return out
}

// AssertRoundTrip creates the table, inserts a row, finds it, updates it and
// deletes it again, checking the table content after every step.
func AssertRoundTrip(t *testing.T, conn *core.Connection, table, definition string) {
	t.Helper()
	ctx := context.Background()
	r := require.New(t)

	r.NoError(conn.CreateTable(ctx, table, definition))
	// creating it twice is a no-op
	r.NoError(conn.CreateTable(ctx, table, definition))

	tables, err := conn.ListTables(ctx)
	r.NoError(err)
	r.Contains(tables, table)

	r.NoError(conn.InsertRow(ctx, table, []string{"gopher", "mascot"}))

	found, err := conn.SearchRow(ctx, table, "gopher")
	r.NoError(err)
	assert.Equal(t, "mascot", core.TextOf(found["role"]))

	updated, err := conn.UpdateRow(ctx, table, "mascot", "maintainer")
	r.NoError(err)
	assert.Equal(t, "maintainer", core.TextOf(updated["role"]))
	assert.Equal(t, "gopher", core.TextOf(updated["name"]))

	_, err = conn.SearchRow(ctx, table, "mascot")
	r.ErrorIs(err, core.ErrNotFound)

	_, err = conn.DeleteRow(ctx, table, "gopher", nil)
	r.NoError(err)

	rows, err := conn.ListAllRows(ctx, table)
	r.NoError(err)
	r.Empty(rows)
}

// AssertInjectionSafe checks that search terms are bound as values.
func AssertInjectionSafe(t *testing.T, conn *core.Connection, table string) {
	t.Helper()
	ctx := context.Background()

	for _, term := range []string{"' OR '1'='1", "1; DROP TABLE " + table, `"; --`} {
		_, err := conn.SearchRow(ctx, table, term)
		assert.ErrorIs(t, err, core.ErrNotFound, term)
	}

	rows, err := conn.ListAllRows(ctx, table)
	require.NoError(t, err)
	assert.Len(t, rows, len(SeededPeople))
}
