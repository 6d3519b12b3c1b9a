package core

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Prompter supplies interactive input to operations that need it.
type Prompter interface {
	// Value asks for the value of a single column
	Value(column *Column) (string, error)
	// Confirm asks whether the record may be deleted
	Confirm(record Record) (bool, error)
}

// TableCreator is an optional interface for drivers without
// CREATE TABLE IF NOT EXISTS support.
type TableCreator interface {
	CreateTable(ctx context.Context, opts *TableOptions, definition string) error
}

// CreateDatabase creates the named database if it doesn't exist yet.
func (c *Connection) CreateDatabase(ctx context.Context, name string) error {
	d, err := c.getDriver()
	if err != nil {
		return err
	}
	if err := validateIdentifier(name); err != nil {
		return err
	}

	manager, ok := d.(DatabaseManager)
	if !ok {
		return ErrDatabaseManagementNotSupported
	}

	c.log.Debug("creating database", "name", name)
	return opError("CreateDatabase", manager.CreateDatabase(ctx, name))
}

// ListDatabases returns the names of all databases visible to the connection.
func (c *Connection) ListDatabases(ctx context.Context) ([]string, error) {
	d, err := c.getDriver()
	if err != nil {
		return nil, err
	}

	manager, ok := d.(DatabaseManager)
	if !ok {
		return nil, ErrDatabaseManagementNotSupported
	}

	names, err := manager.ListDatabases(ctx)
	if err != nil {
		return nil, opError("ListDatabases", err)
	}
	return names, nil
}

// CreateTable creates a table if it doesn't exist. The definition is the raw
// column definition list and is passed to the database as is.
func (c *Connection) CreateTable(ctx context.Context, name, definition string) error {
	d, err := c.getDriver()
	if err != nil {
		return err
	}
	if err := validateIdentifier(name); err != nil {
		return err
	}

	opts := &TableOptions{Database: c.params.Database, Table: name}
	if creator, ok := d.(TableCreator); ok {
		return opError("CreateTable", creator.CreateTable(ctx, opts, definition))
	}

	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", d.TableName(opts.Database, opts.Table), definition)
	return opError("CreateTable", c.exec(ctx, d, query))
}

// ListTables returns the tables of the connection's database.
func (c *Connection) ListTables(ctx context.Context) ([]string, error) {
	d, err := c.getDriver()
	if err != nil {
		return nil, err
	}

	tables, err := d.Tables(ctx, c.params.Database)
	if err != nil {
		return nil, opError("ListTables", err)
	}
	return tables, nil
}

// TableSchema returns the columns of a table in schema order.
// The schema is fetched on every call. A missing table yields no columns.
func (c *Connection) TableSchema(ctx context.Context, table string) ([]*Column, error) {
	d, err := c.getDriver()
	if err != nil {
		return nil, err
	}
	if err := validateIdentifier(table); err != nil {
		return nil, err
	}

	columns, err := d.Columns(ctx, &TableOptions{Database: c.params.Database, Table: table})
	if err != nil {
		return nil, opError("TableSchema", err)
	}
	return columns, nil
}

// InsertRow inserts values in schema order. When values cover every column
// but the first, the first (key) column is left to the database; when they
// cover every column, the key is inserted too.
func (c *Connection) InsertRow(ctx context.Context, table string, values []string) error {
	d, columns, err := c.schema(ctx, table)
	if err != nil {
		return err
	}

	switch len(values) {
	case 0:
		return fmt.Errorf("%w: no values given", ErrValueCount)
	case len(columns):
	case len(columns) - 1:
		columns = columns[1:]
	default:
		return fmt.Errorf("%w: got %d values for %d columns", ErrValueCount, len(values), len(columns))
	}

	return c.insert(ctx, d, table, columns, values)
}

// InsertRowInteractive asks the prompter for the value of every non-key column
// and inserts the row.
func (c *Connection) InsertRowInteractive(ctx context.Context, table string, prompter Prompter) error {
	d, columns, err := c.schema(ctx, table)
	if err != nil {
		return err
	}

	columns = columns[1:]
	if len(columns) == 0 {
		return fmt.Errorf("%w: table %q has only a key column", ErrValueCount, table)
	}

	values := make([]string, 0, len(columns))
	for _, col := range columns {
		v, err := prompter.Value(col)
		if err != nil {
			return fmt.Errorf("prompter.Value: %w", err)
		}
		values = append(values, v)
	}

	return c.insert(ctx, d, table, columns, values)
}

// SearchRow returns the first row that holds term in any of its columns.
// Columns are compared by their text form, so "1" matches an integer 1.
//
// The lookup is not keyed: several rows may match and only the first one the
// database returns is used.
func (c *Connection) SearchRow(ctx context.Context, table, term string) (Record, error) {
	if term == "" {
		return Record{}, ErrEmptySearchTerm
	}

	d, columns, err := c.schema(ctx, table)
	if err != nil {
		return Record{}, err
	}

	m, err := c.search(ctx, d, table, columns, term)
	if err != nil {
		return Record{}, err
	}
	return m.record, nil
}

// UpdateRow replaces oldValue with newValue in the row found by SearchRow.
// Only the column that held oldValue changes; the row is addressed by its key.
// The updated record is returned.
func (c *Connection) UpdateRow(ctx context.Context, table, oldValue, newValue string) (Record, error) {
	d, columns, err := c.schema(ctx, table)
	if err != nil {
		return nil, err
	}

	m, err := c.search(ctx, d, table, columns, oldValue)
	if err != nil {
		return nil, err
	}
	record := m.record

	key := columns[0]
	keyValue := record[key.Name]
	if keyValue == nil {
		return nil, ErrNullKey
	}

	target := m.column(columns)
	if target == nil {
		return nil, fmt.Errorf("%w: no column of the matched row holds %q", ErrNotFound, oldValue)
	}

	query := fmt.Sprintf("UPDATE %s SET %s = %s WHERE %s = %s",
		d.TableName(c.params.Database, table),
		d.Quote(target.Name), d.Placeholder(1),
		d.Quote(key.Name), d.Placeholder(2),
	)
	if err := c.exec(ctx, d, query, newValue, keyValue); err != nil {
		return nil, opError("UpdateRow", err)
	}

	updated := make(Record, len(record))
	for k, v := range record {
		updated[k] = v
	}
	updated[target.Name] = newValue

	return updated, nil
}

// DeleteRow deletes the row found by SearchRow after the prompter confirms it.
// A nil prompter deletes without asking. The deleted record is returned.
func (c *Connection) DeleteRow(ctx context.Context, table, value string, prompter Prompter) (Record, error) {
	d, columns, err := c.schema(ctx, table)
	if err != nil {
		return nil, err
	}

	m, err := c.search(ctx, d, table, columns, value)
	if err != nil {
		return nil, err
	}
	record := m.record

	key := columns[0]
	keyValue := record[key.Name]
	if keyValue == nil {
		return nil, ErrNullKey
	}

	if prompter != nil {
		ok, err := prompter.Confirm(record)
		if err != nil {
			return nil, fmt.Errorf("prompter.Confirm: %w", err)
		}
		if !ok {
			return nil, ErrAborted
		}
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = %s",
		d.TableName(c.params.Database, table),
		d.Quote(key.Name), d.Placeholder(1),
	)
	if err := c.exec(ctx, d, query, keyValue); err != nil {
		return nil, opError("DeleteRow", err)
	}

	return record, nil
}

// ListAllRows returns every row of the table ordered by its key column.
func (c *Connection) ListAllRows(ctx context.Context, table string) ([]Record, error) {
	result, err := c.Dump(ctx, table)
	if err != nil {
		return nil, err
	}
	return result.Records(), nil
}

// Dump is ListAllRows in the positional form, for rendering with a Formatter.
func (c *Connection) Dump(ctx context.Context, table string) (*Result, error) {
	d, columns, err := c.schema(ctx, table)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		columnList(d, columns),
		d.TableName(c.params.Database, table),
		d.Quote(columns[0].Name),
	)

	stream, err := c.query(ctx, d, query)
	if err != nil {
		return nil, opError("ListAllRows", err)
	}

	result, err := NewResult(stream)
	if err != nil {
		return nil, opError("ListAllRows", err)
	}
	result.header = columnNames(columns)

	return result, nil
}

// schema returns the driver and the columns of an existing table.
func (c *Connection) schema(ctx context.Context, table string) (Driver, []*Column, error) {
	d, err := c.getDriver()
	if err != nil {
		return nil, nil, err
	}

	columns, err := c.TableSchema(ctx, table)
	if err != nil {
		return nil, nil, err
	}
	if len(columns) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}

	return d, columns, nil
}

func (c *Connection) insert(ctx context.Context, d Driver, table string, columns []*Column, values []string) error {
	placeholders := make([]string, len(values))
	args := make([]any, len(values))
	for i, v := range values {
		placeholders[i] = d.Placeholder(i + 1)
		args[i] = v
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.TableName(c.params.Database, table),
		columnList(d, columns),
		strings.Join(placeholders, ", "),
	)

	return opError("InsertRow", c.exec(ctx, d, query, args...))
}

// match is a row found by search. matched[i] reports whether the text of
// column i equals the search term, as compared by the database.
type match struct {
	record  Record
	matched []bool
}

// column returns the first non-key column holding the term. The key column is
// returned only when it holds the term itself, nil when no column does.
func (m *match) column(columns []*Column) *Column {
	for i := 1; i < len(columns) && i < len(m.matched); i++ {
		if m.matched[i] {
			return columns[i]
		}
	}
	if len(m.matched) > 0 && m.matched[0] {
		return columns[0]
	}
	return nil
}

// search selects the first row holding term in any column together with one
// match flag per column. Every placeholder is bound to term.
func (c *Connection) search(ctx context.Context, d Driver, table string, columns []*Column, term string) (*match, error) {
	casts := make([]string, len(columns))
	flags := make([]string, len(columns))
	args := make([]any, 0, len(columns)+1)
	for i, col := range columns {
		casts[i] = d.TextCast(d.Quote(col.Name))
		flags[i] = fmt.Sprintf("CASE WHEN %s = %s THEN 1 ELSE 0 END", d.Placeholder(i+1), casts[i])
		args = append(args, term)
	}
	args = append(args, term)

	query := fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s IN (%s)",
		columnList(d, columns),
		strings.Join(flags, ", "),
		d.TableName(c.params.Database, table),
		d.Placeholder(len(columns)+1),
		strings.Join(casts, ", "),
	)

	stream, err := c.query(ctx, d, query, args...)
	if err != nil {
		return nil, opError("SearchRow", err)
	}
	defer stream.Close()

	if !stream.HasNext() {
		return nil, ErrNotFound
	}

	row, err := stream.Next()
	if err != nil {
		return nil, opError("SearchRow", err)
	}
	if row == nil {
		return nil, ErrNotFound
	}

	values, flagValues := row, Row(nil)
	if len(row) > len(columns) {
		values, flagValues = row[:len(columns)], row[len(columns):]
	}

	m := &match{
		record:  newRecord(columnNames(columns), values),
		matched: make([]bool, len(flagValues)),
	}
	for i, v := range flagValues {
		m.matched[i] = TextOf(v) == "1"
	}

	return m, nil
}

func (c *Connection) query(ctx context.Context, d Driver, query string, args ...any) (ResultStream, error) {
	c.log.Debug("executing query", "query", query, "args", len(args))
	return d.Query(ctx, query, args...)
}

func (c *Connection) exec(ctx context.Context, d Driver, query string, args ...any) error {
	start := time.Now()
	affected, err := d.Exec(ctx, query, args...)
	if err != nil {
		c.log.Debug("statement failed", "query", query, "error", err)
		return err
	}

	c.log.Debug("statement executed", "query", query, "args", len(args), "rows_affected", affected, "took", time.Since(start))
	return nil
}

// TextOf returns the text form of a value as returned by a driver.
func TextOf(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.DateTime)
	default:
		return fmt.Sprint(v)
	}
}

func columnList(d Dialect, columns []*Column) string {
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = d.Quote(col.Name)
	}
	return strings.Join(quoted, ", ")
}

func columnNames(columns []*Column) Header {
	header := make(Header, len(columns))
	for i, col := range columns {
		header[i] = col.Name
	}
	return header
}

func validateIdentifier(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidIdentifier)
	}
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	return nil
}
