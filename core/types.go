package core

type (
	// FormatterOptions provide various options for formatters
	FormatterOptions struct {
		// ChunkStart is the index of the first row passed to the formatter
		ChunkStart int
	}

	// Formatter converts header and rows to bytes
	Formatter interface {
		Format(header Header, rows []Row, opts *FormatterOptions) ([]byte, error)
	}
)

type (
	// Row and Header are attributes of ResultStream iterator
	Row    []any
	Header []string

	// Meta holds metadata
	Meta struct {
		// RowsAffected is set for results of statements that don't return rows
		RowsAffected int64
	}

	// ResultStream is a result from executed query and has a form of an iterator
	ResultStream interface {
		Meta() *Meta
		Header() Header
		Next() (Row, error)
		HasNext() bool
		Close()
	}
)

// Record maps column names to values of a single row.
type Record map[string]any

// Column describes a single table column in schema order.
type Column struct {
	// Name of the column
	Name string
	// Database specific type string (e.g. varchar(255))
	Type string
}

// TableOptions address a table inside a database.
type TableOptions struct {
	Database string
	Table    string
}
