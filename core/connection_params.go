package core

import (
	"fmt"
	"time"
)

type ConnectionID string

type ConnectionParams struct {
	ID   ConnectionID
	Name string
	// Type is the adapter alias (mysql, postgres, sqlite, ...)
	Type string
	// URL is the driver specific connection string
	URL string
	// Database is the database the connection administers
	Database string
	// ConnectTimeout bounds the initial ping, zero means no timeout
	ConnectTimeout time.Duration
}

// Expand returns a copy of the original parameters with expanded fields
func (p *ConnectionParams) Expand() *ConnectionParams {
	return &ConnectionParams{
		ID:             ConnectionID(expandOrDefault(string(p.ID))),
		Name:           expandOrDefault(p.Name),
		Type:           expandOrDefault(p.Type),
		URL:            expandOrDefault(p.URL),
		Database:       expandOrDefault(p.Database),
		ConnectTimeout: p.ConnectTimeout,
	}
}

// String never includes the URL, it usually carries credentials.
func (p *ConnectionParams) String() string {
	return fmt.Sprintf("%s (type: %s, database: %s)", p.Name, p.Type, p.Database)
}
