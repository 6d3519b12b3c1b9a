// Package config loads the sqladmin configuration from environment variables.
// Every value has a default, so the shell starts without any setup against a
// local MySQL server.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	Logging  LoggingConfig
	Shell    ShellConfig
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// Type is the adapter alias (mysql, postgres, pgx, sqlite, sqlserver, ...)
	Type string `env:"SQLADMIN_DB_TYPE" default:"mysql"`

	// URL is the driver specific connection string. When set, it wins over
	// the host/port/user/password fields below.
	URL string `env:"SQLADMIN_DB_URL" envAlt:"DATABASE_URL"`

	Host     string `env:"SQLADMIN_DB_HOST" default:"127.0.0.1"`
	Port     int    `env:"SQLADMIN_DB_PORT" default:"3306"`
	User     string `env:"SQLADMIN_DB_USER" default:"testuser"`
	Password string `env:"SQLADMIN_DB_PASSWORD" default:"password"`

	// Name is the database the shell administers (default: SoftwareIndustry)
	Name string `env:"SQLADMIN_DB_NAME" default:"SoftwareIndustry"`

	// ConnectTimeout bounds the initial connection (default: 10s)
	ConnectTimeout time.Duration `env:"SQLADMIN_DB_CONNECT_TIMEOUT" default:"10s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: warn)
	Level string `env:"SQLADMIN_LOG_LEVEL" default:"warn"`

	// Format is the log output format: text, json (default: text)
	Format string `env:"SQLADMIN_LOG_FORMAT" default:"text"`

	// File receives the logs instead of stderr when set
	File string `env:"SQLADMIN_LOG_FILE"`
}

// ShellConfig holds interactive shell settings.
type ShellConfig struct {
	// OutputFormat renders table rows: table, json, csv (default: table)
	OutputFormat string `env:"SQLADMIN_OUTPUT_FORMAT" default:"table"`

	// ClearScreen clears the terminal before every menu
	ClearScreen bool `env:"SQLADMIN_CLEAR_SCREEN" default:"false"`
}

// DSN returns the connection string for the configured database type.
// An explicit URL is returned as is. Otherwise a MySQL DSN is built from the
// individual fields; the DSN doesn't select a database since the database
// may not exist yet.
func (d *DatabaseConfig) DSN() (string, error) {
	if d.URL != "" {
		return d.URL, nil
	}

	switch strings.ToLower(d.Type) {
	case "mysql", "mariadb":
	default:
		return "", fmt.Errorf("SQLADMIN_DB_URL is required for database type %q", d.Type)
	}

	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
	cfg.Timeout = d.ConnectTimeout

	return cfg.FormatDSN(), nil
}
