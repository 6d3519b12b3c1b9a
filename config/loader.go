package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// sqliteDatabase is the schema name of the opened sqlite file.
const sqliteDatabase = "main"

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	// an unattached sqlite database can't be used, so sqlite defaults to
	// the opened file
	if isSQLite(cfg.Database.Type) && os.Getenv("SQLADMIN_DB_NAME") == "" {
		cfg.Database.Name = sqliteDatabase
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// loadStruct recursively populates struct fields from environment variables.
func loadStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		// Skip unexported fields
		if !fieldVal.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			if err := loadStruct(fieldVal); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		envAlt := field.Tag.Get("envAlt")
		defaultVal := field.Tag.Get("default")
		required := field.Tag.Get("required") == "true"

		if envName == "" {
			continue
		}

		// Try primary env var, then alternate
		value := os.Getenv(envName)
		if value == "" && envAlt != "" {
			value = os.Getenv(envAlt)
		}

		if value == "" {
			if required {
				return fmt.Errorf("required environment variable %s is not set", envName)
			}
			value = defaultVal
		}

		if value == "" {
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}
			field.Set(reflect.ValueOf(d))
		} else {
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer: %w", err)
			}
			field.SetInt(i)
		}

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if c.Database.Type == "" {
		errs = append(errs, "SQLADMIN_DB_TYPE is required")
	}
	if strings.TrimSpace(c.Database.Name) == "" {
		errs = append(errs, "SQLADMIN_DB_NAME must not be blank")
	}
	if c.Database.URL == "" {
		if c.Database.Port <= 0 || c.Database.Port > 65535 {
			errs = append(errs, fmt.Sprintf("SQLADMIN_DB_PORT (%d) must be 1-65535", c.Database.Port))
		}
		if _, err := c.Database.DSN(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if c.Database.ConnectTimeout < 0 {
		errs = append(errs, "SQLADMIN_DB_CONNECT_TIMEOUT must be non-negative")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("SQLADMIN_LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("SQLADMIN_LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	validOutputs := map[string]bool{"table": true, "json": true, "csv": true}
	if !validOutputs[strings.ToLower(c.Shell.OutputFormat)] {
		errs = append(errs, fmt.Sprintf("SQLADMIN_OUTPUT_FORMAT (%q) must be one of: table, json, csv", c.Shell.OutputFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// The password and the connection URL are masked.
func (c *Config) String() string {
	url := ""
	if c.Database.URL != "" {
		url = "[MASKED]"
	}

	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Database: {Type: %q, URL: %q, Host: %q, Port: %d, User: %q, Password: [MASKED], Name: %q, ConnectTimeout: %s}, ",
		c.Database.Type, url, c.Database.Host, c.Database.Port, c.Database.User, c.Database.Name, c.Database.ConnectTimeout))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q, File: %q}, ",
		c.Logging.Level, c.Logging.Format, c.Logging.File))
	b.WriteString(fmt.Sprintf("Shell: {OutputFormat: %q, ClearScreen: %v}",
		c.Shell.OutputFormat, c.Shell.ClearScreen))
	b.WriteString("}")
	return b.String()
}

func isSQLite(typ string) bool {
	switch strings.ToLower(typ) {
	case "sqlite", "sqlite3":
		return true
	}
	return false
}
