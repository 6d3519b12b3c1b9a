package adapters

import (
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/sqladmin/sqladmin/core"
	"github.com/sqladmin/sqladmin/core/builders"
)

// Register client
func init() {
	_ = register(&MySQL{}, "mysql", "mariadb")
}

var _ core.Adapter = (*MySQL)(nil)

type MySQL struct{}

// Connect expects a go-sql-driver DSN, e.g. "user:pass@tcp(127.0.0.1:3306)/".
func (m *MySQL) Connect(url string) (core.Driver, error) {
	cfg, err := mysql.ParseDSN(url)
	if err != nil {
		return nil, fmt.Errorf("could not parse db connection string: %w", err)
	}
	// DATETIME and friends are returned as time.Time
	cfg.ParseTime = true

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to mysql database: %w", err)
	}

	return &mySQLDriver{
		c: builders.NewClient(sql.OpenDB(connector)),
	}, nil
}
