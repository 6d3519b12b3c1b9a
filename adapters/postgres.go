package adapters

import (
	"database/sql"
	"fmt"
	nurl "net/url"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"

	"github.com/sqladmin/sqladmin/core"
	"github.com/sqladmin/sqladmin/core/builders"
)

// Register client
func init() {
	_ = register(&Postgres{driverName: "postgres"}, "postgres", "postgresql", "pg")
	_ = register(&Postgres{driverName: "pgx"}, "pgx")
}

var _ core.Adapter = (*Postgres)(nil)

// Postgres connects through lib/pq ("postgres") or pgx ("pgx"). Both speak
// the same dialect.
type Postgres struct {
	driverName string
}

func (p *Postgres) Connect(url string) (core.Driver, error) {
	u, err := nurl.Parse(url)
	if err != nil {
		return nil, fmt.Errorf("could not parse db connection string: %w: ", err)
	}

	db, err := sql.Open(p.driverName, u.String())
	if err != nil {
		return nil, fmt.Errorf("unable to connect to postgres database: %w", err)
	}

	return &postgresDriver{
		c: builders.NewClient(db),
	}, nil
}
