package testhelpers

import (
	"context"

	"github.com/sqladmin/sqladmin/core"
	tc "github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
)

type MySQLContainer struct {
	*tcmysql.MySQLContainer
	ConnURL string
	Driver  *core.Connection
}

// NewMySQLContainer creates a new MySQL container with
// a connection to its seeded database. Unset params are filled in.
func NewMySQLContainer(ctx context.Context, params *core.ConnectionParams) (*MySQLContainer, error) {
	seedFile, err := GetTestDataFile("mysql_seed.sql")
	if err != nil {
		return nil, err
	}
	defer seedFile.Close()

	ctr, err := tcmysql.Run(
		ctx,
		"mysql:9.2.0",
		tc.CustomizeRequest(tc.GenericContainerRequest{
			ProviderType: GetContainerProvider(),
		}),
		tcmysql.WithDatabase(seedDatabase),
		tcmysql.WithPassword("password"),
		tcmysql.WithUsername("root"),
		tcmysql.WithScripts(seedFile.Name()),
	)
	if err != nil {
		return nil, err
	}

	connURL, err := ctr.ConnectionString(ctx, "tls=skip-verify")
	if err != nil {
		return nil, err
	}

	conn, err := connect(ctx, params, "mysql", connURL)
	if err != nil {
		return nil, err
	}

	return &MySQLContainer{
		MySQLContainer: ctr,
		ConnURL:        connURL,
		Driver:         conn,
	}, nil
}

// NewDriver opens another connection to the container. Unset params default
// to the container's URL and seed database.
func (p *MySQLContainer) NewDriver(ctx context.Context, params *core.ConnectionParams) (*core.Connection, error) {
	return connect(ctx, params, "mysql", p.ConnURL)
}
