package testhelpers

import (
	"context"

	"github.com/sqladmin/sqladmin/core"
	tc "github.com/testcontainers/testcontainers-go"
	tcpsql "github.com/testcontainers/testcontainers-go/modules/postgres"
)

type PostgresContainer struct {
	*tcpsql.PostgresContainer
	ConnURL string
	Driver  *core.Connection
}

// NewPostgresContainer creates a new postgres container with
// a connection to its seeded database. Unset params are filled in.
func NewPostgresContainer(ctx context.Context, params *core.ConnectionParams) (*PostgresContainer, error) {
	seedFile, err := GetTestDataFile("postgres_seed.sql")
	if err != nil {
		return nil, err
	}
	defer seedFile.Close()

	ctr, err := tcpsql.Run(
		ctx,
		"postgres:16-alpine",
		tcpsql.BasicWaitStrategies(),
		tc.CustomizeRequest(tc.GenericContainerRequest{
			ProviderType: GetContainerProvider(),
		}),
		tcpsql.WithInitScripts(seedFile.Name()),
		tcpsql.WithDatabase(seedDatabase),
	)
	if err != nil {
		return nil, err
	}
	connURL, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, err
	}

	conn, err := connect(ctx, params, "postgres", connURL)
	if err != nil {
		return nil, err
	}

	return &PostgresContainer{
		PostgresContainer: ctr,
		ConnURL:           connURL,
		Driver:            conn,
	}, nil
}

// NewDriver opens another connection to the container. Unset params default
// to the container's URL and seed database.
func (p *PostgresContainer) NewDriver(ctx context.Context, params *core.ConnectionParams) (*core.Connection, error) {
	return connect(ctx, params, "postgres", p.ConnURL)
}
