package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/jithpillai/zstore/cart/pkg/state"
	"github.com/jithpillai/zstore/internal/repository"
)

type testFixture struct {
	pool        *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	queries     *repository.Queries
	service     CartService
}

func setup(t *testing.T, c context.Context) testFixture {
	t.Helper()

	pgContainer, err := postgres.Run(
		c,
		"postgres:16.6-alpine3.21",
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithDatabase("postgres"),
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			filepath.Join("..", "..", "..", "db", "migrations", "20250812101830_create_table_products.up.sql"),
			filepath.Join("seed", "products.seed.sql"),
		),
	)
	if err != nil {
		t.Fatalf("failed running postgres container with error: %s", err)
	}

	pgConnStr, err := pgContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting postgres connection string with error: %s", err)
	}

	pgConfig, err := pgxpool.ParseConfig(pgConnStr)
	if err != nil {
		t.Fatalf("failed parsing pgxpool config with error: %s", err)
	}

	pool, err := pgxpool.NewWithConfig(c, pgConfig)
	if err != nil {
		t.Fatalf("failed creating postgres pool with error: %s", err)
	}

	if err = pool.Ping(c); err != nil {
		t.Fatalf("failed ping postgres pool with error: %s", err)
	}

	queries := repository.New(pool)
	cartService := NewCartService(queries)
	return testFixture{
		pool:        pool,
		pgContainer: pgContainer,
		queries:     queries,
		service:     cartService,
	}
}

func teardown(t *testing.T, fixture testFixture) {
	t.Helper()

	fixture.pool.Close()
	if err := testcontainers.TerminateContainer(fixture.pgContainer); err != nil {
		t.Fatalf("failed to terminate container: %s", err)
	}
}

// memoryStore keeps the cart in memory so service tests can assert what
// would have been written to the cookie.
type memoryStore struct {
	cart    state.Cart
	saved   int
	cleared int
}

func (m *memoryStore) Load(context.Context) (state.Cart, error) {
	return m.cart, nil
}

func (m *memoryStore) Save(_ context.Context, cart state.Cart) error {
	m.cart = cart
	m.saved++
	return nil
}

func (m *memoryStore) Clear(context.Context) error {
	m.cart = state.Cart{}
	m.cleared++
	return nil
}
