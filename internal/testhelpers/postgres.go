//go:build integration

// Package testhelpers starts a migrated PostgreSQL for repository integration tests.
package testhelpers

import (
	"context"
	"testing"
	"time"

	"agromap-backend/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// SetupPostgres runs a throwaway PostgreSQL container with every migration applied.
// The container is terminated when the test ends.
func SetupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("agromap_test"),
		postgres.WithUsername("agromap"),
		postgres.WithPassword("agromap"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := database.Migrate(ctx, pool); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return pool
}

// ===== Fixtures =====

func InsertUser(t *testing.T, pool *pgxpool.Pool, username, role string) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := pool.QueryRow(context.Background(), `
		INSERT INTO users (name, username, password_hash, role)
		VALUES ($1, $1, 'x', $2) RETURNING id`, username, role).Scan(&id)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return id
}

func InsertMarket(t *testing.T, pool *pgxpool.Pool, managerID uuid.UUID, images ...string) uuid.UUID {
	t.Helper()
	if images == nil {
		images = []string{}
	}
	var id uuid.UUID
	err := pool.QueryRow(context.Background(), `
		INSERT INTO markets (name, address, province, municipality, images, manager_id)
		VALUES ('Mercado', 'Calle 1', 'Villa Clara', 'Santa Clara', $1, $2) RETURNING id`,
		images, managerID).Scan(&id)
	if err != nil {
		t.Fatalf("insert market: %v", err)
	}
	return id
}

func InsertCategory(t *testing.T, pool *pgxpool.Pool, name string) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		`INSERT INTO categories (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	if err != nil {
		t.Fatalf("insert category: %v", err)
	}
	return id
}

func InsertProduct(t *testing.T, pool *pgxpool.Pool, marketID, categoryID uuid.UUID, images ...string) uuid.UUID {
	t.Helper()
	if images == nil {
		images = []string{}
	}
	var id uuid.UUID
	err := pool.QueryRow(context.Background(), `
		INSERT INTO products (name, images, category_id, market_id)
		VALUES ('Tomate', $1, $2, $3) RETURNING id`,
		images, categoryID, marketID).Scan(&id)
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}
	return id
}

// LedgerMismatches counts comments whose likes counter disagrees with comment_likes
func LedgerMismatches(t *testing.T, pool *pgxpool.Pool) int {
	t.Helper()
	var n int
	err := pool.QueryRow(context.Background(), `
		SELECT COUNT(*) FROM comments c
		WHERE c.likes <> (SELECT COUNT(*) FROM comment_likes l WHERE l.comment_id = c.id)`).Scan(&n)
	if err != nil {
		t.Fatalf("check ledger: %v", err)
	}
	return n
}

func Count(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()
	var n int
	if err := pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
