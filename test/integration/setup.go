package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"rhea-commerce/internal/config"
	"rhea-commerce/internal/database"
	"rhea-commerce/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	Config    config.DatabaseConfig
}

// SetupTestDB starts a PostgreSQL container, applies the schema migrations
// and returns a connection pool against it.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	logger := zerolog.Nop()

	migrations := config.MigrationsConfig{Path: "../../migrations"}
	if err := database.RunMigrations(dbConfig, migrations, logger); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	pool, err := database.NewPool(ctx, dbConfig, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		Config:    dbConfig,
	}
}

// SeedCatalogue inserts a category and a handful of products for testing.
func SeedCatalogue(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	now := time.Now()

	_, err := pool.Exec(ctx,
		`INSERT INTO categories (id, name, slug, sort_order, created_at) VALUES ($1, $2, $3, $4, $5)`,
		"CAT-1", "Türk Kahvesi", "turk-kahvesi", 1, now,
	)
	if err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	sale := 189.0
	products := []model.Product{
		{ID: "P001", Name: "Rhea Özel Harman", Slug: "rhea-ozel-harman", Description: "Özel harman", Price: 185.5, SKU: "RHE-OZL-250", Stock: 40, IsActive: true, IsFeatured: true},
		{ID: "P002", Name: "Damla Sakızlı Türk Kahvesi", Slug: "damla-sakizli-turk-kahvesi", Description: "Damla sakızlı", Price: 210, SalePrice: &sale, SKU: "RHE-DSK-250", Stock: 25, IsActive: true},
		{ID: "P003", Name: "Dibek Kahvesi", Slug: "dibek-kahvesi", Description: "Dibek taşında dövülmüş", Price: 195, SKU: "RHE-DBK-250", Stock: 3, IsActive: true},
		{ID: "P004", Name: "Eski Harman", Slug: "eski-harman", Description: "Satıştan kaldırıldı", Price: 150, SKU: "RHE-ESK-250", Stock: 10, IsActive: false},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx,
			`INSERT INTO products (
				id, name, slug, description, price, sale_price, sku, stock,
				flavor_notes, category_id, is_active, is_featured, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			p.ID, p.Name, p.Slug, p.Description, p.Price, p.SalePrice, p.SKU,
			p.Stock, []string{}, "CAT-1", p.IsActive, p.IsFeatured, now, now,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.ID, err)
		}
	}
}

// CleanupDB removes all data from the test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "addresses", "coupons", "products", "categories", "users"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
