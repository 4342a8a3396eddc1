package test_utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/RichardMcSorley/breather/internal/config"
	"github.com/RichardMcSorley/breather/internal/database"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	dbName     = "breather"
	dbUser     = "test_breather"
	dbPassword = "test_breather"
	dbSchema   = "breather"
)

func preparePostgresContainer(ctx context.Context) (*postgres.PostgresContainer, error) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %w", err)
	}

	pgContainer, err := postgres.Run(
		ctx, "postgres:18.1-alpine",
		postgres.WithInitScripts(filepath.Join(projectRoot, "dev", "init.sql")),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Errorf("failed to start container: %s", err)
		return nil, err
	}
	return pgContainer, nil
}

// TestWithDB starts a Postgres container, applies all migrations and returns a pool connected to it
// together with a cleanup function terminating the container.
func TestWithDB() (*pgxpool.Pool, func()) {
	ctx := context.Background()

	container, err := preparePostgresContainer(ctx)
	if err != nil {
		log.Errorf("Failed to start postgres container: %v", err)
		os.Exit(1)
	}

	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("Failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		log.Fatalf("Failed to get container port: %v", err)
	}
	log.Infof("Postgres container started at %s:%d", host, port.Int())

	cfg := config.Database{
		Host:   host,
		Port:   port.Int(),
		User:   dbUser,
		Pass:   dbPassword,
		Name:   dbName,
		Schema: dbSchema,
	}

	if err := database.Migrate(cfg); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	pool, err := database.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open database connection: %v", err)
	}

	return pool, func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			log.Errorf("Failed to terminate postgres container: %v", err)
		}
	}
}

// TruncateAll removes the rows of every application table, keeping the schema.
func TruncateAll(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `TRUNCATE bill_payment, bill, transaction, mileage_entry, user_settings, users RESTART IDENTITY CASCADE`)
	return err
}

// CreateUser inserts a user row for repository tests and returns its id.
func CreateUser(ctx context.Context, pool *pgxpool.Pool, username string) (int, error) {
	var id int
	err := pool.QueryRow(ctx,
		`INSERT INTO users (uid, username, display_name) VALUES ($1, $2, $2) RETURNING id`,
		"uid-"+username, username,
	).Scan(&id)
	return id, err
}

// findProjectRoot walks up from the working directory to the directory holding go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find project root")
		}
		dir = parent
	}
}
