package database

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/uptrace/bun/driver/pgdriver"
)

//go:embed migrations/*.sql
var migrations embed.FS

// NewPostgres opens a connection pool to the managed Postgres instance and
// applies pending schema migrations.
func NewPostgres(url string) (*sql.DB, error) {
	if url == "" {
		return nil, fmt.Errorf("database url is empty")
	}

	db := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(url)))
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging db: %w", err)
	}

	source := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrations,
		Root:       "migrations",
	}

	n, err := migrate.Exec(db, "postgres", source, migrate.Up)
	if err != nil {
		return nil, fmt.Errorf("applying migrations: %w", err)
	}
	slog.Info("Applied db migrations", "count", n)

	return db, nil
}
