package database

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"time"

	m "github.com/golang-migrate/migrate/v4"
	"github.com/streamrewards/streamrewards/config"
	l "github.com/rs/zerolog/log"
)

// Storage is a connected database with pending migrations. Drivers live in
// subpackages (see database/postgres) and are applied with New.
type Storage interface {
	Ping(ctx context.Context) error
	Migrate() error
	Conn() *sql.DB
	Opts() *StorageOptions
}

type StorageOptions struct {
	StorageHost     string
	StoragePort     string
	StorageUser     string
	StoragePassword string
	StorageDbName   string

	StorageMaxIdleConns    int
	StorageMaxOpenConns    int
	StorageConnMaxLifetime time.Duration
	StorageConnTimeout     time.Duration

	MigrationVersion int
	MigrationPath    string
	DebugMode        bool
}

// New waits until the given storage answers a ping and applies pending
// migrations, panicking if either fails. It returns the same storage so new
// drivers can be wired as database.New(postgres.New(opts)).
func New(sto Storage) Storage {
	l := l.With().
		Str("context", "database").
		Logger()
	opts := sto.Opts()

	l.Info().
		Str("host", opts.StorageHost).
		Str("port", opts.StoragePort).
		Str("db", opts.StorageDbName).
		Str("user", opts.StorageUser).
		Msg("=> => pinging database")
	ctx, cancel := context.WithTimeout(
		context.Background(),
		opts.StorageConnTimeout,
	)
	defer cancel()
	if err := sto.Ping(ctx); err != nil {
		l.Panic().Err(err).Msg("")
	}
	l.Info().Msg("=> => connection successful")

	if config.SkipMigrations {
		l.Info().Msg("=> => skipping migrations")
		return sto
	}

	l.Info().
		Int("mig_version", opts.MigrationVersion).
		Str("mig_path", opts.MigrationPath).
		Msg("=> => attempting to apply migrations")
	if err := sto.Migrate(); err != nil {
		if errors.Is(err, m.ErrNoChange) || errors.Is(err, os.ErrNotExist) {
			l.Info().Msg("=> => => no changes were made")
		} else {
			l.Panic().Err(err).Msg("")
		}
	} else {
		l.Info().Msg("=> => => migration success")
	}

	return sto
}
