package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	m "github.com/golang-migrate/migrate/v4"
	mpg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/streamrewards/streamrewards/database"
)

type Postgres struct {
	db   *sql.DB
	opts *database.StorageOptions
}

func (s *Postgres) Ping(ctx context.Context) (err error) {
	timer := time.NewTicker(time.Second)
	defer timer.Stop()
	for {
		select {
		case <-timer.C:
			if err = s.db.PingContext(ctx); err == nil {
				return
			}
		case <-ctx.Done():
			if err == nil {
				err = ctx.Err()
			}
			return
		}
	}
}

func (s *Postgres) Migrate() error {
	d, err := mpg.WithInstance(s.db, &mpg.Config{})
	if err != nil {
		return err
	}

	mg, err := m.NewWithDatabaseInstance(
		"file://"+s.opts.MigrationPath, "postgres", d,
	)
	if err != nil {
		return err
	}

	return mg.Migrate(uint(s.opts.MigrationVersion))
}

func (s *Postgres) Conn() *sql.DB {
	return s.db
}

func (s *Postgres) Opts() *database.StorageOptions {
	return s.opts
}

func New(opts *database.StorageOptions) database.Storage {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		opts.StorageUser,
		opts.StoragePassword,
		opts.StorageHost,
		opts.StoragePort,
		opts.StorageDbName,
	)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		// only fails on a malformed DSN
		panic(err)
	}
	db.SetMaxIdleConns(opts.StorageMaxIdleConns)
	db.SetMaxOpenConns(opts.StorageMaxOpenConns)
	db.SetConnMaxLifetime(opts.StorageConnMaxLifetime)

	return &Postgres{
		db:   db,
		opts: opts,
	}
}
