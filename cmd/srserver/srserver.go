package main

import (
	"time"

	l "github.com/rs/zerolog/log"

	"github.com/streamrewards/streamrewards/config"
	"github.com/streamrewards/streamrewards/database"
	"github.com/streamrewards/streamrewards/database/postgres"
	"github.com/streamrewards/streamrewards/helix"
	"github.com/streamrewards/streamrewards/repo"
	"github.com/streamrewards/streamrewards/server"
	"github.com/streamrewards/streamrewards/tracker"
)

func main() {
	l := l.With().
		Str("context", "app").
		Logger()

	l.Info().Msg("starting server")

	l.Info().Msg("setting up database connection")
	sto := database.New(postgres.New(&database.StorageOptions{
		StorageHost:     config.DBHost,
		StoragePort:     config.DBPort,
		StorageUser:     config.DBUser,
		StoragePassword: config.DBPass,
		StorageDbName:   config.DBName,

		StorageMaxIdleConns: config.DBMaxIdleConns,
		StorageMaxOpenConns: config.DBMaxOpenConns,
		StorageConnTimeout:  time.Duration(config.DBDialTimeoutSeconds) * time.Second,

		MigrationVersion: config.LastMigrationVersion,
		MigrationPath:    "database/postgres/migrations",
		DebugMode:        config.Debug,
	}))
	store := repo.New(sto.Conn())

	l.Info().Msg("exchanging app credentials")
	hx := helix.New(helix.ClientCreds{
		ClientID:     config.HelixClientID,
		ClientSecret: config.HelixSecret,
	})

	trk := tracker.NewTracker(store, store)
	rec := tracker.NewReconciler(
		hx,
		store,
		config.WebhookServerURL+config.WebhookEndpoint,
		config.WebhookSecret,
	)
	hooks := tracker.NewWebhookHandler(
		[]byte(config.WebhookSecret),
		store, store, trk,
	)

	sv := server.New(&server.ServerOpts{
		Port:            config.APIPort,
		WebhookEndpoint: config.WebhookEndpoint,
		Identity:        server.NewCookieIdentity(hx),
		Users:           store,
		Registry:        store,
		Rewards:         store,
		Tracker:         trk,
		Reconciler:      rec,
		Webhooks:        hooks,
		Directory:       hx,
	})

	l.Info().Msg("starting http server")
	if err := sv.Start(); err != nil {
		l.Fatal().Err(err).Msg("")
	}
}

func init() {
	config.Setup()
}
