package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"postcard/app/auth"
	"postcard/app/cache"
	"postcard/app/config"
	"postcard/app/repositories"
	"postcard/app/repositories/postgres"
	"postcard/app/routes"
)

const cliVersion = "1.0.0"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	root := &cobra.Command{
		Use:   "postcard",
		Short: "postcard is a small social blogging server",
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve()
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("postcard version %s\n", cliVersion)
			},
		},
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	pages, err := cache.NewPageCache(cfg.CacheTTL)
	if err != nil {
		return fmt.Errorf("creating page cache: %w", err)
	}

	deps, cleanup, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	sessions := auth.NewSessionManager([]byte(cfg.SessionSecret), deps.Users)
	router := routes.Setup(deps, pages, sessions)

	log.Info().
		Str("addr", cfg.Addr).
		Str("driver", cfg.Driver).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("server starting")
	return routes.StartServer(cfg.Addr, router)
}

// openStorage opens the configured storage backend and returns the
// repository set plus a close function
func openStorage(cfg *config.Config) (routes.Deps, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		store, err := postgres.Connect(context.Background(), cfg.DatabaseDSN)
		if err != nil {
			return routes.Deps{}, nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		return routes.Deps{
			Posts:    store.Posts(),
			Comments: store.Comments(),
			Groups:   store.Groups(),
			Follows:  store.Follows(),
			Users:    store.Users(),
			Media:    store.Media(),
		}, store.Close, nil
	default:
		db, err := badger.Open(badger.DefaultOptions(cfg.DBPath))
		if err != nil {
			return routes.Deps{}, nil, fmt.Errorf("opening badger database: %w", err)
		}
		return routes.Deps{
			Posts:    repositories.NewBadgerPostRepository(db),
			Comments: repositories.NewBadgerCommentRepository(db),
			Groups:   repositories.NewBadgerGroupRepository(db),
			Follows:  repositories.NewBadgerFollowRepository(db),
			Users:    repositories.NewBadgerUserRepository(db),
			Media:    repositories.NewBadgerMediaRepository(db),
		}, func() { db.Close() }, nil
	}
}
