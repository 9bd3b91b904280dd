package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shopmanagement/portal/internal/core/ports"
	"github.com/shopmanagement/portal/internal/devbackend"
	mongodb "github.com/shopmanagement/portal/internal/infrastructure/db/mongo"
	"github.com/shopmanagement/portal/internal/pkg/config"
	"github.com/shopmanagement/portal/pkg/logger"
)

// NewDevBackendCommand creates the command that runs the development backend
func NewDevBackendCommand(conf func() *config.Config) *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "devbackend",
		Short: "Run a local stand-in for the REST backend",
		Long: `Run a local stand-in for the REST backend. Accounts live in memory,
or in MongoDB when MONGO_URI is set. OTP codes are written to the log.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDevBackend(cmd.Context(), conf(), seed)
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", true, "create one demo account per role")
	return cmd
}

func runDevBackend(ctx context.Context, cfg *config.Config, seed bool) error {
	log := logger.Component("devbackend")

	var accounts ports.AccountRepository = devbackend.NewMemoryAccounts()
	if cfg.Mongo.URI != "" {
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "shopportal-devbackend",
		})
		if err != nil {
			return fmt.Errorf("connect mongo: %w", err)
		}
		defer func() { _ = mongodb.Disconnect(client, shutdownTimeout) }()

		repo := mongodb.NewAccountRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("account indexes: %w", err)
		}
		accounts = repo
	}

	svc := devbackend.NewService(accounts, cfg.Dev.JWTSecret, devbackend.Options{Log: log})
	if seed {
		if err := devbackend.SeedDemo(ctx, svc); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		log.Info().Str("password", devbackend.DemoPassword).Msg("demo accounts ready")
	}

	e := devbackend.NewRouter(svc, log)
	go func() {
		log.Info().Str("port", cfg.Dev.Port).Msg("dev backend listening")
		if err := e.Start(":" + cfg.Dev.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("dev backend stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
