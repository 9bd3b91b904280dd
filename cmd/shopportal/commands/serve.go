package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopmanagement/portal/internal/api"
	"github.com/shopmanagement/portal/internal/app"
	"github.com/shopmanagement/portal/internal/core/ports"
	mongodb "github.com/shopmanagement/portal/internal/infrastructure/db/mongo"
	redisdb "github.com/shopmanagement/portal/internal/infrastructure/db/redis"
	"github.com/shopmanagement/portal/internal/infrastructure/queue"
	"github.com/shopmanagement/portal/internal/infrastructure/storage"
	"github.com/shopmanagement/portal/internal/pkg/config"
	"github.com/shopmanagement/portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the portal server command
func NewServeCommand(conf func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the portal server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), conf())
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.Component("serve")

	var (
		sessions ports.StorageProvider = storage.NewMemoryProvider(cfg.Session.TTL)
		cooldown ports.Cooldown
		rdb      *goredis.Client
	)
	if cfg.Redis.Addr != "" {
		var err error
		rdb, err = redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rdb.Close()
		sessions = redisdb.NewStorageProvider(rdb, cfg.Session.TTL)
		cooldown = redisdb.NewCooldown(rdb, cfg.Session.OTPCooldown)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("sessions stored in redis")
	}

	var (
		db     *mongo.Database
		events ports.SessionEventRecorder
	)
	if cfg.Mongo.URI != "" {
		client, database, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "shopportal",
		})
		if err != nil {
			return fmt.Errorf("connect mongo: %w", err)
		}
		defer func() {
			if err := mongodb.Disconnect(client, shutdownTimeout); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect failed")
			}
		}()
		db = database

		if cfg.AuditWorkers > 0 {
			d := queue.NewDispatcher(cfg.AuditWorkers, mongodb.NewSessionEventRepository(db), logger.Component("audit"))
			d.Start(ctx)
			defer d.Close()
			events = d
		}
	}

	a := app.New(app.Options{
		Base:           newBackendClient(cfg),
		Headers:        clientHeaders(cfg),
		Events:         events,
		Cooldown:       cooldown,
		CooldownWindow: cfg.Session.OTPCooldown,
		Log:            logger.Component("session"),
	})

	e := api.NewRouter(api.RouterConfig{
		App:          a,
		Sessions:     sessions,
		CookieSecure: cfg.Session.CookieSecure,
		SessionTTL:   cfg.Session.TTL,
		Mongo:        db,
		Redis:        rdb,
		Log:          logger.Component("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.API.BaseURL).Msg("portal listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("portal server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
