package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Julnar1/store-sentry-admin-dashboard/catalog"
	"github.com/Julnar1/store-sentry-admin-dashboard/config"
	"github.com/Julnar1/store-sentry-admin-dashboard/dashboard"
	"github.com/Julnar1/store-sentry-admin-dashboard/guard"
	"github.com/Julnar1/store-sentry-admin-dashboard/logging"
	"github.com/Julnar1/store-sentry-admin-dashboard/mirror"
	"github.com/Julnar1/store-sentry-admin-dashboard/policy"
	"github.com/Julnar1/store-sentry-admin-dashboard/session"
)

func main() {
	if err := run(); err != nil {
		panic(err)
	}
}

func run() error {
	if err := config.InitGlobalConfig(); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}

	log, err := logging.New(config.GetConfigWithDefault("LOG_MODE", "production") == "debug")
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Sync()

	api := catalog.New(
		config.GetConfigWithDefault("PLATFORM_API_URL", catalog.DefaultBaseURL),
		15*time.Second,
		log,
	)

	store, err := buildMirrorStore(log)
	if err != nil {
		return err
	}

	key, err := hex.DecodeString(config.GetConfig("MIRROR_CIPHER_KEY"))
	if err != nil {
		return fmt.Errorf("MIRROR_CIPHER_KEY must be hex: %w", err)
	}

	bridge, err := mirror.NewBridge(store, key, mirror.DefaultCookieConfig(), log)
	if err != nil {
		return fmt.Errorf("initializing session mirror: %w", err)
	}

	sessions := session.NewStore(dashboard.NewAuthenticator(api), bridge, log)

	// Startup restoration: a token persisted by a previous run rebuilds
	// the session before the first request. No stored session is the
	// ordinary cold start.
	restoreCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	token, _, err := bridge.Restore(restoreCtx)
	switch {
	case errors.Is(err, mirror.ErrNoStoredSession):
		log.Info("no stored session to restore")
	case err != nil:
		return fmt.Errorf("reading stored session: %w", err)
	default:
		if err := sessions.RestoreFromToken(restoreCtx, token); err != nil {
			return fmt.Errorf("restoring session: %w", err)
		}
	}

	app := fiber.New()
	h := dashboard.NewHandlers(sessions, api, guard.DefaultPaths(), log)
	dashboard.Setup(app, h, policy.Default(), bridge, log)

	addr := config.GetConfigWithDefault("LISTEN_ADDR", ":3000")
	log.Info("store sentry dashboard listening", zap.String("addr", addr))
	return app.Listen(addr)
}

// buildMirrorStore picks the durable mirror backend from config:
// in-process memory by default, postgres or redis when configured.
func buildMirrorStore(log *zap.Logger) (mirror.Store, error) {
	backend := config.GetConfigWithDefault("MIRROR_BACKEND", "memory")
	switch backend {
	case "memory":
		return mirror.NewMemoryStore(), nil
	case "postgres":
		dsn := config.GetConfig("DATABASE_URL")
		if dsn == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres mirror backend")
		}
		pool, err := pgxpool.New(context.Background(), dsn)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		return mirror.NewPostgresStore(pool, config.GetConfigWithDefault("MIRROR_INSTANCE", "local")), nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     config.GetConfigWithDefault("REDIS_ADDR", "localhost:6379"),
			Password: config.GetConfig("REDIS_PASSWORD"),
		})
		return mirror.NewRedisStore(rdb, mirror.DefaultRedisKey), nil
	default:
		return nil, fmt.Errorf("unknown MIRROR_BACKEND %q", backend)
	}
}
