//	@title			The Coda Bean storefront API
//	@version		1.0
//	@description	Backend-for-frontend for The Coda Bean café: sessions, cart, checkout, bookings and the admin catalog editor.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/codabean/storefront/internal/api"
	"github.com/codabean/storefront/internal/api/middleware"
	"github.com/codabean/storefront/internal/core/ports"
	"github.com/codabean/storefront/internal/core/service"
	"github.com/codabean/storefront/internal/infrastructure/backend"
	"github.com/codabean/storefront/internal/infrastructure/config"
	"github.com/codabean/storefront/internal/infrastructure/db/memory"
	mongodb "github.com/codabean/storefront/internal/infrastructure/db/mongo"
	redisdb "github.com/codabean/storefront/internal/infrastructure/db/redis"
	"github.com/codabean/storefront/internal/infrastructure/messaging/kafka"
	"github.com/codabean/storefront/internal/infrastructure/queue"
	"github.com/codabean/storefront/pkg/logger"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	store, err := mongodb.Open(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	}, log)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close(context.Background()) }()

	rdb, durable, err := redisdb.Open(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Prefix:   cfg.Redis.Prefix,
		TTL:      cfg.Session.DurableTTL,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	scoped := memory.NewTier(cfg.Session.IdleTTL)

	// --- Café backend ---
	client, err := backend.New(backend.Config{BaseURL: cfg.Backend.BaseURL, Timeout: cfg.Backend.Timeout})
	if err != nil {
		return err
	}

	// --- Order notifications ---
	var publisher ports.OrderPublisher = kafka.NewLogPublisher(log)
	if brokers := cfg.Kafka.BrokerList(); len(brokers) > 0 {
		kp := kafka.NewPublisher(brokers, cfg.Kafka.OrdersTopic)
		defer kp.Close()
		publisher = kp
		log.Info().Strs("brokers", brokers).Str("topic", cfg.Kafka.OrdersTopic).Msg("publishing orders to kafka")
	}
	dispatcher := queue.NewDispatcher(cfg.Kafka.NotifyWorkers, publisher, log)
	dispatcher.Start(ctx)

	// --- Services ---
	validate := service.NewValidator()
	resolver := service.NewRoleResolver(cfg.CredentialJWTSecret)

	registry := service.NewVisitorRegistry(service.RegistryDeps{
		Durable:  durable,
		Scoped:   scoped,
		Resolver: resolver,
		Products: service.NewProductCatalog(client),
		Events:   service.NewEventCatalog(client),
	}, log)
	go registry.RunSweeper(ctx, sweepInterval, cfg.Session.IdleTTL)
	go purgeLoop(ctx, scoped, log)

	e := api.NewRouter(api.Deps{
		Log:      log,
		Registry: registry,
		Cookies:  middleware.CookieOptions{Secure: cfg.Session.CookieSecure, MaxAge: cfg.Session.DurableTTL},
		Auth:     service.NewAuthService(client, resolver, validate, log),
		Catalog:  service.NewCatalogService(client, client),
		Checkout: service.NewCheckoutService(store.Orders, dispatcher, validate, log),
		Bookings: service.NewBookingService(client, validate, log),
		Mongo:    store.DB,
		Redis:    rdb,
		Backend:  client,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("storefront listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// purgeLoop evicts idle entries from the session-scoped tier.
func purgeLoop(ctx context.Context, tier *memory.Tier, log zerolog.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := tier.Purge(); n > 0 {
				log.Debug().Int("purged", n).Int("remaining", tier.Len()).Msg("session tier purged")
			}
		}
	}
}
