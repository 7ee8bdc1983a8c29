package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"animal-rescue/internal/adapters/auth/introspect"
	"animal-rescue/internal/adapters/auth/jwtverifier"
	mem "animal-rescue/internal/adapters/storage/memory"
	pg "animal-rescue/internal/adapters/storage/postgres"
	"animal-rescue/internal/config"
	"animal-rescue/internal/gateway"
	"animal-rescue/internal/middleware"
	"animal-rescue/internal/platform/logger"
	"animal-rescue/internal/ports/auth"
	"animal-rescue/internal/router"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	verifier, err := buildVerifier(cfg)
	if err != nil {
		return err
	}

	doc, err := loadDocument(cfg.RouteConfigPath)
	if err != nil {
		return err
	}

	// DSN explícito => Postgres obligatorio; sin DSN => in-memory.
	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()

		setupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err = pg.Setup(setupCtx, db, mem.SeedAnimals())
		cancel()
		if err != nil {
			return fmt.Errorf("postgres setup: %w", err)
		}
	}

	var limiter *gateway.Limiter
	if cfg.RateLimitEnabled {
		table, err := gateway.Compile(doc.Config)
		if err != nil {
			return err
		}

		opts := []gateway.LimiterOption{
			gateway.WithKeyFunc(middleware.ClientKey),
			gateway.WithIdentity(middleware.PrincipalKey),
			gateway.WithLogger(log),
		}
		if cfg.RateStatsRedisAddr != "" {
			rdb := redis.NewClient(&redis.Options{
				Addr: cfg.RateStatsRedisAddr,
				DB:   cfg.RateStatsRedisDB,
			})
			defer rdb.Close()

			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			err := rdb.Ping(pingCtx).Err()
			cancel()
			if err != nil {
				return fmt.Errorf("redis rate stats ping: %w", err)
			}
			opts = append(opts, gateway.WithStats(gateway.NewRedisStats(rdb, cfg.RateStatsPrefix, cfg.RateStatsTTL)))
		} else {
			opts = append(opts, gateway.WithStats(gateway.NewMemoryStats()))
		}

		limiter = gateway.NewLimiter(table, opts...)
		go limiter.RunJanitor(ctx, time.Minute)
	}

	h := router.NewRouter(router.Options{
		AuthVerifier:         verifier,
		DB:                   db,
		AdoptionRequestLimit: cfg.AdoptionRequestLimit,
		Logger:               log,
		RouteDocument:        doc,
		RateLimiter:          limiter,
		MaxInFlight:          cfg.MaxInFlight,
		InFlightTimeout:      cfg.InFlightTimeout,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":                   cfg.Addr(),
			"auth_mode":              cfg.AuthMode,
			"adoption_request_limit": cfg.AdoptionRequestLimit,
			"route_config":           doc.Source,
			"rate_limit":             cfg.RateLimitEnabled,
		})
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down", nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildVerifier: nil en modo dev (header X-Debug-User).
func buildVerifier(cfg config.Config) (auth.AuthVerifier, error) {
	switch cfg.AuthMode {
	case config.AuthModeJWT:
		return jwtverifier.New(jwtverifier.Config{
			Secret: cfg.JWTSecret,
			Issuer: cfg.JWTIssuer,
		})
	case config.AuthModeIntrospect:
		client := introspect.NewClient(introspect.Config{
			URL:          cfg.IntrospectionURL,
			ClientID:     cfg.IntrospectionClientID,
			ClientSecret: cfg.IntrospectionClientSecret,
		})
		return introspect.NewVerifier(client), nil
	default:
		return nil, nil
	}
}

func loadDocument(path string) (*gateway.Document, error) {
	if path == "" {
		return gateway.Default()
	}
	return gateway.LoadFile(path)
}
