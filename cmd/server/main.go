// Command server runs the contacts HTTP API.
//
//	@title			Contacts API
//	@version		1.0
//	@description	CRUD service for contact cards with search, pagination and idempotent creates.
//	@BasePath		/api
//	@schemes		http https
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-contacts-backend/internal/config"
	httpapi "github.com/tbourn/go-contacts-backend/internal/http"
	"github.com/tbourn/go-contacts-backend/internal/observability"
	"github.com/tbourn/go-contacts-backend/internal/repo"
	"github.com/tbourn/go-contacts-backend/internal/sysutil"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ver := sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version)
	sysutil.SetupLogging(os.Stdout, cfg.LogLevel, cfg.LogPretty, cfg.OTEL.ServiceName, ver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, ver); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg config.Config, ver string) error {
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, ver)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := repo.Open(cfg.DB, cfg.OTEL.Enabled)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := repo.AutoMigrate(db); err != nil {
		return err
	}
	log.Info().Str("driver", cfg.DB.Driver).Msg("schema migrated")

	if cfg.DB.SeedDemo {
		n, err := repo.SeedContacts(ctx, db)
		if err != nil {
			return err
		}
		if n > 0 {
			log.Info().Int("contacts", n).Msg("demo data seeded")
		}
	}

	// Deploy jobs run the binary once to apply migrations.
	if sysutil.IsTruthy(os.Getenv("MIGRATE_ONLY")) {
		log.Info().Msg("MIGRATE_ONLY set, exiting")
		return nil
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, cfg)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("base_path", cfg.APIBasePath).
			Bool("swagger", cfg.SwaggerEnabled).
			Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	return <-errCh
}
