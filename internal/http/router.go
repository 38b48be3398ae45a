// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"path"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-contacts-backend/docs"
	"github.com/tbourn/go-contacts-backend/internal/config"
	"github.com/tbourn/go-contacts-backend/internal/domain"
	"github.com/tbourn/go-contacts-backend/internal/http/handlers"
	"github.com/tbourn/go-contacts-backend/internal/http/middleware"
	"github.com/tbourn/go-contacts-backend/internal/repo"
	"github.com/tbourn/go-contacts-backend/internal/services"
)

// contactRepoShim adapts the repository free functions to the
// services.ContactRepo interface expected by the ContactManager.
type contactRepoShim struct{}

// CreateContact proxies repo.CreateContact.
func (contactRepoShim) CreateContact(ctx context.Context, db *gorm.DB, in domain.CreateContactInput) (*domain.Contact, error) {
	return repo.CreateContact(ctx, db, in)
}

// ListContacts proxies repo.ListContacts.
func (contactRepoShim) ListContacts(ctx context.Context, db *gorm.DB, opts domain.ListOptions) ([]domain.Contact, error) {
	return repo.ListContacts(ctx, db, opts)
}

// CountContacts proxies repo.CountContacts.
func (contactRepoShim) CountContacts(ctx context.Context, db *gorm.DB, search string, filters domain.ContactFilters) (int64, error) {
	return repo.CountContacts(ctx, db, search, filters)
}

// GetContact proxies repo.GetContact.
func (contactRepoShim) GetContact(ctx context.Context, db *gorm.DB, id string) (*domain.Contact, error) {
	return repo.GetContact(ctx, db, id)
}

// UpdateContact proxies repo.UpdateContact.
func (contactRepoShim) UpdateContact(ctx context.Context, db *gorm.DB, id string, changes map[string]any, now time.Time) (*domain.Contact, error) {
	return repo.UpdateContact(ctx, db, id, changes, now)
}

// DeleteContact proxies repo.DeleteContact.
func (contactRepoShim) DeleteContact(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	return repo.DeleteContact(ctx, db, id)
}

// idempotencyStore backs handlers.IdempotencyStore with the idempotencies table.
type idempotencyStore struct {
	db  *gorm.DB
	ttl time.Duration
}

// Lookup returns the live record for (scope, key), or nil when there is none
// or its contact has since been deleted.
func (s idempotencyStore) Lookup(ctx context.Context, scope, key string, now time.Time) (*domain.Idempotency, error) {
	rec, err := repo.GetIdempotency(ctx, s.db, scope, key, now)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return rec, err
}

// Save records the outcome of the first request for (scope, key).
func (s idempotencyStore) Save(ctx context.Context, scope, key, contactID string, status int) error {
	_, err := repo.CreateIdempotency(ctx, s.db, scope, key, contactID, status, s.ttl)
	return err
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), idempotency and rate
// limiting, CORS and security headers, health and metrics endpoints, and then
// mounts the contacts API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Access log, redacting contact PII unless disabled
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Compression
//  8. Idempotency validator (before rate limiter to allow bypass on replay)
//  9. Rate limiter (per client IP, bypass on replay)
//  10. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	apiBase := cfg.APIBasePath
	createPath := path.Join("/", apiBase, "contacts")

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access log
	if cfg.LogRedact {
		r.Use(middleware.RedactingLogger(middleware.RedactOptions{
			MaskHeaders: []string{"X-API-Key"},
		}))
	} else {
		r.Use(middleware.Logger())
	}

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit
	if cfg.MaxBodyBytes > 0 {
		r.Use(limitBody(cfg.MaxBodyBytes))
	}

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Response compression
	if cfg.GzipEnabled {
		r.Use(gzip.Gzip(gzip.DefaultCompression))
	}

	// 8) Idempotency validation (before rate limiting)
	store := idempotencyStore{db: db, ttl: cfg.IdempotencyTTL}
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
			Scope: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && c.FullPath() == createPath {
					return handlers.ScopeCreateContact
				}
				return ""
			},
		},
		store.Lookup,
	))

	// 9) Token-bucket rate limiter per client IP
	if cfg.RateRPS > 0 {
		rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP()).
			Exempt("/health", "/metrics")
		r.Use(rl.Handler())
	}

	// 10) CORS posture (allow all if none configured) and security headers
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      cfg.Security.NoStore,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness plus a storage ping
	r.GET("/health", healthHandler(db))

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = path.Join("/", apiBase)
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: handlers ← manager ← repo/db
	mgr := services.NewContactManager(db, contactRepoShim{})
	if cfg.DefaultPageSize > 0 {
		mgr.PageSize = cfg.DefaultPageSize
	}
	h := handlers.New(mgr, handlers.Options{
		DefaultPageSize: cfg.DefaultPageSize,
		MaxPageSize:     cfg.MaxPageSize,
		Idempotency:     store,
	})

	api := groupWithPrefix(r, apiBase)
	{
		api.GET("/contacts", h.ListContacts)
		api.POST("/contacts", h.CreateContact)
		api.GET("/contacts/:id", h.GetContact)
		api.PUT("/contacts/:id", h.UpdateContact)
		api.DELETE("/contacts/:id", h.DeleteContact)
	}
}

// corsMiddleware builds the CORS chain. With no allowlist every origin is
// accepted and ACAO is forced to "*" even without an Origin header; otherwise
// allowlisted origins are echoed back.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	base := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "If-None-Match", middleware.HeaderIdempotencyKey},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag", "Idempotency-Replayed"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	if len(origins) == 0 {
		base.AllowAllOrigins = true
		return []gin.HandlerFunc{
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(base),
		}
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	base.AllowOrigins = origins
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(base),
	}
}

// healthHandler reports ok while the database answers a ping.
func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
				err = sqlDB.PingContext(ctx)
				cancel()
			}
			if err != nil {
				middleware.LoggerFrom(c).Warn().Err(err).Msg("health: database ping failed")
				handlers.Fail(c, http.StatusServiceUnavailable, handlers.ErrCodeUnavailable, "database unavailable")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
