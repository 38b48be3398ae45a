// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements idempotency support for unsafe HTTP methods (e.g., POST).
// It validates an Idempotency-Key request header, looks up whether the
// (scope, key) pair already completed, and annotates the request context so
// downstream handlers can:
//   - read the normalized key (GetIdempotencyKey)
//   - detect replayed requests (IsReplay) and read the stored record
//     (IdempotencyRecord)
//   - bypass rate limiting when a replay is served (via an internal flag)
//
// Persistence stays behind the IdempotencyLookup function type.
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-contacts-backend/internal/domain"
)

// HeaderIdempotencyKey is the canonical request header that clients use to
// convey an idempotency key for unsafe operations (e.g., POST).
//
// The value is expected to be stable for a given semantic operation so that
// retries (network, client, or server initiated) can be safely deduplicated.
const HeaderIdempotencyKey = "Idempotency-Key"

// Context keys used internally to stash idempotency state.
// These keys are intentionally unexported and referenced via accessor helpers.
const (
	ctxKeyIdemKey     = "idem.key"
	ctxKeyIdemReplay  = "idem.replay"  // bool: true when a stored replay exists
	ctxKeyIdemChecked = "idem.checked" // bool: true once the lookup has run
	ctxKeyIdemRecord  = "idem.record"  // *domain.Idempotency found by the lookup
	ctxKeyRateBypass  = "rate.bypass"  // bool: true to skip rate limiting
)

// GetIdempotencyKey returns the validated idempotency key stored in the Gin
// context by IdempotencyValidator. The second return value indicates presence.
//
// Handlers should prefer this function over reading the header directly.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether the middleware found a still-valid record for this
// request's (scope, key).
//
// When true, upstream components (e.g., handlers, rate limiters) may choose to
// short-circuit computation and return the previously persisted result.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IdempotencyRecord returns the record found by the lookup for this request
// and whether a lookup ran at all. A nil record with checked=true is a miss
// (or a failed lookup); checked=false means the caller must look it up itself.
func IdempotencyRecord(c *gin.Context) (rec *domain.Idempotency, checked bool) {
	if v, ok := c.Get(ctxKeyIdemChecked); !ok || v != true {
		return nil, false
	}
	if v, ok := c.Get(ctxKeyIdemRecord); ok {
		rec, _ = v.(*domain.Idempotency)
	}
	return rec, true
}

// IdempotencyOptions configures IdempotencyValidator. TTL enforcement belongs
// to the lookup.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters. If nil, a conservative RFC7230-like
	// token pattern is used: ^[A-Za-z0-9._~\-:]+$
	Pattern *regexp.Regexp
	// Scope names the operation a request belongs to (e.g. "contacts:create").
	// An empty result, or a nil Scope, skips the replay lookup for that request.
	Scope func(*gin.Context) string
}

// IdempotencyLookup returns the replayable record for (scope, key) at the
// given time, or nil when there is none. A record must only be returned when
// its result can still be served: a record whose contact is gone is a miss.
// Errors are logged and treated as a miss.
type IdempotencyLookup func(ctx context.Context, scope, key string, now time.Time) (*domain.Idempotency, error)

// IdempotencyValidator validates the Idempotency-Key header (if present), stashes
// it in the request context, and checks for a prior completed request via the
// supplied lookup. When a replay is detected, it marks the context so
// downstream components can:
//   - detect replay via IsReplay and read the record via IdempotencyRecord
//   - bypass rate limiting (see RateLimiter.Handler)
//
// Behavior:
//   - If header is absent: the middleware is a no-op.
//   - If header fails validation: responds 400 with the error envelope.
//   - If lookup indicates a replay: sets replay + rate-bypass flags.
//
// This middleware does not itself return a cached payload; handlers remain in
// control of how to serve replays.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		// RFC-7230-ish token + common safe chars.
		pat = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success":    false,
				"error":      "invalid Idempotency-Key",
				"code":       "bad_idempotency_key",
				"request_id": c.Writer.Header().Get(requestIDHeader),
			})
			return
		}

		c.Set(ctxKeyIdemKey, key)

		if lookup == nil || opts.Scope == nil {
			c.Next()
			return
		}
		if scope := opts.Scope(c); scope != "" {
			rec, err := lookup(c.Request.Context(), scope, key, time.Now().UTC())
			if err != nil {
				LoggerFrom(c).Warn().Err(err).Str("scope", scope).Msg("idempotency lookup failed")
				rec = nil
			}
			c.Set(ctxKeyIdemChecked, true)
			if rec != nil {
				c.Set(ctxKeyIdemRecord, rec)
				c.Set(ctxKeyIdemReplay, true)
				c.Set(ctxKeyRateBypass, true)
			}
		}

		c.Next()
	}
}
