// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides structured request logging, a panic-safe recovery handler,
// and a request ID injector:
//
//   - RequestID() ensures every request carries a correlation ID
//     (propagated via X-Request-ID and stored in the Gin context).
//   - Logger() emits structured access logs and attaches a request-scoped
//     zerolog.Logger; level is chosen by outcome (info/warn/error).
//   - Recovery() converts panics into the JSON 500 envelope.
//   - LoggerFrom() retrieves the request-scoped logger inside handlers.
//
// Recommended order: RequestID, then Logger (or RedactingLogger), then
// Recovery, so panics are logged with the correlation ID.
package middleware

import (
	"net/http"
	"regexp"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// requestIDKey is the Gin context key under which the request ID is stored.
	requestIDKey = "requestID"
	// requestIDHeader is the HTTP header used to propagate the correlation ID.
	requestIDHeader = "X-Request-ID"
	// loggerKey is the Gin context key of the request-scoped logger.
	loggerKey = "logger"
	// maxQueryLogLength caps the number of bytes of the raw query string logged.
	maxQueryLogLength = 2048
	// codeInternal is the error code of responses written by Recovery.
	codeInternal = "internal_error"
)

// requestIDPattern bounds client-supplied correlation IDs so they cannot
// smuggle control characters or unbounded data into logs.
var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._\-:]{1,128}$`)

// RequestID attaches (or propagates) a correlation identifier per request.
//
// A well-formed incoming X-Request-ID is reused; anything else is replaced by
// a new UUIDv4. The ID is echoed in the response header and stored in the Gin
// context under "requestID".
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if !requestIDPattern.MatchString(rid) {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		c.Next()
	}
}

// Logger writes a structured access log for each request and response.
//
// It records method, route, client IP, user agent, correlation ID, sizes,
// status and latency, and stores a request-scoped logger in the Gin context.
// Level: error for 5xx or when Gin collected errors, warn for 4xx, info
// otherwise. Query strings are logged verbatim (truncated); use
// RedactingLogger when they may carry contact data.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := routePath(c)

		l := attachLogger(c).With().
			Str("method", c.Request.Method).
			Str("path", path).
			Str("remote_ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Str("query", truncate(c.Request.URL.RawQuery, maxQueryLogLength)).
			// ContentLength can be -1 if unknown.
			Int64("bytes_in", c.Request.ContentLength).
			Logger()

		c.Next()

		ev := l.With().
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Int("bytes_out", c.Writer.Size()).
			Logger()

		status := c.Writer.Status()
		switch {
		case len(c.Errors) > 0:
			ev.Error().Str("errors", c.Errors.String()).Msg("request")
		case status >= 500:
			ev.Error().Msg("request")
		case status >= 400:
			ev.Warn().Msg("request")
		default:
			ev.Info().Msg("request")
		}
	}
}

// attachLogger stores a logger carrying the request ID in the Gin context and
// returns it.
func attachLogger(c *gin.Context) *zerolog.Logger {
	rid, _ := c.Get(requestIDKey)
	l := log.With().Str("request_id", asString(rid)).Logger()
	c.Set(loggerKey, &l)
	return &l
}

// Recovery intercepts panics, logs a stack trace, and returns the JSON 500
// envelope when nothing has been written yet:
//
//	{ "success": false, "error": "internal server error", "code": "internal_error", "request_id": "..." }
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				rid, _ := c.Get(requestIDKey)
				log.Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Str("request_id", asString(rid)).
					Msg("panic recovered")

				if !c.Writer.Written() {
					c.Header(requestIDHeader, asString(rid))
					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
						"success":    false,
						"error":      "internal server error",
						"code":       codeInternal,
						"request_id": asString(rid),
					})
					return
				}
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// LoggerFrom returns the request-scoped zerolog.Logger, or the global logger
// when none was attached. The result is never nil.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if lg, ok := v.(*zerolog.Logger); ok {
			return lg
		}
	}
	l := log.With().Logger()
	return &l
}

// routePath prefers the matched route pattern so log and metric labels stay
// bounded; unmatched requests fall back to the raw path.
func routePath(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return c.Request.URL.Path
}

// asString converts an arbitrary interface to a string, returning an empty
// string when the value is not a string.
func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// truncate returns s unchanged when within max length, otherwise it truncates
// s to max bytes and appends an ellipsis. A max <= 0 disables truncation.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
