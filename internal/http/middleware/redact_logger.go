// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements RedactingLogger, the access logger used in front of the
// contacts API. List queries carry search terms and exact filters (name,
// phone, email), so their values are masked outright; the rest of the query
// string, unmatched paths and header values are pattern-scrubbed before they
// are logged. Bodies are never logged.
//
// Usage:
//
//	r := gin.New()
//	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
//	    MaskHeaders: []string{"X-Api-Key"},
//	}))
package middleware

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RedactOptions configures additional scrub behavior for RedactingLogger.
//
// MaskHeaders specifies extra HTTP header names whose values will be fully
// replaced with "[REDACTED]". Matching is case-insensitive and merged with
// built-in sensitive headers ("Authorization", "Cookie", "Set-Cookie").
type RedactOptions struct {
	MaskHeaders []string
}

var (
	uuidRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	// Digits-only phone pattern (never matches the hex groups of a UUID).
	// Examples matched: "+1 212-555-1212", "(212) 555-1212", "13800138000".
	phoneRE = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

// redactPII replaces UUIDs, emails and phone numbers in s. UUIDs go first so
// the loose phone pattern cannot eat their digit groups.
func redactPII(s string) string {
	if s == "" {
		return s
	}
	s = uuidRE.ReplaceAllString(s, "[REDACTED:id]")
	s = emailRE.ReplaceAllString(s, "[REDACTED:email]")
	return phoneRE.ReplaceAllString(s, "[REDACTED:phone]")
}

// contactQueryKeys are list parameters whose values are contact data. A name
// or a partial search term matches no PII pattern, so these are masked whole.
var contactQueryKeys = map[string]struct{}{
	"id":     {},
	"name":   {},
	"phone":  {},
	"email":  {},
	"search": {},
}

// redactQuery masks the values of contactQueryKeys and pattern-scrubs every
// other parameter.
func redactQuery(raw string) string {
	if raw == "" {
		return raw
	}
	parts := strings.Split(raw, "&")
	for i, p := range parts {
		k, _, hasVal := strings.Cut(p, "=")
		name := k
		if dec, err := url.QueryUnescape(k); err == nil {
			name = dec
		}
		if _, ok := contactQueryKeys[strings.ToLower(strings.TrimSpace(name))]; ok && hasVal {
			parts[i] = k + "=[REDACTED]"
			continue
		}
		parts[i] = redactEncoded(p)
	}
	return strings.Join(parts, "&")
}

// redactEncoded scrubs s, then its decoded form, so that percent-encoded
// values ("ada%40example.com") are caught as well.
func redactEncoded(s string) string {
	out := redactPII(s)
	if dec, err := url.QueryUnescape(out); err == nil && dec != out {
		out = redactPII(dec)
	}
	return out
}

// RedactingLogger returns a Gin middleware that logs HTTP requests and
// responses with sensitive values scrubbed, and attaches the request-scoped
// logger returned by LoggerFrom.
//
// Logged fields: request_id, method, path (route pattern, or the redacted raw
// path when no route matched), query, status, bytes, latency and headers.
// Level is info, warn for 4xx and error for 5xx.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	maskHeaders := map[string]struct{}{
		"authorization": {},
		"cookie":        {},
		"set-cookie":    {},
	}
	for _, h := range opts.MaskHeaders {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			maskHeaders[h] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		start := time.Now()

		path := c.FullPath()
		if path == "" {
			path = redactEncoded(c.Request.URL.Path)
		}
		safeQuery := redactQuery(c.Request.URL.RawQuery)

		safeHeaders := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			if _, ok := maskHeaders[strings.ToLower(k)]; ok {
				safeHeaders[k] = "[REDACTED]"
				continue
			}
			safeHeaders[k] = redactPII(strings.Join(vv, ", "))
		}

		if _, ok := c.Get(requestIDKey); ok {
			attachLogger(c)
		}

		c.Next()

		status := c.Writer.Status()
		reqID := c.Writer.Header().Get(requestIDHeader)
		if reqID == "" {
			reqID = c.GetHeader(requestIDHeader)
		}

		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}

		ev.
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", truncate(safeQuery, maxQueryLogLength)).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", safeHeaders).
			Msg("http_request")
	}
}
