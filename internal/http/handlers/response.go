// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response envelopes shared by every endpoint. Success
// bodies carry `success: true` next to the payload; failures carry
// `success: false`, a human-readable message and a stable machine code.
//
// Conventions:
//   - All error responses are an ErrorResponse with a stable `code`.
//   - `fail()` writes the envelope and logs 5xx with request context.
//   - `ok()` wraps a payload in DataResponse.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "success": false,
//	  "error": "contact not found",
//	  "code": "not_found",
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000"
//	}
//
// Example success response:
//
//	HTTP/1.1 200 OK
//	{ "success": true, "data": { "id": "abc123", "name": "Ada Lovelace", ... } }
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-contacts-backend/internal/domain"
	"github.com/tbourn/go-contacts-backend/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Always false
	Success bool `json:"success" example:"false"`
	// Human-readable message (safe to show to users)
	Error string `json:"error" example:"contact not found"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Per-field problems for validation failures
	Details []domain.FieldError `json:"details,omitempty"`
}

// ContactResponse wraps a single contact.
type ContactResponse struct {
	Success bool           `json:"success" example:"true"`
	Data    domain.Contact `json:"data"`
}

// MessageResponse is returned by operations without a resource payload.
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"contact deleted"`
}

// fail aborts the request with a structured error and logs server-side errors.
func fail(c *gin.Context, status int, code, msg string) {
	failWithDetails(c, status, code, msg, nil)
}

func failWithDetails(c *gin.Context, status int, code, msg string, details []domain.FieldError) {
	resp := ErrorResponse{
		Success:   false,
		Error:     msg,
		Code:      code,
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Details:   details,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail() for router-level fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success envelope around data.
func ok(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}
