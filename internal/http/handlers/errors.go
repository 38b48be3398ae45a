// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes the symbolic error codes and the single table that
// maps error kinds to HTTP status codes. Handlers never pick a status for a
// service error themselves; they call writeError and the table decides.
//
// Kinds:
//   - client input (validation, missing fields, malformed JSON): 4xx with the
//     reason, never logged as faults
//   - not found: 404
//   - anything else (storage faults, constraint violations): 500 with a
//     generic, operation-specific message; the cause is logged server-side
//
// Example response:
//
//	{
//	  "success": false,
//	  "error": "name and phone are required",
//	  "code": "missing_required",
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-contacts-backend/internal/domain"
	"github.com/tbourn/go-contacts-backend/internal/http/middleware"
	"github.com/tbourn/go-contacts-backend/internal/services"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodePayloadTooLarge  = "payload_too_large"
	ErrCodeUnavailable      = "unavailable"

	// Domain-specific:
	ErrCodeValidation      = "validation_failed"
	ErrCodeMissingRequired = "missing_required"
	ErrCodeListFailed      = "list_failed"
	ErrCodeCreateFailed    = "create_failed"
	ErrCodeGetFailed       = "get_failed"
	ErrCodeUpdateFailed    = "update_failed"
	ErrCodeDeleteFailed    = "delete_failed"
)

// errorRule maps one error kind to its response.
type errorRule struct {
	match  func(error) bool
	status int
	code   string
	// message overrides err.Error() when set.
	message string
}

// errorTable is consulted top to bottom; the first match wins. Errors that
// match nothing are server faults.
var errorTable = []errorRule{
	{
		match:  func(err error) bool { var ve *domain.ValidationError; return errors.As(err, &ve) },
		status: http.StatusBadRequest,
		code:   ErrCodeValidation,
	},
	{
		match:   func(err error) bool { return errors.Is(err, services.ErrMissingRequired) },
		status:  http.StatusBadRequest,
		code:    ErrCodeMissingRequired,
		message: services.ErrMissingRequired.Error(),
	},
	{
		match:   func(err error) bool { var mbe *http.MaxBytesError; return errors.As(err, &mbe) },
		status:  http.StatusRequestEntityTooLarge,
		code:    ErrCodePayloadTooLarge,
		message: "request body too large",
	},
	{
		match:   func(err error) bool { return errors.Is(err, services.ErrContactNotFound) },
		status:  http.StatusNotFound,
		code:    ErrCodeNotFound,
		message: services.ErrContactNotFound.Error(),
	},
}

// classify returns the status, code and client-facing message for err.
// fallbackCode and fallbackMsg describe the operation when err is a fault.
func classify(err error, fallbackCode, fallbackMsg string) (int, string, string) {
	for _, r := range errorTable {
		if !r.match(err) {
			continue
		}
		msg := r.message
		if msg == "" {
			msg = err.Error()
		}
		return r.status, r.code, msg
	}
	return http.StatusInternalServerError, fallbackCode, fallbackMsg
}

// writeError renders err through errorTable. Faults are logged with the
// underlying cause, which never reaches the client.
func writeError(c *gin.Context, err error, fallbackCode, fallbackMsg string) {
	status, code, msg := classify(err, fallbackCode, fallbackMsg)
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().Err(err).Str("code", code).Msg("request failed")
	}

	var details []domain.FieldError
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		details = ve.Fields
	}
	failWithDetails(c, status, code, msg, details)
}
