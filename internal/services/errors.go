// Package services defines the business logic for contacts.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer. Validation failures are reported as
// *domain.ValidationError rather than a sentinel so that field details survive.
package services

import "errors"

// Contact-related errors.
var (
	// ErrContactNotFound indicates that the requested contact does not exist.
	// ContactManager itself reports a miss as a nil result; handlers use this
	// value to render it.
	ErrContactNotFound = errors.New("contact not found")

	// ErrMissingRequired is returned when a create request lacks name or phone.
	ErrMissingRequired = errors.New("name and phone are required")
)
