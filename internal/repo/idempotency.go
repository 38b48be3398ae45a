// Package repo implements the data persistence layer for contacts, backed by
// GORM. This file provides repository helpers for the Idempotency model used
// to implement safe-retry semantics for POST endpoints.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-contacts-backend/internal/domain"
)

// ErrDuplicate indicates that a live idempotency record already exists for
// the given (scope, key) pair.
var ErrDuplicate = errors.New("duplicate")

// contactExists matches idempotency rows whose contact is still stored. A
// record without its contact can no longer be replayed.
const contactExists = "EXISTS (SELECT 1 FROM contacts WHERE contacts.id = idempotency.contact_id)"

// GetIdempotency returns a non-expired record whose contact still exists, or
// ErrNotFound.
func GetIdempotency(ctx context.Context, db *gorm.DB, scope, key string, now time.Time) (*domain.Idempotency, error) {
	if strings.TrimSpace(scope) == "" || strings.TrimSpace(key) == "" {
		return nil, ErrNotFound
	}
	var rec domain.Idempotency
	err := db.WithContext(ctx).
		Where("scope = ? AND idem_key = ? AND expires_at > ? AND "+contactExists, scope, key, now).
		Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateIdempotency records that the request identified by (scope, key)
// produced contactID with the given status. A record for the same pair that
// has expired, or whose contact was deleted, is replaced; a live one yields
// ErrDuplicate.
func CreateIdempotency(ctx context.Context, db *gorm.DB, scope, key, contactID string, status int, ttl time.Duration) (*domain.Idempotency, error) {
	now := time.Now().UTC()
	rec := &domain.Idempotency{
		ID:        newID(),
		Scope:     scope,
		Key:       key,
		ContactID: contactID,
		Status:    status,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("scope = ? AND idem_key = ? AND (expires_at <= ? OR NOT "+contactExists+")", scope, key, now).
			Delete(&domain.Idempotency{}).Error; err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}

// isUniqueViolation recognizes unique-key errors across drivers. glebarez/sqlite
// often returns plain-text errors for UNIQUE violations.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key value") ||
		strings.Contains(low, "duplicate entry")
}
