// Package repo implements the data persistence layer for contacts, backed by
// GORM. This file provides repository functions for the Contact model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition. Input is expected to be validated by the
// caller.
//
// Error semantics:
//   - When a contact is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - DeleteContact reports a miss as (false, nil) instead.
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// Search semantics:
//
//	A non-empty search term matches rows whose name, phone or email contains
//	it as a literal substring. LIKE wildcards in the term are escaped.
//	Exact filters (id, name, phone, email) are ANDed with the search.
//	Results are ordered by created_at ascending, then id.
package repo

import (
	"context"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-contacts-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// DefaultListLimit is applied by ListContacts when the caller passes no limit.
const DefaultListLimit = 100

const likeEscape = '!'

var newID = uuid.NewString

// CreateContact inserts a new Contact built from in. The ID is a random UUID
// unless the input carries one; CreatedAt is now (UTC) unless supplied.
//
// On success, it returns the persisted Contact. On failure, it returns a DB error.
func CreateContact(ctx context.Context, db *gorm.DB, in domain.CreateContactInput) (*domain.Contact, error) {
	c := in.NewContact(newID(), time.Now().UTC())
	if err := db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListContacts returns a page of contacts matching opts. A non-positive
// limit falls back to DefaultListLimit, a negative skip to 0. The result is
// never nil.
func ListContacts(ctx context.Context, db *gorm.DB, opts domain.ListOptions) ([]domain.Contact, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	skip := max(opts.Skip, 0)

	q := matching(db.WithContext(ctx).Model(&domain.Contact{}), opts.Search, opts.Filters)

	out := []domain.Contact{}
	if err := q.Order("created_at ASC").Order("id ASC").
		Offset(skip).Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// CountContacts returns how many contacts match the same predicate that
// ListContacts would use for search and filters.
func CountContacts(ctx context.Context, db *gorm.DB, search string, filters domain.ContactFilters) (int64, error) {
	var n int64
	err := matching(db.WithContext(ctx).Model(&domain.Contact{}), search, filters).Count(&n).Error
	return n, err
}

// GetContact fetches a single contact by ID, or ErrNotFound if missing.
func GetContact(ctx context.Context, db *gorm.DB, id string) (*domain.Contact, error) {
	var c domain.Contact
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateContact applies changes (column -> value) to the contact with the
// given ID, stamps updated_at and returns the stored row.
//
// The write is a single conditional UPDATE whose affected-row count decides
// existence; the re-read happens in the same transaction. A contact removed
// concurrently is reported as ErrNotFound and never written back.
// updated_at is never earlier than created_at.
func UpdateContact(ctx context.Context, db *gorm.DB, id string, changes map[string]any, now time.Time) (*domain.Contact, error) {
	var out domain.Contact
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur domain.Contact
		if err := tx.Select("created_at").Where("id = ?", id).Take(&cur).Error; err != nil {
			return err
		}
		stamp := now.UTC()
		if stamp.Before(cur.CreatedAt) {
			stamp = cur.CreatedAt
		}

		cols := make(map[string]any, len(changes)+1)
		maps.Copy(cols, changes)
		delete(cols, "id")
		delete(cols, "created_at")
		cols["updated_at"] = stamp

		res := tx.Model(&domain.Contact{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("id = ?", id).Take(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteContact hard-deletes the contact with the given ID and reports
// whether a row was removed.
func DeleteContact(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Contact{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// matching narrows q to rows satisfying the search term and exact filters.
func matching(q *gorm.DB, search string, f domain.ContactFilters) *gorm.DB {
	if search != "" {
		p := "%" + escapeLike(search) + "%"
		q = q.Where("(name LIKE ? ESCAPE '!' OR phone LIKE ? ESCAPE '!' OR email LIKE ? ESCAPE '!')", p, p, p)
	}
	if f.ID != nil {
		q = q.Where("id = ?", *f.ID)
	}
	if f.Name != nil {
		q = q.Where("name = ?", *f.Name)
	}
	if f.Phone != nil {
		q = q.Where("phone = ?", *f.Phone)
	}
	if f.Email != nil {
		q = q.Where("email = ?", *f.Email)
	}
	return q
}

// escapeLike makes s match literally inside a LIKE pattern using '!' as the
// escape character.
func escapeLike(s string) string {
	if !strings.ContainsAny(s, "!%_") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case likeEscape, '%', '_':
			b.WriteRune(likeEscape)
		}
		b.WriteRune(r)
	}
	return b.String()
}
