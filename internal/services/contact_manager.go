// Package services – ContactManager
//
// This file implements the ContactManager, the data-access use cases for
// contacts. It validates payloads against the insert and partial-update
// shapes, delegates persistence to the repository and converts repository
// misses into the nil / false results callers expect:
//
//   - Get and Update return (nil, nil) when the contact does not exist.
//   - Delete returns false when nothing was removed.
//   - Validation failures are returned as *domain.ValidationError.
//   - Storage faults propagate unchanged; nothing is retried.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/tbourn/go-contacts-backend/internal/domain"
)

// ContactRepo defines the repository contract required by ContactManager.
type ContactRepo interface {
	// CreateContact inserts a new contact built from validated input.
	CreateContact(ctx context.Context, db *gorm.DB, in domain.CreateContactInput) (*domain.Contact, error)

	// ListContacts returns a page of contacts ordered by creation time.
	ListContacts(ctx context.Context, db *gorm.DB, opts domain.ListOptions) ([]domain.Contact, error)

	// CountContacts returns the number of contacts matching search and filters.
	CountContacts(ctx context.Context, db *gorm.DB, search string, filters domain.ContactFilters) (int64, error)

	// GetContact fetches a contact by ID or returns gorm.ErrRecordNotFound.
	GetContact(ctx context.Context, db *gorm.DB, id string) (*domain.Contact, error)

	// UpdateContact applies column changes and stamps updated_at, or returns
	// gorm.ErrRecordNotFound.
	UpdateContact(ctx context.Context, db *gorm.DB, id string, changes map[string]any, now time.Time) (*domain.Contact, error)

	// DeleteContact removes a contact and reports whether a row was removed.
	DeleteContact(ctx context.Context, db *gorm.DB, id string) (bool, error)
}

// Operation outcomes recorded by contacts_operations_total.
const (
	outcomeOK       = "ok"
	outcomeInvalid  = "invalid"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

// contactOps counts manager operations by name and outcome.
var contactOps = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "contacts_operations_total",
		Help: "Contact manager operations by operation and outcome.",
	},
	[]string{"op", "outcome"},
)

func init() {
	prometheus.MustRegister(contactOps)
}

// ContactManager provides the contact use cases: create, list, count, fetch,
// update and delete.
type ContactManager struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the contact repository used by this manager.
	Repo ContactRepo

	// PageSize is the page size used by Page when the caller passes none.
	PageSize int
	// Now supplies the update timestamp; defaults to time.Now.
	Now func() time.Time
}

// NewContactManager constructs a ContactManager with default paging.
func NewContactManager(db *gorm.DB, r ContactRepo) *ContactManager {
	return &ContactManager{
		DB:       db,
		Repo:     r,
		PageSize: 10,
		Now:      time.Now,
	}
}

// Create validates in against the insert shape and stores a new contact.
// The returned record carries the generated id and createdAt.
func (m *ContactManager) Create(ctx context.Context, in domain.CreateContactInput) (*domain.Contact, error) {
	norm, res := domain.ValidateCreate(in)
	if !res.OK() {
		record("create", outcomeInvalid)
		return nil, res.Err()
	}
	c, err := m.Repo.CreateContact(ctx, m.DB, norm)
	if err != nil {
		record("create", outcomeError)
		return nil, err
	}
	record("create", outcomeOK)
	return c, nil
}

// List returns contacts matching opts ordered by creation time ascending.
func (m *ContactManager) List(ctx context.Context, opts domain.ListOptions) ([]domain.Contact, error) {
	items, err := m.Repo.ListContacts(ctx, m.DB, opts)
	if err != nil {
		record("list", outcomeError)
		return nil, err
	}
	record("list", outcomeOK)
	return items, nil
}

// Count returns the number of contacts whose name, phone or email contains
// search. An empty search counts every contact.
func (m *ContactManager) Count(ctx context.Context, search string) (int64, error) {
	n, err := m.Repo.CountContacts(ctx, m.DB, search, domain.ContactFilters{})
	if err != nil {
		record("count", outcomeError)
		return 0, err
	}
	record("count", outcomeOK)
	return n, nil
}

// Page returns one page of contacts plus the total number of matches.
// page < 1 is treated as 1 and limit <= 0 as PageSize. Pages past the last
// one are empty and never reach the store.
func (m *ContactManager) Page(ctx context.Context, page, limit int, search string, filters domain.ContactFilters) ([]domain.Contact, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = m.PageSize
	}

	total, err := m.Repo.CountContacts(ctx, m.DB, search, filters)
	if err != nil {
		record("page", outcomeError)
		return nil, 0, err
	}
	if pages := (total + int64(limit) - 1) / int64(limit); int64(page-1) >= pages {
		record("page", outcomeOK)
		return []domain.Contact{}, total, nil
	}

	items, err := m.Repo.ListContacts(ctx, m.DB, domain.ListOptions{
		Skip:    (page - 1) * limit,
		Limit:   limit,
		Search:  search,
		Filters: filters,
	})
	if err != nil {
		record("page", outcomeError)
		return nil, total, err
	}
	record("page", outcomeOK)
	return items, total, nil
}

// Get returns the contact with the given id, or (nil, nil) when it does not
// exist.
func (m *ContactManager) Get(ctx context.Context, id string) (*domain.Contact, error) {
	c, err := m.Repo.GetContact(ctx, m.DB, id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		record("get", outcomeNotFound)
		return nil, nil
	case err != nil:
		record("get", outcomeError)
		return nil, err
	}
	record("get", outcomeOK)
	return c, nil
}

// Update validates patch against the partial-update shape and applies only
// the supplied fields, refreshing updatedAt. It returns (nil, nil) when the
// contact does not exist.
func (m *ContactManager) Update(ctx context.Context, id string, patch domain.UpdateContactInput) (*domain.Contact, error) {
	norm, res := domain.ValidateUpdate(patch)
	if !res.OK() {
		record("update", outcomeInvalid)
		return nil, res.Err()
	}
	c, err := m.Repo.UpdateContact(ctx, m.DB, id, norm.Changes(), m.now())
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		record("update", outcomeNotFound)
		return nil, nil
	case err != nil:
		record("update", outcomeError)
		return nil, err
	}
	record("update", outcomeOK)
	return c, nil
}

// Delete removes the contact with the given id and reports whether it
// existed.
func (m *ContactManager) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := m.Repo.DeleteContact(ctx, m.DB, id)
	switch {
	case err != nil:
		record("delete", outcomeError)
		return false, err
	case !ok:
		record("delete", outcomeNotFound)
	default:
		record("delete", outcomeOK)
	}
	return ok, nil
}

func (m *ContactManager) now() time.Time {
	if m.Now == nil {
		return time.Now().UTC()
	}
	return m.Now().UTC()
}

func record(op, outcome string) {
	contactOps.WithLabelValues(op, outcome).Inc()
}
