// Contact HTTP handlers.
//
// This file exposes REST endpoints for contact resources:
//   - GET    /contacts        (list, paginated + search, ETag support)
//   - POST   /contacts        (create, Idempotency-Key support)
//   - GET    /contacts/{id}   (fetch)
//   - PUT    /contacts/{id}   (partial update)
//   - DELETE /contacts/{id}   (hard delete)
//
// Handlers are transport-thin: they bind input, call the contact service and
// hand every error to writeError, which owns the error → status mapping.
//
// Idempotency:
// If the client supplies an Idempotency-Key header on create and a previous
// successful create is recorded for that key, the handler returns the
// recorded contact and sets `Idempotency-Replayed: true`. Once that contact
// is deleted the key no longer replays and the next create records a new one.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-contacts-backend/internal/domain"
	"github.com/tbourn/go-contacts-backend/internal/http/middleware"
	"github.com/tbourn/go-contacts-backend/internal/services"
	"github.com/tbourn/go-contacts-backend/internal/utils"
)

// ScopeCreateContact is the idempotency scope of POST /contacts.
const ScopeCreateContact = "contacts:create"

//
// Service contracts (context-aware)
//

// ContactService defines the contact use cases consumed by HTTP handlers.
//
// Get and Update report a missing contact as (nil, nil); Delete reports it as
// false. Validation failures are *domain.ValidationError.
type ContactService interface {
	Create(ctx context.Context, in domain.CreateContactInput) (*domain.Contact, error)
	Page(ctx context.Context, page, limit int, search string, filters domain.ContactFilters) ([]domain.Contact, int64, error)
	Get(ctx context.Context, id string) (*domain.Contact, error)
	Update(ctx context.Context, id string, patch domain.UpdateContactInput) (*domain.Contact, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// IdempotencyStore records completed creates so retries can be replayed.
type IdempotencyStore interface {
	// Lookup returns the live record for (scope, key), or (nil, nil).
	Lookup(ctx context.Context, scope, key string, now time.Time) (*domain.Idempotency, error)
	// Save records that key produced contactID with the given status.
	Save(ctx context.Context, scope, key, contactID string, status int) error
}

//
// Handler wiring
//

// Options tunes Handlers. Zero values fall back to 10 / 100 and disable
// idempotent replays.
type Options struct {
	DefaultPageSize int
	MaxPageSize     int
	Idempotency     IdempotencyStore
}

// Handlers groups the contact endpoints.
type Handlers struct {
	svc         ContactService
	idem        IdempotencyStore
	pageSize    int
	maxPageSize int
}

// New constructs and returns a Handlers instance bound to svc.
func New(svc ContactService, opts Options) *Handlers {
	h := &Handlers{
		svc:         svc,
		idem:        opts.Idempotency,
		pageSize:    opts.DefaultPageSize,
		maxPageSize: opts.MaxPageSize,
	}
	if h.pageSize <= 0 {
		h.pageSize = 10
	}
	if h.maxPageSize <= 0 {
		h.maxPageSize = 100
	}
	if h.maxPageSize < h.pageSize {
		h.maxPageSize = h.pageSize
	}
	return h
}

//
// DTOs
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page" example:"1"`
	Limit      int   `json:"limit" example:"10"`
	Total      int64 `json:"total" example:"42"`
	TotalPages int   `json:"totalPages" example:"5"`
}

// ListContactsResponse wraps a page of contacts and pagination information.
type ListContactsResponse struct {
	Success    bool             `json:"success" example:"true"`
	Data       []domain.Contact `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

//
// Helpers
//

// filtersFromQuery reads the exact-match filters. Empty values are ignored.
func filtersFromQuery(c *gin.Context) domain.ContactFilters {
	get := func(k string) *string {
		if v := c.Query(k); v != "" {
			return &v
		}
		return nil
	}
	return domain.ContactFilters{
		ID:    get("id"),
		Name:  get("name"),
		Phone: get("phone"),
		Email: get("email"),
	}
}

// listETag derives a weak validator from the encoded list response, so two
// responses share a tag only when their bodies are identical.
func listETag(body []byte) string {
	return fmt.Sprintf(`W/"%016x"`, xxhash.Sum64(body))
}

// etagMatches implements the weak comparison of If-None-Match, including
// lists and "*".
func etagMatches(header, etag string) bool {
	for _, cand := range strings.Split(header, ",") {
		cand = strings.TrimSpace(cand)
		if cand == "*" || cand == etag {
			return true
		}
	}
	return false
}

// bindError answers a request whose body could not be decoded.
func bindError(c *gin.Context, err error) {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		writeError(c, err, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("invalid type for field %q", ute.Field))
		return
	}
	fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
}

//
// Handlers
//

// ListContacts godoc
// @ID          listContacts
// @Summary     List contacts (paginated)
// @Description Returns a page of contacts ordered by creation time. `search` matches a substring of name, phone or email; `id`, `name`, `phone` and `email` are exact filters combined with AND. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Contacts
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"9c3f2a1b7e4d6085\")
// @Param       page           query   int     false "Page number"                 minimum(1) default(1)
// @Param       limit          query   int     false "Items per page"              minimum(1) maximum(100) default(10)
// @Param       search         query   string  false "Substring of name, phone or email"
// @Param       id             query   string  false "Exact id"
// @Param       name           query   string  false "Exact name"
// @Param       phone          query   string  false "Exact phone"
// @Param       email          query   string  false "Exact email"
//
// @Success     200  {object} handlers.ListContactsResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /contacts [get]
func (h *Handlers) ListContacts(c *gin.Context) {
	ctx := c.Request.Context()
	page, limit := utils.PageBounds(c.Query("page"), c.Query("limit"), h.pageSize, h.maxPageSize)

	items, total, err := h.svc.Page(ctx, page, limit, c.Query("search"), filtersFromQuery(c))
	if err != nil {
		writeError(c, err, ErrCodeListFailed, "failed to list contacts")
		return
	}

	body, err := json.Marshal(ListContactsResponse{
		Success: true,
		Data:    items,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: utils.TotalPages(total, limit),
		},
	})
	if err != nil {
		writeError(c, err, ErrCodeListFailed, "failed to list contacts")
		return
	}

	etag := listETag(body)
	c.Header("ETag", etag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && etagMatches(inm, etag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// CreateContact godoc
// @ID          createContact
// @Summary     Create a contact
// @Description Creates a contact. `name` and `phone` are required; `id` and `createdAt` are generated when absent. Supports idempotency via the Idempotency-Key header (same key → same contact).
// @Tags        Contacts
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries (UUID recommended)"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    domain.CreateContactInput  true  "Contact payload"
//
// @Success     201  {object} handlers.ContactResponse
// @Header      201  {string} Idempotency-Replayed "true when served from a previous request"
// @Failure     400  {object} handlers.ErrorResponse "Missing or invalid fields"
// @Failure     413  {object} handlers.ErrorResponse "Body too large"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /contacts [post]
func (h *Handlers) CreateContact(c *gin.Context) {
	ctx := c.Request.Context()

	var in domain.CreateContactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	if in.Name == "" || in.Phone == "" {
		writeError(c, services.ErrMissingRequired, ErrCodeBadRequest, "")
		return
	}

	// Idempotency (replay path). The validator middleware normally did the
	// lookup already.
	idemKey, hasKey := middleware.GetIdempotencyKey(c)
	useIdem := hasKey && h.idem != nil
	if useIdem {
		rec, checked := middleware.IdempotencyRecord(c)
		if !checked {
			var err error
			if rec, err = h.idem.Lookup(ctx, ScopeCreateContact, idemKey, time.Now().UTC()); err != nil {
				middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency lookup failed")
			}
		}
		if rec != nil {
			if prev, err := h.svc.Get(ctx, rec.ContactID); err == nil && prev != nil {
				c.Header("Idempotency-Replayed", "true")
				ok(c, rec.Status, prev)
				return
			}
		}
	}

	created, err := h.svc.Create(ctx, in)
	if err != nil {
		writeError(c, err, ErrCodeCreateFailed, "failed to create contact")
		return
	}

	// Idempotency (store path) – best effort.
	if useIdem {
		if err := h.idem.Save(ctx, ScopeCreateContact, idemKey, created.ID, http.StatusCreated); err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency record not stored")
		}
	}

	ok(c, http.StatusCreated, created)
}

// GetContact godoc
// @ID          getContact
// @Summary     Fetch a contact
// @Tags        Contacts
// @Produce     json
//
// @Param       id  path  string  true  "Contact ID"  example(6f1c3e1e-5c55-4d5a-9b59-2f3f4fd3e7a1)
//
// @Success     200  {object} handlers.ContactResponse
// @Failure     404  {object} handlers.ErrorResponse "Contact not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /contacts/{id} [get]
func (h *Handlers) GetContact(c *gin.Context) {
	ct, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err == nil && ct == nil {
		err = services.ErrContactNotFound
	}
	if err != nil {
		writeError(c, err, ErrCodeGetFailed, "failed to fetch contact")
		return
	}
	ok(c, http.StatusOK, ct)
}

// UpdateContact godoc
// @ID          updateContact
// @Summary     Update a contact
// @Description Applies only the supplied fields and refreshes updatedAt. `id` and `createdAt` cannot be changed.
// @Tags        Contacts
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Contact ID"  example(6f1c3e1e-5c55-4d5a-9b59-2f3f4fd3e7a1)
// @Param       body  body  domain.UpdateContactInput  true  "Fields to change"
//
// @Success     200  {object} handlers.ContactResponse
// @Failure     400  {object} handlers.ErrorResponse "Invalid fields"
// @Failure     404  {object} handlers.ErrorResponse "Contact not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /contacts/{id} [put]
func (h *Handlers) UpdateContact(c *gin.Context) {
	var patch domain.UpdateContactInput
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}

	ct, err := h.svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err == nil && ct == nil {
		err = services.ErrContactNotFound
	}
	if err != nil {
		writeError(c, err, ErrCodeUpdateFailed, "failed to update contact")
		return
	}
	ok(c, http.StatusOK, ct)
}

// DeleteContact godoc
// @ID          deleteContact
// @Summary     Delete a contact
// @Tags        Contacts
// @Produce     json
//
// @Param       id  path  string  true  "Contact ID"  example(6f1c3e1e-5c55-4d5a-9b59-2f3f4fd3e7a1)
//
// @Success     200  {object} handlers.MessageResponse
// @Failure     404  {object} handlers.ErrorResponse "Contact not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /contacts/{id} [delete]
func (h *Handlers) DeleteContact(c *gin.Context) {
	removed, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err == nil && !removed {
		err = services.ErrContactNotFound
	}
	if err != nil {
		writeError(c, err, ErrCodeDeleteFailed, "failed to delete contact")
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "contact deleted"})
}
