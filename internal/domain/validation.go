// Package domain – input shapes and validation.
//
// Two shapes are derived from the contacts table: CreateContactInput (strict,
// used on insert) and UpdateContactInput (every field optional, same bounds
// when present). Validation is a pure function that returns a
// ValidationResult; callers turn it into an error with Err().
package domain

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

// CreateContactInput is the payload accepted when creating a contact.
// ID and CreatedAt are optional; the server generates them when absent.
type CreateContactInput struct {
	ID        *string    `json:"id,omitempty"        validate:"omitnil,max=36"  example:"6f1c3e1e-5c55-4d5a-9b59-2f3f4fd3e7a1"`
	Name      string     `json:"name"                validate:"required,max=128" example:"Ada Lovelace"`
	Gender    *string    `json:"gender,omitempty"    validate:"omitnil,max=10"  example:"female"`
	Age       *int       `json:"age,omitempty"                                  example:"36"`
	Phone     string     `json:"phone"               validate:"required,max=20" example:"+44 20 7946 0958"`
	IDCard    *string    `json:"idCard,omitempty"    validate:"omitnil,max=18"  example:"AB1234567"`
	Address   *string    `json:"address,omitempty"                              example:"12 St James's Square, London"`
	Email     *string    `json:"email,omitempty"     validate:"omitnil,max=255" example:"ada@example.com"`
	Company   *string    `json:"company,omitempty"   validate:"omitnil,max=255" example:"Analytical Engines Ltd"`
	Notes     *string    `json:"notes,omitempty"                                example:"met at the Royal Society"`
	CreatedAt *Timestamp `json:"createdAt,omitempty" swaggertype:"string"       example:"2025-01-02T15:04:05Z"`
}

// UpdateContactInput is a partial update. Nil fields are left untouched.
// Name and Phone, when supplied, must not be empty.
type UpdateContactInput struct {
	Name    *string `json:"name,omitempty"    validate:"omitnil,min=1,max=128" example:"Ada King"`
	Gender  *string `json:"gender,omitempty"  validate:"omitnil,max=10"`
	Age     *int    `json:"age,omitempty"`
	Phone   *string `json:"phone,omitempty"   validate:"omitnil,min=1,max=20"`
	IDCard  *string `json:"idCard,omitempty"  validate:"omitnil,max=18"`
	Address *string `json:"address,omitempty"`
	Email   *string `json:"email,omitempty"   validate:"omitnil,max=255"`
	Company *string `json:"company,omitempty" validate:"omitnil,max=255"`
	Notes   *string `json:"notes,omitempty"`
}

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"   example:"name"`
	Rule    string `json:"rule"    example:"required"`
	Message string `json:"message" example:"name is required"`
}

// ValidationResult is the outcome of ValidateCreate / ValidateUpdate.
// An empty Errors slice means the input is acceptable.
type ValidationResult struct {
	Errors []FieldError
}

// OK reports whether validation passed.
func (r ValidationResult) OK() bool { return len(r.Errors) == 0 }

// Err returns nil when OK, otherwise a *ValidationError carrying the field errors.
func (r ValidationResult) Err() error {
	if r.OK() {
		return nil
	}
	return &ValidationError{Fields: r.Errors}
}

// ValidationError is returned for client-side input problems.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ValidateCreate normalizes in and checks it against the insert rules.
// The returned input is a normalized copy; in is not modified.
func ValidateCreate(in CreateContactInput) (CreateContactInput, ValidationResult) {
	out := in
	out.ID = nfcPtr(in.ID)
	out.Name = nfc(in.Name)
	out.Gender = nfcPtr(in.Gender)
	out.Phone = nfc(in.Phone)
	out.IDCard = nfcPtr(in.IDCard)
	out.Address = nfcPtr(in.Address)
	out.Email = nfcPtr(in.Email)
	out.Company = nfcPtr(in.Company)
	out.Notes = nfcPtr(in.Notes)
	return out, check(out)
}

// ValidateUpdate normalizes patch and checks it against the partial rules.
func ValidateUpdate(patch UpdateContactInput) (UpdateContactInput, ValidationResult) {
	out := UpdateContactInput{
		Name:    nfcPtr(patch.Name),
		Gender:  nfcPtr(patch.Gender),
		Age:     patch.Age,
		Phone:   nfcPtr(patch.Phone),
		IDCard:  nfcPtr(patch.IDCard),
		Address: nfcPtr(patch.Address),
		Email:   nfcPtr(patch.Email),
		Company: nfcPtr(patch.Company),
		Notes:   nfcPtr(patch.Notes),
	}
	return out, check(out)
}

// NewContact builds the row to insert from a validated input. id and now are
// used only when the input does not carry its own.
func (in CreateContactInput) NewContact(id string, now time.Time) Contact {
	c := Contact{
		ID:        id,
		Name:      in.Name,
		Gender:    in.Gender,
		Age:       in.Age,
		Phone:     in.Phone,
		IDCard:    in.IDCard,
		Address:   in.Address,
		Email:     in.Email,
		Company:   in.Company,
		Notes:     in.Notes,
		CreatedAt: now,
	}
	if in.ID != nil && *in.ID != "" {
		c.ID = *in.ID
	}
	if in.CreatedAt != nil && !in.CreatedAt.Time().IsZero() {
		c.CreatedAt = in.CreatedAt.Time().UTC()
	}
	return c
}

// Changes returns the column assignments for the supplied fields only.
func (p UpdateContactInput) Changes() map[string]any {
	m := make(map[string]any, 9)
	if p.Name != nil {
		m["name"] = *p.Name
	}
	if p.Gender != nil {
		m["gender"] = *p.Gender
	}
	if p.Age != nil {
		m["age"] = *p.Age
	}
	if p.Phone != nil {
		m["phone"] = *p.Phone
	}
	if p.IDCard != nil {
		m["id_card"] = *p.IDCard
	}
	if p.Address != nil {
		m["address"] = *p.Address
	}
	if p.Email != nil {
		m["email"] = *p.Email
	}
	if p.Company != nil {
		m["company"] = *p.Company
	}
	if p.Notes != nil {
		m["notes"] = *p.Notes
	}
	return m
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// validatorInstance returns the shared validator, reporting JSON field names.
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validate = v
	})
	return validate
}

func check(v any) ValidationResult {
	err := validatorInstance().Struct(v)
	if err == nil {
		return ValidationResult{}
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationResult{Errors: []FieldError{{Rule: "invalid", Message: err.Error()}}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: describe(fe),
		})
	}
	return ValidationResult{Errors: out}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must not be empty"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

func nfc(s string) string { return norm.NFC.String(s) }

func nfcPtr(p *string) *string {
	if p == nil {
		return nil
	}
	s := nfc(*p)
	return &s
}
