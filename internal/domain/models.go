// Package domain defines the persistence model for contacts together with the
// input shapes accepted by the API and their validation rules. The Contact
// type is mapped with GORM and is the single source of truth for the table
// layout.
package domain

import (
	"time"
)

// Column bounds shared by the table definition and the validation rules.
const (
	MaxIDLen      = 36
	MaxNameLen    = 128
	MaxGenderLen  = 10
	MaxPhoneLen   = 20
	MaxIDCardLen  = 18
	MaxEmailLen   = 255
	MaxCompanyLen = 255
)

// Contact is a person's contact card.
//
// Fields:
//   - ID: UUID primary key (varchar(36)); generated by the server when absent.
//   - Name / Phone: required; both indexed to speed up search.
//   - Gender, Age, IDCard, Address, Email, Company, Notes: optional (NULL).
//   - CreatedAt: set once on insert, never changed.
//   - UpdatedAt: NULL until the first update, refreshed on every update.
//
// UpdatedAt is maintained by the repository, not by GORM, so that inserts
// leave it NULL.
type Contact struct {
	ID        string     `json:"id"        gorm:"type:varchar(36);primaryKey"`
	Name      string     `json:"name"      gorm:"type:varchar(128);not null;index:contacts_name_idx"`
	Gender    *string    `json:"gender"    gorm:"type:varchar(10)"`
	Age       *int       `json:"age"`
	Phone     string     `json:"phone"     gorm:"type:varchar(20);not null;index:contacts_phone_idx"`
	IDCard    *string    `json:"idCard"    gorm:"column:id_card;type:varchar(18)"`
	Address   *string    `json:"address"   gorm:"type:text"`
	Email     *string    `json:"email"     gorm:"type:varchar(255)"`
	Company   *string    `json:"company"   gorm:"type:varchar(255)"`
	Notes     *string    `json:"notes"     gorm:"type:text"`
	CreatedAt time.Time  `json:"createdAt" gorm:"not null;index"`
	UpdatedAt *time.Time `json:"updatedAt" gorm:"autoUpdateTime:false"`
}

// TableName returns the database table name for Contact.
func (Contact) TableName() string { return "contacts" }

// ContactFilters are exact-match predicates combined with AND.
// A nil field means "no constraint".
type ContactFilters struct {
	ID    *string
	Name  *string
	Phone *string
	Email *string
}

// ListOptions controls a page read of contacts.
type ListOptions struct {
	Skip    int
	Limit   int
	Search  string
	Filters ContactFilters
}
