package domain

import "time"

// Idempotency records the result of a previously processed unsafe request,
// keyed by (scope, key). Scope names the operation (e.g. "contacts:create")
// so the same client key can be reused across unrelated endpoints.
// ContactID points at the resource that the original request produced.
//
// Key is stored as idem_key because KEY is reserved in MySQL.
type Idempotency struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	Scope     string    `gorm:"type:varchar(64);not null;uniqueIndex:ux_idem_scope_key,priority:1"`
	Key       string    `gorm:"column:idem_key;type:varchar(255);not null;uniqueIndex:ux_idem_scope_key,priority:2"`
	ContactID string    `gorm:"type:varchar(36);not null"`
	Status    int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
