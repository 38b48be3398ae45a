package domain

import (
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:domain_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestTableNames(t *testing.T) {
	if (Contact{}).TableName() != "contacts" {
		t.Fatalf("Contact.TableName() = %q; want %q", (Contact{}).TableName(), "contacts")
	}
	if (Idempotency{}).TableName() != "idempotency" {
		t.Fatalf("Idempotency.TableName() = %q; want %q", (Idempotency{}).TableName(), "idempotency")
	}
}

func TestContactMigration_ColumnsAndIndexes(t *testing.T) {
	db := newDomainDB(t)
	if err := db.AutoMigrate(&Contact{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()

	if !m.HasTable(&Contact{}) {
		t.Fatalf("contacts table missing")
	}
	for _, col := range []string{"id", "name", "gender", "age", "phone", "id_card", "address", "email", "company", "notes", "created_at", "updated_at"} {
		if !m.HasColumn(&Contact{}, col) {
			t.Fatalf("expected column %q", col)
		}
	}
	for _, idx := range []string{"contacts_name_idx", "contacts_phone_idx"} {
		if !m.HasIndex(&Contact{}, idx) {
			t.Fatalf("expected index %q", idx)
		}
	}
}

func TestContactInsert_LeavesUpdatedAtNull(t *testing.T) {
	db := newDomainDB(t)
	if err := db.AutoMigrate(&Contact{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	c := Contact{ID: "c1", Name: "Ada", Phone: "555-0100", CreatedAt: time.Now().UTC()}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("create: %v", err)
	}

	var got Contact
	if err := db.First(&got, "id = ?", "c1").Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.UpdatedAt != nil {
		t.Fatalf("UpdatedAt should be NULL after insert, got %v", *got.UpdatedAt)
	}
	if got.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt should be set")
	}
}

func TestContactInsert_RejectsMissingRequiredColumns(t *testing.T) {
	db := newDomainDB(t)
	if err := db.AutoMigrate(&Contact{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	// NOT NULL on name is enforced by the engine.
	err := db.Exec(`INSERT INTO contacts (id, phone, created_at) VALUES ('x', '1', CURRENT_TIMESTAMP)`).Error
	if err == nil {
		t.Fatalf("expected NOT NULL violation for missing name")
	}
}
