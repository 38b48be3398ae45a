// Package repo implements the data persistence layer for contacts, backed by
// GORM. This file contains database bootstrapping helpers for the supported
// engines (SQLite via a pure Go driver, PostgreSQL, MySQL), schema migrations
// and optional demo seeding.
package repo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/go-contacts-backend/internal/config"
	"github.com/tbourn/go-contacts-backend/internal/domain"
)

// Open connects to the engine selected by cfg.Driver. When withTracing is
// set, every statement is recorded as an OpenTelemetry span.
func Open(cfg config.DBConfig, withTracing bool) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "", "sqlite":
		db, err = OpenSQLite(cfg.Path)
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	case "mysql":
		dsn, derr := mysqlDSN(cfg.DSN)
		if derr != nil {
			return nil, derr
		}
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("repo: unsupported driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Driver == "postgres" || cfg.Driver == "mysql" {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(25)
			sqlDB.SetMaxIdleConns(10)
			sqlDB.SetConnMaxIdleTime(5 * time.Minute)
			sqlDB.SetConnMaxLifetime(30 * time.Minute)
		}
	}

	if withTracing {
		if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// mysqlDSN makes UPDATE report matched rather than changed rows, which
// UpdateContact relies on to tell a missing row from a no-op write, and
// scans DATETIME columns into time.Time.
func mysqlDSN(dsn string) (string, error) {
	c, err := gomysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("repo: invalid mysql DSN: %w", err)
	}
	c.ClientFoundRows = true
	c.ParseTime = true
	return c.FormatDSN(), nil
}

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// AutoMigrate creates or updates the contacts and idempotency tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Contact{},
		&domain.Idempotency{},
	)
}

// SeedContacts inserts a small set of demo contacts when the contacts table is
// empty and returns how many rows were written. A non-empty table is left
// untouched.
func SeedContacts(ctx context.Context, db *gorm.DB) (int, error) {
	var n int64
	if err := db.WithContext(ctx).Model(&domain.Contact{}).Count(&n).Error; err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	demo := []domain.CreateContactInput{
		{Name: "张三", Phone: "13800138000", Gender: ptr("男"), Age: ptr(28), Email: ptr("zhangsan@example.com"), Company: ptr("示例科技有限公司"), Address: ptr("北京市朝阳区")},
		{Name: "李四", Phone: "13900139000", Gender: ptr("女"), Age: ptr(32), Email: ptr("lisi@example.com"), Company: ptr("示例贸易公司"), Notes: ptr("重要客户")},
		{Name: "Ada Lovelace", Phone: "+44 20 7946 0000", Gender: ptr("female"), Age: ptr(36), Email: ptr("ada@example.org")},
		{Name: "Alan Turing", Phone: "+44 161 496 0000", Gender: ptr("male"), Age: ptr(41), Company: ptr("Bletchley Park")},
	}

	// Distinct created_at values keep the demo order stable.
	base := time.Now().UTC().Add(-time.Duration(len(demo)) * time.Minute)
	rows := make([]domain.Contact, 0, len(demo))
	for i, in := range demo {
		rows = append(rows, in.NewContact(newID(), base.Add(time.Duration(i)*time.Minute)))
	}
	if err := db.WithContext(ctx).Create(&rows).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}

func ptr[T any](v T) *T { return &v }
