// Package dbtest opens throwaway sqlite databases carrying the service schema.
package dbtest

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// sqlite cannot AutoMigrate the postgres array columns, so the schema mirrors the goose migrations by hand.
var schema = []string{
	`CREATE TABLE attribute_groups (
		id TEXT PRIMARY KEY,
		store_id TEXT NOT NULL,
		name TEXT NOT NULL,
		attribute_key TEXT NOT NULL,
		display_order INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE attribute_values (
		id TEXT PRIMARY KEY,
		group_id TEXT NOT NULL REFERENCES attribute_groups(id) ON DELETE CASCADE,
		value TEXT NOT NULL,
		swatch_color TEXT,
		display_order INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (group_id, value)
	)`,
	`CREATE TABLE variations (
		id TEXT PRIMARY KEY,
		store_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		sku TEXT,
		color TEXT,
		size TEXT,
		material TEXT,
		custom_attribute_value TEXT,
		swatch_color TEXT,
		price_adjustment TEXT NOT NULL DEFAULT '0',
		stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		is_active BOOLEAN NOT NULL DEFAULT 1,
		is_grade BOOLEAN NOT NULL DEFAULT 0,
		grade_name TEXT,
		grade_color TEXT,
		grade_sizes TEXT,
		grade_pairs TEXT,
		display_order INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE grade_configs (
		variation_id TEXT PRIMARY KEY,
		store_id TEXT NOT NULL,
		allow_full_grade BOOLEAN NOT NULL DEFAULT 1,
		allow_half_grade BOOLEAN NOT NULL DEFAULT 0,
		allow_custom_mix BOOLEAN NOT NULL DEFAULT 0,
		half_grade_percentage INTEGER NOT NULL DEFAULT 50,
		half_grade_min_pairs INTEGER NOT NULL DEFAULT 1,
		half_grade_distribution TEXT NOT NULL DEFAULT 'auto',
		half_grade_custom_sizes TEXT,
		half_grade_custom_pairs TEXT,
		custom_mix_min_pairs INTEGER NOT NULL DEFAULT 6,
		custom_mix_max_colors INTEGER NOT NULL DEFAULT 3,
		custom_mix_allow_any_size BOOLEAN NOT NULL DEFAULT 1,
		custom_mix_preset_sizes TEXT,
		custom_mix_price_adjustment TEXT,
		pricing_mode TEXT NOT NULL DEFAULT 'flat',
		apply_quantity_tiers BOOLEAN NOT NULL DEFAULT 0,
		tier_calculation_mode TEXT NOT NULL DEFAULT 'per_order',
		half_grade_discount_percentage REAL,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE product_pricing (
		product_id TEXT PRIMARY KEY,
		store_id TEXT NOT NULL,
		price_model TEXT NOT NULL DEFAULT 'retail_only',
		base_price TEXT NOT NULL,
		wholesale_price TEXT NOT NULL DEFAULT '0',
		min_wholesale_qty INTEGER NOT NULL DEFAULT 1,
		use_bootstrap_tiers BOOLEAN NOT NULL DEFAULT 1,
		updated_at DATETIME
	)`,
	`CREATE TABLE price_tiers (
		id TEXT PRIMARY KEY,
		product_id TEXT NOT NULL REFERENCES product_pricing(product_id) ON DELETE CASCADE,
		slot_index INTEGER NOT NULL,
		name TEXT NOT NULL,
		min_quantity INTEGER NOT NULL,
		price TEXT NOT NULL,
		enabled BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		UNIQUE (product_id, slot_index)
	)`,
}

// Open returns an isolated in-memory database with every table created.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := "file:gradeflow_" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	for _, stmt := range schema {
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create schema: %v", err)
		}
	}
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}
