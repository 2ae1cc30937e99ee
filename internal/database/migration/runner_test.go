package migration

import (
	"testing"
	"testing/fstest"

	"skill-swap/migrations"
)

func TestLoad_OrdersAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"V2__second.sql": {Data: []byte("SELECT 2;")},
		"V1__first.sql":  {Data: []byte("  SELECT 1;  ")},
		"README.md":      {Data: []byte("ignored")},
		"v3_bad.sql":     {Data: []byte("ignored")},
	}

	migs, err := Load(fsys)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 2 || migs[0].Version != 1 || migs[1].Version != 2 {
		t.Fatalf("unexpected migrations: %+v", migs)
	}
	if migs[0].SQL != "SELECT 1;" || migs[0].Name != "first" {
		t.Fatalf("unexpected first migration: %+v", migs[0])
	}
}

func TestLoad_RejectsEmptyAndDuplicates(t *testing.T) {
	if _, err := Load(fstest.MapFS{"V1__empty.sql": {Data: []byte("  ")}}); err == nil {
		t.Fatalf("expected error for empty migration")
	}
	dup := fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 1;")},
	}
	if _, err := Load(dup); err == nil {
		t.Fatalf("expected error for duplicate version")
	}
}

func TestLoad_EmbeddedSchema(t *testing.T) {
	migs, err := Load(migrations.FS)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) == 0 || migs[0].Version != 1 {
		t.Fatalf("expected embedded V1 migration, got %+v", migs)
	}
}
