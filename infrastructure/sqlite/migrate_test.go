package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func TestApplyMigrationsCreatesSchema(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "stub.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if err := ApplyMigrations(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	for _, table := range []string{"inventory", "orders", "simulation_settings", "pick_runs"} {
		var name string
		err := db.WriteSQL.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "stub.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if err := ApplyMigrations(context.Background(), db); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := ApplyMigrations(context.Background(), db); err != nil {
		t.Fatalf("second run: %v", err)
	}

	var multiplier float64
	err = db.WriteSQL.QueryRow(`SELECT delivery_time_multiplier FROM simulation_settings WHERE id = 1`).Scan(&multiplier)
	if err != nil || multiplier != 1.0 {
		t.Fatalf("default settings row missing: %v (multiplier %g)", err, multiplier)
	}
}
