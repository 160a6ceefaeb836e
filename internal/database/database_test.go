package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ndewijer/stock-portfolio-tracker/internal/database"
)

// TestMigrate_CreatesStockTable tests that migrations produce the holding schema.
//
// WHY: The store relies on stock_table existing with Ticker as its primary
// key; without it upserts cannot resolve conflicts by ticker.
func TestMigrate_CreatesStockTable(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "stocks.db"))
	if err != nil {
		t.Fatalf("Open() returned unexpected error: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("Migrate() returned unexpected error: %v", err)
	}

	rows, err := db.Query("PRAGMA table_info(stock_table)")
	if err != nil {
		t.Fatalf("Failed to read table info: %v", err)
	}
	defer rows.Close()

	columns := map[string]string{}
	primaryKey := ""
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue any
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			t.Fatalf("Failed to scan table info: %v", err)
		}
		columns[name] = colType
		if pk == 1 {
			primaryKey = name
		}
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Failed to iterate table info: %v", err)
	}

	want := map[string]string{"Ticker": "TEXT", "Exchange": "TEXT", "Quantity": "INTEGER"}
	for name, typ := range want {
		if columns[name] != typ {
			t.Errorf("Expected column %s of type %s, got %q", name, typ, columns[name])
		}
	}
	if primaryKey != "Ticker" {
		t.Errorf("Expected Ticker to be the primary key, got %q", primaryKey)
	}
}

// TestMigrate_Idempotent tests that re-running migrations is harmless.
//
// WHY: Every CLI invocation migrates before its first query.
func TestMigrate_Idempotent(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "stocks.db"))
	if err != nil {
		t.Fatalf("Open() returned unexpected error: %v", err)
	}
	defer db.Close()

	for i := 0; i < 2; i++ {
		if err := database.Migrate(context.Background(), db); err != nil {
			t.Fatalf("Migrate() run %d returned unexpected error: %v", i+1, err)
		}
	}

	if err := database.HealthCheck(context.Background(), db); err != nil {
		t.Errorf("HealthCheck() returned unexpected error: %v", err)
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := database.Open(filepath.Join(t.TempDir(), "missing", "dir", "stocks.db"))
	if err == nil {
		t.Error("Expected error opening a database in a missing directory, got nil")
	}
}

func TestOpen_AppliesPragmas(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "stocks.db"))
	if err != nil {
		t.Fatalf("Open() returned unexpected error: %v", err)
	}
	defer db.Close()

	var timeout int
	if err := db.QueryRow("PRAGMA busy_timeout").Scan(&timeout); err != nil {
		t.Fatalf("Failed to read busy_timeout: %v", err)
	}
	if timeout != 5000 {
		t.Errorf("Expected busy_timeout 5000, got %d", timeout)
	}
}

func TestSchemaVersion(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "stocks.db"))
	if err != nil {
		t.Fatalf("Open() returned unexpected error: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("Migrate() returned unexpected error: %v", err)
	}

	v, err := database.SchemaVersion(context.Background(), db)
	if err != nil {
		t.Fatalf("SchemaVersion() returned unexpected error: %v", err)
	}
	if v != 1 {
		t.Errorf("Expected schema version 1, got %d", v)
	}
}
