package storage

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"healthsites/internal/models"
)

func TestCreateTableSQL_QuotesIdentifiers(t *testing.T) {
	q := createTableSQL("health_sites")

	for _, want := range []string{`"health_sites"`, `"idx_health_sites_type"`, `"idx_health_sites_city"`, "JSONB"} {
		if !strings.Contains(q, want) {
			t.Errorf("CREATE statement missing %s:\n%s", want, q)
		}
	}
}

func TestNewPostgresWriter_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := NewPostgresWriter(ctx, "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1", "facilities", nil)
	if err == nil {
		t.Fatal("Expected ping error for unreachable database")
	}
}

// Runs only against a real database: HEALTHSITES_TEST_DSN=postgres://...
func TestPostgresWriter_SaveFacilities(t *testing.T) {
	dsn := os.Getenv("HEALTHSITES_TEST_DSN")
	if dsn == "" {
		t.Skip("HEALTHSITES_TEST_DSN not set")
	}

	ctx := context.Background()

	w, err := NewPostgresWriter(ctx, dsn, "facilities_test", nil)
	if err != nil {
		t.Fatalf("NewPostgresWriter failed: %v", err)
	}
	defer w.Close()

	facilities := []models.Facility{
		{ID: "a", Name: "Zomba Central", Type: "hospital", Location: &models.Location{City: "Zomba"}},
		{Name: "Unnamed pharmacy", Type: "pharmacy"},
	}

	for range 2 {
		if err := w.SaveFacilities(ctx, facilities); err != nil {
			t.Fatalf("SaveFacilities failed: %v", err)
		}
	}

	var count int
	if err := w.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "facilities_test"`).Scan(&count); err != nil {
		t.Fatalf("Count failed: %v", err)
	}

	if count != len(facilities) {
		t.Errorf("Expected %d rows after replace, got %d", len(facilities), count)
	}

	var city sql.NullString
	if err := w.db.QueryRowContext(ctx, `SELECT city FROM "facilities_test" WHERE position = 1`).Scan(&city); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	if city.Valid {
		t.Errorf("Expected NULL city, got %q", city.String)
	}
}
