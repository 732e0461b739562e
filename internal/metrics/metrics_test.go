package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.Observe(10, 2, map[string]int{"clinic": 5, "pharmacy": 3}, 1500*time.Millisecond, time.Unix(1700000000, 0))

	path := filepath.Join(t.TempDir(), "healthsites.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read textfile: %v", err)
	}

	out := string(data)
	for _, want := range []string{
		"healthsites_rows_loaded_total 10",
		"healthsites_rows_skipped_total 2",
		`healthsites_facilities_emitted_total{type="clinic"} 5`,
		`healthsites_facilities_emitted_total{type="pharmacy"} 3`,
		"healthsites_run_duration_seconds 1.5",
		"healthsites_last_success_timestamp_seconds 1.7e+09",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Textfile missing %q:\n%s", want, out)
		}
	}
}

func TestRecorder_Gatherer(t *testing.T) {
	r := NewRecorder()
	r.Observe(1, 0, nil, time.Second, time.Now())

	families, err := r.Gatherer().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	// CounterVec without children is not exported
	if len(families) != 4 {
		t.Errorf("Expected 4 metric families, got %d", len(families))
	}
}
