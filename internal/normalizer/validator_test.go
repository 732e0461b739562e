package normalizer

import (
	"errors"
	"strings"
	"testing"

	"healthsites/internal/models"
)

func TestNewValidator(t *testing.T) {
	v := NewValidator()
	if v == nil {
		t.Fatal("NewValidator returned nil")
	}
}

func TestValidator_Validate(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(newTable()); err != nil {
		t.Errorf("Validate returned unexpected error for full header: %v", err)
	}
}

func TestValidator_Validate_Errors(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		table    *models.Table
		wantErr  error
		wantText []string
	}{
		{
			name:    "Nil table",
			table:   nil,
			wantErr: ErrNilTable,
		},
		{
			name:     "Misspelled latitude",
			table:    &models.Table{Columns: replace(models.Columns, models.ColLatitude, "Latitude")},
			wantErr:  ErrMissingColumn,
			wantText: []string{"Lattitude"},
		},
		{
			name:     "Several missing",
			table:    &models.Table{Columns: []string{"uuid", "name"}},
			wantErr:  ErrMissingColumn,
			wantText: []string{"amenity", "healthcare", "changeset_timestamp"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.table)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate error = %v, want %v", err, tt.wantErr)
			}

			for _, s := range tt.wantText {
				if !strings.Contains(err.Error(), s) {
					t.Errorf("Validate error = %v, want substring %v", err, s)
				}
			}
		})
	}
}

func replace(cols []string, from, to string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		if c == from {
			c = to
		}

		out[i] = c
	}

	return out
}
