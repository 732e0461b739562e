package normalizer

import (
	"errors"
	"fmt"
	"strings"

	"healthsites/internal/models"
)

// Validation errors.
var (
	ErrNilTable      = errors.New("invalid input: table is nil")
	ErrMissingColumn = errors.New("missing expected column")
)

// Validator checks the loaded table against the expected schema.
type Validator struct {
	required []string
}

// NewValidator creates a validator requiring every healthsites column.
func NewValidator() *Validator {
	return &Validator{required: models.Columns}
}

// Validate reports every required column absent from the header.
func (v *Validator) Validate(table *models.Table) error {
	if table == nil {
		return ErrNilTable
	}

	var missing []string

	for _, col := range v.required {
		if !table.HasColumn(col) {
			missing = append(missing, col)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	return nil
}
