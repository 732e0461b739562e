// Package storage writes normalized facilities to files and databases.
package storage

import (
	"context"

	"healthsites/internal/models"
)

// FacilitySink stores the full facility list, replacing what it held before.
type FacilitySink interface {
	SaveFacilities(ctx context.Context, facilities []models.Facility) error
	Close() error
}
