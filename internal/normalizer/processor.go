// Package normalizer turns healthsites rows into facility documents.
package normalizer

import (
	"fmt"

	"healthsites/internal/logger"
	"healthsites/internal/models"
)

// DefaultSampleSize is the number of facilities in the sample document.
const DefaultSampleSize = 50

// Processor validates a table and builds both output documents from it.
type Processor struct {
	validator   *Validator
	transformer *Transformer
	logger      *logger.Logger
	sampleSize  int
}

// Stats counts what happened to the input rows.
type Stats struct {
	RowsLoaded        int
	RowsSkipped       int
	FacilitiesEmitted int
}

// Result holds the two output documents of one run.
type Result struct {
	Document *models.Document
	Sample   *models.Sample
	Stats    Stats
}

// NewProcessor creates a processor. A negative sampleSize selects the default.
func NewProcessor(sampleSize int, log *logger.Logger) *Processor {
	if sampleSize < 0 {
		sampleSize = DefaultSampleSize
	}

	if log == nil {
		log = logger.Discard()
	}

	return &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(),
		logger:      log,
		sampleSize:  sampleSize,
	}
}

// Process transforms every row in input order. One malformed row fails the
// whole table.
func (p *Processor) Process(table *models.Table) (*Result, error) {
	// 1. Validate the schema
	if err := p.validator.Validate(table); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// 2. Transform the rows
	facilities := make([]models.Facility, 0, len(table.Rows))
	stats := Stats{RowsLoaded: len(table.Rows)}

	for i, row := range table.Rows {
		facility, err := p.transformer.Transform(row, i+1)
		if err != nil {
			return nil, fmt.Errorf("transformation failed: %w", err)
		}

		if facility == nil {
			stats.RowsSkipped++
			p.logger.Debug("Skipping row without facility type", "row", i+1, "uuid", row.Get(models.ColUUID))

			continue
		}

		facilities = append(facilities, *facility)
	}

	stats.FacilitiesEmitted = len(facilities)

	// 3. Summarize
	summary := Summarize(facilities)

	n := min(p.sampleSize, len(facilities))

	return &Result{
		Document: &models.Document{
			Facilities: facilities,
			Summary:    summary,
		},
		Sample: &models.Sample{
			Summary:          summary,
			SampleFacilities: facilities[:n:n],
		},
		Stats: stats,
	}, nil
}
