package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"healthsites/internal/models"
)

// ReadCSV parses a comma separated table whose first record is the header.
func ReadCSV(r io.Reader) (*models.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}

		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var (
		records [][]string
		lines   []int
	)

	for {
		rec, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", readErr)
		}

		line, _ := reader.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}

	return buildTable(header, records, lines)
}
