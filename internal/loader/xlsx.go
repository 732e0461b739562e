package loader

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"healthsites/internal/models"
	"healthsites/pkg/utils"
)

// ReadXLSX parses one worksheet whose first row is the header.
// Rows with no content are skipped; excelize drops trailing empty cells,
// which buildTable pads back.
func ReadXLSX(r io.Reader, sheet string) (*models.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyInput
	}

	if sheet == "" {
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrSheetNotFound, sheet, strings.Join(sheets, ", "))
	}

	// Stored values, not number-formatted display text.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	var (
		header  []string
		records [][]string
		lines   []int
	)

	for i, rec := range rows {
		if isEmptyRecord(rec) {
			continue
		}

		if header == nil {
			header = rec
			continue
		}

		records = append(records, rec)
		lines = append(lines, i+1)
	}

	if header == nil {
		return nil, ErrEmptyInput
	}

	return buildTable(header, records, lines)
}

func isEmptyRecord(rec []string) bool {
	return !slices.ContainsFunc(rec, func(cell string) bool {
		return !utils.IsBlank(cell)
	})
}
