// Package loader reads the healthsites export into an in-memory table.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"healthsites/internal/models"
)

// Loader errors.
var (
	ErrInputNotFound      = errors.New("input file not found")
	ErrEmptyInput         = errors.New("input has no header row")
	ErrRowTooLong         = errors.New("row has more fields than the header")
	ErrUnsupportedFormat  = errors.New("unsupported input format")
	ErrUnsupportedCharset = errors.New("unsupported input encoding")
	ErrSheetNotFound      = errors.New("sheet not found")
)

const utf8BOM = "\ufeff"

// Options selects how the input is decoded.
type Options struct {
	// Format is "csv" or "xlsx".
	Format string
	// Encoding applies to CSV only; XLSX is always UTF-8.
	Encoding string
	// Sheet names the XLSX sheet; empty means the first one.
	Sheet string
}

// Load opens path and parses it according to opts.
func Load(path string, opts Options) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}

		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(opts.Format) {
	case "", "csv":
		r, decErr := DecodeReader(f, opts.Encoding)
		if decErr != nil {
			return nil, decErr
		}

		return ReadCSV(r)
	case "xlsx":
		return ReadXLSX(f, opts.Sheet)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, opts.Format)
	}
}

// DecodeReader wraps r so that it yields UTF-8 for the named encoding.
func DecodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
		return r, nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1.NewDecoder().Reader(r), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(r), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCharset, encoding)
	}
}

// buildTable turns a header and raw records into keyed rows.
// Short records are padded with blanks; long ones are rejected.
// lines[i] is the source line of records[i], used in error messages.
func buildTable(header []string, records [][]string, lines []int) (*models.Table, error) {
	if len(header) == 0 {
		return nil, ErrEmptyInput
	}

	columns := make([]string, len(header))
	copy(columns, header)
	columns[0] = strings.TrimPrefix(columns[0], utf8BOM)

	table := &models.Table{
		Columns: columns,
		Rows:    make([]models.Row, 0, len(records)),
	}

	for i, rec := range records {
		if len(rec) > len(columns) {
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d",
				ErrRowTooLong, lines[i], len(rec), len(columns))
		}

		row := make(models.Row, len(columns))

		for j, col := range columns {
			if _, seen := row[col]; seen {
				continue
			}

			if j < len(rec) {
				row[col] = rec[j]
			} else {
				row[col] = ""
			}
		}

		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
