// Package formatter renders the human-readable console report.
package formatter

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"healthsites/internal/models"
	"healthsites/pkg/utils"
)

// maxLabelWidth caps the display width of a type label in the table.
const maxLabelWidth = 40

// TypeCount is one row of the facility type table.
type TypeCount struct {
	Type  string
	Count int
}

// SortedTypes orders facility types by count descending, then by name.
func SortedTypes(summary models.Summary) []TypeCount {
	counts := make([]TypeCount, 0, len(summary.FacilityTypes))
	for t, n := range summary.FacilityTypes {
		counts = append(counts, TypeCount{Type: t, Count: n})
	}

	slices.SortFunc(counts, func(a, b TypeCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}

		return cmp.Compare(a.Type, b.Type)
	})

	return counts
}

// FormatLoad describes the loaded table.
func FormatLoad(table *models.Table, source string) string {
	return fmt.Sprintf("📂 Loaded %d records from %s\nColumns: [%s]\n",
		len(table.Rows), source, strings.Join(table.Columns, ", "))
}

// FormatSummary renders totals, data quality and the per-type table.
func FormatSummary(summary models.Summary) string {
	var sb strings.Builder

	sb.WriteString("\n=== Data Summary ===\n")
	fmt.Fprintf(&sb, "Total facilities: %d\n", summary.TotalFacilities)
	fmt.Fprintf(&sb, "With coordinates: %d\n", summary.DataQuality.WithCoordinates)
	fmt.Fprintf(&sb, "With names: %d\n", summary.DataQuality.WithName)
	fmt.Fprintf(&sb, "With operators: %d\n", summary.DataQuality.WithOperator)
	sb.WriteString("\nFacility types:\n")

	counts := SortedTypes(summary)

	labels := make([]string, len(counts))
	labelWidth, countWidth := 0, 0

	for i, tc := range counts {
		labels[i] = runewidth.Truncate(utils.NormalizeWhitespace(tc.Type), maxLabelWidth, "…")
		labelWidth = max(labelWidth, runewidth.StringWidth(labels[i]))
		countWidth = max(countWidth, len(strconv.Itoa(tc.Count)))
	}

	for i, tc := range counts {
		fmt.Fprintf(&sb, "  %s  %*d\n", runewidth.FillRight(labels[i], labelWidth), countWidth, tc.Count)
	}

	return sb.String()
}

// FormatOutputs confirms where both documents were written.
func FormatOutputs(fullPath, samplePath string, sampleSizeKB float64) string {
	return fmt.Sprintf("\n✓ Saved processed data to %s\n✓ Saved LLM-ready version to %s\n\nFile size: %.1f KB\n",
		fullPath, samplePath, sampleSizeKB)
}
