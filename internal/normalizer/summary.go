package normalizer

import (
	"strings"

	"healthsites/internal/models"
)

// unknownType keys facilities whose type was filtered away. Transform never
// emits such a facility, so the key only appears for hand-built input.
const unknownType = "unknown"

// Summarize tallies facilities by type and city and counts key fields.
func Summarize(facilities []models.Facility) models.Summary {
	summary := models.NewSummary()
	summary.TotalFacilities = len(facilities)

	for i := range facilities {
		f := &facilities[i]

		if f.Location != nil && f.Location.Latitude != nil && *f.Location.Latitude != 0 {
			summary.DataQuality.WithCoordinates++
		}

		if f.Name != "" && !strings.HasPrefix(f.Name, UnnamedPrefix) {
			summary.DataQuality.WithName++
		}

		if f.Details != nil && f.Details.Operator != "" {
			summary.DataQuality.WithOperator++
		}
	}

	for i := range facilities {
		ftype := facilities[i].Type
		if ftype == "" {
			ftype = unknownType
		}

		summary.FacilityTypes[ftype]++
	}

	for i := range facilities {
		if loc := facilities[i].Location; loc != nil && loc.City != "" {
			summary.ByLocation[loc.City]++
		}
	}

	return summary
}
