package normalizer

import (
	"testing"

	"healthsites/internal/models"
)

func ptr[T any](v T) *T {
	return &v
}

func TestSummarize(t *testing.T) {
	facilities := []models.Facility{
		{
			Name:     "Bwaila Hospital",
			Type:     "hospital",
			Location: &models.Location{Latitude: ptr(-13.98), City: "Lilongwe"},
			Details:  &models.Details{Operator: "MoH"},
		},
		{
			Name:     "Unnamed pharmacy",
			Type:     "pharmacy",
			Location: &models.Location{Latitude: ptr(0.0), City: "Blantyre"},
		},
		{
			Name:     "Area 18 Pharmacy",
			Type:     "pharmacy",
			Location: &models.Location{City: "Lilongwe"},
		},
		{
			Name: "Mobile clinic",
		},
	}

	s := Summarize(facilities)

	if s.TotalFacilities != 4 {
		t.Errorf("TotalFacilities = %d, want 4", s.TotalFacilities)
	}

	wantTypes := map[string]int{"hospital": 1, "pharmacy": 2, "unknown": 1}
	for k, v := range wantTypes {
		if s.FacilityTypes[k] != v {
			t.Errorf("FacilityTypes[%s] = %d, want %d", k, s.FacilityTypes[k], v)
		}
	}

	if len(s.ByLocation) != 2 || s.ByLocation["Lilongwe"] != 2 || s.ByLocation["Blantyre"] != 1 {
		t.Errorf("ByLocation = %v", s.ByLocation)
	}

	// zero latitude does not count as coordinates
	if s.DataQuality.WithCoordinates != 1 {
		t.Errorf("WithCoordinates = %d, want 1", s.DataQuality.WithCoordinates)
	}

	if s.DataQuality.WithName != 3 {
		t.Errorf("WithName = %d, want 3", s.DataQuality.WithName)
	}

	if s.DataQuality.WithOperator != 1 {
		t.Errorf("WithOperator = %d, want 1", s.DataQuality.WithOperator)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	if s.TotalFacilities != 0 || s.FacilityTypes == nil || s.ByLocation == nil {
		t.Errorf("Empty summary should have zero total and non-nil maps: %+v", s)
	}
}
