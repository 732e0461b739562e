package models

// Summary aggregates the emitted facilities.
// Field order is the key order of the serialized object.
type Summary struct {
	TotalFacilities int            `json:"total_facilities"`
	FacilityTypes   map[string]int `json:"facility_types"`
	ByLocation      map[string]int `json:"by_location"`
	DataQuality     DataQuality    `json:"data_quality"`
}

// DataQuality counts how many facilities carry key fields.
type DataQuality struct {
	WithCoordinates int `json:"with_coordinates"`
	WithName        int `json:"with_name"`
	WithOperator    int `json:"with_operator"`
}

// Document is the full output file.
type Document struct {
	Facilities []Facility `json:"facilities"`
	Summary    Summary    `json:"summary"`
}

// Sample is the compact output handed to the language model.
type Sample struct {
	Summary          Summary    `json:"summary"`
	SampleFacilities []Facility `json:"sample_facilities"`
}

// NewSummary returns a summary with initialized tallies.
func NewSummary() Summary {
	return Summary{
		FacilityTypes: make(map[string]int),
		ByLocation:    make(map[string]int),
	}
}
