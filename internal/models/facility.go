package models

// Facility is one normalized health site. Nil sections and empty strings are
// dropped on serialization; fields inside a section are set only when the
// source value was present.
type Facility struct {
	ID             string          `json:"id,omitempty"`
	Name           string          `json:"name,omitempty"`
	Type           string          `json:"type,omitempty"`
	Location       *Location       `json:"location,omitempty"`
	Details        *Details        `json:"details,omitempty"`
	Services       *Services       `json:"services,omitempty"`
	Infrastructure *Infrastructure `json:"infrastructure,omitempty"`
	Metadata       *Metadata       `json:"metadata,omitempty"`
}

// Location holds coordinates and the postal address.
type Location struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	City      string   `json:"city,omitempty"`
	Address   string   `json:"address,omitempty"`
	Postcode  string   `json:"postcode,omitempty"`
}

// IsEmpty reports whether no location field was set.
func (l *Location) IsEmpty() bool {
	return l.Latitude == nil && l.Longitude == nil && l.City == "" && l.Address == "" && l.Postcode == ""
}

// Details holds operator, capacity and staffing information.
type Details struct {
	Operator          string   `json:"operator,omitempty"`
	OperatorType      string   `json:"operator_type,omitempty"`
	OperationalStatus string   `json:"operational_status,omitempty"`
	OpeningHours      string   `json:"opening_hours,omitempty"`
	Beds              *int     `json:"beds,omitempty"`
	StaffDoctors      *int     `json:"staff_doctors,omitempty"`
	StaffNurses       *int     `json:"staff_nurses,omitempty"`
	Specialities      []string `json:"specialities,omitempty"`
}

// IsEmpty reports whether no details field was set.
func (d *Details) IsEmpty() bool {
	return d.Operator == "" && d.OperatorType == "" && d.OperationalStatus == "" &&
		d.OpeningHours == "" && d.Beds == nil && d.StaffDoctors == nil &&
		d.StaffNurses == nil && len(d.Specialities) == 0
}

// Services holds the yes/no style service flags, kept as the source spelled them.
type Services struct {
	Dispensing string `json:"dispensing,omitempty"`
	Emergency  string `json:"emergency,omitempty"`
	Wheelchair string `json:"wheelchair,omitempty"`
	Insurance  string `json:"insurance,omitempty"`
}

// IsEmpty reports whether no service field was set.
func (s *Services) IsEmpty() bool {
	return s.Dispensing == "" && s.Emergency == "" && s.Wheelchair == "" && s.Insurance == ""
}

// Infrastructure holds utility availability.
type Infrastructure struct {
	WaterSource string `json:"water_source,omitempty"`
	Electricity string `json:"electricity,omitempty"`
}

// IsEmpty reports whether no infrastructure field was set.
func (i *Infrastructure) IsEmpty() bool {
	return i.WaterSource == "" && i.Electricity == ""
}

// Metadata carries provenance. Completeness is always serialized, so a
// metadata section is never empty.
type Metadata struct {
	Completeness float64 `json:"completeness"`
	OSMID        string  `json:"osm_id,omitempty"`
	LastUpdated  string  `json:"last_updated,omitempty"`
}
