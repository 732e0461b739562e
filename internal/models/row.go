// Package models defines the input rows and the normalized output documents.
package models

// Source column names as they appear in the healthsites export.
// "Lattitude" is misspelled upstream and must be matched verbatim.
const (
	ColUUID               = "uuid"
	ColName               = "name"
	ColAmenity            = "amenity"
	ColHealthcare         = "healthcare"
	ColLatitude           = "Lattitude"
	ColLongitude          = "Longitude"
	ColCity               = "addr_city"
	ColStreet             = "addr_street"
	ColPostcode           = "addr_postcode"
	ColOperator           = "operator"
	ColOperatorType       = "operator_type"
	ColOperationalStatus  = "operational_status"
	ColOpeningHours       = "opening_hours"
	ColBeds               = "beds"
	ColStaffDoctors       = "staff_doctors"
	ColStaffNurses        = "staff_nurses"
	ColSpeciality         = "speciality"
	ColDispensing         = "dispensing"
	ColEmergency          = "emergency"
	ColWheelchair         = "wheelchair"
	ColInsurance          = "insurance"
	ColWaterSource        = "water_source"
	ColElectricity        = "electricity"
	ColCompleteness       = "completeness"
	ColOSMID              = "osm_id"
	ColChangesetTimestamp = "changeset_timestamp"
)

// Columns lists every column the normalizer reads, in export order.
var Columns = []string{
	ColUUID, ColName, ColAmenity, ColHealthcare, ColLatitude, ColLongitude,
	ColCity, ColStreet, ColPostcode, ColOperator, ColOperatorType,
	ColOperationalStatus, ColOpeningHours, ColBeds, ColStaffDoctors,
	ColStaffNurses, ColSpeciality, ColDispensing, ColEmergency, ColWheelchair,
	ColInsurance, ColWaterSource, ColElectricity, ColCompleteness, ColOSMID,
	ColChangesetTimestamp,
}

// Row is one raw record keyed by column name. Missing keys read as blank.
type Row map[string]string

// Get returns the raw value of a column, or "" when the column is absent.
func (r Row) Get(column string) string {
	return r[column]
}

// Table is the loaded source: the header in file order and the data rows.
type Table struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the header contains the given column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}

	return false
}
