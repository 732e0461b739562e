package normalizer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"healthsites/internal/models"
	"healthsites/pkg/utils"
)

// ErrMalformedValue is returned when a numeric column cannot be parsed.
var ErrMalformedValue = errors.New("malformed value")

// UnnamedPrefix starts the name given to facilities without one.
const UnnamedPrefix = "Unnamed"

// Transformer maps raw rows to facilities.
type Transformer struct{}

// NewTransformer creates a new transformer instance.
func NewTransformer() *Transformer {
	return &Transformer{}
}

// Transform converts one row. It returns nil without error when the row has
// neither an amenity nor a healthcare type. line is the 1-based data row
// number used in error messages.
func (t *Transformer) Transform(row models.Row, line int) (*models.Facility, error) {
	facilityType := utils.FirstPresent(row.Get(models.ColAmenity), row.Get(models.ColHealthcare))
	if facilityType == "" {
		return nil, nil
	}

	p := fieldParser{row: row, line: line}

	facility := &models.Facility{
		ID:   p.text(models.ColUUID),
		Name: p.text(models.ColName),
		Type: facilityType,
	}

	if facility.Name == "" {
		facility.Name = UnnamedPrefix + " " + facilityType
	}

	location := &models.Location{
		Latitude:  p.number(models.ColLatitude),
		Longitude: p.number(models.ColLongitude),
		City:      p.text(models.ColCity),
		Address:   p.text(models.ColStreet),
		Postcode:  p.text(models.ColPostcode),
	}

	details := &models.Details{
		Operator:          p.text(models.ColOperator),
		OperatorType:      p.text(models.ColOperatorType),
		OperationalStatus: p.text(models.ColOperationalStatus),
		OpeningHours:      p.text(models.ColOpeningHours),
		Beds:              p.integer(models.ColBeds),
		StaffDoctors:      p.integer(models.ColStaffDoctors),
		StaffNurses:       p.integer(models.ColStaffNurses),
		Specialities:      p.list(models.ColSpeciality, ";"),
	}

	services := &models.Services{
		Dispensing: p.text(models.ColDispensing),
		Emergency:  p.text(models.ColEmergency),
		Wheelchair: p.text(models.ColWheelchair),
		Insurance:  p.text(models.ColInsurance),
	}

	infrastructure := &models.Infrastructure{
		WaterSource: p.text(models.ColWaterSource),
		Electricity: p.text(models.ColElectricity),
	}

	metadata := &models.Metadata{
		OSMID:       p.text(models.ColOSMID),
		LastUpdated: p.text(models.ColChangesetTimestamp),
	}
	if c := p.number(models.ColCompleteness); c != nil {
		metadata.Completeness = *c
	}

	if p.err != nil {
		return nil, p.err
	}

	// Drop empty sections; fields inside a kept section are not filtered again.
	if !location.IsEmpty() {
		facility.Location = location
	}

	if !details.IsEmpty() {
		facility.Details = details
	}

	if !services.IsEmpty() {
		facility.Services = services
	}

	if !infrastructure.IsEmpty() {
		facility.Infrastructure = infrastructure
	}

	facility.Metadata = metadata

	return facility, nil
}

// fieldParser reads typed values from a row and keeps the first error.
type fieldParser struct {
	err  error
	row  models.Row
	line int
}

func (p *fieldParser) text(col string) string {
	v := p.row.Get(col)
	if utils.IsMissing(v) {
		return ""
	}

	return v
}

func (p *fieldParser) list(col, sep string) []string {
	v := p.text(col)
	if v == "" {
		return nil
	}

	return strings.Split(v, sep)
}

func (p *fieldParser) number(col string) *float64 {
	v := p.text(col)
	if v == "" || p.err != nil {
		return nil
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		p.fail(col, v)
		return nil
	}

	return &f
}

// integer truncates any finite number toward zero, so "12.0" and "12.5"
// both give 12. Only non-numeric text or values outside int are malformed.
func (p *fieldParser) integer(col string) *int {
	v := p.text(col)
	if v == "" || p.err != nil {
		return nil
	}

	trimmed := strings.TrimSpace(v)

	if n, err := strconv.Atoi(trimmed); err == nil {
		return &n
	}

	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(f) || f < math.MinInt || f >= math.MaxInt {
		p.fail(col, v)
		return nil
	}

	n := int(math.Trunc(f))

	return &n
}

func (p *fieldParser) fail(col, value string) {
	p.err = fmt.Errorf("%w: row %d column %s: %q", ErrMalformedValue, p.line, col, utils.TruncateString(value, 40))
}
