package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// StudyField names one of the parameters needed to build a study plan.
type StudyField string

const (
	StudyFieldSubjects      StudyField = "subjects"
	StudyFieldHoursPerDay   StudyField = "hoursPerDay"
	StudyFieldDaysAvailable StudyField = "daysAvailable"
)

// StudyFields lists every known field in canonical order.
var StudyFields = []StudyField{
	StudyFieldSubjects,
	StudyFieldHoursPerDay,
	StudyFieldDaysAvailable,
}

var (
	ErrUnknownStudyField = goerr.New("unknown study field")
	ErrInvalidParameters = goerr.New("invalid study parameters")
)

// ParseStudyField converts a raw name into a StudyField.
func ParseStudyField(s string) (StudyField, error) {
	for _, f := range StudyFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", goerr.Wrap(ErrUnknownStudyField, "failed to parse study field", goerr.V("field", s))
}

// StudyParameters is the input of plan generation.
type StudyParameters struct {
	Subjects      string
	HoursPerDay   int
	DaysAvailable int
}

// Missing returns the fields that are absent or not usable, in canonical order.
func (p StudyParameters) Missing() []StudyField {
	var missing []StudyField
	if strings.TrimSpace(p.Subjects) == "" {
		missing = append(missing, StudyFieldSubjects)
	}
	if p.HoursPerDay <= 0 {
		missing = append(missing, StudyFieldHoursPerDay)
	}
	if p.DaysAvailable <= 0 {
		missing = append(missing, StudyFieldDaysAvailable)
	}
	return missing
}

// Validate checks that all three parameters are present and positive.
func (p StudyParameters) Validate() error {
	if missing := p.Missing(); len(missing) > 0 {
		return goerr.Wrap(ErrInvalidParameters, "study parameters are incomplete",
			goerr.V("missing", missing))
	}
	return nil
}

// MissingFieldsReport lists the parameters the user still has to provide.
type MissingFieldsReport struct {
	Fields []StudyField
}

// Has reports whether the field is listed as missing.
func (r *MissingFieldsReport) Has(field StudyField) bool {
	for _, f := range r.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// ExtractionResult holds exactly one of Parameters or Missing.
type ExtractionResult struct {
	Parameters *StudyParameters
	Missing    *MissingFieldsReport
}
