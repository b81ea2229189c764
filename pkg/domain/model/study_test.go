package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/studymate/pkg/domain/model"
)

func TestStudyParametersMissing(t *testing.T) {
	tests := []struct {
		name     string
		params   model.StudyParameters
		expected []model.StudyField
	}{
		{
			name:   "complete",
			params: model.StudyParameters{Subjects: "Math", HoursPerDay: 2, DaysAvailable: 5},
		},
		{
			name:     "blank subjects",
			params:   model.StudyParameters{Subjects: "   ", HoursPerDay: 2, DaysAvailable: 5},
			expected: []model.StudyField{model.StudyFieldSubjects},
		},
		{
			name:     "zero hours and negative days",
			params:   model.StudyParameters{Subjects: "Math", HoursPerDay: 0, DaysAvailable: -1},
			expected: []model.StudyField{model.StudyFieldHoursPerDay, model.StudyFieldDaysAvailable},
		},
		{
			name:     "empty",
			expected: model.StudyFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			missing := tt.params.Missing()
			gt.Array(t, missing).Length(len(tt.expected))
			for i := range tt.expected {
				gt.Value(t, missing[i]).Equal(tt.expected[i])
			}

			err := tt.params.Validate()
			if len(tt.expected) == 0 {
				gt.NoError(t, err)
			} else {
				gt.Bool(t, errors.Is(err, model.ErrInvalidParameters)).True()
			}
		})
	}
}

func TestParseStudyField(t *testing.T) {
	f, err := model.ParseStudyField("hoursPerDay")
	gt.NoError(t, err).Required()
	gt.Value(t, f).Equal(model.StudyFieldHoursPerDay)

	_, err = model.ParseStudyField("hours_per_day")
	gt.Bool(t, errors.Is(err, model.ErrUnknownStudyField)).True()
}

func TestMissingFieldsReportHas(t *testing.T) {
	r := &model.MissingFieldsReport{Fields: []model.StudyField{model.StudyFieldDaysAvailable}}
	gt.Bool(t, r.Has(model.StudyFieldDaysAvailable)).True()
	gt.Bool(t, r.Has(model.StudyFieldSubjects)).False()
}
