package usecase_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/studymate/pkg/usecase"
)

func TestErrors_ErrorsAreDistinct(t *testing.T) {
	errs := []error{
		usecase.ErrInvalidExtraction,
		usecase.ErrEmptyCompletion,
		usecase.ErrCalendarNotConfigured,
		usecase.ErrTooManyCalendarDays,
		usecase.ErrDocumentsNotConfigured,
	}

	for i, a := range errs {
		for j, b := range errs {
			gt.Value(t, errors.Is(a, b)).Equal(i == j)
		}
	}
}
