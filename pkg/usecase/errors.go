package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Extraction errors
	ErrInvalidExtraction = errors.New("invalid extraction result")

	// Completion errors
	ErrEmptyCompletion = errors.New("completion returned no text")

	// Capability errors
	ErrCalendarNotConfigured  = errors.New("calendar is not configured")
	ErrTooManyCalendarDays    = errors.New("too many days for calendar")
	ErrDocumentsNotConfigured = errors.New("document extraction is not configured")
)
