package interfaces

import (
	"context"

	"github.com/secmon-lab/studymate/pkg/domain/model"
)

// Calendar creates events in the user's calendar.
type Calendar interface {
	// CreateEvent returns a link to the created event.
	CreateEvent(ctx context.Context, event model.CalendarEvent) (string, error)
}
