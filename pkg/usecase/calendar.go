package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/domain/interfaces"
	"github.com/secmon-lab/studymate/pkg/domain/model"
	"github.com/secmon-lab/studymate/pkg/utils/logging"
)

const DefaultStudyStartHour = 9

// MaxCalendarDays bounds the number of events a single plan may create.
const MaxCalendarDays = 366

// CalendarConfig controls where study sessions are placed.
type CalendarConfig struct {
	Location  *time.Location
	StartHour int
}

// CalendarResult summarizes the events created for a plan.
type CalendarResult struct {
	Reply string
	Links []string
}

// CalendarUseCase adds a study plan to the user's calendar as one event per
// study day.
type CalendarUseCase struct {
	calendar interfaces.Calendar
	cfg      CalendarConfig
	now      func() time.Time
}

func NewCalendarUseCase(calendar interfaces.Calendar, cfg CalendarConfig, now func() time.Time) *CalendarUseCase {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.StartHour < 0 || cfg.StartHour > 23 {
		cfg.StartHour = DefaultStudyStartHour
	}
	return &CalendarUseCase{calendar: calendar, cfg: cfg, now: now}
}

// ParseStartDate parses a YYYY-MM-DD date in the configured location.
func (uc *CalendarUseCase) ParseStartDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, uc.cfg.Location)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "invalid start date", goerr.V("date", s))
	}
	return t, nil
}

// StudyEvents lays out one session per day from startDate, beginning at the
// configured hour and lasting HoursPerDay hours. The calendar date of
// startDate is used as-is; a zero startDate means today in the configured
// location.
func (uc *CalendarUseCase) StudyEvents(params model.StudyParameters, startDate time.Time) []model.CalendarEvent {
	day := startDate
	if day.IsZero() {
		day = uc.now().In(uc.cfg.Location)
	}
	first := time.Date(day.Year(), day.Month(), day.Day(), uc.cfg.StartHour, 0, 0, 0, uc.cfg.Location)

	events := make([]model.CalendarEvent, 0, params.DaysAvailable)
	for i := range params.DaysAvailable {
		start := first.AddDate(0, 0, i)
		events = append(events, model.CalendarEvent{
			Title:       fmt.Sprintf("📚 Study: %s (Day %d/%d)", params.Subjects, i+1, params.DaysAvailable),
			Description: fmt.Sprintf("Study %s for %d hours. Take short breaks and stay consistent!", params.Subjects, params.HoursPerDay),
			Start:       start,
			End:         start.Add(time.Duration(params.HoursPerDay) * time.Hour),
		})
	}
	return events
}

// AddPlan creates the events of a plan. It stops at the first failure and
// returns the links created so far with the error.
func (uc *CalendarUseCase) AddPlan(ctx context.Context, params model.StudyParameters, startDate time.Time) (*CalendarResult, error) {
	if uc.calendar == nil {
		return nil, goerr.Wrap(ErrCalendarNotConfigured, "cannot add plan to calendar")
	}
	if err := params.Validate(); err != nil {
		return nil, goerr.Wrap(err, "cannot add plan to calendar")
	}
	if params.DaysAvailable > MaxCalendarDays {
		return nil, goerr.Wrap(ErrTooManyCalendarDays, "cannot add plan to calendar",
			goerr.V("days", params.DaysAvailable),
			goerr.V("max", MaxCalendarDays))
	}

	result := &CalendarResult{}
	for _, ev := range uc.StudyEvents(params, startDate) {
		link, err := uc.calendar.CreateEvent(ctx, ev)
		if err != nil {
			return result, goerr.Wrap(err, "failed to create study event",
				goerr.V("title", ev.Title),
				goerr.V("created", len(result.Links)))
		}
		result.Links = append(result.Links, link)
	}

	logging.From(ctx).Info("study plan added to calendar",
		"subjects", params.Subjects,
		"events", len(result.Links),
	)

	result.Reply = fmt.Sprintf("📅 Added %d study sessions for %s to your Google Calendar.", len(result.Links), params.Subjects)
	return result, nil
}
