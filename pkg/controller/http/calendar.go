package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/secmon-lab/studymate/pkg/domain/model"
	"github.com/secmon-lab/studymate/pkg/usecase"
	"github.com/secmon-lab/studymate/pkg/utils/errutil"
)

const (
	replyCalendarFailure     = "❌ Sorry, I couldn't add the plan to your calendar."
	replyCalendarUnavailable = "❌ Calendar integration is not configured."
)

type calendarRequest struct {
	Subjects      string `json:"subjects"`
	HoursPerDay   int    `json:"hours_per_day"`
	DaysAvailable int    `json:"days_available"`
	StartDate     string `json:"start_date,omitempty"`
}

type calendarResponse struct {
	Reply string   `json:"reply"`
	Link  string   `json:"link,omitempty"`
	Links []string `json:"links,omitempty"`
}

func calendarHandler(calendar *usecase.CalendarUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req calendarRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
			return
		}

		params := model.StudyParameters{
			Subjects:      req.Subjects,
			HoursPerDay:   req.HoursPerDay,
			DaysAvailable: req.DaysAvailable,
		}
		if err := params.Validate(); err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
			return
		}

		var start time.Time
		if req.StartDate != "" {
			t, err := calendar.ParseStartDate(req.StartDate)
			if err != nil {
				errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
				return
			}
			start = t
		}

		result, err := calendar.AddPlan(ctx, params, start)
		switch {
		case errors.Is(err, usecase.ErrTooManyCalendarDays):
			errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
			return
		case errors.Is(err, usecase.ErrCalendarNotConfigured):
			writeJSON(w, r, http.StatusServiceUnavailable, calendarResponse{Reply: replyCalendarUnavailable})
			return
		case err != nil:
			errutil.Handle(ctx, err, "failed to add plan to calendar")
			resp := calendarResponse{Reply: replyCalendarFailure}
			if result != nil {
				resp.Links = result.Links
			}
			writeJSON(w, r, http.StatusBadGateway, resp)
			return
		}

		resp := calendarResponse{Reply: result.Reply, Links: result.Links}
		if len(result.Links) > 0 {
			resp.Link = result.Links[0]
		}
		writeJSON(w, r, http.StatusOK, resp)
	}
}
