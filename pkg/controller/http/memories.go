package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/usecase"
	"github.com/secmon-lab/studymate/pkg/utils/errutil"
)

type memoryRecordResponse struct {
	ID            string    `json:"id"`
	Subjects      string    `json:"subjects"`
	HoursPerDay   int       `json:"hours_per_day"`
	DaysAvailable int       `json:"days_available"`
	Timestamp     time.Time `json:"timestamp"`
}

type memoriesResponse struct {
	Memories []memoryRecordResponse `json:"memories"`
}

func memoriesHandler(memory *usecase.MemoryUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				errutil.HandleHTTP(ctx, w, goerr.New("invalid limit", goerr.V("limit", v)), http.StatusBadRequest)
				return
			}
			limit = n
		}

		records, err := memory.Recent(ctx, limit)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
			return
		}

		resp := memoriesResponse{Memories: make([]memoryRecordResponse, len(records))}
		for i, rec := range records {
			resp.Memories[i] = memoryRecordResponse{
				ID:            string(rec.ID),
				Subjects:      rec.Subjects,
				HoursPerDay:   rec.HoursPerDay,
				DaysAvailable: rec.DaysAvailable,
				Timestamp:     rec.Timestamp,
			}
		}
		writeJSON(w, r, http.StatusOK, resp)
	}
}
