package http

import (
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/domain/model"
	"github.com/secmon-lab/studymate/pkg/usecase"
	"github.com/secmon-lab/studymate/pkg/utils/errutil"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the body of POST /chat. The parameter fields are accepted
// for compatibility with existing clients; extraction always works from the
// message text.
type chatRequest struct {
	Message       string        `json:"message"`
	Subjects      string        `json:"subjects,omitempty"`
	DaysAvailable int           `json:"days_available,omitempty"`
	HoursPerDay   int           `json:"hours_per_day,omitempty"`
	History       []chatMessage `json:"history,omitempty"`
}

type chatResponse struct {
	Reply         string `json:"reply"`
	Intent        string `json:"intent"`
	Subjects      string `json:"subjects,omitempty"`
	DaysAvailable int    `json:"days_available,omitempty"`
	HoursPerDay   int    `json:"hours_per_day,omitempty"`
}

func chatHandler(router *usecase.RouterUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req chatRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
			return
		}

		history := make([]model.Message, 0, len(req.History))
		for i, m := range req.History {
			role := model.Role(m.Role)
			if !role.Valid() {
				errutil.HandleHTTP(ctx, w, goerr.New("invalid history role",
					goerr.V("index", i), goerr.V("role", m.Role)), http.StatusBadRequest)
				return
			}
			history = append(history, model.Message{Role: role, Content: m.Content})
		}

		reply := router.Route(ctx, model.IncomingMessage{Text: req.Message, History: history})

		resp := chatResponse{Reply: reply.Reply, Intent: string(reply.Intent)}
		if reply.Parameters != nil {
			resp.Subjects = reply.Parameters.Subjects
			resp.DaysAvailable = reply.Parameters.DaysAvailable
			resp.HoursPerDay = reply.Parameters.HoursPerDay
		}
		writeJSON(w, r, http.StatusOK, resp)
	}
}
