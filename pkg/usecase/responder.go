package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/domain/interfaces"
	"github.com/secmon-lab/studymate/pkg/domain/model"
)

const chatTemperature = 0.5

// Responder answers open-ended questions. It keeps no state; continuity
// comes from the history the caller passes in.
type Responder struct {
	completion interfaces.Completion
	model      string
}

func NewResponder(completion interfaces.Completion, model string) *Responder {
	return &Responder{completion: completion, model: model}
}

func (r *Responder) Respond(ctx context.Context, history []model.Message) (string, error) {
	text, err := r.completion.Complete(ctx, model.CompletionRequest{
		Model:       r.model,
		Messages:    history,
		Temperature: chatTemperature,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate chat reply")
	}
	if strings.TrimSpace(text) == "" {
		return "", goerr.Wrap(ErrEmptyCompletion, "chat reply is empty")
	}
	return text, nil
}
