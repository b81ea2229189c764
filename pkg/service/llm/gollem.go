package llm

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/studymate/pkg/domain/interfaces"
	"github.com/secmon-lab/studymate/pkg/domain/model"
)

// Gollem adapts a gollem.LLMClient. Each request runs in a fresh session with
// prior turns rendered into one transcript. The model is fixed when the client
// is built; temperature is set per call.
type Gollem struct {
	client gollem.LLMClient
}

var _ interfaces.Completion = &Gollem{}

func NewGollem(client gollem.LLMClient) *Gollem {
	return &Gollem{client: client}
}

func (g *Gollem) Complete(ctx context.Context, req model.CompletionRequest) (string, error) {
	system, conv := splitSystem(req.Messages)
	if len(conv) == 0 {
		return "", goerr.Wrap(ErrNoMessages, "no user or assistant turn in request")
	}

	var opts []gollem.SessionOption
	if system != "" {
		opts = append(opts, gollem.WithSessionSystemPrompt(system))
	}

	session, err := g.client.NewSession(ctx, opts...)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.Generate(ctx,
		[]gollem.Input{gollem.Text(transcript(conv))},
		gollem.WithTemperature(req.Temperature),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate content")
	}

	text := strings.Join(resp.Texts, "\n")
	if strings.TrimSpace(text) == "" {
		return "", goerr.Wrap(ErrEmptyCompletion, "gollem returned no text")
	}
	return text, nil
}
