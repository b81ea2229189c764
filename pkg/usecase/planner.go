package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/domain/interfaces"
	"github.com/secmon-lab/studymate/pkg/domain/model"
)

//go:embed prompt/plan.md
var planPromptTmpl string

var planPrompt = template.Must(template.New("plan").Parse(planPromptTmpl))

const (
	planSystemPrompt = "You are a helpful assistant."
	planTemperature  = 0.7
)

// PlanGenerator writes a day-by-day schedule. The text is returned as the
// model wrote it.
type PlanGenerator struct {
	completion interfaces.Completion
	model      string
}

func NewPlanGenerator(completion interfaces.Completion, model string) *PlanGenerator {
	return &PlanGenerator{completion: completion, model: model}
}

func (g *PlanGenerator) Generate(ctx context.Context, params model.StudyParameters) (string, error) {
	if err := params.Validate(); err != nil {
		return "", goerr.Wrap(err, "cannot generate plan")
	}

	var buf bytes.Buffer
	if err := planPrompt.Execute(&buf, params); err != nil {
		return "", goerr.Wrap(err, "failed to render plan prompt")
	}

	plan, err := g.completion.Complete(ctx, model.CompletionRequest{
		Model: g.model,
		Messages: []model.Message{
			{Role: model.RoleSystem, Content: planSystemPrompt},
			{Role: model.RoleUser, Content: buf.String()},
		},
		Temperature: planTemperature,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate study plan", goerr.V("subjects", params.Subjects))
	}
	if strings.TrimSpace(plan) == "" {
		return "", goerr.Wrap(ErrEmptyCompletion, "study plan is empty", goerr.V("subjects", params.Subjects))
	}

	return plan, nil
}
