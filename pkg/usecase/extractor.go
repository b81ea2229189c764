package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/domain/interfaces"
	"github.com/secmon-lab/studymate/pkg/domain/model"
)

//go:embed prompt/extract.md
var extractPromptTmpl string

var extractPrompt = template.Must(template.New("extract").Parse(extractPromptTmpl))

// Extractor turns a free-text request into study parameters with one
// completion call.
type Extractor struct {
	completion interfaces.Completion
	model      string
}

func NewExtractor(completion interfaces.Completion, model string) *Extractor {
	return &Extractor{completion: completion, model: model}
}

// extractionResponse mirrors the JSON the model is asked to return. Pointers
// tell an absent key from a zero value.
type extractionResponse struct {
	Subjects      *string   `json:"subjects"`
	HoursPerDay   *int      `json:"hoursPerDay"`
	DaysAvailable *int      `json:"daysAvailable"`
	Missing       *[]string `json:"missing"`
}

// Extract returns either complete parameters or the list of missing fields.
// Output that is not exactly one JSON object of the expected shape is an
// error wrapping ErrInvalidExtraction.
func (e *Extractor) Extract(ctx context.Context, text string) (*model.ExtractionResult, error) {
	var buf bytes.Buffer
	if err := extractPrompt.Execute(&buf, struct{ Message string }{Message: text}); err != nil {
		return nil, goerr.Wrap(err, "failed to render extraction prompt")
	}

	out, err := e.completion.Complete(ctx, model.CompletionRequest{
		Model:       e.model,
		Messages:    []model.Message{{Role: model.RoleUser, Content: buf.String()}},
		Temperature: 0,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call completion for extraction")
	}

	return parseExtraction(out)
}

func parseExtraction(out string) (*model.ExtractionResult, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(out)))
	var resp extractionResponse
	if err := dec.Decode(&resp); err != nil {
		return nil, goerr.Wrap(ErrInvalidExtraction, "extraction output is not JSON",
			goerr.V("output", out), goerr.V("cause", err.Error()))
	}
	if dec.More() {
		return nil, goerr.Wrap(ErrInvalidExtraction, "extraction output has trailing data", goerr.V("output", out))
	}

	if resp.Missing != nil {
		report, err := parseMissing(*resp.Missing)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid missing field list", goerr.V("output", out))
		}
		return &model.ExtractionResult{Missing: report}, nil
	}

	if resp.Subjects == nil || resp.HoursPerDay == nil || resp.DaysAvailable == nil {
		return nil, goerr.Wrap(ErrInvalidExtraction, "extraction output lacks required keys", goerr.V("output", out))
	}

	params := model.StudyParameters{
		Subjects:      *resp.Subjects,
		HoursPerDay:   *resp.HoursPerDay,
		DaysAvailable: *resp.DaysAvailable,
	}
	if err := params.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidExtraction, "extracted parameters are invalid",
			goerr.V("output", out), goerr.V("cause", err.Error()))
	}

	return &model.ExtractionResult{Parameters: &params}, nil
}

// parseMissing keeps the order given by the model and drops duplicates.
func parseMissing(names []string) (*model.MissingFieldsReport, error) {
	if len(names) == 0 {
		return nil, goerr.Wrap(ErrInvalidExtraction, "missing field list is empty")
	}

	report := &model.MissingFieldsReport{}
	for _, name := range names {
		field, err := model.ParseStudyField(name)
		if err != nil {
			return nil, goerr.Wrap(ErrInvalidExtraction, "unknown missing field", goerr.V("field", name))
		}
		if !report.Has(field) {
			report.Fields = append(report.Fields, field)
		}
	}
	return report, nil
}
