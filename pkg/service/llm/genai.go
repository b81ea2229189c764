package llm

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/domain/interfaces"
	"github.com/secmon-lab/studymate/pkg/domain/model"
	"google.golang.org/genai"
)

const (
	DefaultGenAIModel = "gemini-2.5-flash"

	ocrPrompt = "Extract all readable text from this image exactly as written. Reply with the text only. If there is no readable text, reply with an empty message."
)

// GenAI calls Gemini through google.golang.org/genai. It also serves as the
// image reader for OCR.
type GenAI struct {
	client *genai.Client
	model  string
}

var (
	_ interfaces.Completion  = &GenAI{}
	_ interfaces.ImageReader = &GenAI{}
)

type GenAIOption func(*genAIConfig)

type genAIConfig struct {
	apiKey   string
	project  string
	location string
	model    string
	baseURL  string
}

// WithGenAIAPIKey uses the Gemini API with an API key.
func WithGenAIAPIKey(apiKey string) GenAIOption {
	return func(c *genAIConfig) {
		c.apiKey = apiKey
	}
}

// WithGenAIVertex uses Vertex AI in the given project and location.
func WithGenAIVertex(project, location string) GenAIOption {
	return func(c *genAIConfig) {
		c.project = project
		c.location = location
	}
}

func WithGenAIModel(model string) GenAIOption {
	return func(c *genAIConfig) {
		c.model = model
	}
}

// WithGenAIBaseURL overrides the API endpoint. Used by tests.
func WithGenAIBaseURL(url string) GenAIOption {
	return func(c *genAIConfig) {
		c.baseURL = url
	}
}

func NewGenAI(ctx context.Context, opts ...GenAIOption) (*GenAI, error) {
	cfg := &genAIConfig{model: DefaultGenAIModel}
	for _, opt := range opts {
		opt(cfg)
	}

	clientCfg := &genai.ClientConfig{}
	switch {
	case cfg.apiKey != "":
		clientCfg.APIKey = cfg.apiKey
		clientCfg.Backend = genai.BackendGeminiAPI
	case cfg.project != "":
		clientCfg.Project = cfg.project
		clientCfg.Location = cfg.location
		clientCfg.Backend = genai.BackendVertexAI
	default:
		return nil, goerr.New("either API key or Vertex AI project is required for genai")
	}
	if cfg.baseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.baseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create genai client")
	}

	return &GenAI{client: client, model: cfg.model}, nil
}

func float32Ptr(v float64) *float32 {
	f := float32(v)
	return &f
}

func (g *GenAI) modelFor(req model.CompletionRequest) string {
	if req.Model != "" {
		return req.Model
	}
	return g.model
}

func (g *GenAI) Complete(ctx context.Context, req model.CompletionRequest) (string, error) {
	system, conv := splitSystem(req.Messages)
	if len(conv) == 0 {
		return "", goerr.Wrap(ErrNoMessages, "no user or assistant turn in request")
	}

	contents := make([]*genai.Content, 0, len(conv))
	for _, m := range conv {
		role := genai.Role(genai.RoleUser)
		if m.Role == model.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	config := &genai.GenerateContentConfig{
		Temperature: float32Ptr(req.Temperature),
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	modelName := g.modelFor(req)
	resp, err := g.client.Models.GenerateContent(ctx, modelName, contents, config)
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate content", goerr.V("model", modelName))
	}

	text := responseText(resp)
	if text == "" {
		return "", goerr.Wrap(ErrEmptyCompletion, "genai returned no text", goerr.V("model", modelName))
	}
	return text, nil
}

// ReadImage asks the model to transcribe the text in an image. An image
// without text yields an empty string.
func (g *GenAI) ReadImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	contents := []*genai.Content{
		{
			Role: string(genai.RoleUser),
			Parts: []*genai.Part{
				genai.NewPartFromBytes(data, mimeType),
				genai.NewPartFromText(ocrPrompt),
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		Temperature: float32Ptr(0),
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to read image", goerr.V("mimeType", mimeType), goerr.V("size", len(data)))
	}

	return strings.TrimSpace(responseText(resp)), nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var texts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" && !part.Thought {
			texts = append(texts, part.Text)
		}
	}
	return strings.Join(texts, "")
}
