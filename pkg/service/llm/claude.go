package llm

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/domain/interfaces"
	"github.com/secmon-lab/studymate/pkg/domain/model"
)

const (
	DefaultClaudeModel     = "claude-sonnet-4-5"
	defaultClaudeMaxTokens = 2048
)

// Claude calls the Anthropic Messages API.
type Claude struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
}

var _ interfaces.Completion = &Claude{}

type ClaudeOption func(*Claude)

func WithClaudeModel(model string) ClaudeOption {
	return func(c *Claude) {
		c.model = model
	}
}

func WithClaudeMaxTokens(n int64) ClaudeOption {
	return func(c *Claude) {
		c.maxTokens = n
	}
}

// NewClaude builds a client. Extra request options (HTTP client, base URL)
// are passed through to the SDK.
func NewClaude(apiKey string, opts []ClaudeOption, reqOpts ...option.RequestOption) (*Claude, error) {
	if apiKey == "" {
		return nil, goerr.New("anthropic API key is required")
	}

	client := anthropic.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, reqOpts...)...)
	c := &Claude{
		client:    &client,
		model:     DefaultClaudeModel,
		maxTokens: defaultClaudeMaxTokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Claude) Complete(ctx context.Context, req model.CompletionRequest) (string, error) {
	system, conv := splitSystem(req.Messages)
	if len(conv) == 0 {
		return "", goerr.Wrap(ErrNoMessages, "no user or assistant turn in request")
	}

	messages := make([]anthropic.MessageParam, 0, len(conv))
	for _, m := range conv {
		if m.Role == model.RoleAssistant {
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		} else {
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	modelName := c.model
	if req.Model != "" {
		modelName = req.Model
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(modelName),
		MaxTokens:   c.maxTokens,
		Messages:    messages,
		Temperature: anthropic.Float(req.Temperature),
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", goerr.Wrap(err, "failed to call anthropic messages API", goerr.V("model", modelName))
	}

	var texts []string
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			texts = append(texts, tb.Text)
		}
	}

	text := strings.Join(texts, "")
	if strings.TrimSpace(text) == "" {
		return "", goerr.Wrap(ErrEmptyCompletion, "anthropic returned no text", goerr.V("model", modelName))
	}
	return text, nil
}
