package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/secmon-lab/studymate/pkg/domain/interfaces"
	"github.com/secmon-lab/studymate/pkg/service/llm"
	"github.com/secmon-lab/studymate/pkg/usecase"
	"github.com/secmon-lab/studymate/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const (
	ProviderGenAI  = "genai"
	ProviderGollem = "gollem"
	ProviderClaude = "claude"
)

// LLM holds configuration of the completion backend
type LLM struct {
	provider        string
	geminiAPIKey    string
	geminiProject   string
	geminiLocation  string
	anthropicAPIKey string

	model          string
	extractorModel string
	plannerModel   string
	chatModel      string
	summaryModel   string

	breakerFailures int
	breakerTimeout  time.Duration
}

// LLMClients is the result of LLM.Configure. ImageReader is nil when no
// Gemini credentials are configured.
type LLMClients struct {
	Completion  interfaces.Completion
	ImageReader interfaces.ImageReader
	Models      usecase.Models
}

func (x *LLM) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "llm-provider",
			Usage:       "Completion backend [genai|gollem|claude]",
			Category:    "LLM",
			Value:       ProviderGenAI,
			Sources:     cli.EnvVars("STUDYMATE_LLM_PROVIDER"),
			Destination: &x.provider,
		},
		&cli.StringFlag{
			Name:        "gemini-api-key",
			Usage:       "Gemini API key (genai provider, OCR)",
			Category:    "LLM",
			Sources:     cli.EnvVars("STUDYMATE_GEMINI_API_KEY"),
			Destination: &x.geminiAPIKey,
		},
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini on Vertex AI",
			Category:    "LLM",
			Sources:     cli.EnvVars("STUDYMATE_GEMINI_PROJECT"),
			Destination: &x.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini on Vertex AI",
			Category:    "LLM",
			Value:       "us-central1",
			Sources:     cli.EnvVars("STUDYMATE_GEMINI_LOCATION"),
			Destination: &x.geminiLocation,
		},
		&cli.StringFlag{
			Name:        "anthropic-api-key",
			Usage:       "Anthropic API key (claude provider)",
			Category:    "LLM",
			Sources:     cli.EnvVars("STUDYMATE_ANTHROPIC_API_KEY"),
			Destination: &x.anthropicAPIKey,
		},
		&cli.StringFlag{
			Name:        "llm-model",
			Usage:       "Default model name of the provider",
			Category:    "LLM",
			Sources:     cli.EnvVars("STUDYMATE_LLM_MODEL"),
			Destination: &x.model,
		},
		&cli.StringFlag{
			Name:        "llm-extractor-model",
			Usage:       "Model used for parameter extraction",
			Category:    "LLM",
			Sources:     cli.EnvVars("STUDYMATE_LLM_EXTRACTOR_MODEL"),
			Destination: &x.extractorModel,
		},
		&cli.StringFlag{
			Name:        "llm-planner-model",
			Usage:       "Model used for plan generation",
			Category:    "LLM",
			Sources:     cli.EnvVars("STUDYMATE_LLM_PLANNER_MODEL"),
			Destination: &x.plannerModel,
		},
		&cli.StringFlag{
			Name:        "llm-chat-model",
			Usage:       "Model used for open-ended chat",
			Category:    "LLM",
			Sources:     cli.EnvVars("STUDYMATE_LLM_CHAT_MODEL"),
			Destination: &x.chatModel,
		},
		&cli.StringFlag{
			Name:        "llm-summary-model",
			Usage:       "Model used for document summaries",
			Category:    "LLM",
			Sources:     cli.EnvVars("STUDYMATE_LLM_SUMMARY_MODEL"),
			Destination: &x.summaryModel,
		},
		&cli.IntFlag{
			Name:        "llm-breaker-failures",
			Usage:       "Consecutive failures that open the circuit breaker",
			Category:    "LLM",
			Value:       5,
			Sources:     cli.EnvVars("STUDYMATE_LLM_BREAKER_FAILURES"),
			Destination: &x.breakerFailures,
		},
		&cli.DurationFlag{
			Name:        "llm-breaker-timeout",
			Usage:       "How long the circuit breaker stays open",
			Category:    "LLM",
			Value:       30 * time.Second,
			Sources:     cli.EnvVars("STUDYMATE_LLM_BREAKER_TIMEOUT"),
			Destination: &x.breakerTimeout,
		},
	}
}

func (x LLM) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("provider", x.provider),
		slog.Int("gemini_api_key.len", len(x.geminiAPIKey)),
		slog.String("gemini_project", x.geminiProject),
		slog.String("gemini_location", x.geminiLocation),
		slog.Int("anthropic_api_key.len", len(x.anthropicAPIKey)),
		slog.String("model", x.model),
		slog.Int("breaker_failures", x.breakerFailures),
		slog.Duration("breaker_timeout", x.breakerTimeout),
	)
}

func (x *LLM) hasGemini() bool {
	return x.geminiAPIKey != "" || x.geminiProject != ""
}

func (x *LLM) genAIOptions() []llm.GenAIOption {
	var opts []llm.GenAIOption
	if x.geminiAPIKey != "" {
		opts = append(opts, llm.WithGenAIAPIKey(x.geminiAPIKey))
	} else {
		opts = append(opts, llm.WithGenAIVertex(x.geminiProject, x.geminiLocation))
	}
	if x.model != "" && x.provider == ProviderGenAI {
		opts = append(opts, llm.WithGenAIModel(x.model))
	}
	return opts
}

// Configure builds the completion backend wrapped in a circuit breaker. A
// genai client is also used as the OCR image reader whenever Gemini
// credentials are present, whatever the provider.
func (x *LLM) Configure(ctx context.Context) (*LLMClients, error) {
	if x.breakerFailures < 1 {
		return nil, goerr.New("llm-breaker-failures must be positive", goerr.V("value", x.breakerFailures))
	}

	clients := &LLMClients{
		Models: usecase.Models{
			Extractor: x.extractorModel,
			Planner:   x.plannerModel,
			Chat:      x.chatModel,
			Summary:   x.summaryModel,
		},
	}

	var genAI *llm.GenAI
	if x.hasGemini() {
		g, err := llm.NewGenAI(ctx, x.genAIOptions()...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create genai client")
		}
		genAI = g
		clients.ImageReader = g
	}

	var completion interfaces.Completion
	switch x.provider {
	case ProviderGenAI:
		if genAI == nil {
			return nil, goerr.New("gemini-api-key or gemini-project is required for genai provider")
		}
		completion = genAI

	case ProviderGollem:
		if x.geminiProject == "" {
			return nil, goerr.New("gemini-project is required for gollem provider")
		}
		var gemOpts []gemini.Option
		if x.model != "" {
			gemOpts = append(gemOpts, gemini.WithModel(x.model))
		}
		client, err := gemini.New(ctx, x.geminiProject, x.geminiLocation, gemOpts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create gollem Gemini client")
		}
		completion = llm.NewGollem(client)

	case ProviderClaude:
		var opts []llm.ClaudeOption
		if x.model != "" {
			opts = append(opts, llm.WithClaudeModel(x.model))
		}
		c, err := llm.NewClaude(x.anthropicAPIKey, opts)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create claude client")
		}
		completion = c

	default:
		return nil, goerr.New("invalid llm provider", goerr.V("provider", x.provider))
	}

	clients.Completion = llm.NewBreaker(x.provider, completion,
		llm.WithBreakerFailures(uint32(x.breakerFailures)),
		llm.WithBreakerTimeout(x.breakerTimeout),
	)

	logging.Default().Info("LLM configured",
		"provider", x.provider,
		"ocr", clients.ImageReader != nil,
	)
	return clients, nil
}
