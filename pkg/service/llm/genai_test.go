package llm_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/studymate/pkg/domain/model"
	"github.com/secmon-lab/studymate/pkg/service/llm"
)

func TestGenAIComplete(t *testing.T) {
	var (
		path string
		body map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Plants turn light into sugar."}]}}]}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	g, err := llm.NewGenAI(ctx,
		llm.WithGenAIAPIKey("test-key"),
		llm.WithGenAIModel("gemini-test"),
		llm.WithGenAIBaseURL(srv.URL),
	)
	gt.NoError(t, err).Required()

	out, err := g.Complete(ctx, model.CompletionRequest{
		Messages: []model.Message{
			{Role: model.RoleSystem, Content: "You are a helpful assistant."},
			{Role: model.RoleUser, Content: "Explain photosynthesis"},
		},
		Temperature: 0.5,
	})
	gt.NoError(t, err).Required()
	gt.Value(t, out).Equal("Plants turn light into sugar.")
	gt.Bool(t, strings.HasSuffix(path, "models/gemini-test:generateContent")).True()
	gt.Value(t, body["systemInstruction"]).NotNil()
	gt.Value(t, body["contents"]).NotNil()
}

func TestNewGenAIRequiresCredentials(t *testing.T) {
	_, err := llm.NewGenAI(context.Background())
	gt.Value(t, err).NotNil()
}

func TestGenAIIntegration(t *testing.T) {
	apiKey := os.Getenv("TEST_GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("TEST_GEMINI_API_KEY is not set")
	}

	ctx := context.Background()
	g, err := llm.NewGenAI(ctx, llm.WithGenAIAPIKey(apiKey))
	gt.NoError(t, err).Required()

	out, err := g.Complete(ctx, model.CompletionRequest{
		Messages:    []model.Message{{Role: model.RoleUser, Content: "What is the capital of France? Answer in one word."}},
		Temperature: 0,
	})
	gt.NoError(t, err).Required()
	gt.String(t, out).NotEqual("")
	t.Log("response:", out)
}
