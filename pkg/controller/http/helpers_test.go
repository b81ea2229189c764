package http_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/secmon-lab/studymate/pkg/domain/model"
)

// stubCompletion answers plan extraction, plan generation and chat with
// fixed texts, and everything else with summary.
type stubCompletion struct {
	mu       sync.Mutex
	extract  string
	plan     string
	chat     string
	summary  string
	requests []model.CompletionRequest
}

func (c *stubCompletion) Complete(ctx context.Context, req model.CompletionRequest) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)

	switch {
	case len(req.Messages) == 1 && strings.Contains(req.Messages[0].Content, "Extract structured information"):
		return c.extract, nil
	case len(req.Messages) == 2 && req.Messages[0].Content == "You are a helpful assistant.":
		return c.plan, nil
	case len(req.Messages) == 2 && req.Messages[0].Role == model.RoleSystem:
		return c.summary, nil
	default:
		return c.chat, nil
	}
}

type stubExtractor struct {
	text  string
	kinds []model.MediaKind
}

func (e *stubExtractor) ExtractText(ctx context.Context, data []byte, kind model.MediaKind) (string, error) {
	e.kinds = append(e.kinds, kind)
	return e.text, nil
}

type stubCalendar struct {
	events []model.CalendarEvent
}

func (c *stubCalendar) CreateEvent(ctx context.Context, ev model.CalendarEvent) (string, error) {
	c.events = append(c.events, ev)
	return fmt.Sprintf("https://calendar.example/%d", len(c.events)), nil
}

type slackPost struct {
	channelID string
	threadTS  string
	text      string
}

type stubSlack struct {
	posted chan slackPost
}

func newStubSlack() *stubSlack {
	return &stubSlack{posted: make(chan slackPost, 4)}
}

func (s *stubSlack) GetBotUserID(ctx context.Context) (string, error) {
	return "UBOT", nil
}

func (s *stubSlack) PostThreadReply(ctx context.Context, channelID, threadTS, text string) error {
	s.posted <- slackPost{channelID: channelID, threadTS: threadTS, text: text}
	return nil
}

// computeSlackSignature computes the Slack signature for testing
func computeSlackSignature(signingSecret, timestamp, body string) string {
	baseString := fmt.Sprintf("v0:%s:%s", timestamp, body)
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	return "v0=" + hex.EncodeToString(h.Sum(nil))
}
