// Package llm provides text completion backends for the interfaces.Completion
// capability.
package llm

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/domain/model"
)

var (
	ErrEmptyCompletion = goerr.New("completion returned no text")
	ErrNoMessages      = goerr.New("completion request has no messages")
)

// splitSystem separates system turns from the conversation. System turns are
// joined with blank lines.
func splitSystem(msgs []model.Message) (string, []model.Message) {
	var system []string
	conv := make([]model.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.Role == model.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		conv = append(conv, m)
	}
	return strings.Join(system, "\n\n"), conv
}

// transcript renders a conversation as plain text for backends that take a
// single prompt. A lone user turn is returned unchanged.
func transcript(msgs []model.Message) string {
	if len(msgs) == 1 && msgs[0].Role == model.RoleUser {
		return msgs[0].Content
	}

	var b strings.Builder
	for i, m := range msgs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch m.Role {
		case model.RoleAssistant:
			b.WriteString("Assistant: ")
		default:
			b.WriteString("User: ")
		}
		b.WriteString(m.Content)
	}
	return b.String()
}
