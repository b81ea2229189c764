package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/studymate/pkg/domain/model"
)

func TestIncomingMessageConversation(t *testing.T) {
	history := []model.Message{
		{Role: model.RoleUser, Content: "hi"},
		{Role: model.RoleAssistant, Content: "hello"},
	}
	msg := model.IncomingMessage{Text: "Explain photosynthesis", History: history}

	conv := msg.Conversation()
	gt.Array(t, conv).Length(3)
	gt.Value(t, conv[2]).Equal(model.Message{Role: model.RoleUser, Content: "Explain photosynthesis"})

	// the caller's history is left untouched
	gt.Array(t, msg.History).Length(2)
	conv[0].Content = "changed"
	gt.Value(t, history[0].Content).Equal("hi")
}

func TestRoleValid(t *testing.T) {
	gt.Bool(t, model.RoleUser.Valid()).True()
	gt.Bool(t, model.RoleAssistant.Valid()).True()
	gt.Bool(t, model.RoleSystem.Valid()).True()
	gt.Bool(t, model.Role("bot").Valid()).False()
}
