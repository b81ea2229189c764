package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/studymate/pkg/repository/memory"
	"github.com/secmon-lab/studymate/pkg/usecase"
	"github.com/slack-go/slack/slackevents"
)

type postedReply struct {
	channelID string
	threadTS  string
	text      string
}

type fakeSlackService struct {
	botUserID string
	botErr    error
	postErr   error
	posted    []postedReply
}

func (s *fakeSlackService) GetBotUserID(ctx context.Context) (string, error) {
	return s.botUserID, s.botErr
}

func (s *fakeSlackService) PostThreadReply(ctx context.Context, channelID, threadTS, text string) error {
	if s.postErr != nil {
		return s.postErr
	}
	s.posted = append(s.posted, postedReply{channelID: channelID, threadTS: threadTS, text: text})
	return nil
}

func mentionEvent(user, text, ts, threadTS string) *slackevents.EventsAPIEvent {
	return &slackevents.EventsAPIEvent{
		Type: slackevents.CallbackEvent,
		InnerEvent: slackevents.EventsAPIInnerEvent{
			Type: string(slackevents.AppMention),
			Data: &slackevents.AppMentionEvent{
				User:            user,
				Text:            text,
				Channel:         "C0001",
				TimeStamp:       ts,
				ThreadTimeStamp: threadTS,
			},
		},
	}
}

func TestSlackUseCase_HandleSlackEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("mention is answered in thread", func(t *testing.T) {
		svc := &fakeSlackService{botUserID: "UBOT"}
		comp := newScriptedCompletion(map[completionKind]scriptedResponse{kindChat: {text: "Hi! Ask me anything."}})
		uc := usecase.New(memory.New(), comp, usecase.WithSlackService(svc))

		gt.Bool(t, uc.Slack.Enabled()).True()
		err := uc.Slack.HandleSlackEvent(ctx, mentionEvent("U123", "<@UBOT> hello", "1700000000.000100", ""))
		gt.NoError(t, err).Required()

		gt.Array(t, svc.posted).Length(1).Required()
		gt.Value(t, svc.posted[0]).Equal(postedReply{
			channelID: "C0001",
			threadTS:  "1700000000.000100",
			text:      "Hi! Ask me anything.",
		})

		req := comp.lastRequest(kindChat)
		gt.Value(t, req).NotNil().Required()
		gt.Value(t, req.Messages[0].Content).Equal("hello")
	})

	t.Run("reply stays in existing thread", func(t *testing.T) {
		svc := &fakeSlackService{botUserID: "UBOT"}
		uc := usecase.New(memory.New(), newScriptedCompletion(nil), usecase.WithSlackService(svc))

		err := uc.Slack.HandleSlackEvent(ctx, mentionEvent("U123", "<@UBOT> memory", "1700000000.000200", "1700000000.000001"))
		gt.NoError(t, err).Required()
		gt.Array(t, svc.posted).Length(1).Required()
		gt.Value(t, svc.posted[0].threadTS).Equal("1700000000.000001")
		gt.Value(t, svc.posted[0].text).Equal(usecase.ReplyNoHistory)
	})

	t.Run("own messages are ignored", func(t *testing.T) {
		svc := &fakeSlackService{botUserID: "UBOT"}
		comp := newScriptedCompletion(nil)
		uc := usecase.New(memory.New(), comp, usecase.WithSlackService(svc))

		gt.NoError(t, uc.Slack.HandleSlackEvent(ctx, mentionEvent("UBOT", "<@UBOT> hi", "1.0", "")))
		gt.Array(t, svc.posted).Length(0)
		gt.Array(t, comp.kinds).Length(0)
	})

	t.Run("bare mention is ignored", func(t *testing.T) {
		svc := &fakeSlackService{botUserID: "UBOT"}
		uc := usecase.New(memory.New(), newScriptedCompletion(nil), usecase.WithSlackService(svc))

		gt.NoError(t, uc.Slack.HandleSlackEvent(ctx, mentionEvent("U123", "<@UBOT>  ", "1.0", "")))
		gt.Array(t, svc.posted).Length(0)
	})

	t.Run("direct message edits are ignored", func(t *testing.T) {
		svc := &fakeSlackService{botUserID: "UBOT"}
		uc := usecase.New(memory.New(), newScriptedCompletion(nil), usecase.WithSlackService(svc))

		ev := &slackevents.EventsAPIEvent{
			Type: slackevents.CallbackEvent,
			InnerEvent: slackevents.EventsAPIInnerEvent{
				Type: string(slackevents.Message),
				Data: &slackevents.MessageEvent{
					User:        "U123",
					Text:        "memory",
					Channel:     "D0001",
					ChannelType: "im",
					SubType:     "message_changed",
					TimeStamp:   "1.0",
				},
			},
		}
		gt.NoError(t, uc.Slack.HandleSlackEvent(ctx, ev))
		gt.Array(t, svc.posted).Length(0)
	})

	t.Run("post failure is returned", func(t *testing.T) {
		svc := &fakeSlackService{botUserID: "UBOT", postErr: goerr.New("channel_not_found")}
		uc := usecase.New(memory.New(), newScriptedCompletion(nil), usecase.WithSlackService(svc))

		err := uc.Slack.HandleSlackEvent(ctx, mentionEvent("U123", "<@UBOT> memory", "1.0", ""))
		gt.Value(t, err).NotNil()
	})

	t.Run("bot identity failure is returned", func(t *testing.T) {
		svc := &fakeSlackService{botErr: goerr.New("invalid_auth")}
		uc := usecase.New(memory.New(), newScriptedCompletion(nil), usecase.WithSlackService(svc))

		err := uc.Slack.HandleSlackEvent(ctx, mentionEvent("U123", "<@UBOT> memory", "1.0", ""))
		gt.Value(t, err).NotNil()
	})

	t.Run("disabled without service", func(t *testing.T) {
		uc := usecase.New(memory.New(), newScriptedCompletion(nil))
		gt.Bool(t, uc.Slack.Enabled()).False()
		gt.NoError(t, uc.Slack.HandleSlackEvent(ctx, mentionEvent("U123", "hi", "1.0", "")))
	})
}
