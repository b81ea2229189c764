package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/domain/model"
	"github.com/secmon-lab/studymate/pkg/domain/model/slack"
	slacksvc "github.com/secmon-lab/studymate/pkg/service/slack"
	"github.com/secmon-lab/studymate/pkg/utils/logging"
	"github.com/slack-go/slack/slackevents"
)

// SlackUseCase answers app mentions and direct messages through the router.
type SlackUseCase struct {
	router       *RouterUseCase
	slackService slacksvc.Service
}

func NewSlackUseCase(router *RouterUseCase, slackService slacksvc.Service) *SlackUseCase {
	return &SlackUseCase{
		router:       router,
		slackService: slackService,
	}
}

// Enabled reports whether a Slack client is configured.
func (uc *SlackUseCase) Enabled() bool {
	return uc.slackService != nil
}

// HandleSlackEvent processes Slack Events API events
func (uc *SlackUseCase) HandleSlackEvent(ctx context.Context, event *slackevents.EventsAPIEvent) error {
	logger := logging.From(ctx)

	if uc.slackService == nil {
		logger.Warn("slack event received but slack service is not configured")
		return nil
	}

	msg := slack.NewMessage(ctx, event)
	if msg == nil {
		logger.Debug("ignored slack event", "type", event.Type, "innerType", event.InnerEvent.Type)
		return nil
	}

	botUserID, err := uc.slackService.GetBotUserID(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to get bot user ID")
	}
	if msg.IsFromBot(botUserID) {
		return nil
	}

	text := msg.Body()
	if text == "" {
		return nil
	}

	reply := uc.router.Route(ctx, model.IncomingMessage{Text: text})
	logger.Info("answering slack message",
		"channel", msg.ChannelID(),
		"kind", msg.Kind(),
		"intent", reply.Intent,
	)

	if err := uc.slackService.PostThreadReply(ctx, msg.ChannelID(), msg.ReplyThreadTS(), reply.Reply); err != nil {
		return goerr.Wrap(err, "failed to post slack reply", goerr.V("channel", msg.ChannelID()))
	}
	return nil
}
