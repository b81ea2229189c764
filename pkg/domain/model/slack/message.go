package slack

import (
	"context"
	"regexp"
	"strings"

	"github.com/slack-go/slack/slackevents"
)

// Kind is how a message reached the bot.
type Kind string

const (
	KindMention Kind = "mention"
	KindDirect  Kind = "direct"
)

var mentionPattern = regexp.MustCompile(`<@[A-Z0-9]+(\|[^>]*)?>`)

// Message is an incoming Slack message addressed to the bot.
type Message struct {
	kind      Kind
	id        string
	channelID string
	threadTS  string
	teamID    string
	userID    string
	botID     string
	text      string
}

// NewMessage builds a Message from an Events API callback. It returns nil for
// events the bot does not answer: anything other than app mentions and new
// direct messages.
func NewMessage(ctx context.Context, ev *slackevents.EventsAPIEvent) *Message {
	if ev == nil || ev.Type != slackevents.CallbackEvent {
		return nil
	}

	switch evt := ev.InnerEvent.Data.(type) {
	case *slackevents.AppMentionEvent:
		return &Message{
			kind:      KindMention,
			id:        evt.TimeStamp,
			channelID: evt.Channel,
			threadTS:  evt.ThreadTimeStamp,
			teamID:    ev.TeamID,
			userID:    evt.User,
			botID:     evt.BotID,
			text:      evt.Text,
		}
	case *slackevents.MessageEvent:
		// Subtypes cover edits, deletions and bot posts.
		if evt.ChannelType != "im" || evt.SubType != "" {
			return nil
		}
		threadTS := ""
		if evt.ThreadTimeStamp != "" && evt.ThreadTimeStamp != evt.TimeStamp {
			threadTS = evt.ThreadTimeStamp
		}
		return &Message{
			kind:      KindDirect,
			id:        evt.TimeStamp,
			channelID: evt.Channel,
			threadTS:  threadTS,
			teamID:    ev.TeamID,
			userID:    evt.User,
			botID:     evt.BotID,
			text:      evt.Text,
		}
	default:
		return nil
	}
}

func (m *Message) Kind() Kind {
	return m.kind
}

func (m *Message) ID() string {
	return m.id
}

func (m *Message) ChannelID() string {
	return m.channelID
}

func (m *Message) ThreadTS() string {
	return m.threadTS
}

func (m *Message) TeamID() string {
	return m.teamID
}

func (m *Message) UserID() string {
	return m.userID
}

func (m *Message) Text() string {
	return m.text
}

// IsFromBot reports whether the message was posted by a bot, including the
// given bot user itself.
func (m *Message) IsFromBot(botUserID string) bool {
	if m.botID != "" {
		return true
	}
	return botUserID != "" && m.userID == botUserID
}

// Body returns the text with user mentions removed and surrounding space
// trimmed.
func (m *Message) Body() string {
	return strings.TrimSpace(mentionPattern.ReplaceAllString(m.text, ""))
}

// ReplyThreadTS is the thread to answer in: the existing thread if the
// message is a reply, otherwise a new thread under the message.
func (m *Message) ReplyThreadTS() string {
	if m.threadTS != "" {
		return m.threadTS
	}
	return m.id
}
