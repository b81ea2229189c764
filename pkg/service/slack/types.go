package slack

import (
	"context"
)

// Service provides the Slack API calls used to answer users in Slack
type Service interface {
	// GetBotUserID returns the user ID of the bot itself. The result is
	// cached for the lifetime of the service instance.
	GetBotUserID(ctx context.Context) (string, error)

	// PostThreadReply posts text as a reply in the thread of threadTS.
	// An empty threadTS posts a top-level message.
	PostThreadReply(ctx context.Context, channelID, threadTS, text string) error
}
