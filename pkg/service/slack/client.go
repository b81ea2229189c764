package slack

import (
	"context"
	"sync"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// maxMessageBytes is the Slack limit on message text.
const maxMessageBytes = 40000

// client implements Service interface
type client struct {
	api *slack.Client

	mu        sync.Mutex
	botUserID string
}

// Option is a functional option for client configuration
type Option func(*clientConfig)

type clientConfig struct {
	apiURL string
}

// WithAPIURL overrides the Slack API endpoint. Used by tests.
func WithAPIURL(url string) Option {
	return func(c *clientConfig) {
		c.apiURL = url
	}
}

// New creates a new Slack service with the provided bot token
func New(token string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var slackOpts []slack.Option
	if cfg.apiURL != "" {
		slackOpts = append(slackOpts, slack.OptionAPIURL(cfg.apiURL))
	}

	return &client{
		api: slack.New(token, slackOpts...),
	}, nil
}

func (c *client) GetBotUserID(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.botUserID != "" {
		return c.botUserID, nil
	}

	resp, err := c.api.AuthTestContext(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to call auth.test")
	}

	c.botUserID = resp.UserID
	return c.botUserID, nil
}

func (c *client) PostThreadReply(ctx context.Context, channelID, threadTS, text string) error {
	opts := []slack.MsgOption{
		slack.MsgOptionText(truncateToMaxBytes(text, maxMessageBytes), false),
	}
	if threadTS != "" {
		opts = append(opts, slack.MsgOptionTS(threadTS))
	}

	if _, _, err := c.api.PostMessageContext(ctx, channelID, opts...); err != nil {
		return goerr.Wrap(err, "failed to post message",
			goerr.V("channelID", channelID),
			goerr.V("threadTS", threadTS))
	}
	return nil
}

// truncateToMaxBytes cuts s to at most maxBytes without splitting a UTF-8
// sequence.
func truncateToMaxBytes(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
