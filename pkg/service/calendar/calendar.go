// Package calendar creates study events in Google Calendar.
package calendar

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/domain/interfaces"
	"github.com/secmon-lab/studymate/pkg/domain/model"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const (
	DefaultCalendarID = "primary"
	DefaultTimeZone   = "Asia/Kolkata"
)

type Client struct {
	svc        *gcal.Service
	calendarID string
	timeZone   string
}

var _ interfaces.Calendar = &Client{}

type Option func(*Client)

func WithCalendarID(id string) Option {
	return func(c *Client) {
		c.calendarID = id
	}
}

func WithTimeZone(tz string) Option {
	return func(c *Client) {
		c.timeZone = tz
	}
}

// New creates a client. clientOpts configure the underlying API service
// (credentials, HTTP client, endpoint).
func New(ctx context.Context, clientOpts []option.ClientOption, opts ...Option) (*Client, error) {
	svc, err := gcal.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create calendar service")
	}

	c := &Client{
		svc:        svc,
		calendarID: DefaultCalendarID,
		timeZone:   DefaultTimeZone,
	}
	for _, opt := range opts {
		opt(c)
	}

	if _, err := time.LoadLocation(c.timeZone); err != nil {
		return nil, goerr.Wrap(err, "invalid calendar time zone", goerr.V("timeZone", c.timeZone))
	}
	return c, nil
}

// HTTPClientFromFiles builds an OAuth2 client from an OAuth client secret
// file and a previously authorized token file.
func HTTPClientFromFiles(ctx context.Context, credentialsFile, tokenFile string) (option.ClientOption, error) {
	secret, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read calendar credentials", goerr.V("path", credentialsFile))
	}

	cfg, err := google.ConfigFromJSON(secret, gcal.CalendarEventsScope)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse calendar credentials", goerr.V("path", credentialsFile))
	}

	raw, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read calendar token", goerr.V("path", tokenFile))
	}

	var tok oauth2.Token
	if err := json.Unmarshal(raw, &tok); err != nil {
		return nil, goerr.Wrap(err, "failed to parse calendar token", goerr.V("path", tokenFile))
	}

	return option.WithHTTPClient(cfg.Client(ctx, &tok)), nil
}

// Location returns the configured time zone.
func (c *Client) Location() *time.Location {
	loc, err := time.LoadLocation(c.timeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Client) CreateEvent(ctx context.Context, event model.CalendarEvent) (string, error) {
	ev := &gcal.Event{
		Summary:     event.Title,
		Description: event.Description,
		Start: &gcal.EventDateTime{
			DateTime: event.Start.Format(time.RFC3339),
			TimeZone: c.timeZone,
		},
		End: &gcal.EventDateTime{
			DateTime: event.End.Format(time.RFC3339),
			TimeZone: c.timeZone,
		},
	}

	created, err := c.svc.Events.Insert(c.calendarID, ev).Context(ctx).Do()
	if err != nil {
		return "", goerr.Wrap(err, "failed to insert calendar event",
			goerr.V("calendarID", c.calendarID),
			goerr.V("title", event.Title))
	}

	return created.HtmlLink, nil
}
