package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/domain/interfaces"
	"github.com/secmon-lab/studymate/pkg/service/calendar"
	"github.com/secmon-lab/studymate/pkg/usecase"
	"github.com/secmon-lab/studymate/pkg/utils/logging"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/option"
)

// Calendar configures Google Calendar access. It is disabled unless a
// credentials file is given.
type Calendar struct {
	credentialsFile string
	tokenFile       string
	calendarID      string
	timeZone        string
	startHour       int
}

func (x *Calendar) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "calendar-credentials",
			Usage:       "OAuth client credentials JSON for Google Calendar",
			Category:    "Calendar",
			Sources:     cli.EnvVars("STUDYMATE_CALENDAR_CREDENTIALS"),
			Destination: &x.credentialsFile,
		},
		&cli.StringFlag{
			Name:        "calendar-token",
			Usage:       "OAuth token JSON for Google Calendar",
			Category:    "Calendar",
			Value:       "token.json",
			Sources:     cli.EnvVars("STUDYMATE_CALENDAR_TOKEN"),
			Destination: &x.tokenFile,
		},
		&cli.StringFlag{
			Name:        "calendar-id",
			Usage:       "Target calendar ID",
			Category:    "Calendar",
			Value:       calendar.DefaultCalendarID,
			Sources:     cli.EnvVars("STUDYMATE_CALENDAR_ID"),
			Destination: &x.calendarID,
		},
		&cli.StringFlag{
			Name:        "calendar-timezone",
			Usage:       "IANA time zone of study sessions",
			Category:    "Calendar",
			Value:       calendar.DefaultTimeZone,
			Sources:     cli.EnvVars("STUDYMATE_CALENDAR_TIMEZONE"),
			Destination: &x.timeZone,
		},
		&cli.IntFlag{
			Name:        "calendar-start-hour",
			Usage:       "Hour of day (0-23) at which study sessions start",
			Category:    "Calendar",
			Value:       usecase.DefaultStudyStartHour,
			Sources:     cli.EnvVars("STUDYMATE_CALENDAR_START_HOUR"),
			Destination: &x.startHour,
		},
	}
}

func (x Calendar) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("credentials", x.credentialsFile),
		slog.String("token", x.tokenFile),
		slog.String("calendar_id", x.calendarID),
		slog.String("timezone", x.timeZone),
		slog.Int("start_hour", x.startHour),
	)
}

// Configure returns a nil calendar when no credentials file is set.
func (x *Calendar) Configure(ctx context.Context) (interfaces.Calendar, usecase.CalendarConfig, error) {
	if x.credentialsFile == "" {
		return nil, usecase.CalendarConfig{}, nil
	}
	if x.startHour < 0 || x.startHour > 23 {
		return nil, usecase.CalendarConfig{}, goerr.New("calendar-start-hour must be between 0 and 23", goerr.V("value", x.startHour))
	}

	httpOpt, err := calendar.HTTPClientFromFiles(ctx, x.credentialsFile, x.tokenFile)
	if err != nil {
		return nil, usecase.CalendarConfig{}, goerr.Wrap(err, "failed to load calendar credentials")
	}

	client, err := calendar.New(ctx, []option.ClientOption{httpOpt},
		calendar.WithCalendarID(x.calendarID),
		calendar.WithTimeZone(x.timeZone),
	)
	if err != nil {
		return nil, usecase.CalendarConfig{}, goerr.Wrap(err, "failed to create calendar client")
	}

	logging.Default().Info("Google Calendar enabled", "calendar_id", x.calendarID, "timezone", x.timeZone)
	return client, usecase.CalendarConfig{Location: client.Location(), StartHour: x.startHour}, nil
}
