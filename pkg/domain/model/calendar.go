package model

import "time"

// CalendarEvent is an event to create in the user's calendar.
type CalendarEvent struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
}
