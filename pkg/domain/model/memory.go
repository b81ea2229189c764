package model

import (
	"time"

	"github.com/google/uuid"
)

// MemoryRecordID is a UUID-based identifier for MemoryRecord
type MemoryRecordID string

// NewMemoryRecordID generates a new UUID v4 MemoryRecordID
func NewMemoryRecordID() MemoryRecordID {
	return MemoryRecordID(uuid.New().String())
}

// MemoryRecord is one saved study plan. Records are created once per
// generated plan and never mutated.
type MemoryRecord struct {
	ID            MemoryRecordID
	Subjects      string
	HoursPerDay   int
	DaysAvailable int
	Timestamp     time.Time
}

// Parameters returns the study parameters the record was created from.
func (r *MemoryRecord) Parameters() StudyParameters {
	return StudyParameters{
		Subjects:      r.Subjects,
		HoursPerDay:   r.HoursPerDay,
		DaysAvailable: r.DaysAvailable,
	}
}
