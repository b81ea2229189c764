package interfaces

import (
	"context"

	"github.com/secmon-lab/studymate/pkg/domain/model"
)

// StudyMemoryRepository is an append-only log of saved study plans.
type StudyMemoryRepository interface {
	// Append records a new plan. Concurrent appends never overwrite each other.
	Append(ctx context.Context, subjects string, hoursPerDay, daysAvailable int) (*model.MemoryRecord, error)

	// Recent returns up to n records, oldest first and most recent last.
	// An empty store returns an empty slice.
	Recent(ctx context.Context, n int) ([]*model.MemoryRecord, error)
}
