package memory

import (
	"context"
	"sync"
	"time"

	"github.com/secmon-lab/studymate/pkg/domain/model"
)

type studyMemoryRepository struct {
	mu      sync.RWMutex
	records []*model.MemoryRecord
}

func newStudyMemoryRepository() *studyMemoryRepository {
	return &studyMemoryRepository{}
}

func copyRecord(r *model.MemoryRecord) *model.MemoryRecord {
	copied := *r
	return &copied
}

func (r *studyMemoryRepository) Append(ctx context.Context, subjects string, hoursPerDay, daysAvailable int) (*model.MemoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := &model.MemoryRecord{
		ID:            model.NewMemoryRecordID(),
		Subjects:      subjects,
		HoursPerDay:   hoursPerDay,
		DaysAvailable: daysAvailable,
		Timestamp:     time.Now().UTC(),
	}
	r.records = append(r.records, rec)

	return copyRecord(rec), nil
}

func (r *studyMemoryRepository) Recent(ctx context.Context, n int) ([]*model.MemoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n <= 0 || len(r.records) == 0 {
		return []*model.MemoryRecord{}, nil
	}

	start := max(len(r.records)-n, 0)
	result := make([]*model.MemoryRecord, 0, len(r.records)-start)
	for _, rec := range r.records[start:] {
		result = append(result, copyRecord(rec))
	}
	return result, nil
}
