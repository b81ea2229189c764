package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/domain/interfaces"
	"github.com/secmon-lab/studymate/pkg/domain/model"
)

const (
	DefaultMemoryLimit = 10
	MaxMemoryLimit     = 100
)

// MemoryUseCase lists saved study plans.
type MemoryUseCase struct {
	memory interfaces.StudyMemoryRepository
}

func NewMemoryUseCase(memory interfaces.StudyMemoryRepository) *MemoryUseCase {
	return &MemoryUseCase{memory: memory}
}

// Recent returns up to limit records, oldest first. A non-positive limit
// uses DefaultMemoryLimit and larger values are capped at MaxMemoryLimit.
func (uc *MemoryUseCase) Recent(ctx context.Context, limit int) ([]*model.MemoryRecord, error) {
	if limit <= 0 {
		limit = DefaultMemoryLimit
	}
	limit = min(limit, MaxMemoryLimit)

	records, err := uc.memory.Recent(ctx, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list study memory", goerr.V("limit", limit))
	}
	return records, nil
}
