package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/studymate/pkg/repository/memory"
	"github.com/secmon-lab/studymate/pkg/usecase"
)

func TestMemoryUseCase_Recent(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	for i := range 120 {
		_, err := repo.StudyMemory().Append(ctx, "Math", 1, i+1)
		gt.NoError(t, err).Required()
	}
	uc := usecase.New(repo, newScriptedCompletion(nil))

	t.Run("default limit", func(t *testing.T) {
		records, err := uc.Memory.Recent(ctx, 0)
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(usecase.DefaultMemoryLimit).Required()
		gt.Value(t, records[len(records)-1].DaysAvailable).Equal(120)
	})

	t.Run("capped limit", func(t *testing.T) {
		records, err := uc.Memory.Recent(ctx, 1000)
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(usecase.MaxMemoryLimit)
	})

	t.Run("read failure", func(t *testing.T) {
		failing := usecase.New(&fakeRepository{memory: &fakeStudyMemory{recentErr: goerr.New("offline")}}, newScriptedCompletion(nil))
		_, err := failing.Memory.Recent(ctx, 5)
		gt.Value(t, err).NotNil()
	})
}
