package interfaces

import (
	"context"

	"github.com/secmon-lab/studymate/pkg/domain/model"
)

// Completion generates text from a conversation.
type Completion interface {
	Complete(ctx context.Context, req model.CompletionRequest) (string, error)
}
