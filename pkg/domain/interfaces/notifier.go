package interfaces

import (
	"context"

	"github.com/memoraid/memoraid/pkg/domain/model"
)

// Notifier informs caregivers about patient activity and pipeline failures
type Notifier interface {
	NotifyQuizAttempt(ctx context.Context, memory *model.Memory, attempt *model.QuizAttempt) error
	NotifyGenerationFailure(ctx context.Context, memory *model.Memory, cause error) error
}
