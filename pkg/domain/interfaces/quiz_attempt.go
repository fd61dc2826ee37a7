package interfaces

import (
	"context"

	"github.com/memoraid/memoraid/pkg/domain/model"
)

// QuizAttemptRepository defines the interface for QuizAttempt data persistence
type QuizAttemptRepository interface {
	Create(ctx context.Context, attempt *model.QuizAttempt) (*model.QuizAttempt, error)

	// ListByPatient retrieves attempts of a patient, newest first
	ListByPatient(ctx context.Context, patientID string) ([]*model.QuizAttempt, error)
}
