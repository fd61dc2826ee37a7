package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/interfaces"
	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/memoraid/memoraid/pkg/utils/async"
	"github.com/memoraid/memoraid/pkg/utils/logging"
)

type QuizUseCase struct {
	repo     interfaces.Repository
	notifier interfaces.Notifier
}

func NewQuizUseCase(repo interfaces.Repository, notifier interfaces.Notifier) *QuizUseCase {
	return &QuizUseCase{
		repo:     repo,
		notifier: notifier,
	}
}

// SaveAttempt records a quiz attempt. Caregivers are notified in the
// background when a notifier is configured.
func (uc *QuizUseCase) SaveAttempt(ctx context.Context, attempt *model.QuizAttempt) (*model.QuizAttempt, error) {
	if err := attempt.Validate(); err != nil {
		return nil, err
	}
	if err := authorizeRead(ctx, attempt.PatientID); err != nil {
		return nil, err
	}

	memory, err := uc.repo.Memory().Get(ctx, attempt.MemoryID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get memory", goerr.V(model.MemoryIDKey, attempt.MemoryID))
	}
	if memory.PatientID != attempt.PatientID {
		return nil, goerr.Wrap(ErrAccessDenied, "memory belongs to another patient",
			goerr.V(model.MemoryIDKey, attempt.MemoryID),
			goerr.V(model.PatientIDKey, attempt.PatientID))
	}

	created, err := uc.repo.QuizAttempt().Create(ctx, attempt)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save quiz attempt", goerr.V(model.MemoryIDKey, attempt.MemoryID))
	}

	logging.From(ctx).Info("quiz attempt saved",
		"memory_id", created.MemoryID,
		"score", created.Score,
		"correct", created.CorrectAnswers,
		"total", created.TotalQuestions)

	if uc.notifier != nil {
		notifier := uc.notifier
		async.Dispatch(ctx, func(ctx context.Context) error {
			return notifier.NotifyQuizAttempt(ctx, memory, created)
		})
	}

	return created, nil
}

// ListAttempts returns the attempts of a patient, newest first
func (uc *QuizUseCase) ListAttempts(ctx context.Context, patientID string) ([]*model.QuizAttempt, error) {
	if err := authorizeRead(ctx, patientID); err != nil {
		return nil, err
	}

	attempts, err := uc.repo.QuizAttempt().ListByPatient(ctx, patientID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list quiz attempts", goerr.V(model.PatientIDKey, patientID))
	}
	return attempts, nil
}
