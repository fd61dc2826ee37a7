package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/interfaces"
	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/memoraid/memoraid/pkg/utils/logging"
)

// QuestionDrafter turns a memory into validated question drafts.
// *quiz.Service implements it.
type QuestionDrafter interface {
	Draft(ctx context.Context, memory *model.Memory, contributor model.ContributorSummary) ([]model.QuestionDraft, error)
}

type QuestionUseCase struct {
	repo       interfaces.Repository
	drafter    QuestionDrafter
	dailyLimit int
}

func NewQuestionUseCase(repo interfaces.Repository, drafter QuestionDrafter, dailyLimit int) *QuestionUseCase {
	if dailyLimit <= 0 {
		dailyLimit = DefaultDailyLimit
	}
	return &QuestionUseCase{
		repo:       repo,
		drafter:    drafter,
		dailyLimit: dailyLimit,
	}
}

// GenerateForMemory runs the generation pipeline for an already stored
// memory and returns the persisted questions. Every call creates a new
// batch; earlier batches are left untouched. On failure nothing is stored
// and the memory is not modified.
func (uc *QuestionUseCase) GenerateForMemory(ctx context.Context, memory *model.Memory, contributor model.ContributorSummary) ([]*model.Question, error) {
	if uc.drafter == nil {
		return nil, goerr.Wrap(model.ErrUpstreamUnavailable, "question generation is not configured",
			goerr.V(model.MemoryIDKey, memory.ID))
	}

	logger := logging.From(ctx).With("memory_id", memory.ID)

	drafts, err := uc.drafter.Draft(ctx, memory, contributor)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to draft questions", goerr.V(model.MemoryIDKey, memory.ID))
	}

	questions, err := uc.Persist(ctx, memory.ID, memory.PatientID, drafts)
	if err != nil {
		return nil, err
	}

	logger.Info("questions generated", "count", len(questions))
	return questions, nil
}

// Persist stores drafts as questions of the memory in one batch. Storage
// failures are reported as model.ErrPersistence.
func (uc *QuestionUseCase) Persist(ctx context.Context, memoryID model.MemoryID, patientID string, drafts []model.QuestionDraft) ([]*model.Question, error) {
	questions := make([]*model.Question, 0, len(drafts))
	for _, draft := range drafts {
		questions = append(questions, model.NewQuestionFromDraft(memoryID, patientID, draft))
	}

	created, err := uc.repo.Question().CreateBatch(ctx, questions)
	if err != nil {
		return nil, goerr.Wrap(fmt.Errorf("%w: %w", model.ErrPersistence, err), "failed to persist questions",
			goerr.V(model.MemoryIDKey, memoryID),
			goerr.V("count", len(questions)))
	}

	return created, nil
}

// ListByMemory returns the questions of a memory ordered by difficulty
func (uc *QuestionUseCase) ListByMemory(ctx context.Context, memoryID model.MemoryID) ([]*model.Question, error) {
	memory, err := uc.repo.Memory().Get(ctx, memoryID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get memory", goerr.V(model.MemoryIDKey, memoryID))
	}
	if err := authorizeRead(ctx, memory.PatientID); err != nil {
		return nil, err
	}

	questions, err := uc.repo.Question().ListByMemory(ctx, memoryID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list questions", goerr.V(model.MemoryIDKey, memoryID))
	}
	return questions, nil
}

// Daily returns up to limit practice questions of the patient. Questions
// of the newest memories are picked, easiest first. A limit of 0 or less
// uses the configured daily limit; larger limits are capped at MaxDailyLimit.
func (uc *QuestionUseCase) Daily(ctx context.Context, patientID string, limit int) ([]*model.Question, error) {
	if err := authorizeRead(ctx, patientID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = uc.dailyLimit
	}
	limit = min(limit, MaxDailyLimit)

	candidates, err := uc.repo.Question().ListByPatient(ctx, patientID, limit*model.QuestionsPerMemory)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list questions", goerr.V(model.PatientIDKey, patientID))
	}

	// candidates are newest first; keep that order within a difficulty
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Difficulty < candidates[j].Difficulty
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}
