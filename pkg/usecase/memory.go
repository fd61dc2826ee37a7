package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/interfaces"
	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/memoraid/memoraid/pkg/utils/async"
	"github.com/memoraid/memoraid/pkg/utils/errutil"
	"github.com/memoraid/memoraid/pkg/utils/logging"
	"golang.org/x/sync/semaphore"
)

// CreateMemoryInput is the submission of a new memory
type CreateMemoryInput struct {
	ContributorID    model.ContributorID
	PatientID        string
	PhotoURL         string
	Description      string
	BriefDescription string
	EventDate        string
}

// CreateMemoryResult reports a stored memory and the outcome of question
// generation. QuestionsError is set when the memory was stored but
// questions could not be generated.
type CreateMemoryResult struct {
	Memory         *model.Memory
	Questions      []*model.Question
	QuestionsError error
}

type MemoryUseCase struct {
	repo      interfaces.Repository
	questions *QuestionUseCase
	storage   interfaces.ObjectStorage
	notifier  interfaces.Notifier
	sem       *semaphore.Weighted
}

// MemoryOption is a functional option for MemoryUseCase
type MemoryOption func(*MemoryUseCase)

// WithMemoryStorage sets the object storage for photos
func WithMemoryStorage(storage interfaces.ObjectStorage) MemoryOption {
	return func(uc *MemoryUseCase) {
		uc.storage = storage
	}
}

// WithMemoryNotifier sets the notifier told about generation failures
func WithMemoryNotifier(notifier interfaces.Notifier) MemoryOption {
	return func(uc *MemoryUseCase) {
		uc.notifier = notifier
	}
}

// WithGenerationLimit bounds concurrent generation calls
func WithGenerationLimit(n int64) MemoryOption {
	return func(uc *MemoryUseCase) {
		if n > 0 {
			uc.sem = semaphore.NewWeighted(n)
		}
	}
}

func NewMemoryUseCase(repo interfaces.Repository, questions *QuestionUseCase, opts ...MemoryOption) *MemoryUseCase {
	uc := &MemoryUseCase{
		repo:      repo,
		questions: questions,
		sem:       semaphore.NewWeighted(DefaultMaxConcurrentGenerations),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Create stores the memory and then generates its questions. A generation
// failure does not roll back the memory; it is reported in
// CreateMemoryResult.QuestionsError.
func (uc *MemoryUseCase) Create(ctx context.Context, input CreateMemoryInput) (*CreateMemoryResult, error) {
	memory := &model.Memory{
		ContributorID:    input.ContributorID,
		PatientID:        strings.TrimSpace(input.PatientID),
		PhotoURL:         strings.TrimSpace(input.PhotoURL),
		Description:      strings.TrimSpace(input.Description),
		BriefDescription: strings.TrimSpace(input.BriefDescription),
		EventDate:        strings.TrimSpace(input.EventDate),
	}
	if err := memory.Validate(); err != nil {
		return nil, err
	}
	if err := authorizeContribute(ctx, memory.PatientID); err != nil {
		return nil, err
	}

	contributor, err := uc.repo.Contributor().Get(ctx, memory.ContributorID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get contributor", goerr.V(model.ContributorIDKey, memory.ContributorID))
	}
	if contributor.UserID != memory.PatientID && contributor.UserID != model.AnonymousUserID {
		return nil, goerr.Wrap(ErrAccessDenied, "contributor belongs to another patient",
			goerr.V(model.ContributorIDKey, memory.ContributorID),
			goerr.V(model.PatientIDKey, memory.PatientID))
	}

	created, err := uc.repo.Memory().Create(ctx, memory)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create memory", goerr.V(model.PatientIDKey, memory.PatientID))
	}

	logger := logging.From(ctx)
	logger.Info("memory created", "memory_id", created.ID, "patient_id", created.PatientID)

	result := &CreateMemoryResult{Memory: created}

	questions, err := uc.generate(ctx, created, contributor.Summary())
	if err != nil {
		result.QuestionsError = err
		uc.reportGenerationFailure(ctx, created, err)
		return result, nil
	}

	result.Questions = questions
	return result, nil
}

// Regenerate creates a new batch of questions for an existing memory.
// Earlier batches are kept.
func (uc *MemoryUseCase) Regenerate(ctx context.Context, memoryID model.MemoryID) ([]*model.Question, error) {
	memory, err := uc.repo.Memory().Get(ctx, memoryID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get memory", goerr.V(model.MemoryIDKey, memoryID))
	}
	if err := authorizeRead(ctx, memory.PatientID); err != nil {
		return nil, err
	}

	summary := model.ContributorSummary{}
	contributor, err := uc.repo.Contributor().Get(ctx, memory.ContributorID)
	switch {
	case err == nil:
		summary = contributor.Summary()
	case isNotFound(err):
		logging.From(ctx).Warn("contributor of memory not found, generating without it",
			"memory_id", memory.ID, "contributor_id", memory.ContributorID)
	default:
		return nil, goerr.Wrap(err, "failed to get contributor", goerr.V(model.ContributorIDKey, memory.ContributorID))
	}

	questions, err := uc.generate(ctx, memory, summary)
	if err != nil {
		uc.reportGenerationFailure(ctx, memory, err)
		return nil, err
	}
	return questions, nil
}

func (uc *MemoryUseCase) generate(ctx context.Context, memory *model.Memory, contributor model.ContributorSummary) ([]*model.Question, error) {
	if err := uc.sem.Acquire(ctx, 1); err != nil {
		return nil, goerr.Wrap(fmt.Errorf("%w: %w", model.ErrUpstreamUnavailable, err),
			"failed to wait for generation slot", goerr.V(model.MemoryIDKey, memory.ID))
	}
	defer uc.sem.Release(1)

	return uc.questions.GenerateForMemory(ctx, memory, contributor)
}

func (uc *MemoryUseCase) reportGenerationFailure(ctx context.Context, memory *model.Memory, err error) {
	_ = errutil.Handle(ctx, err, "failed to generate questions for memory")

	if uc.notifier == nil {
		return
	}
	notifier := uc.notifier
	async.Dispatch(ctx, func(ctx context.Context) error {
		return notifier.NotifyGenerationFailure(ctx, memory, err)
	})
}

// Get returns a memory
func (uc *MemoryUseCase) Get(ctx context.Context, memoryID model.MemoryID) (*model.Memory, error) {
	memory, err := uc.repo.Memory().Get(ctx, memoryID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get memory", goerr.V(model.MemoryIDKey, memoryID))
	}
	if err := authorizeRead(ctx, memory.PatientID); err != nil {
		return nil, err
	}
	return memory, nil
}

// ListByPatient returns the memories of a patient, newest first
func (uc *MemoryUseCase) ListByPatient(ctx context.Context, patientID string) ([]*model.Memory, error) {
	if err := authorizeRead(ctx, patientID); err != nil {
		return nil, err
	}

	memories, err := uc.repo.Memory().ListByPatient(ctx, patientID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list memories", goerr.V(model.PatientIDKey, patientID))
	}
	return memories, nil
}

// Delete removes a memory together with its questions
func (uc *MemoryUseCase) Delete(ctx context.Context, memoryID model.MemoryID) error {
	memory, err := uc.Get(ctx, memoryID)
	if err != nil {
		return err
	}

	deleted, err := uc.repo.Question().DeleteByMemory(ctx, memory.ID)
	if err != nil {
		return goerr.Wrap(err, "failed to delete questions of memory", goerr.V(model.MemoryIDKey, memory.ID))
	}

	if err := uc.repo.Memory().Delete(ctx, memory.ID); err != nil {
		return goerr.Wrap(err, "failed to delete memory", goerr.V(model.MemoryIDKey, memory.ID))
	}

	logging.From(ctx).Info("memory deleted", "memory_id", memory.ID, "questions", deleted)
	return nil
}

// UploadPhoto stores a photo for the patient and returns its public URL
func (uc *MemoryUseCase) UploadPhoto(ctx context.Context, patientID, filename, contentType string, r io.Reader) (string, error) {
	if uc.storage == nil {
		return "", goerr.New("object storage is not configured")
	}
	if patientID == "" {
		return "", goerr.Wrap(ErrInvalidInput, "patient ID is required")
	}
	if err := authorizeContribute(ctx, patientID); err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	name := photoObjectName(patientID, filename)
	url, err := uc.storage.Put(ctx, name, contentType, r)
	if err != nil {
		return "", goerr.Wrap(err, "failed to upload photo", goerr.V(ObjectNameKey, name))
	}

	logging.From(ctx).Info("photo uploaded", "object", name)
	return url, nil
}

// photoObjectName returns photos/<patient>/<uuid><ext>. The original file
// name is not kept.
func photoObjectName(patientID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\ ") {
		ext = ""
	}
	return fmt.Sprintf("photos/%s/%s%s", patientID, uuid.New().String(), ext)
}
