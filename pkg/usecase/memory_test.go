package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/memoraid/memoraid/pkg/domain/interfaces"
	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/memoraid/memoraid/pkg/domain/model/auth"
	"github.com/memoraid/memoraid/pkg/domain/types"
	"github.com/memoraid/memoraid/pkg/repository/memory"
	"github.com/memoraid/memoraid/pkg/service/quiz"
	"github.com/memoraid/memoraid/pkg/service/storage"
	"github.com/memoraid/memoraid/pkg/usecase"
)

const miamiBeachResponse = "```json\n" + `[
  {
    "question": "Where did we go on this trip?",
    "options": ["Miami Beach", "San Diego", "Cancun", "I don't remember"],
    "correct_option_index": 0,
    "difficulty": 1,
    "points": 5
  }
]` + "\n```"

func newTestUseCases(t *testing.T, repo interfaces.Repository, gen *mockTextGenerator, opts ...usecase.Option) *usecase.UseCases {
	t.Helper()

	svc, err := quiz.New(gen)
	gt.NoError(t, err).Required()

	return usecase.New(repo, append([]usecase.Option{usecase.WithDrafter(svc)}, opts...)...)
}

func createTestContributor(t *testing.T, uc *usecase.UseCases, patientID string) *model.Contributor {
	t.Helper()

	c, err := uc.Contributor.Create(context.Background(), &model.Contributor{
		UserID:            patientID,
		Name:              "Maria",
		Email:             "maria@example.com",
		RelationshipType:  types.RelationshipFamily,
		RelationshipYears: 30,
	})
	gt.NoError(t, err).Required()
	return c
}

func miamiInput(contributorID model.ContributorID, patientID string) usecase.CreateMemoryInput {
	return usecase.CreateMemoryInput{
		ContributorID:    contributorID,
		PatientID:        patientID,
		PhotoURL:         "https://example.com/beach.jpg",
		Description:      "We spent a week at Miami Beach in July 2019 and ate key lime pie every evening.",
		BriefDescription: "A week at the beach",
		EventDate:        "2019-07-04",
	}
}

func TestMemoryUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores memory and generated questions", func(t *testing.T) {
		repo := memory.New()
		gen := &mockTextGenerator{
			generateFn: func(ctx context.Context, prompt string) (string, error) {
				return miamiBeachResponse, nil
			},
		}
		uc := newTestUseCases(t, repo, gen)
		contributor := createTestContributor(t, uc, "patient-001")

		result, err := uc.Memory.Create(ctx, miamiInput(contributor.ID, "patient-001"))
		gt.NoError(t, err).Required()
		gt.Value(t, result.QuestionsError).Nil()
		gt.Array(t, result.Questions).Length(1).Required()

		q := result.Questions[0]
		gt.Value(t, q.MemoryID).Equal(result.Memory.ID)
		gt.Value(t, q.PatientID).Equal("patient-001")
		gt.Value(t, q.CorrectAnswer).Equal("Miami Beach")
		gt.Value(t, q.Difficulty).Equal(types.Difficulty(1))
		gt.Value(t, q.Points).Equal(types.Points(5))

		encoded, err := q.OptionsJSON()
		gt.NoError(t, err).Required()
		var decoded []string
		gt.NoError(t, json.Unmarshal([]byte(encoded), &decoded)).Required()
		gt.Value(t, decoded).Equal([]string{"Miami Beach", "San Diego", "Cancun", "I don't remember"})

		stored, err := repo.Question().ListByMemory(ctx, result.Memory.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, stored).Length(1)

		gt.Array(t, gen.prompts).Length(1).Required()
		gt.String(t, gen.prompts[0]).Contains("from a Family named Maria")
		gt.String(t, gen.prompts[0]).Contains("Date: This happened on 2019-07-04")
	})

	t.Run("generation failure keeps the memory", func(t *testing.T) {
		repo := memory.New()
		notifier := newMockNotifier()
		gen := &mockTextGenerator{
			generateFn: func(ctx context.Context, prompt string) (string, error) {
				return "", model.ErrUpstreamUnavailable
			},
		}
		uc := newTestUseCases(t, repo, gen, usecase.WithNotifier(notifier))
		contributor := createTestContributor(t, uc, "patient-001")

		result, err := uc.Memory.Create(ctx, miamiInput(contributor.ID, "patient-001"))
		gt.NoError(t, err).Required()
		gt.Error(t, result.QuestionsError).Is(model.ErrUpstreamUnavailable)
		gt.Array(t, result.Questions).Length(0)

		got, err := uc.Memory.Get(ctx, result.Memory.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Description).Equal(result.Memory.Description)

		questions, err := repo.Question().ListByMemory(ctx, result.Memory.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, questions).Length(0)

		select {
		case <-notifier.done:
		case <-time.After(time.Second):
			t.Fatal("generation failure was not notified")
		}
		gt.Array(t, notifier.failures).Length(1)
	})

	t.Run("malformed response keeps the memory", func(t *testing.T) {
		repo := memory.New()
		gen := &mockTextGenerator{
			generateFn: func(ctx context.Context, prompt string) (string, error) {
				return "I'm sorry, I can't do that.", nil
			},
		}
		uc := newTestUseCases(t, repo, gen)
		contributor := createTestContributor(t, uc, "patient-001")

		result, err := uc.Memory.Create(ctx, miamiInput(contributor.ID, "patient-001"))
		gt.NoError(t, err).Required()
		gt.Error(t, result.QuestionsError).Is(model.ErrMalformedResponse)

		memories, err := uc.Memory.ListByPatient(ctx, "patient-001")
		gt.NoError(t, err).Required()
		gt.Array(t, memories).Length(1)
	})

	t.Run("persistence failure is reported as persistence error", func(t *testing.T) {
		repo := newFailingQuestionsRepository()
		gen := &mockTextGenerator{
			generateFn: func(ctx context.Context, prompt string) (string, error) {
				return miamiBeachResponse, nil
			},
		}
		uc := newTestUseCases(t, repo, gen)
		contributor := createTestContributor(t, uc, "patient-001")

		result, err := uc.Memory.Create(ctx, miamiInput(contributor.ID, "patient-001"))
		gt.NoError(t, err).Required()
		gt.Error(t, result.QuestionsError).Is(model.ErrPersistence)
		gt.Bool(t, errors.Is(result.QuestionsError, model.ErrMalformedResponse)).False()
		gt.Bool(t, errors.Is(result.QuestionsError, model.ErrUpstreamUnavailable)).False()

		_, err = uc.Memory.Get(ctx, result.Memory.ID)
		gt.NoError(t, err)
	})

	t.Run("invalid memory is rejected before generation", func(t *testing.T) {
		repo := memory.New()
		gen := &mockTextGenerator{}
		uc := newTestUseCases(t, repo, gen)
		contributor := createTestContributor(t, uc, "patient-001")

		input := miamiInput(contributor.ID, "patient-001")
		input.Description = strings.Repeat("word ", model.MaxDescriptionWords+1)

		_, err := uc.Memory.Create(ctx, input)
		gt.Error(t, err).Is(model.ErrInvalidMemory)
		gt.Value(t, gen.calls()).Equal(0)

		memories, err := uc.Memory.ListByPatient(ctx, "patient-001")
		gt.NoError(t, err).Required()
		gt.Array(t, memories).Length(0)
	})

	t.Run("unknown contributor is not found", func(t *testing.T) {
		uc := newTestUseCases(t, memory.New(), &mockTextGenerator{})

		_, err := uc.Memory.Create(ctx, miamiInput("missing", "patient-001"))
		gt.Error(t, err).Is(model.ErrNotFound)
	})

	t.Run("share token principal may only contribute to its patient", func(t *testing.T) {
		repo := memory.New()
		gen := &mockTextGenerator{
			generateFn: func(ctx context.Context, prompt string) (string, error) {
				return miamiBeachResponse, nil
			},
		}
		uc := newTestUseCases(t, repo, gen)
		contributor := createTestContributor(t, uc, "patient-001")

		shareCtx := auth.ContextWithPrincipal(ctx, &auth.Principal{PatientID: "patient-001", Scope: auth.ScopeShare})
		_, err := uc.Memory.Create(shareCtx, miamiInput(contributor.ID, "patient-001"))
		gt.NoError(t, err)

		_, err = uc.Memory.Create(shareCtx, miamiInput(contributor.ID, "patient-002"))
		gt.Error(t, err).Is(usecase.ErrAccessDenied)

		_, err = uc.Memory.ListByPatient(shareCtx, "patient-001")
		gt.Error(t, err).Is(usecase.ErrAccessDenied)
	})

	t.Run("contributor of another patient is rejected", func(t *testing.T) {
		repo := memory.New()
		gen := &mockTextGenerator{
			generateFn: func(ctx context.Context, prompt string) (string, error) {
				return miamiBeachResponse, nil
			},
		}
		uc := newTestUseCases(t, repo, gen)
		other := createTestContributor(t, uc, "patient-002")

		shareCtx := auth.ContextWithPrincipal(ctx, &auth.Principal{PatientID: "patient-001", Scope: auth.ScopeShare})
		_, err := uc.Memory.Create(shareCtx, miamiInput(other.ID, "patient-001"))
		gt.Error(t, err).Is(usecase.ErrAccessDenied)
		gt.Value(t, gen.calls()).Equal(0)

		memories, err := uc.Memory.ListByPatient(ctx, "patient-001")
		gt.NoError(t, err).Required()
		gt.Array(t, memories).Length(0)
	})

	t.Run("anonymous contributor may contribute to any patient", func(t *testing.T) {
		repo := memory.New()
		gen := &mockTextGenerator{
			generateFn: func(ctx context.Context, prompt string) (string, error) {
				return miamiBeachResponse, nil
			},
		}
		uc := newTestUseCases(t, repo, gen)
		anonymous := createTestContributor(t, uc, model.AnonymousUserID)

		result, err := uc.Memory.Create(ctx, miamiInput(anonymous.ID, "patient-001"))
		gt.NoError(t, err).Required()
		gt.Value(t, result.Memory.PatientID).Equal("patient-001")
	})
}

func TestMemoryUseCase_Regenerate(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	gen := &mockTextGenerator{
		generateFn: func(ctx context.Context, prompt string) (string, error) {
			return miamiBeachResponse, nil
		},
	}
	uc := newTestUseCases(t, repo, gen)
	contributor := createTestContributor(t, uc, "patient-001")

	result, err := uc.Memory.Create(ctx, miamiInput(contributor.ID, "patient-001"))
	gt.NoError(t, err).Required()

	second, err := uc.Memory.Regenerate(ctx, result.Memory.ID)
	gt.NoError(t, err).Required()
	gt.Array(t, second).Length(1).Required()
	gt.Value(t, second[0].ID).NotEqual(result.Questions[0].ID)

	all, err := uc.Question.ListByMemory(ctx, result.Memory.ID)
	gt.NoError(t, err).Required()
	gt.Array(t, all).Length(2)

	_, err = uc.Memory.Regenerate(ctx, "missing")
	gt.Error(t, err).Is(model.ErrNotFound)
}

func TestMemoryUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	gen := &mockTextGenerator{
		generateFn: func(ctx context.Context, prompt string) (string, error) {
			return miamiBeachResponse, nil
		},
	}
	uc := newTestUseCases(t, repo, gen)
	contributor := createTestContributor(t, uc, "patient-001")

	result, err := uc.Memory.Create(ctx, miamiInput(contributor.ID, "patient-001"))
	gt.NoError(t, err).Required()

	otherCtx := auth.ContextWithPrincipal(ctx, &auth.Principal{PatientID: "patient-002", Scope: auth.ScopeUser})
	gt.Error(t, uc.Memory.Delete(otherCtx, result.Memory.ID)).Is(usecase.ErrAccessDenied)

	gt.NoError(t, uc.Memory.Delete(ctx, result.Memory.ID)).Required()

	_, err = uc.Memory.Get(ctx, result.Memory.ID)
	gt.Error(t, err).Is(model.ErrNotFound)

	questions, err := repo.Question().ListByMemory(ctx, result.Memory.ID)
	gt.NoError(t, err).Required()
	gt.Array(t, questions).Length(0)
}

func TestMemoryUseCase_UploadPhoto(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory("https://cdn.example.com")
	uc := usecase.New(memory.New(), usecase.WithStorage(store))

	url, err := uc.Memory.UploadPhoto(ctx, "patient-001", "Beach.JPG", "image/jpeg", strings.NewReader("jpeg-bytes"))
	gt.NoError(t, err).Required()
	gt.String(t, url).Contains("https://cdn.example.com/photos/patient-001/")
	gt.Bool(t, strings.HasSuffix(url, ".jpg")).True()

	_, err = uc.Memory.UploadPhoto(ctx, "", "a.jpg", "image/jpeg", strings.NewReader("x"))
	gt.Error(t, err).Is(usecase.ErrInvalidInput)

	noStorage := usecase.New(memory.New())
	_, err = noStorage.Memory.UploadPhoto(ctx, "patient-001", "a.jpg", "image/jpeg", strings.NewReader("x"))
	gt.Value(t, err).NotNil()
}

func TestPhotoObjectName(t *testing.T) {
	name := usecase.PhotoObjectName("patient-001", "My Photo.PNG")
	gt.Bool(t, strings.HasPrefix(name, "photos/patient-001/")).True()
	gt.Bool(t, strings.HasSuffix(name, ".png")).True()
	gt.Bool(t, strings.Contains(name, "My Photo")).False()

	gt.Bool(t, strings.HasSuffix(usecase.PhotoObjectName("p", "noext"), "/")).False()
}
