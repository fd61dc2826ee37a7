package quiz_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/memoraid/memoraid/pkg/domain/types"
	"github.com/memoraid/memoraid/pkg/service/quiz"
)

type mockTextGenerator struct {
	generateFn func(ctx context.Context, prompt string) (string, error)
	prompts    []string
}

func (m *mockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.generateFn != nil {
		return m.generateFn(ctx, prompt)
	}
	return fiveQuestionsJSON(), nil
}

func TestService_Draft(t *testing.T) {
	ctx := context.Background()
	memory := &model.Memory{
		ID:          "mem-001",
		PatientID:   "patient-001",
		Description: "We went to Miami Beach.",
	}
	contributor := model.ContributorSummary{Name: "Alice", RelationshipType: types.RelationshipFriend}

	t.Run("sends the built prompt and parses the response", func(t *testing.T) {
		gen := &mockTextGenerator{}
		svc, err := quiz.New(gen)
		gt.NoError(t, err).Required()

		drafts, err := svc.Draft(ctx, memory, contributor)
		gt.NoError(t, err).Required()
		gt.Array(t, drafts).Length(5)
		gt.Array(t, gen.prompts).Length(1).Required()
		gt.Value(t, gen.prompts[0]).Equal(quiz.BuildPrompt(memory, contributor))
	})

	t.Run("generation error is propagated", func(t *testing.T) {
		svc, err := quiz.New(&mockTextGenerator{
			generateFn: func(ctx context.Context, prompt string) (string, error) {
				return "", model.ErrUpstreamUnavailable
			},
		})
		gt.NoError(t, err).Required()

		_, err = svc.Draft(ctx, memory, contributor)
		gt.Error(t, err).Is(model.ErrUpstreamUnavailable)
		gt.Bool(t, errors.Is(err, model.ErrMalformedResponse)).False()
	})

	t.Run("malformed response is propagated", func(t *testing.T) {
		svc, err := quiz.New(&mockTextGenerator{
			generateFn: func(ctx context.Context, prompt string) (string, error) {
				return "Sorry, I cannot help with that.", nil
			},
		})
		gt.NoError(t, err).Required()

		drafts, err := svc.Draft(ctx, memory, contributor)
		gt.Error(t, err).Is(model.ErrMalformedResponse)
		gt.Array(t, drafts).Length(0)
	})

	t.Run("nil generator is rejected", func(t *testing.T) {
		_, err := quiz.New(nil)
		gt.Value(t, err).NotNil()
	})
}
