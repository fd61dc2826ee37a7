package quiz

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/memoraid/memoraid/pkg/utils/logging"
)

// TextGenerator produces raw text for a prompt. *Generator implements it.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service drafts questions for a memory: prompt, generate, parse.
type Service struct {
	generator TextGenerator
}

// New creates a Service with the given text generator
func New(generator TextGenerator) (*Service, error) {
	if generator == nil {
		return nil, goerr.New("text generator is required")
	}
	return &Service{generator: generator}, nil
}

// Draft returns validated question drafts for the memory. Errors are
// model.ErrUpstreamUnavailable or model.ErrMalformedResponse.
func (s *Service) Draft(ctx context.Context, memory *model.Memory, contributor model.ContributorSummary) ([]model.QuestionDraft, error) {
	logger := logging.From(ctx)

	prompt := BuildPrompt(memory, contributor)

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate questions",
			goerr.V(model.MemoryIDKey, memory.ID))
	}

	drafts, err := Parse(raw)
	if err != nil {
		var malformed *model.MalformedResponseError
		if errors.As(err, &malformed) {
			logger.Warn("rejected generation response",
				"memory_id", memory.ID,
				"reason", malformed.Reason,
				"index", malformed.Index,
				"response", compactJSON(raw))
		}
		return nil, goerr.Wrap(err, "failed to parse generated questions",
			goerr.V(model.MemoryIDKey, memory.ID))
	}

	logger.Debug("questions drafted", "memory_id", memory.ID, "count", len(drafts))
	return drafts, nil
}
