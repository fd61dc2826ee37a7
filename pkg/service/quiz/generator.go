package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/memoraid/memoraid/pkg/utils/logging"
)

const (
	DefaultTimeout      = 30 * time.Second
	DefaultRetryBackoff = 500 * time.Millisecond
)

// Generator sends prompts to the text-generation service. It makes at most
// one retry before reporting model.ErrUpstreamUnavailable.
type Generator struct {
	llmClient    gollem.LLMClient
	timeout      time.Duration
	retryBackoff time.Duration
	retry        bool
}

// GeneratorOption is a functional option for Generator configuration
type GeneratorOption func(*Generator)

// WithTimeout sets the timeout of a single generation call
func WithTimeout(d time.Duration) GeneratorOption {
	return func(g *Generator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithRetryBackoff sets the wait before the retry
func WithRetryBackoff(d time.Duration) GeneratorOption {
	return func(g *Generator) {
		if d >= 0 {
			g.retryBackoff = d
		}
	}
}

// WithRetry enables or disables the single retry
func WithRetry(enabled bool) GeneratorOption {
	return func(g *Generator) {
		g.retry = enabled
	}
}

// NewGenerator creates a Generator with the provided LLM client
func NewGenerator(llmClient gollem.LLMClient, opts ...GeneratorOption) (*Generator, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	g := &Generator{
		llmClient:    llmClient,
		timeout:      DefaultTimeout,
		retryBackoff: DefaultRetryBackoff,
		retry:        true,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Generate returns the raw text produced for the prompt. The text is not
// inspected; shape validation is Parse's job.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	logger := logging.From(ctx)

	attempts := 1
	if g.retry {
		attempts = 2
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			if ctx.Err() != nil {
				break
			}
			timer := time.NewTimer(g.retryBackoff)
			select {
			case <-ctx.Done():
				timer.Stop()
			case <-timer.C:
			}
			if ctx.Err() != nil {
				break
			}
		}

		text, err := g.generateOnce(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		logger.Warn("text generation attempt failed", "attempt", i+1, "error", err.Error())
	}

	if lastErr == nil {
		lastErr = ctx.Err()
	}
	return "", goerr.Wrap(fmt.Errorf("%w: %w", model.ErrUpstreamUnavailable, lastErr),
		"text generation failed", goerr.V("timeout", g.timeout))
}

func (g *Generator) generateOnce(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	session, err := g.llmClient.NewSession(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.Generate(ctx, []gollem.Input{gollem.Text(prompt)})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", goerr.Wrap(err, "text generation timed out", goerr.V("timeout", g.timeout))
		}
		return "", goerr.Wrap(err, "failed to generate content from LLM")
	}
	if resp == nil {
		return "", goerr.New("LLM returned no response")
	}

	text := strings.Join(resp.Texts, "")
	if strings.TrimSpace(text) == "" {
		return "", goerr.New("LLM returned no text")
	}

	return text, nil
}
