package quiz_test

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/m-mizutani/gt"
	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/memoraid/memoraid/pkg/domain/types"
	"github.com/memoraid/memoraid/pkg/service/quiz"
)

// mockLLMSession is a mock gollem Session for testing
type mockLLMSession struct {
	generateFn func(ctx context.Context, input []gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	if s.generateFn != nil {
		return s.generateFn(ctx, input)
	}
	return &gollem.Response{Texts: []string{fiveQuestionsJSON()}}, nil
}

func (s *mockLLMSession) Stream(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	return s.Generate(ctx, input)
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return s.Stream(ctx, input)
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

var (
	_ gollem.Session   = (*mockLLMSession)(nil)
	_ gollem.LLMClient = (*mockLLMClient)(nil)
)

// mockLLMClient is a mock gollem LLMClient for testing
type mockLLMClient struct {
	newSessionFn func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	if c.newSessionFn != nil {
		return c.newSessionFn(ctx, options...)
	}
	return &mockLLMSession{}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

// newSessionClient returns a client whose sessions all use fn
func newSessionClient(fn func(ctx context.Context, input []gollem.Input) (*gollem.Response, error)) *mockLLMClient {
	return &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{generateFn: fn}, nil
		},
	}
}

func TestNewGenerator(t *testing.T) {
	_, err := quiz.NewGenerator(nil)
	gt.Value(t, err).NotNil()
}

func TestGenerator_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns joined response text", func(t *testing.T) {
		var gotPrompt string
		client := newSessionClient(func(ctx context.Context, input []gollem.Input) (*gollem.Response, error) {
			gt.Array(t, input).Length(1).Required()
			text, ok := input[0].(gollem.Text)
			gt.Bool(t, ok).True()
			gotPrompt = string(text)
			return &gollem.Response{Texts: []string{"[1,", "2]"}}, nil
		})

		g, err := quiz.NewGenerator(client)
		gt.NoError(t, err).Required()

		text, err := g.Generate(ctx, "hello prompt")
		gt.NoError(t, err).Required()
		gt.Value(t, text).Equal("[1,2]")
		gt.Value(t, gotPrompt).Equal("hello prompt")
	})

	t.Run("retries once after a failure", func(t *testing.T) {
		var calls atomic.Int32
		client := newSessionClient(func(ctx context.Context, input []gollem.Input) (*gollem.Response, error) {
			if calls.Add(1) == 1 {
				return nil, errors.New("temporary failure")
			}
			return &gollem.Response{Texts: []string{"ok"}}, nil
		})

		g, err := quiz.NewGenerator(client, quiz.WithRetryBackoff(0))
		gt.NoError(t, err).Required()

		text, err := g.Generate(ctx, "prompt")
		gt.NoError(t, err).Required()
		gt.Value(t, text).Equal("ok")
		gt.Value(t, calls.Load()).Equal(int32(2))
	})

	t.Run("service error becomes upstream unavailable after one retry", func(t *testing.T) {
		var calls atomic.Int32
		client := newSessionClient(func(ctx context.Context, input []gollem.Input) (*gollem.Response, error) {
			calls.Add(1)
			return nil, errors.New("service down")
		})

		g, err := quiz.NewGenerator(client, quiz.WithRetryBackoff(0))
		gt.NoError(t, err).Required()

		_, err = g.Generate(ctx, "prompt")
		gt.Error(t, err).Is(model.ErrUpstreamUnavailable)
		gt.Value(t, calls.Load()).Equal(int32(2))
	})

	t.Run("retry can be disabled", func(t *testing.T) {
		var calls atomic.Int32
		client := newSessionClient(func(ctx context.Context, input []gollem.Input) (*gollem.Response, error) {
			calls.Add(1)
			return nil, errors.New("service down")
		})

		g, err := quiz.NewGenerator(client, quiz.WithRetry(false))
		gt.NoError(t, err).Required()

		_, err = g.Generate(ctx, "prompt")
		gt.Error(t, err).Is(model.ErrUpstreamUnavailable)
		gt.Value(t, calls.Load()).Equal(int32(1))
	})

	t.Run("empty text is upstream unavailable", func(t *testing.T) {
		client := newSessionClient(func(ctx context.Context, input []gollem.Input) (*gollem.Response, error) {
			return &gollem.Response{Texts: []string{"  ", "\n"}}, nil
		})

		g, err := quiz.NewGenerator(client, quiz.WithRetryBackoff(0))
		gt.NoError(t, err).Required()

		_, err = g.Generate(ctx, "prompt")
		gt.Error(t, err).Is(model.ErrUpstreamUnavailable)
	})

	t.Run("session creation failure is upstream unavailable", func(t *testing.T) {
		client := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return nil, errors.New("no credentials")
			},
		}

		g, err := quiz.NewGenerator(client, quiz.WithRetryBackoff(0))
		gt.NoError(t, err).Required()

		_, err = g.Generate(ctx, "prompt")
		gt.Error(t, err).Is(model.ErrUpstreamUnavailable)
	})

	t.Run("timeout is upstream unavailable", func(t *testing.T) {
		client := newSessionClient(func(ctx context.Context, input []gollem.Input) (*gollem.Response, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

		g, err := quiz.NewGenerator(client,
			quiz.WithTimeout(20*time.Millisecond),
			quiz.WithRetryBackoff(0),
		)
		gt.NoError(t, err).Required()

		start := time.Now()
		_, err = g.Generate(ctx, "prompt")
		gt.Error(t, err).Is(model.ErrUpstreamUnavailable)
		gt.Bool(t, time.Since(start) < 5*time.Second).True()
	})

	t.Run("canceled context skips the retry", func(t *testing.T) {
		var calls atomic.Int32
		cctx, cancel := context.WithCancel(ctx)
		client := newSessionClient(func(ctx context.Context, input []gollem.Input) (*gollem.Response, error) {
			calls.Add(1)
			cancel()
			return nil, errors.New("interrupted")
		})

		g, err := quiz.NewGenerator(client)
		gt.NoError(t, err).Required()

		_, err = g.Generate(cctx, "prompt")
		gt.Error(t, err).Is(model.ErrUpstreamUnavailable)
		gt.Value(t, calls.Load()).Equal(int32(1))
	})
}

func TestGenerator_Gemini(t *testing.T) {
	projectID := os.Getenv("TEST_GEMINI_PROJECT")
	location := os.Getenv("TEST_GEMINI_LOCATION")
	if projectID == "" || location == "" {
		t.Skip("TEST_GEMINI_PROJECT and TEST_GEMINI_LOCATION are not set")
	}

	ctx := context.Background()
	client, err := gemini.New(ctx, projectID, location)
	gt.NoError(t, err).Required()

	g, err := quiz.NewGenerator(client, quiz.WithTimeout(2*time.Minute))
	gt.NoError(t, err).Required()

	svc, err := quiz.New(g)
	gt.NoError(t, err).Required()

	drafts, err := svc.Draft(ctx, &model.Memory{
		ID:          "mem-gemini",
		PatientID:   "patient-001",
		Description: "We went to Miami Beach in July 2019 with my sister Maria. We ate key lime pie and watched the sunset from the pier.",
		EventDate:   "2019-07-04",
	}, model.ContributorSummary{
		Name:             "Maria",
		RelationshipType: types.RelationshipFamily,
	})
	gt.NoError(t, err).Required()
	gt.Bool(t, len(drafts) > 0).True()
	for _, d := range drafts {
		gt.Value(t, d.Options[len(d.Options)-1]).Equal(model.SentinelOption)
	}
}
