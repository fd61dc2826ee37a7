package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/claude"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/m-mizutani/gollem/llm/openai"
	"github.com/memoraid/memoraid/pkg/service/quiz"
	"github.com/urfave/cli/v3"
)

// LLM providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
)

// LLM holds configuration for the text-generation client
type LLM struct {
	provider       string
	model          string
	geminiProject  string
	geminiLocation string
	openaiAPIKey   string
	claudeAPIKey   string
	timeout        time.Duration
	retryBackoff   time.Duration
	noRetry        bool
}

func (x *LLM) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "llm-provider",
			Usage:       "Text generation provider (gemini, openai, claude)",
			Category:    "LLM",
			Value:       ProviderGemini,
			Sources:     cli.EnvVars("MEMORAID_LLM_PROVIDER"),
			Destination: &x.provider,
		},
		&cli.StringFlag{
			Name:        "llm-model",
			Usage:       "Model name (provider default if empty)",
			Category:    "LLM",
			Sources:     cli.EnvVars("MEMORAID_LLM_MODEL"),
			Destination: &x.model,
		},
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini API",
			Category:    "LLM",
			Sources:     cli.EnvVars("MEMORAID_GEMINI_PROJECT"),
			Destination: &x.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini API",
			Category:    "LLM",
			Value:       "us-central1",
			Sources:     cli.EnvVars("MEMORAID_GEMINI_LOCATION"),
			Destination: &x.geminiLocation,
		},
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key",
			Category:    "LLM",
			Sources:     cli.EnvVars("MEMORAID_OPENAI_API_KEY"),
			Destination: &x.openaiAPIKey,
		},
		&cli.StringFlag{
			Name:        "claude-api-key",
			Usage:       "Anthropic API key",
			Category:    "LLM",
			Sources:     cli.EnvVars("MEMORAID_CLAUDE_API_KEY"),
			Destination: &x.claudeAPIKey,
		},
		&cli.DurationFlag{
			Name:        "llm-timeout",
			Usage:       "Timeout of a single generation call",
			Category:    "LLM",
			Value:       quiz.DefaultTimeout,
			Sources:     cli.EnvVars("MEMORAID_LLM_TIMEOUT"),
			Destination: &x.timeout,
		},
		&cli.DurationFlag{
			Name:        "llm-retry-backoff",
			Usage:       "Wait before retrying a failed generation call",
			Category:    "LLM",
			Value:       quiz.DefaultRetryBackoff,
			Sources:     cli.EnvVars("MEMORAID_LLM_RETRY_BACKOFF"),
			Destination: &x.retryBackoff,
		},
		&cli.BoolFlag{
			Name:        "llm-no-retry",
			Usage:       "Do not retry failed generation calls",
			Category:    "LLM",
			Sources:     cli.EnvVars("MEMORAID_LLM_NO_RETRY"),
			Destination: &x.noRetry,
		},
	}
}

func (x LLM) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("provider", x.provider),
		slog.String("model", x.model),
		slog.String("gemini_project", x.geminiProject),
		slog.String("gemini_location", x.geminiLocation),
		slog.Int("openai_api_key.len", len(x.openaiAPIKey)),
		slog.Int("claude_api_key.len", len(x.claudeAPIKey)),
		slog.Duration("timeout", x.timeout),
	)
}

// IsConfigured reports whether credentials for the provider are set
func (x *LLM) IsConfigured() bool {
	switch x.provider {
	case ProviderGemini:
		return x.geminiProject != ""
	case ProviderOpenAI:
		return x.openaiAPIKey != ""
	case ProviderClaude:
		return x.claudeAPIKey != ""
	default:
		return false
	}
}

// NewClient creates the LLM client of the configured provider
func (x *LLM) NewClient(ctx context.Context) (gollem.LLMClient, error) {
	switch x.provider {
	case ProviderGemini:
		if x.geminiProject == "" {
			return nil, goerr.Wrap(ErrMissingRequired, "gemini-project is required", goerr.V(FlagKey, "gemini-project"))
		}
		var opts []gemini.Option
		if x.model != "" {
			opts = append(opts, gemini.WithModel(x.model))
		}
		client, err := gemini.New(ctx, x.geminiProject, x.geminiLocation, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Gemini client")
		}
		return client, nil

	case ProviderOpenAI:
		if x.openaiAPIKey == "" {
			return nil, goerr.Wrap(ErrMissingRequired, "openai-api-key is required", goerr.V(FlagKey, "openai-api-key"))
		}
		var opts []openai.Option
		if x.model != "" {
			opts = append(opts, openai.WithModel(x.model))
		}
		client, err := openai.New(ctx, x.openaiAPIKey, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create OpenAI client")
		}
		return client, nil

	case ProviderClaude:
		if x.claudeAPIKey == "" {
			return nil, goerr.Wrap(ErrMissingRequired, "claude-api-key is required", goerr.V(FlagKey, "claude-api-key"))
		}
		var opts []claude.Option
		if x.model != "" {
			opts = append(opts, claude.WithModel(x.model))
		}
		client, err := claude.New(ctx, x.claudeAPIKey, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Claude client")
		}
		return client, nil

	default:
		return nil, goerr.Wrap(ErrUnknownBackend, "invalid LLM provider", goerr.V(BackendKey, x.provider))
	}
}

// GeneratorOptions returns the generator settings taken from the flags
func (x *LLM) GeneratorOptions() []quiz.GeneratorOption {
	return []quiz.GeneratorOption{
		quiz.WithTimeout(x.timeout),
		quiz.WithRetryBackoff(x.retryBackoff),
		quiz.WithRetry(!x.noRetry),
	}
}

// Configure creates the question drafting service. It returns nil when the
// provider has no credentials so the server can still run without
// generation.
func (x *LLM) Configure(ctx context.Context) (*quiz.Service, error) {
	if !x.IsConfigured() {
		return nil, nil
	}

	client, err := x.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	generator, err := quiz.NewGenerator(client, x.GeneratorOptions()...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create generator")
	}

	svc, err := quiz.New(generator)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create quiz service")
	}
	return svc, nil
}
