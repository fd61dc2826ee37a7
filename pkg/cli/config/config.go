package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/usecase"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// MaxDailyLimit bounds the configurable number of daily questions
const MaxDailyLimit = usecase.MaxDailyLimit

// FileConfig represents the TOML application configuration
type FileConfig struct {
	Quiz QuizConfig `toml:"quiz"`
}

// QuizConfig holds settings of the question pipeline
type QuizConfig struct {
	MaxConcurrentGenerations int64 `toml:"max_concurrent_generations"`
	DailyLimit               int   `toml:"daily_limit"`
}

// Validate checks if the QuizConfig is valid. Zero values mean defaults.
func (q *QuizConfig) Validate() error {
	if q.MaxConcurrentGenerations < 0 {
		return goerr.Wrap(ErrInvalidConfig, "max_concurrent_generations must not be negative",
			goerr.V("max_concurrent_generations", q.MaxConcurrentGenerations))
	}
	if q.DailyLimit < 0 || q.DailyLimit > MaxDailyLimit {
		return goerr.Wrap(ErrInvalidConfig, "daily_limit is out of range",
			goerr.V("daily_limit", q.DailyLimit), goerr.V("max", MaxDailyLimit))
	}
	return nil
}

// Validate checks if the FileConfig is valid
func (c *FileConfig) Validate() error {
	if err := c.Quiz.Validate(); err != nil {
		return goerr.Wrap(err, "invalid quiz section")
	}
	return nil
}

// UseCaseOptions converts the configuration into use case options
func (c *FileConfig) UseCaseOptions() []usecase.Option {
	return []usecase.Option{
		usecase.WithMaxConcurrentGenerations(c.Quiz.MaxConcurrentGenerations),
		usecase.WithDailyLimit(c.Quiz.DailyLimit),
	}
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*FileConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "config file does not exist", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config FileConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(errors.Join(ErrInvalidConfig, err), "failed to parse TOML config",
			goerr.V(ConfigPathKey, path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}

// AppConfig holds the CLI flag pointing at the TOML configuration
type AppConfig struct {
	path string
}

func (x *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the TOML configuration file (optional)",
			Sources:     cli.EnvVars("MEMORAID_CONFIG"),
			Destination: &x.path,
		},
	}
}

func (x AppConfig) LogValue() slog.Value {
	return slog.StringValue(x.path)
}

// Path returns the configured file path
func (x *AppConfig) Path() string {
	return x.path
}

// Configure loads the configuration file. Without --config the defaults
// are returned.
func (x *AppConfig) Configure() (*FileConfig, error) {
	if x.path == "" {
		return &FileConfig{}, nil
	}
	return LoadAppConfiguration(x.path)
}
