package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/cli/config"
	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/memoraid/memoraid/pkg/service/quiz"
	"github.com/memoraid/memoraid/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var appCfg config.AppConfig
	var responseFiles []string

	var flags []cli.Flag
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, &cli.StringSliceFlag{
		Name:        "response",
		Aliases:     []string{"r"},
		Usage:       "File holding a raw generation response to check against the question format (repeatable)",
		Destination: &responseFiles,
	})

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the configuration file and optionally saved generation responses",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			// Step 1: Load and validate configuration file
			cfg, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}
			logger.Info("Configuration validation passed",
				"path", appCfg.Path(),
				"max_concurrent_generations", cfg.Quiz.MaxConcurrentGenerations,
				"daily_limit", cfg.Quiz.DailyLimit,
			)

			// Step 2: Check saved responses, if any
			if len(responseFiles) == 0 {
				return nil
			}

			w := c.Root().Writer
			if w == nil {
				w = os.Stdout
			}

			var invalid int
			for _, path := range responseFiles {
				if !validateResponseFile(w, path) {
					invalid++
				}
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d response(s) are invalid", invalid, len(responseFiles))
			}
			return nil
		},
	}
}

// validateResponseFile parses one saved response and prints the outcome
func validateResponseFile(w io.Writer, path string) bool {
	ok := color.New(color.FgGreen).SprintFunc()
	ng := color.New(color.FgRed).SprintFunc()

	// #nosec G304 - path is expected to be provided by CLI argument
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "%s %s: %s\n", ng("✗"), path, err.Error())
		return false
	}

	drafts, err := quiz.Parse(string(raw))
	if err != nil {
		var malformed *model.MalformedResponseError
		if errors.As(err, &malformed) {
			err = malformed
		}
		fmt.Fprintf(w, "%s %s: %s\n", ng("✗"), path, err.Error())
		return false
	}

	fmt.Fprintf(w, "%s %s: %d question(s)\n", ok("✓"), path, len(drafts))
	for _, d := range drafts {
		fmt.Fprintf(w, "    [difficulty %d, %d pts] %s (%s)\n", d.Difficulty, d.Points, d.QuestionText, d.CorrectAnswer)
	}
	return true
}
