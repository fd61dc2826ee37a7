package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/memoraid/memoraid/pkg/usecase"
	"github.com/memoraid/memoraid/pkg/utils/logging"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

// generateResult is the outcome for one memory
type generateResult struct {
	memoryID  model.MemoryID
	questions int
	err       error
}

func cmdGenerate() *cli.Command {
	var memoryIDs []string
	var patientID string
	var concurrency int64
	var pipelineCfg pipelineConfig

	flags := []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "memory-id",
			Aliases:     []string{"m"},
			Usage:       "Memory to generate a new question batch for (repeatable)",
			Destination: &memoryIDs,
		},
		&cli.StringFlag{
			Name:        "patient-id",
			Aliases:     []string{"p"},
			Usage:       "Generate a new question batch for every memory of the patient",
			Destination: &patientID,
		},
		&cli.Int64Flag{
			Name:        "concurrency",
			Usage:       "Number of memories processed at once",
			Value:       usecase.DefaultMaxConcurrentGenerations,
			Destination: &concurrency,
		},
	}
	flags = append(flags, pipelineCfg.flags()...)

	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"g"},
		Usage:   "Generate a new batch of quiz questions for existing memories",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if len(memoryIDs) == 0 && patientID == "" {
				return goerr.New("either --memory-id or --patient-id is required")
			}

			p, err := pipelineCfg.configure(ctx)
			if err != nil {
				return err
			}
			defer p.close()

			if !p.hasLLM {
				return goerr.New("LLM is not configured, set --llm-provider and its credentials")
			}

			uc := usecase.New(p.repo, append(p.options, usecase.WithMaxConcurrentGenerations(concurrency))...)

			targets := make([]model.MemoryID, 0, len(memoryIDs))
			for _, id := range memoryIDs {
				targets = append(targets, model.MemoryID(id))
			}
			if patientID != "" {
				memories, err := uc.Memory.ListByPatient(ctx, patientID)
				if err != nil {
					return goerr.Wrap(err, "failed to list memories of patient")
				}
				for _, m := range memories {
					targets = append(targets, m.ID)
				}
			}

			results := regenerateAll(ctx, uc, targets, int(concurrency))
			return printGenerateResults(c.Root().Writer, results)
		},
	}
}

// regenerateAll runs question generation for every memory. A failed memory
// does not stop the others.
func regenerateAll(ctx context.Context, uc *usecase.UseCases, targets []model.MemoryID, concurrency int) []generateResult {
	results := make([]generateResult, len(targets))

	var eg errgroup.Group
	if concurrency > 0 {
		eg.SetLimit(concurrency)
	}

	for i, id := range targets {
		eg.Go(func() error {
			questions, err := uc.Memory.Regenerate(ctx, id)
			results[i] = generateResult{memoryID: id, questions: len(questions), err: err}

			if err != nil {
				logging.From(ctx).Warn("question generation failed", "memory_id", id, "error", err.Error())
			}
			return nil
		})
	}
	_ = eg.Wait()

	return results
}

func printGenerateResults(w io.Writer, results []generateResult) error {
	if w == nil {
		w = os.Stdout
	}

	ok := color.New(color.FgGreen).SprintFunc()
	ng := color.New(color.FgRed).SprintFunc()

	var failed, created int
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(w, "%s %s: %s\n", ng("✗"), r.memoryID, r.err.Error())
			continue
		}
		created += r.questions
		fmt.Fprintf(w, "%s %s: %d question(s)\n", ok("✓"), r.memoryID, r.questions)
	}
	fmt.Fprintf(w, "\n%d memory(ies), %d question(s) created, %d failed\n", len(results), created, failed)

	if failed > 0 {
		return goerr.New("question generation failed for some memories",
			goerr.V("failed", failed), goerr.V("total", len(results)))
	}
	return nil
}
