package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/cli/config"
	"github.com/memoraid/memoraid/pkg/domain/interfaces"
	"github.com/memoraid/memoraid/pkg/usecase"
	"github.com/memoraid/memoraid/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// pipelineConfig groups the flags shared by commands that run question
// generation
type pipelineConfig struct {
	app   config.AppConfig
	repo  config.Repository
	llm   config.LLM
	slack config.Slack
}

func (x *pipelineConfig) flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, x.app.Flags()...)
	flags = append(flags, x.repo.Flags()...)
	flags = append(flags, x.llm.Flags()...)
	flags = append(flags, x.slack.Flags()...)
	return flags
}

// pipeline holds what configure built. close releases it.
type pipeline struct {
	repo    interfaces.Repository
	options []usecase.Option
	hasLLM  bool
}

func (p *pipeline) close() {
	if err := p.repo.Close(); err != nil {
		logging.Default().Error("failed to close repository", "error", err.Error())
	}
}

func (x *pipelineConfig) configure(ctx context.Context) (*pipeline, error) {
	fileCfg, err := x.app.Configure()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load configuration")
	}

	repo, err := x.repo.Configure(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize repository")
	}

	p := &pipeline{
		repo:    repo,
		options: fileCfg.UseCaseOptions(),
	}

	drafter, err := x.llm.Configure(ctx)
	if err != nil {
		p.close()
		return nil, goerr.Wrap(err, "failed to initialize LLM")
	}
	if drafter != nil {
		p.options = append(p.options, usecase.WithDrafter(drafter))
		p.hasLLM = true
		logging.Default().Info("Question generation enabled", "llm", x.llm)
	} else {
		logging.Default().Warn("LLM is not configured, question generation is disabled")
	}

	notifier, err := x.slack.Configure()
	if err != nil {
		p.close()
		return nil, goerr.Wrap(err, "failed to initialize Slack notifier")
	}
	if notifier != nil {
		p.options = append(p.options, usecase.WithNotifier(notifier))
	}

	return p, nil
}
