package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/cli/config"
	"github.com/secmon-lab/studymate/pkg/service/document"
	"github.com/secmon-lab/studymate/pkg/usecase"
	"github.com/secmon-lab/studymate/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// appConfig bundles the configuration groups needed to build the use cases.
type appConfig struct {
	repo     config.Repository
	llm      config.LLM
	calendar config.Calendar
	storage  config.Storage
	slack    config.Slack
	intent   config.Intent
}

func (x *appConfig) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, x.repo.Flags()...)
	flags = append(flags, x.llm.Flags()...)
	flags = append(flags, x.calendar.Flags()...)
	flags = append(flags, x.storage.Flags()...)
	flags = append(flags, x.slack.Flags()...)
	flags = append(flags, x.intent.Flags()...)
	return flags
}

// build wires every configured capability into the use cases. The returned
// function releases the repository and clients and must be called once.
func (x *appConfig) build(ctx context.Context) (*usecase.UseCases, func(), error) {
	logger := logging.Default()
	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Error("failed to close resource", "error", err)
			}
		}
	}

	repo, err := x.repo.Configure(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to initialize repository")
	}
	closers = append(closers, repo.Close)

	llmClients, err := x.llm.Configure(ctx)
	if err != nil {
		cleanup()
		return nil, nil, goerr.Wrap(err, "failed to configure llm")
	}

	vocabulary, err := x.intent.Configure()
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	var docOpts []document.Option
	if llmClients.ImageReader != nil {
		docOpts = append(docOpts, document.WithImageReader(llmClients.ImageReader))
	}

	opts := []usecase.Option{
		usecase.WithModels(llmClients.Models),
		usecase.WithIntentVocabulary(vocabulary),
		usecase.WithDocumentExtractor(document.New(docOpts...)),
	}

	cal, calCfg, err := x.calendar.Configure(ctx)
	if err != nil {
		cleanup()
		return nil, nil, goerr.Wrap(err, "failed to configure calendar")
	}
	if cal != nil {
		opts = append(opts, usecase.WithCalendar(cal, calCfg))
	}

	archive, err := x.storage.Configure(ctx)
	if err != nil {
		cleanup()
		return nil, nil, goerr.Wrap(err, "failed to configure storage")
	}
	if archive != nil {
		closers = append(closers, archive.Close)
		opts = append(opts, usecase.WithArchiveStorage(archive))
	}

	slackSvc, err := x.slack.Configure()
	if err != nil {
		cleanup()
		return nil, nil, goerr.Wrap(err, "failed to configure slack")
	}
	if slackSvc != nil {
		opts = append(opts, usecase.WithSlackService(slackSvc))
	}

	logger.Info("Application configured",
		"repository", x.repo,
		"llm", x.llm,
		"calendar", x.calendar,
		"storage", x.storage,
		"slack", x.slack,
		"intent", x.intent,
	)

	return usecase.New(repo, llmClients.Completion, opts...), cleanup, nil
}
