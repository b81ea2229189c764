package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/cli/config"
	"github.com/secmon-lab/studymate/pkg/domain/model"
	"github.com/secmon-lab/studymate/pkg/service/document"
	"github.com/secmon-lab/studymate/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdSummarize() *cli.Command {
	var llmCfg config.LLM

	return &cli.Command{
		Name:      "summarize",
		Usage:     "Summarize a local PDF, PPTX, PNG or JPG file",
		ArgsUsage: "<file>",
		Flags:     llmCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return goerr.New("file path is required")
			}

			kind, err := model.MediaKindFromFilename(path)
			if err != nil {
				fmt.Println(usecase.ReplyUnsupportedFile)
				return nil
			}

			// #nosec G304 - path is provided by CLI argument
			data, err := os.ReadFile(path)
			if err != nil {
				return goerr.Wrap(err, "failed to read file", goerr.V("path", path))
			}

			clients, err := llmCfg.Configure(ctx)
			if err != nil {
				return err
			}

			var docOpts []document.Option
			if clients.ImageReader != nil {
				docOpts = append(docOpts, document.WithImageReader(clients.ImageReader))
			}

			summary := usecase.NewSummaryUseCase(document.New(docOpts...), clients.Completion, nil, clients.Models.Summary, time.Now)
			fmt.Println(summary.Summarize(ctx, model.Document{
				Filename: filepath.Base(path),
				Kind:     kind,
				Data:     data,
			}))
			return nil
		},
	}
}
