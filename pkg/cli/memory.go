package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/secmon-lab/studymate/pkg/cli/config"
	"github.com/secmon-lab/studymate/pkg/domain/model"
	"github.com/secmon-lab/studymate/pkg/usecase"
	"github.com/secmon-lab/studymate/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdMemory() *cli.Command {
	var limit int
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "limit",
			Aliases:     []string{"n"},
			Usage:       "Number of records to show",
			Value:       usecase.DefaultMemoryLimit,
			Destination: &limit,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "memory",
		Usage: "Show recently saved study plans",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err)
				}
			}()

			records, err := usecase.NewMemoryUseCase(repo.StudyMemory()).Recent(ctx, limit)
			if err != nil {
				return err
			}
			printMemory(os.Stdout, records)
			return nil
		},
	}
}

func printMemory(w io.Writer, records []*model.MemoryRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, usecase.ReplyNoHistory)
		return
	}

	date := color.New(color.FgCyan)
	for _, rec := range records {
		fmt.Fprintf(w, "%s  %s: %d days, %d hrs/day\n",
			date.Sprint(rec.Timestamp.Local().Format("2006-01-02 15:04")),
			rec.Subjects, rec.DaysAvailable, rec.HoursPerDay)
	}
}
