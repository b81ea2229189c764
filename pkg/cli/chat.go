package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/domain/model"
	"github.com/secmon-lab/studymate/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// maxChatHistory bounds the turns sent back to the model.
const maxChatHistory = 20

func cmdChat() *cli.Command {
	var historyFile string
	var appCfg appConfig

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "history-file",
			Usage:       "Readline history file (disabled if empty)",
			Sources:     cli.EnvVars("STUDYMATE_CHAT_HISTORY_FILE"),
			Destination: &historyFile,
		},
	}
	flags = append(flags, appCfg.Flags()...)

	return &cli.Command{
		Name:  "chat",
		Usage: "Talk to the study assistant in the terminal",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, cleanup, err := appCfg.build(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          color.New(color.FgCyan, color.Bold).Sprint("you> "),
				HistoryFile:     historyFile,
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
			})
			if err != nil {
				return goerr.Wrap(err, "failed to initialize readline")
			}
			defer rl.Close()

			return chatLoop(ctx, rl, uc.Router, os.Stdout)
		},
	}
}

type lineReader interface {
	Readline() (string, error)
}

// chatLoop reads lines until EOF or "exit" and prints the routed replies.
// The conversation so far is sent with every message.
func chatLoop(ctx context.Context, rl lineReader, router *usecase.RouterUseCase, w io.Writer) error {
	bot := color.New(color.FgGreen)
	fmt.Fprintln(w, color.New(color.Bold).Sprint("📚 StudyMate: ask for a study plan, your study memory, or anything else. Type exit to quit."))

	var history []model.Message
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return goerr.Wrap(err, "failed to read input")
		}

		text := strings.TrimSpace(line)
		switch text {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		sp.Suffix = " thinking..."
		sp.Start()
		reply := router.Route(ctx, model.IncomingMessage{Text: text, History: history})
		sp.Stop()

		bot.Fprintf(w, "studymate> %s\n\n", reply.Reply)

		history = append(history,
			model.Message{Role: model.RoleUser, Content: text},
			model.Message{Role: model.RoleAssistant, Content: reply.Reply},
		)
		if len(history) > maxChatHistory {
			history = history[len(history)-maxChatHistory:]
		}
	}
}
