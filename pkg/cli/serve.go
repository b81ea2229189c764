package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	httpctrl "github.com/secmon-lab/studymate/pkg/controller/http"
	"github.com/secmon-lab/studymate/pkg/utils/logging"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func cmdServe() *cli.Command {
	var addr string
	var maxUploadMB int
	var allowedOrigins []string
	var appCfg appConfig

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("STUDYMATE_ADDR"),
			Destination: &addr,
		},
		&cli.IntFlag{
			Name:        "max-upload-mb",
			Usage:       "Maximum upload size in MiB",
			Value:       int(httpctrl.DefaultMaxUploadBytes >> 20),
			Sources:     cli.EnvVars("STUDYMATE_MAX_UPLOAD_MB"),
			Destination: &maxUploadMB,
		},
		&cli.StringSliceFlag{
			Name:        "allowed-origin",
			Usage:       "CORS allowed origin (repeatable, default: any)",
			Sources:     cli.EnvVars("STUDYMATE_ALLOWED_ORIGINS"),
			Destination: &allowedOrigins,
		},
	}
	flags = append(flags, appCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, cleanup, err := appCfg.build(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			httpOpts := []httpctrl.Options{
				httpctrl.WithMaxUploadBytes(int64(maxUploadMB) << 20),
			}
			if len(allowedOrigins) > 0 {
				httpOpts = append(httpOpts, httpctrl.WithAllowedOrigins(allowedOrigins))
			}
			if uc.Slack.Enabled() {
				httpOpts = append(httpOpts, httpctrl.WithSlackWebhook(appCfg.slack.SigningSecret()))
				logging.Default().Info("Slack webhook handler enabled")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			eg, ctx := errgroup.WithContext(ctx)
			eg.Go(func() error {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "failed to start server", goerr.V("addr", addr))
				}
				return nil
			})
			eg.Go(func() error {
				<-ctx.Done()
				logging.Default().Info("Shutting down HTTP server")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				logging.Default().Info("Server shutdown completed")
				return nil
			})

			return eg.Wait()
		},
	}
}
