package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/service/storage"
	"github.com/secmon-lab/studymate/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Storage configures archiving of uploads to Cloud Storage.
type Storage struct {
	bucket string
	prefix string
}

func (x *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "storage-bucket",
			Usage:       "Cloud Storage bucket for archiving uploads (disabled if empty)",
			Category:    "Storage",
			Sources:     cli.EnvVars("STUDYMATE_STORAGE_BUCKET"),
			Destination: &x.bucket,
		},
		&cli.StringFlag{
			Name:        "storage-prefix",
			Usage:       "Object name prefix for archived uploads",
			Category:    "Storage",
			Sources:     cli.EnvVars("STUDYMATE_STORAGE_PREFIX"),
			Destination: &x.prefix,
		},
	}
}

func (x Storage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("bucket", x.bucket),
		slog.String("prefix", x.prefix),
	)
}

// Configure returns nil when no bucket is set. The caller closes the
// returned archive.
func (x *Storage) Configure(ctx context.Context) (*storage.Archive, error) {
	if x.bucket == "" {
		return nil, nil
	}

	archive, err := storage.New(ctx, x.bucket, storage.WithPrefix(x.prefix))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage archive", goerr.V("bucket", x.bucket))
	}
	logging.Default().Info("Upload archive enabled", "bucket", x.bucket)
	return archive, nil
}
