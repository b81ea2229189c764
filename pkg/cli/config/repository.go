package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/domain/interfaces"
	"github.com/secmon-lab/studymate/pkg/repository/firestore"
	"github.com/secmon-lab/studymate/pkg/repository/leveldb"
	"github.com/secmon-lab/studymate/pkg/repository/memory"
	"github.com/secmon-lab/studymate/pkg/repository/sqlite"
	"github.com/secmon-lab/studymate/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const (
	BackendMemory    = "memory"
	BackendLevelDB   = "leveldb"
	BackendSQLite    = "sqlite"
	BackendFirestore = "firestore"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend    string
	leveldbDir string
	sqlitePath string
	projectID  string
	databaseID string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Study memory backend [memory|leveldb|sqlite|firestore]",
			Category:    "Repository",
			Value:       BackendSQLite,
			Sources:     cli.EnvVars("STUDYMATE_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "leveldb-dir",
			Usage:       "LevelDB directory (leveldb backend)",
			Category:    "Repository",
			Value:       "studymate.leveldb",
			Sources:     cli.EnvVars("STUDYMATE_LEVELDB_DIR"),
			Destination: &r.leveldbDir,
		},
		&cli.StringFlag{
			Name:        "sqlite-path",
			Usage:       "SQLite database file (sqlite backend)",
			Category:    "Repository",
			Value:       "studymate.db",
			Sources:     cli.EnvVars("STUDYMATE_SQLITE_PATH"),
			Destination: &r.sqlitePath,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Category:    "Repository",
			Sources:     cli.EnvVars("STUDYMATE_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Category:    "Repository",
			Value:       "(default)",
			Sources:     cli.EnvVars("STUDYMATE_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
	}
}

func (r Repository) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", r.backend),
		slog.String("leveldb_dir", r.leveldbDir),
		slog.String("sqlite_path", r.sqlitePath),
		slog.String("firestore_project_id", r.projectID),
		slog.String("firestore_database_id", r.databaseID),
	)
}

// Configure initializes and returns a repository based on the configured backend.
// The caller is responsible for calling Close() on the returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case BackendFirestore:
		if r.projectID == "" {
			return nil, goerr.New("firestore-project-id is required when using firestore backend")
		}
		repo, err := firestore.New(ctx, r.projectID, r.databaseID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logging.Default().Info("Using Firestore repository",
			"project_id", r.projectID,
			"database_id", r.databaseID,
		)
		return repo, nil

	case BackendLevelDB:
		repo, err := leveldb.New(r.leveldbDir)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize leveldb repository")
		}
		logging.Default().Info("Using LevelDB repository", "dir", r.leveldbDir)
		return repo, nil

	case BackendSQLite:
		repo, err := sqlite.New(ctx, r.sqlitePath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize sqlite repository")
		}
		logging.Default().Info("Using SQLite repository", "path", r.sqlitePath)
		return repo, nil

	case BackendMemory:
		logging.Default().Info("Using in-memory repository (records are lost on exit)")
		return memory.New(), nil

	default:
		return nil, goerr.New("invalid repository backend", goerr.V("backend", r.backend))
	}
}
