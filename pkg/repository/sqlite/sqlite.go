package sqlite

import (
	"context"
	"database/sql"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/domain/interfaces"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS study_memories (
	seq            INTEGER PRIMARY KEY AUTOINCREMENT,
	id             TEXT NOT NULL UNIQUE,
	subjects       TEXT NOT NULL,
	hours_per_day  INTEGER NOT NULL,
	days_available INTEGER NOT NULL,
	created_at     TEXT NOT NULL
);
`

// SQLite stores records in a single SQLite file.
type SQLite struct {
	db          *sql.DB
	studyMemory *studyMemoryRepository
}

var _ interfaces.Repository = &SQLite{}

// New opens (or creates) the database at path. Use ":memory:" for a
// throwaway database.
func New(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite", goerr.V("path", path))
	}
	// one connection serializes writers and keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to initialize sqlite schema", goerr.V("path", path))
	}

	return &SQLite{
		db:          db,
		studyMemory: newStudyMemoryRepository(db),
	}, nil
}

func (s *SQLite) StudyMemory() interfaces.StudyMemoryRepository {
	return s.studyMemory
}

func (s *SQLite) Close() error {
	if err := s.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close sqlite")
	}
	return nil
}
