package leveldb

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/domain/interfaces"
	"github.com/syndtr/goleveldb/leveldb"
)

// LevelDB stores records in a local LevelDB directory. Only one process may
// open the directory at a time.
type LevelDB struct {
	db          *leveldb.DB
	studyMemory *studyMemoryRepository
}

var _ interfaces.Repository = &LevelDB{}

func New(path string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open leveldb", goerr.V("path", path))
	}

	return &LevelDB{
		db:          db,
		studyMemory: newStudyMemoryRepository(db),
	}, nil
}

func (l *LevelDB) StudyMemory() interfaces.StudyMemoryRepository {
	return l.studyMemory
}

func (l *LevelDB) Close() error {
	if err := l.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close leveldb")
	}
	return nil
}
