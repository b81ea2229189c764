package leveldb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/studymate/pkg/repository/leveldb"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// goleveldb v1.0.0 keeps draining its memdb pool for up to a second after Close.
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("github.com/syndtr/goleveldb/leveldb.(*DB).mpoolDrain"),
	)
}

func TestRecordsSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "studymate.db")

	repo, err := leveldb.New(path)
	gt.NoError(t, err).Required()
	for _, s := range []string{"Biology", "History"} {
		_, err := repo.StudyMemory().Append(ctx, s, 2, 4)
		gt.NoError(t, err).Required()
	}
	gt.NoError(t, repo.Close()).Required()

	reopened, err := leveldb.New(path)
	gt.NoError(t, err).Required()
	defer func() { gt.NoError(t, reopened.Close()) }()

	records, err := reopened.StudyMemory().Recent(ctx, 3)
	gt.NoError(t, err).Required()
	gt.Array(t, records).Length(2).Required()
	gt.Value(t, records[0].Subjects).Equal("Biology")
	gt.Value(t, records[1].Subjects).Equal("History")

	// new appends keep sorting after the reopened ones
	_, err = reopened.StudyMemory().Append(ctx, "Geography", 1, 1)
	gt.NoError(t, err).Required()
	last, err := reopened.StudyMemory().Recent(ctx, 1)
	gt.NoError(t, err).Required()
	gt.Value(t, last[0].Subjects).Equal("Geography")
}

func TestOpenFailsWhenLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studymate.db")

	repo, err := leveldb.New(path)
	gt.NoError(t, err).Required()
	defer func() { gt.NoError(t, repo.Close()) }()

	_, err = leveldb.New(path)
	gt.Value(t, err).NotNil()
}
