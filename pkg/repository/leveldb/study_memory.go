package leveldb

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/domain/model"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const prefixStudy = "study|"

// studyKey sorts lexically in insertion order: the unix-nano timestamp is
// zero padded to 20 digits and kept strictly increasing by the writer.
func studyKey(nanos int64, id model.MemoryRecordID) []byte {
	return fmt.Appendf(nil, "%s%020d|%s", prefixStudy, nanos, id)
}

type studyMemoryValue struct {
	ID            model.MemoryRecordID `json:"id"`
	Subjects      string               `json:"subjects"`
	HoursPerDay   int                  `json:"hours_per_day"`
	DaysAvailable int                  `json:"days_available"`
	Timestamp     time.Time            `json:"timestamp"`
}

type studyMemoryRepository struct {
	db *leveldb.DB

	// single writer
	mu        sync.Mutex
	lastNanos int64
}

func newStudyMemoryRepository(db *leveldb.DB) *studyMemoryRepository {
	return &studyMemoryRepository{db: db}
}

func (r *studyMemoryRepository) Append(ctx context.Context, subjects string, hoursPerDay, daysAvailable int) (*model.MemoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	nanos := now.UnixNano()
	if nanos <= r.lastNanos {
		nanos = r.lastNanos + 1
	}

	rec := &model.MemoryRecord{
		ID:            model.NewMemoryRecordID(),
		Subjects:      subjects,
		HoursPerDay:   hoursPerDay,
		DaysAvailable: daysAvailable,
		Timestamp:     now,
	}

	data, err := json.Marshal(studyMemoryValue{
		ID:            rec.ID,
		Subjects:      rec.Subjects,
		HoursPerDay:   rec.HoursPerDay,
		DaysAvailable: rec.DaysAvailable,
		Timestamp:     rec.Timestamp,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal study memory")
	}

	if err := r.db.Put(studyKey(nanos, rec.ID), data, &opt.WriteOptions{Sync: true}); err != nil {
		return nil, goerr.Wrap(err, "failed to put study memory", goerr.V("id", rec.ID))
	}
	r.lastNanos = nanos

	return rec, nil
}

func (r *studyMemoryRepository) Recent(ctx context.Context, n int) ([]*model.MemoryRecord, error) {
	records := []*model.MemoryRecord{}
	if n <= 0 {
		return records, nil
	}

	iter := r.db.NewIterator(util.BytesPrefix([]byte(prefixStudy)), nil)
	defer iter.Release()

	for ok := iter.Last(); ok && len(records) < n; ok = iter.Prev() {
		var v studyMemoryValue
		if err := json.Unmarshal(iter.Value(), &v); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal study memory", goerr.V("key", string(iter.Key())))
		}
		records = append(records, &model.MemoryRecord{
			ID:            v.ID,
			Subjects:      v.Subjects,
			HoursPerDay:   v.HoursPerDay,
			DaysAvailable: v.DaysAvailable,
			Timestamp:     v.Timestamp,
		})
	}
	if err := iter.Error(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate study memories")
	}

	slices.Reverse(records)
	return records, nil
}
