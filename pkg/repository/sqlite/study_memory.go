package sqlite

import (
	"context"
	"database/sql"
	"slices"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/domain/model"
)

type studyMemoryRepository struct {
	db *sql.DB
}

func newStudyMemoryRepository(db *sql.DB) *studyMemoryRepository {
	return &studyMemoryRepository{db: db}
}

func (r *studyMemoryRepository) Append(ctx context.Context, subjects string, hoursPerDay, daysAvailable int) (*model.MemoryRecord, error) {
	rec := &model.MemoryRecord{
		ID:            model.NewMemoryRecordID(),
		Subjects:      subjects,
		HoursPerDay:   hoursPerDay,
		DaysAvailable: daysAvailable,
		Timestamp:     time.Now().UTC(),
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO study_memories (id, subjects, hours_per_day, days_available, created_at) VALUES (?, ?, ?, ?, ?)`,
		string(rec.ID), rec.Subjects, rec.HoursPerDay, rec.DaysAvailable, rec.Timestamp.Format(time.RFC3339Nano),
	); err != nil {
		return nil, goerr.Wrap(err, "failed to insert study memory", goerr.V("id", rec.ID))
	}

	if err := tx.Commit(); err != nil {
		return nil, goerr.Wrap(err, "failed to commit study memory", goerr.V("id", rec.ID))
	}

	return rec, nil
}

func (r *studyMemoryRepository) Recent(ctx context.Context, n int) ([]*model.MemoryRecord, error) {
	records := []*model.MemoryRecord{}
	if n <= 0 {
		return records, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, subjects, hours_per_day, days_available, created_at FROM study_memories ORDER BY seq DESC LIMIT ?`, n)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query study memories")
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			rec       model.MemoryRecord
			id        string
			createdAt string
		)
		if err := rows.Scan(&id, &rec.Subjects, &rec.HoursPerDay, &rec.DaysAvailable, &createdAt); err != nil {
			return nil, goerr.Wrap(err, "failed to scan study memory")
		}
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse study memory timestamp", goerr.V("id", id))
		}
		rec.ID = model.MemoryRecordID(id)
		rec.Timestamp = ts
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate study memories")
	}

	slices.Reverse(records)
	return records, nil
}
