package usecase_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/secmon-lab/studymate/pkg/domain/interfaces"
	"github.com/secmon-lab/studymate/pkg/domain/model"
)

type completionKind string

const (
	kindExtract completionKind = "extract"
	kindPlan    completionKind = "plan"
	kindChat    completionKind = "chat"
	kindSummary completionKind = "summary"
)

type scriptedResponse struct {
	text string
	err  error
}

// scriptedCompletion answers by request kind and records every call.
type scriptedCompletion struct {
	mu        sync.Mutex
	responses map[completionKind]scriptedResponse
	requests  []model.CompletionRequest
	kinds     []completionKind
}

func newScriptedCompletion(responses map[completionKind]scriptedResponse) *scriptedCompletion {
	return &scriptedCompletion{responses: responses}
}

func classify(req model.CompletionRequest) completionKind {
	if len(req.Messages) == 1 && strings.Contains(req.Messages[0].Content, "Extract structured information") {
		return kindExtract
	}
	if len(req.Messages) == 2 && req.Messages[0].Role == model.RoleSystem {
		if req.Messages[0].Content == "You are a helpful assistant." {
			return kindPlan
		}
		return kindSummary
	}
	return kindChat
}

func (c *scriptedCompletion) Complete(ctx context.Context, req model.CompletionRequest) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kind := classify(req)
	c.requests = append(c.requests, req)
	c.kinds = append(c.kinds, kind)

	resp, ok := c.responses[kind]
	if !ok {
		return "", context.DeadlineExceeded
	}
	return resp.text, resp.err
}

func (c *scriptedCompletion) count(kind completionKind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, k := range c.kinds {
		if k == kind {
			n++
		}
	}
	return n
}

func (c *scriptedCompletion) lastRequest(kind completionKind) *model.CompletionRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.kinds) - 1; i >= 0; i-- {
		if c.kinds[i] == kind {
			return &c.requests[i]
		}
	}
	return nil
}

// fakeRepository wraps a study memory fake into interfaces.Repository.
type fakeRepository struct {
	memory *fakeStudyMemory
}

func (r *fakeRepository) StudyMemory() interfaces.StudyMemoryRepository { return r.memory }
func (r *fakeRepository) Close() error { return nil }

type fakeStudyMemory struct {
	records   []*model.MemoryRecord
	appendErr error
	recentErr error
	appended  int
}

func (m *fakeStudyMemory) Append(ctx context.Context, subjects string, hoursPerDay, daysAvailable int) (*model.MemoryRecord, error) {
	if m.appendErr != nil {
		return nil, m.appendErr
	}
	m.appended++
	rec := &model.MemoryRecord{
		ID:            model.NewMemoryRecordID(),
		Subjects:      subjects,
		HoursPerDay:   hoursPerDay,
		DaysAvailable: daysAvailable,
		Timestamp:     time.Now().UTC(),
	}
	m.records = append(m.records, rec)
	return rec, nil
}

func (m *fakeStudyMemory) Recent(ctx context.Context, n int) ([]*model.MemoryRecord, error) {
	if m.recentErr != nil {
		return nil, m.recentErr
	}
	start := max(len(m.records)-n, 0)
	return append([]*model.MemoryRecord{}, m.records[start:]...), nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
