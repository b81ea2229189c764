package usecase

import (
	"time"

	"github.com/secmon-lab/studymate/pkg/domain/interfaces"
	slacksvc "github.com/secmon-lab/studymate/pkg/service/slack"
)

// Models names the provider model used for each kind of completion. Empty
// values use the backend default.
type Models struct {
	Extractor string
	Planner   string
	Chat      string
	Summary   string
}

type UseCases struct {
	repo       interfaces.Repository
	completion interfaces.Completion
	documents  interfaces.DocumentExtractor
	archive    interfaces.ArchiveStorage
	calendar   interfaces.Calendar
	calConfig  CalendarConfig
	slack      slacksvc.Service
	models     Models
	vocabulary IntentVocabulary
	now        func() time.Time

	Router   *RouterUseCase
	Memory   *MemoryUseCase
	Summary  *SummaryUseCase
	Calendar *CalendarUseCase
	Slack    *SlackUseCase
}

type Option func(*UseCases)

func WithDocumentExtractor(d interfaces.DocumentExtractor) Option {
	return func(uc *UseCases) {
		uc.documents = d
	}
}

func WithArchiveStorage(a interfaces.ArchiveStorage) Option {
	return func(uc *UseCases) {
		uc.archive = a
	}
}

func WithCalendar(c interfaces.Calendar, cfg CalendarConfig) Option {
	return func(uc *UseCases) {
		uc.calendar = c
		uc.calConfig = cfg
	}
}

func WithSlackService(s slacksvc.Service) Option {
	return func(uc *UseCases) {
		uc.slack = s
	}
}

func WithModels(m Models) Option {
	return func(uc *UseCases) {
		uc.models = m
	}
}

func WithIntentVocabulary(v IntentVocabulary) Option {
	return func(uc *UseCases) {
		uc.vocabulary = v
	}
}

// WithClock replaces time.Now. Used by tests to pin the current date.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.Repository, completion interfaces.Completion, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:       repo,
		completion: completion,
		vocabulary: DefaultIntentVocabulary(),
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Router = NewRouterUseCase(
		repo.StudyMemory(),
		NewExtractor(completion, uc.models.Extractor),
		NewPlanGenerator(completion, uc.models.Planner),
		NewResponder(completion, uc.models.Chat),
		uc.vocabulary,
		uc.now,
	)
	uc.Memory = NewMemoryUseCase(repo.StudyMemory())
	uc.Summary = NewSummaryUseCase(uc.documents, completion, uc.archive, uc.models.Summary, uc.now)
	uc.Calendar = NewCalendarUseCase(uc.calendar, uc.calConfig, uc.now)
	uc.Slack = NewSlackUseCase(uc.Router, uc.slack)

	return uc
}
