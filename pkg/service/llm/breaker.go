package llm

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/domain/interfaces"
	"github.com/secmon-lab/studymate/pkg/domain/model"
	"github.com/secmon-lab/studymate/pkg/utils/logging"
	"github.com/sony/gobreaker"
)

var ErrBreakerOpen = goerr.New("completion provider is temporarily unavailable")

const (
	DefaultBreakerFailures = 5
	DefaultBreakerTimeout  = 30 * time.Second
)

// Breaker fails fast once the wrapped backend keeps failing, and probes it
// again after the timeout.
type Breaker struct {
	next interfaces.Completion
	cb   *gobreaker.CircuitBreaker
}

var _ interfaces.Completion = &Breaker{}

type BreakerOption func(*gobreaker.Settings)

// WithBreakerFailures sets how many consecutive failures open the breaker.
func WithBreakerFailures(n uint32) BreakerOption {
	return func(s *gobreaker.Settings) {
		s.ReadyToTrip = func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= n
		}
	}
}

// WithBreakerTimeout sets how long the breaker stays open.
func WithBreakerTimeout(d time.Duration) BreakerOption {
	return func(s *gobreaker.Settings) {
		s.Timeout = d
	}
}

func NewBreaker(name string, next interfaces.Completion, opts ...BreakerOption) *Breaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     DefaultBreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= DefaultBreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Default().Warn("completion circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}
	for _, opt := range opts {
		opt(&settings)
	}

	return &Breaker{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

func (b *Breaker) Complete(ctx context.Context, req model.CompletionRequest) (string, error) {
	out, err := b.cb.Execute(func() (any, error) {
		return b.next.Complete(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", goerr.Wrap(ErrBreakerOpen, err.Error(), goerr.V("breaker", b.cb.Name()))
		}
		return "", err
	}
	return out.(string), nil
}

// State returns the current breaker state name.
func (b *Breaker) State() string {
	return b.cb.State().String()
}
