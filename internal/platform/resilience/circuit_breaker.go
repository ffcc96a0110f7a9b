package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

// Breaker guards calls to a flaky dependency. A nil *Breaker lets every call
// through, which is what a disabled config produces.
type Breaker struct {
	mu  sync.Mutex
	cfg CircuitBreakerConfig

	// countable decides whether an error returned by a guarded call trips the
	// breaker. Caller mistakes such as a 4xx response should not.
	countable func(error) bool

	state     State
	failures  int
	openedAt  time.Time
	probes    int
	successes int
	now       func() time.Time
}

// NewBreaker returns nil when cfg is disabled.
func NewBreaker(cfg CircuitBreakerConfig, countable func(error) bool) *Breaker {
	if !cfg.Enabled {
		return nil
	}
	if countable == nil {
		countable = func(err error) bool { return err != nil }
	}
	return &Breaker{
		cfg:       cfg.withDefaults(),
		countable: countable,
		state:     StateClosed,
		now:       time.Now,
	}
}

// Do runs fn when the breaker admits the call and records its outcome.
func (b *Breaker) Do(ctx context.Context, fn func(context.Context) error) error {
	if err := b.acquire(); err != nil {
		return err
	}
	err := fn(ctx)
	b.release(err)
	return err
}

func (b *Breaker) State() State {
	if b == nil {
		return StateClosed
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return StateHalfOpen
	}
	return b.state
}

func (b *Breaker) acquire() error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			return ErrCircuitOpen
		}
		b.transition(StateHalfOpen)
	}
	if b.state == StateHalfOpen {
		if b.probes >= b.cfg.HalfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.probes++
	}
	return nil
}

func (b *Breaker) release(err error) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	failed := err != nil && !errors.Is(err, context.Canceled) && b.countable(err)
	switch b.state {
	case StateClosed:
		if !failed {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.transition(StateOpen)
		}
	case StateHalfOpen:
		if b.probes > 0 {
			b.probes--
		}
		if failed {
			b.transition(StateOpen)
			return
		}
		b.successes++
		if b.successes >= b.cfg.HalfOpenMaxReq && b.probes == 0 {
			b.transition(StateClosed)
		}
	case StateOpen:
		// a call admitted before the trip finished late
		if failed {
			b.openedAt = b.now()
		}
	}
}

func (b *Breaker) transition(to State) {
	b.state = to
	b.probes = 0
	b.successes = 0
	switch to {
	case StateOpen:
		b.openedAt = b.now()
	case StateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	}
}
