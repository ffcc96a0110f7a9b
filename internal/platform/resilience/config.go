package resilience

import (
	"fmt"
	"time"
)

// CircuitBreakerConfig tunes one Breaker. The zero value is a disabled
// breaker.
type CircuitBreakerConfig struct {
	Enabled bool
	// FailureThreshold is the run of countable failures that opens the circuit.
	FailureThreshold int
	OpenTimeout      time.Duration
	// HalfOpenMaxReq is both the probe budget and the successes needed to close.
	HalfOpenMaxReq int
}

// ScheduleFeedDefaults suits the public schedule feed: a few failures in a row
// mean the upstream is down, and a sync is rarely urgent enough to retry
// within seconds.
func ScheduleFeedDefaults() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

// Validate rejects settings that would make the breaker useless. Disabled
// configs are always valid.
func (c CircuitBreakerConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	switch {
	case c.FailureThreshold < 1:
		return fmt.Errorf("failure threshold must be >= 1, got %d", c.FailureThreshold)
	case c.OpenTimeout <= 0:
		return fmt.Errorf("open timeout must be > 0, got %s", c.OpenTimeout)
	case c.HalfOpenMaxReq < 1:
		return fmt.Errorf("half-open probes must be >= 1, got %d", c.HalfOpenMaxReq)
	}
	return nil
}

func (c CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	d := ScheduleFeedDefaults()
	if c.FailureThreshold < 1 {
		c.FailureThreshold = d.FailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = d.OpenTimeout
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = d.HalfOpenMaxReq
	}
	return c
}
