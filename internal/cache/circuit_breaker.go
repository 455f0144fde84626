package cache

import (
	"errors"
	"sync"
	"time"
)

// The breaker keeps a flapping redis from stalling every request on
// connection timeouts: after maxFailures consecutive errors calls fail
// fast until the cooldown elapses, then a few probe calls decide whether
// to close again.

type CircuitBreakerState int

const (
	CircuitBreakerClosed CircuitBreakerState = iota
	CircuitBreakerOpen
	CircuitBreakerHalfOpen
)

var ErrCircuitBreakerOpen = errors.New("circuit breaker is open")

type CircuitBreakerConfig struct {
	MaxFailures int           `json:"max_failures"`
	Cooldown    time.Duration `json:"cooldown"`
	ProbeCalls  int           `json:"probe_calls"`
}

func DefaultCircuitBreakerConfig() *CircuitBreakerConfig {
	return &CircuitBreakerConfig{
		MaxFailures: 5,
		Cooldown:    30 * time.Second,
		ProbeCalls:  3,
	}
}

type CircuitBreaker struct {
	mu           sync.Mutex
	state        CircuitBreakerState
	failures     int
	probeSuccess int
	openedAt     time.Time

	maxFailures int
	cooldown    time.Duration
	probeCalls  int
}

func NewCircuitBreaker(config *CircuitBreakerConfig) *CircuitBreaker {
	if config == nil {
		config = DefaultCircuitBreakerConfig()
	}
	return &CircuitBreaker{
		state:       CircuitBreakerClosed,
		maxFailures: config.MaxFailures,
		cooldown:    config.Cooldown,
		probeCalls:  config.ProbeCalls,
	}
}

func (cb *CircuitBreaker) Execute(fn func() error) error {
	if !cb.allow() {
		return ErrCircuitBreakerOpen
	}

	if err := fn(); err != nil {
		cb.recordFailure()
		return err
	}

	cb.recordSuccess()
	return nil
}

func (cb *CircuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitBreakerClosed, CircuitBreakerHalfOpen:
		return true
	case CircuitBreakerOpen:
		if time.Since(cb.openedAt) >= cb.cooldown {
			cb.state = CircuitBreakerHalfOpen
			cb.probeSuccess = 0
			return true
		}
		return false
	}
	return false
}

func (cb *CircuitBreaker) recordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitBreakerClosed:
		cb.failures++
		if cb.failures >= cb.maxFailures {
			cb.state = CircuitBreakerOpen
			cb.openedAt = time.Now()
		}
	case CircuitBreakerHalfOpen:
		cb.state = CircuitBreakerOpen
		cb.openedAt = time.Now()
		cb.probeSuccess = 0
	}
}

func (cb *CircuitBreaker) recordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitBreakerClosed:
		cb.failures = 0
	case CircuitBreakerHalfOpen:
		cb.probeSuccess++
		if cb.probeSuccess >= cb.probeCalls {
			cb.state = CircuitBreakerClosed
			cb.failures = 0
			cb.probeSuccess = 0
		}
	}
}

func (cb *CircuitBreaker) GetState() CircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) GetStats() map[string]interface{} {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	stateName := "closed"
	switch cb.state {
	case CircuitBreakerOpen:
		stateName = "open"
	case CircuitBreakerHalfOpen:
		stateName = "half-open"
	}

	return map[string]interface{}{
		"state":            stateName,
		"failures":         cb.failures,
		"max_failures":     cb.maxFailures,
		"cooldown_seconds": cb.cooldown.Seconds(),
	}
}
