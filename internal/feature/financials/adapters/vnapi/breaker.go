package vnapi

import (
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerName labels the provider's circuit breaker in logs and metrics.
const BreakerName = "vnapi"

// BreakerConfig holds configuration for the circuit breaker.
type BreakerConfig struct {
	MaxRequests uint32        // max requests allowed in half-open state
	Interval    time.Duration // cyclic period of the closed state to clear counts
	Timeout     time.Duration // period of the open state before transitioning to half-open
	MinRequests uint32        // requests needed before the failure ratio can trip
}

var DefaultBreakerConfig = BreakerConfig{
	MaxRequests: 3,
	Interval:    time.Minute,
	Timeout:     30 * time.Second,
	MinRequests: 5,
}

// BreakerObserver receives circuit breaker state changes.
type BreakerObserver interface {
	SetBreakerState(name string, state int)
	RecordBreakerTrip(name string)
}

func newBreaker(cfg BreakerConfig, obs BreakerObserver) *gobreaker.CircuitBreaker[[]byte] {
	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        BreakerName,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests && failureRatio >= 0.5
		},
		// 4xx responses and oversized bodies say nothing about the provider's health.
		IsSuccessful: func(err error) bool {
			return err == nil || isClientError(err) || errors.Is(err, ErrBodyTooLarge)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
			if obs == nil {
				return
			}
			obs.SetBreakerState(name, stateToInt(to))
			if to == gobreaker.StateOpen {
				obs.RecordBreakerTrip(name)
			}
		},
	})
}

// stateToInt maps a state to 0=closed, 1=half-open, 2=open.
func stateToInt(state gobreaker.State) int {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
