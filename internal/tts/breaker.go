package tts

import (
	"time"

	"github.com/sony/gobreaker"
)

// breakerFunc runs one backend call under the breaker, returning the
// synthesized audio bytes.
type breakerFunc func(op func() ([]byte, error)) ([]byte, error)

func wrapBreaker(cb *gobreaker.CircuitBreaker) breakerFunc {
	return func(op func() ([]byte, error)) ([]byte, error) {
		out, err := cb.Execute(func() (interface{}, error) {
			return op()
		})
		if err != nil {
			return nil, err
		}
		audio, _ := out.([]byte)
		return audio, nil
	}
}

// newBreaker builds the circuit breaker used by the network-backed
// providers. Word-level retries already tolerate individual failures; the
// breaker stops a dead backend from eating the full retry budget for every
// remaining word. An open breaker surfaces as an ordinary synthesis error,
// so the caller's degrade-to-silence policy still applies.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 6
		},
	})
}
