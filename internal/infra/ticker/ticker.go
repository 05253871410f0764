// Package ticker provides the wall-clock implementation of domain.Ticker.
package ticker

import (
	"sync"
	"time"

	"github.com/runoshun/tally/internal/domain"
)

var _ domain.Ticker = Real{}

// Real schedules callbacks on a time.Ticker per registration.
type Real struct{}

// Every runs fn on its own goroutine once per interval.
// Cancel does not wait: a call already in progress may still finish after it returns.
func (Real) Every(interval time.Duration, fn func()) func() {
	t := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-t.C:
				// Prefer cancellation when both are ready.
				select {
				case <-done:
					return
				default:
				}
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.Stop()
			close(done)
		})
	}
}
