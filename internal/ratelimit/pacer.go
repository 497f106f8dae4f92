// Package ratelimit paces consecutive GitHub calls so bulk operations stay
// under the secondary (abuse) rate limits.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

type Pacer interface {
	Wait(ctx context.Context) error
}

// NewInterval returns a token bucket with a burst of one: the first Wait
// returns immediately and every following Wait is spaced d apart.
func NewInterval(d time.Duration) Pacer {
	if d <= 0 {
		return Unlimited
	}

	return rate.NewLimiter(rate.Every(d), 1)
}

type unlimited struct{}

func (unlimited) Wait(ctx context.Context) error {
	return ctx.Err()
}

var Unlimited Pacer = unlimited{}

// MockPacer counts Wait calls and optionally fails them.
type MockPacer struct {
	Calls int
	Err   error
}

func (p *MockPacer) Wait(ctx context.Context) error {
	p.Calls++
	return p.Err
}
