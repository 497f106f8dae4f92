package tui

import "time"

// queueScheduler runs wizard callbacks on the UI goroutine once their delay
// has passed.
type queueScheduler struct {
	queue func(f func())
}

func (s *queueScheduler) After(d time.Duration, f func()) func() {
	cancelled := false
	timer := time.AfterFunc(d, func() {
		s.queue(func() {
			if !cancelled {
				f()
			}
		})
	})

	return func() {
		cancelled = true
		timer.Stop()
	}
}
