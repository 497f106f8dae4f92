package wizard

import "time"

// Scheduler runs f once after d. The returned function cancels a call that
// has not run yet.
type Scheduler interface {
	After(d time.Duration, f func()) (cancel func())
}

type timerScheduler struct{}

func (timerScheduler) After(d time.Duration, f func()) func() {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}

// TimerScheduler runs callbacks on their own goroutine. Presenters with a
// single UI goroutine should wrap f to hop back onto it.
var TimerScheduler Scheduler = timerScheduler{}
