package gesture

import "time"

// AfterFuncScheduler schedules timer events on the runtime timer and hands
// them to Deliver, which typically forwards them into the owning goroutine's
// event channel.
type AfterFuncScheduler struct {
	Deliver func(Event)
}

// Schedule implements Scheduler.
func (s AfterFuncScheduler) Schedule(d time.Duration, ev Event) Timer {
	return time.AfterFunc(d, func() {
		s.Deliver(ev)
	})
}
