package counter

import "time"

// Scheduler supplies the two timing primitives the engine needs from its host
// environment: a callback after the next paint and a cancellable delayed
// callback. Implementations must deliver callbacks on the same execution
// context that drives the engine.
type Scheduler interface {
	// AfterPaint runs fn after the next frame has been painted.
	AfterPaint(fn func())
	// After runs fn once d has elapsed. The returned function cancels the
	// callback if it has not fired yet.
	After(d time.Duration, fn func()) (cancel func())
}

// ScheduleAfterTwoFramePaints runs fn after two consecutive paints. A single
// paint callback can land before the most recent style change has been
// committed to a rendered frame, collapsing initial and final states into one
// paint with no visible motion; the second callback guarantees a frame
// boundary between the two commits.
func ScheduleAfterTwoFramePaints(s Scheduler, fn func()) {
	s.AfterPaint(func() {
		s.AfterPaint(fn)
	})
}
