package counter

// PendingUpdate is one coalesced request to change the displayed value.
type PendingUpdate struct {
	Target    int
	Direction Direction
}

// UpdateQueue serializes incoming value changes into a single pending
// transition. It holds at most one PendingUpdate: a new request replaces the
// held one instead of appending, so rapid successive changes collapse into a
// single transition to the newest target.
type UpdateQueue struct {
	pending *PendingUpdate
}

// Enqueue records a request to display target. visible is the value currently
// committed to the display. It reports whether the queue changed; a request
// matching the most recently requested value (the pending target if one
// exists, otherwise visible) is dropped.
//
// On replacement the direction is computed against the replaced item's
// target, not against the visible value, so it reflects the trajectory of
// rapid successive changes.
func (q *UpdateQueue) Enqueue(target, visible int) bool {
	if q.pending != nil {
		if target == q.pending.Target {
			return false
		}
		q.pending = &PendingUpdate{Target: target, Direction: directionBetween(q.pending.Target, target)}
		return true
	}
	if target == visible {
		return false
	}
	q.pending = &PendingUpdate{Target: target, Direction: directionBetween(visible, target)}
	return true
}

// Take removes and returns the pending update, if any.
func (q *UpdateQueue) Take() (PendingUpdate, bool) {
	if q.pending == nil {
		return PendingUpdate{}, false
	}
	item := *q.pending
	q.pending = nil
	return item, true
}

// Empty reports whether no update is pending.
func (q *UpdateQueue) Empty() bool {
	return q.pending == nil
}

func directionBetween(from, to int) Direction {
	if to > from {
		return DirectionUp
	}
	return DirectionDown
}
