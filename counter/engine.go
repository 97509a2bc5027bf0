// Package counter contains the domain logic for the digit-roll display: the
// width calculator, the UpdateQueue that coalesces rapid value changes, and
// the Engine state machine that drives one transition at a time.
//
// Maintenance notes:
//   - The Engine is single-threaded by contract. Every entry point (SetValue,
//     scheduler callbacks) must run on the same execution context; the Fyne
//     adapter funnels all of them through fyne.Do and the tests drive a
//     stepped scheduler from one goroutine. Do not add locks here; serialize
//     the callers instead.
//   - The Engine owns the DigitVisual list and is the single source of truth
//     for what should be rendered. Presenters only mirror it.
package counter

import "time"

// EngineState drives whether the update queue may be drained.
type EngineState int

const (
	EngineIdle EngineState = iota
	EngineAnimating
)

// Presenter mirrors engine state onto a rendering surface. Apply is called
// after every visual mutation with the engine's current visuals, oldest
// first; Resize is called when the container width (in character units)
// changes.
type Presenter interface {
	Apply(visuals []*DigitVisual)
	Resize(widthUnits int)
}

// Engine is the digit-transition state machine for one widget instance.
type Engine struct {
	presenter Presenter
	scheduler Scheduler

	duration         time.Duration
	onComplete       func()
	disableAnimation bool

	state         EngineState
	queue         UpdateQueue
	visuals       []*DigitVisual
	value         int // value currently committed as visible
	width         int // container width in character units
	drainQueued   bool
	cancelCleanup func()
}

// NewEngine creates an engine settled on opts.Value and pushes the initial
// width and visual to the presenter.
func NewEngine(p Presenter, s Scheduler, opts Options) *Engine {
	opts = opts.normalized()
	e := &Engine{
		presenter:        p,
		scheduler:        s,
		duration:         opts.Duration,
		onComplete:       opts.OnAnimationComplete,
		disableAnimation: opts.DisableAnimation,
		value:            opts.Value,
		width:            WidthOf(opts.Value),
	}
	e.visuals = []*DigitVisual{{Value: opts.Value, Visible: true, State: StateVisible}}
	p.Resize(e.width)
	p.Apply(e.visuals)
	return e
}

// SetValue requests that the display change to target. With animation enabled
// the request is coalesced into the queue and consumed when the engine is
// idle; otherwise the display updates synchronously.
func (e *Engine) SetValue(target int) {
	if e.disableAnimation {
		e.applyImmediate(target)
		return
	}
	if !e.queue.Enqueue(target, e.value) {
		return
	}
	e.scheduleDrain()
}

// SetDisableAnimation switches value changes to the synchronous reduced
// motion path. An in-flight transition is left to finish on its own.
func (e *Engine) SetDisableAnimation(disable bool) {
	e.disableAnimation = disable
}

// State returns the engine state.
func (e *Engine) State() EngineState {
	return e.state
}

// Value returns the value currently committed to the display.
func (e *Engine) Value() int {
	return e.value
}

// Width returns the container width in character units.
func (e *Engine) Width() int {
	return e.width
}

// Visuals returns the visuals currently owned by the engine, oldest first.
func (e *Engine) Visuals() []*DigitVisual {
	out := make([]*DigitVisual, len(e.visuals))
	copy(out, e.visuals)
	return out
}

// applyImmediate is the reduced-motion path: it replaces the display content
// synchronously and still reports completion.
func (e *Engine) applyImmediate(target int) {
	if e.cancelCleanup != nil {
		e.cancelCleanup()
		e.cancelCleanup = nil
	}
	e.queue.Take()
	e.state = EngineIdle
	if target == e.value && len(e.visuals) == 1 {
		return
	}
	e.value = target
	e.visuals = []*DigitVisual{{Value: target, Visible: true, State: StateVisible}}
	e.setWidth(WidthOf(target))
	e.presenter.Apply(e.visuals)
	e.notifyComplete()
}

// scheduleDrain defers queue consumption to the next paint so that every
// enqueue landing before that paint collapses into the single pending slot.
func (e *Engine) scheduleDrain() {
	if e.state != EngineIdle || e.drainQueued {
		return
	}
	e.drainQueued = true
	e.scheduler.AfterPaint(func() {
		e.drainQueued = false
		e.drain()
	})
}

func (e *Engine) drain() {
	if e.state != EngineIdle {
		return
	}
	item, ok := e.queue.Take()
	if !ok {
		return
	}
	if item.Target == e.value {
		// Redundant transition to the value already shown; drop it with no
		// visual effect.
		return
	}
	e.start(item)
}

func (e *Engine) start(item PendingUpdate) {
	out := e.visibleVisual()
	if out == nil {
		// Display desynchronized from engine state. Abort the animated path,
		// resync to the requested target and keep draining.
		e.visuals = []*DigitVisual{{Value: item.Target, Visible: true, State: StateVisible}}
		e.value = item.Target
		e.setWidth(WidthOf(item.Target))
		e.presenter.Apply(e.visuals)
		e.notifyComplete()
		e.drain()
		return
	}

	target := item.Target
	if w := WidthOf(target); w >= e.width {
		// Growing (or equal) targets resize before the transition starts so
		// entering digits are never clipped. Shrinks wait for completion so
		// the wider exiting digit is not clipped mid-animation.
		e.setWidth(w)
	}

	e.state = EngineAnimating
	out.Visible = false
	out.Direction = item.Direction
	if item.Direction == DirectionUp {
		out.State = StateExitingUp
	} else {
		out.State = StateExitingDown
	}

	in := &DigitVisual{Value: target, Direction: item.Direction, State: StateEntering}
	e.visuals = append(e.visuals, in)
	e.presenter.Apply(e.visuals)

	ScheduleAfterTwoFramePaints(e.scheduler, func() {
		e.promote(in)
	})

	if e.cancelCleanup != nil {
		// A stale completion timer would prune the visuals of this newer
		// transition.
		e.cancelCleanup()
	}
	e.cancelCleanup = e.scheduler.After(e.duration, func() {
		e.finish(target)
	})
}

// promote marks the entering visual as the visible one. It only applies while
// the visual is still entering: completion may have settled it already, or a
// newer transition may have re-marked it as exiting.
func (e *Engine) promote(in *DigitVisual) {
	if !e.owns(in) || in.State != StateEntering {
		return
	}
	in.Visible = true
	in.State = StateVisible
	e.value = in.Value
	e.presenter.Apply(e.visuals)
}

// finish is the completion cleanup for the transition to target. It tolerates
// duplicate fires: the prune never removes a visible visual or one holding
// the promoted value, and a second invocation finds the engine already idle
// and stops before notifying again.
func (e *Engine) finish(target int) {
	kept := e.visuals[:0]
	for _, v := range e.visuals {
		if v.Visible || v.Value == target {
			kept = append(kept, v)
		}
	}
	e.visuals = kept

	if w := WidthOf(target); w < e.width {
		e.setWidth(w)
	}

	// The completion timer can beat the two-paint promotion when the paint
	// queue stalls behind wall-clock time. Settle the target visual here
	// rather than going idle with nothing on screen.
	if e.visibleVisual() == nil {
		for _, v := range e.visuals {
			if v.Value == target {
				v.Visible = true
				v.State = StateVisible
				break
			}
		}
	}

	if e.state == EngineIdle {
		return
	}
	e.state = EngineIdle
	e.cancelCleanup = nil
	e.value = target
	e.presenter.Apply(e.visuals)
	e.notifyComplete()
	e.drain()
}

func (e *Engine) visibleVisual() *DigitVisual {
	for _, v := range e.visuals {
		if v.Visible {
			return v
		}
	}
	return nil
}

func (e *Engine) owns(v *DigitVisual) bool {
	for _, cur := range e.visuals {
		if cur == v {
			return true
		}
	}
	return false
}

func (e *Engine) setWidth(w int) {
	if w == e.width {
		return
	}
	e.width = w
	e.presenter.Resize(w)
}

func (e *Engine) notifyComplete() {
	if e.onComplete != nil {
		e.onComplete()
	}
}
