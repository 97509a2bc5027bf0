package counter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTimer struct {
	fn        func()
	cancelled bool
	fired     bool
}

// stubScheduler drives paint and timer callbacks manually from the test
// goroutine.
type stubScheduler struct {
	frames []func()
	timers []*stubTimer
}

func (s *stubScheduler) AfterPaint(fn func()) {
	s.frames = append(s.frames, fn)
}

func (s *stubScheduler) After(d time.Duration, fn func()) func() {
	t := &stubTimer{fn: fn}
	s.timers = append(s.timers, t)
	return func() { t.cancelled = true }
}

// runFrame runs the paint callbacks queued before this frame; callbacks
// scheduled while it runs wait for the next frame.
func (s *stubScheduler) runFrame() {
	queued := s.frames
	s.frames = nil
	for _, fn := range queued {
		fn()
	}
}

// fireTimers fires every live timer queued so far. Timers scheduled while
// firing wait for the next call.
func (s *stubScheduler) fireTimers() {
	queued := s.timers
	s.timers = nil
	for _, t := range queued {
		if !t.cancelled && !t.fired {
			t.fired = true
			t.fn()
		}
	}
}

func (s *stubScheduler) idle() bool {
	return len(s.frames) == 0 && len(s.timers) == 0
}

// stubPresenter records every resize and every value that was ever handed to
// the rendering surface.
type stubPresenter struct {
	widths     []int
	seenValues map[int]bool
	applies    int
}

func newStubPresenter() *stubPresenter {
	return &stubPresenter{seenValues: map[int]bool{}}
}

func (p *stubPresenter) Apply(visuals []*DigitVisual) {
	p.applies++
	for _, v := range visuals {
		p.seenValues[v.Value] = true
	}
}

func (p *stubPresenter) Resize(w int) {
	p.widths = append(p.widths, w)
}

func newTestEngine(value int, disable bool) (*Engine, *stubScheduler, *stubPresenter, *int) {
	sched := &stubScheduler{}
	pres := newStubPresenter()
	completions := new(int)
	e := NewEngine(pres, sched, Options{
		Value:               value,
		DisableAnimation:    disable,
		OnAnimationComplete: func() { *completions++ },
	})
	return e, sched, pres, completions
}

// settle drives the scheduler until no work is pending.
func settle(t *testing.T, s *stubScheduler) {
	t.Helper()
	for i := 0; i < 20; i++ {
		if s.idle() {
			return
		}
		s.runFrame()
		s.runFrame()
		s.runFrame()
		s.fireTimers()
	}
	t.Fatal("scheduler did not settle")
}

func countVisible(e *Engine) int {
	n := 0
	for _, v := range e.Visuals() {
		if v.Visible {
			n++
		}
	}
	return n
}

func findValue(e *Engine, value int) *DigitVisual {
	for _, v := range e.Visuals() {
		if v.Value == value {
			return v
		}
	}
	return nil
}

func TestNewEngineIsSettled(t *testing.T) {
	e, _, pres, _ := newTestEngine(42, false)

	assert.Equal(t, EngineIdle, e.State())
	assert.Equal(t, 42, e.Value())
	assert.Equal(t, 2, e.Width())
	assert.Equal(t, []int{2}, pres.widths)

	require.Len(t, e.Visuals(), 1)
	v := e.Visuals()[0]
	assert.True(t, v.Visible)
	assert.Equal(t, StateVisible, v.State)
}

func TestSettledStateHasExactlyOneVisible(t *testing.T) {
	e, sched, _, _ := newTestEngine(5, false)

	for _, target := range []int{8, 3, 3, -12, 0} {
		e.SetValue(target)
		settle(t, sched)
		assert.Equal(t, EngineIdle, e.State())
		assert.Equal(t, 1, countVisible(e), "after moving to %d", target)
		assert.Len(t, e.Visuals(), 1)
	}
	assert.Equal(t, 0, e.Value())
}

func TestEqualValueIsNoOp(t *testing.T) {
	e, sched, _, completions := newTestEngine(5, false)

	e.SetValue(5)
	assert.True(t, sched.idle(), "no work may be scheduled for a redundant value")

	settle(t, sched)
	assert.Equal(t, EngineIdle, e.State())
	assert.Equal(t, 0, *completions)
}

func TestRapidUpdatesCoalesceIntoOneTransition(t *testing.T) {
	e, sched, pres, completions := newTestEngine(5, false)

	e.SetValue(6)
	e.SetValue(7)

	// The queued drain consumes the coalesced item and starts 5 -> 7.
	sched.runFrame()
	assert.Equal(t, EngineAnimating, e.State())
	require.Len(t, e.Visuals(), 2)

	out := findValue(e, 5)
	require.NotNil(t, out)
	assert.False(t, out.Visible)
	assert.Equal(t, StateExitingUp, out.State)

	in := findValue(e, 7)
	require.NotNil(t, in)
	assert.False(t, in.Visible)
	assert.Equal(t, StateEntering, in.State)
	assert.Equal(t, DirectionUp, in.Direction)

	assert.False(t, pres.seenValues[6], "the intermediate value must never be rendered")

	settle(t, sched)
	assert.Equal(t, 7, e.Value())
	assert.Equal(t, 1, *completions)
	assert.Len(t, e.Visuals(), 1)
}

func TestPromotionTakesTwoFramePaints(t *testing.T) {
	e, sched, _, _ := newTestEngine(1, false)

	e.SetValue(2)
	sched.runFrame() // drain + transition start
	in := findValue(e, 2)
	require.NotNil(t, in)
	assert.False(t, in.Visible)

	sched.runFrame() // first paint: initial state committed
	assert.False(t, in.Visible)

	sched.runFrame() // second paint: promotion
	assert.True(t, in.Visible)
	assert.Equal(t, StateVisible, in.State)
	assert.Equal(t, 2, e.Value())
}

func TestDisableAnimationUpdatesSynchronously(t *testing.T) {
	e, sched, _, completions := newTestEngine(3, true)

	e.SetValue(9)

	assert.True(t, sched.idle(), "the synchronous path must not schedule work")
	assert.Equal(t, 9, e.Value())
	assert.Equal(t, 1, *completions)
	require.Len(t, e.Visuals(), 1)
	assert.True(t, e.Visuals()[0].Visible)

	// Repeating the same value is still a no-op.
	e.SetValue(9)
	assert.Equal(t, 1, *completions)
}

func TestGrowingWidthResizesBeforeTransition(t *testing.T) {
	e, sched, pres, _ := newTestEngine(9, false)
	require.Equal(t, []int{1}, pres.widths)

	e.SetValue(10)
	sched.runFrame() // transition start
	assert.Equal(t, []int{1, 2}, pres.widths, "grow must be applied before the transition runs")

	settle(t, sched)
	assert.Equal(t, []int{1, 2}, pres.widths)
}

func TestShrinkingWidthResizesAfterCompletion(t *testing.T) {
	e, sched, pres, _ := newTestEngine(10, false)
	require.Equal(t, []int{2}, pres.widths)

	e.SetValue(9)
	sched.runFrame() // transition start
	sched.runFrame()
	sched.runFrame() // promotion
	assert.Equal(t, []int{2}, pres.widths, "shrink must wait for completion")

	sched.fireTimers()
	assert.Equal(t, []int{2, 1}, pres.widths)
	assert.Equal(t, EngineIdle, e.State())
}

func TestDuplicateCompletionFireKeepsVisibleVisual(t *testing.T) {
	e, sched, _, completions := newTestEngine(5, false)

	e.SetValue(6)
	settle(t, sched)
	require.Equal(t, 1, *completions)

	// Simulate a duplicate timer fire for the finished transition.
	e.finish(6)

	require.Len(t, e.Visuals(), 1)
	assert.True(t, e.Visuals()[0].Visible)
	assert.Equal(t, 6, e.Visuals()[0].Value)
	assert.Equal(t, 1, *completions, "a duplicate fire must not re-notify")
}

func TestCompletionBeforePromotionKeepsOneVisible(t *testing.T) {
	e, sched, _, completions := newTestEngine(5, false)

	e.SetValue(6)
	sched.runFrame() // start 5 -> 6; promotion paints still queued

	// A stalled paint queue lets the wall-clock completion timer fire ahead
	// of the two-paint promotion.
	sched.fireTimers()

	assert.Equal(t, EngineIdle, e.State())
	assert.Equal(t, 6, e.Value())
	require.Len(t, e.Visuals(), 1)
	assert.Equal(t, 1, countVisible(e), "settling must leave exactly one visible visual")
	assert.Equal(t, 1, *completions)

	// The late promotion paints must not disturb the settled display.
	sched.runFrame()
	sched.runFrame()
	assert.Equal(t, 1, countVisible(e))
	assert.Equal(t, 6, e.Value())
	assert.Equal(t, 1, *completions)
}

func TestMidTransitionEnqueueWaitsForCompletion(t *testing.T) {
	e, sched, _, completions := newTestEngine(5, false)

	e.SetValue(6)
	sched.runFrame() // start 5 -> 6
	require.Equal(t, EngineAnimating, e.State())

	e.SetValue(7)
	assert.Nil(t, findValue(e, 7), "a mid-flight enqueue has no visible effect")

	sched.runFrame()
	sched.runFrame() // promote 6
	sched.fireTimers() // finish 6, drain starts 6 -> 7
	assert.Equal(t, 1, *completions)
	assert.Equal(t, EngineAnimating, e.State())
	require.NotNil(t, findValue(e, 7))

	settle(t, sched)
	assert.Equal(t, 7, e.Value())
	assert.Equal(t, 2, *completions)
}

func TestSwitchingToReducedMotionCancelsCleanupTimer(t *testing.T) {
	e, sched, _, completions := newTestEngine(5, false)

	e.SetValue(6)
	sched.runFrame() // start 5 -> 6, completion timer pending

	e.SetDisableAnimation(true)
	e.SetValue(9)
	assert.Equal(t, 9, e.Value())
	assert.Equal(t, 1, *completions)

	// The stale timer must not prune the synchronously applied visual.
	sched.fireTimers()
	sched.runFrame()
	sched.runFrame()
	require.Len(t, e.Visuals(), 1)
	assert.True(t, e.Visuals()[0].Visible)
	assert.Equal(t, 9, e.Visuals()[0].Value)
	assert.Equal(t, 1, *completions)
}

func TestDesynchronizedDisplayResyncsWithoutAnimating(t *testing.T) {
	e, sched, _, completions := newTestEngine(5, false)

	// Simulate the environment losing the visible node.
	e.visuals[0].Visible = false
	e.visuals[0].State = StateExitingUp

	e.SetValue(7)
	sched.runFrame()

	assert.Equal(t, EngineIdle, e.State())
	require.Len(t, e.Visuals(), 1)
	assert.True(t, e.Visuals()[0].Visible)
	assert.Equal(t, 7, e.Visuals()[0].Value)
	assert.Equal(t, 1, *completions)
}

func TestNegativeDurationFallsBackToDefault(t *testing.T) {
	sched := &stubScheduler{}
	e := NewEngine(newStubPresenter(), sched, Options{Value: 1, Duration: -time.Second})
	assert.Equal(t, DefaultDuration, e.duration)
}
