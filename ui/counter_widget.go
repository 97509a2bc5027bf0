package ui

import (
	"image/color"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"RollCounter/counter"
)

// frameScheduler adapts the Fyne event loop to the counter.Scheduler
// contract. fyne.Do queues work for the next iteration of the UI loop, which
// runs between frames, so a queued callback observes the previous frame as
// painted. Delayed callbacks hop back onto the UI thread the same way.
type frameScheduler struct{}

func (frameScheduler) AfterPaint(fn func()) {
	fyne.Do(fn)
}

func (frameScheduler) After(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, func() {
		fyne.Do(fn)
	})
	return func() { t.Stop() }
}

// enginePresenter forwards Presenter callbacks to the widget. A separate type
// keeps the Presenter's Resize(int) from shadowing the fyne.CanvasObject
// Resize the widget inherits from BaseWidget.
type enginePresenter struct {
	c *Counter
}

func (p enginePresenter) Apply(visuals []*counter.DigitVisual) {
	p.c.applyVisuals(visuals)
}

func (p enginePresenter) Resize(widthUnits int) {
	p.c.resizeUnits(widthUnits)
}

// Counter is the canvas-backed presentation of the digit-roll engine. Digit
// visuals become canvas.Text objects whose vertical offsets follow the
// engine's visual states; offset changes are animated with Fyne position
// animations over the transition duration.
type Counter struct {
	widget.BaseWidget

	engine   *counter.Engine
	duration time.Duration

	sizer      *canvas.Rectangle
	content    *fyne.Container
	texts      map[*counter.DigitVisual]*canvas.Text
	anims      map[*counter.DigitVisual]*fyne.Animation
	widthUnits int
}

// NewCounter creates the widget settled on opts.Value.
func NewCounter(opts counter.Options) *Counter {
	c := &Counter{
		texts: make(map[*counter.DigitVisual]*canvas.Text),
		anims: make(map[*counter.DigitVisual]*fyne.Animation),
	}
	c.duration = opts.Duration
	if c.duration <= 0 {
		c.duration = counter.DefaultDuration
	}
	c.sizer = canvas.NewRectangle(color.Transparent)
	c.content = container.NewWithoutLayout()
	c.engine = counter.NewEngine(enginePresenter{c}, frameScheduler{}, opts)
	c.ExtendBaseWidget(c)
	return c
}

// CreateRenderer implements fyne.Widget.
func (c *Counter) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(c.sizer, c.content))
}

// SetValue requests that the display roll to v. Safe to call from any
// goroutine; the change is applied on the UI thread.
func (c *Counter) SetValue(v int) {
	fyne.Do(func() {
		c.engine.SetValue(v)
	})
}

// SetDisableAnimation toggles the synchronous reduced-motion path.
func (c *Counter) SetDisableAnimation(disable bool) {
	fyne.Do(func() {
		c.engine.SetDisableAnimation(disable)
	})
}

// applyVisuals reconciles the canvas objects with the engine's visuals. Runs
// on the UI thread.
func (c *Counter) applyVisuals(visuals []*counter.DigitVisual) {
	seen := make(map[*counter.DigitVisual]bool, len(visuals))
	for _, v := range visuals {
		seen[v] = true
		t, ok := c.texts[v]
		if !ok {
			t = canvas.NewText(strconv.Itoa(v.Value), color.White)
			t.TextSize = counter.FontSizeDigits
			t.TextStyle.Bold = true
			t.Alignment = fyne.TextAlignCenter
			t.Resize(c.cellSize())
			t.Move(fyne.NewPos(0, c.offsetFor(v)))
			c.texts[v] = t
			c.content.Add(t)
			continue
		}
		t.Text = strconv.Itoa(v.Value)
		c.slideTo(v, t, c.offsetFor(v))
	}

	for v, t := range c.texts {
		if seen[v] {
			continue
		}
		if a, ok := c.anims[v]; ok {
			a.Stop()
			delete(c.anims, v)
		}
		c.content.Remove(t)
		delete(c.texts, v)
	}
	c.content.Refresh()
}

// resizeUnits applies the width calculator's output through a transparent
// min-size enforcer rectangle. Runs on the UI thread.
func (c *Counter) resizeUnits(widthUnits int) {
	c.widthUnits = widthUnits
	c.sizer.SetMinSize(c.cellSize())
	for _, t := range c.texts {
		t.Resize(c.cellSize())
	}
	c.sizer.Refresh()
}

func (c *Counter) cellSize() fyne.Size {
	return fyne.NewSize(float32(c.widthUnits)*counter.DigitCellWidth, counter.DigitCellHeight)
}

// offsetFor maps a visual state to the vertical offset the canvas object
// should rest at: entering digits wait one cell off-screen on the side they
// enter from, exiting digits end one cell off-screen on the side they leave
// through.
func (c *Counter) offsetFor(v *counter.DigitVisual) float32 {
	switch v.State {
	case counter.StateEntering:
		if v.Direction == counter.DirectionUp {
			return counter.DigitCellHeight
		}
		return -counter.DigitCellHeight
	case counter.StateExitingUp:
		return -counter.DigitCellHeight
	case counter.StateExitingDown:
		return counter.DigitCellHeight
	}
	return 0
}

func (c *Counter) slideTo(v *counter.DigitVisual, t *canvas.Text, offsetY float32) {
	target := fyne.NewPos(0, offsetY)
	if t.Position() == target {
		return
	}
	if a, ok := c.anims[v]; ok {
		a.Stop()
	}
	anim := canvas.NewPositionAnimation(t.Position(), target, c.duration, func(p fyne.Position) {
		t.Move(p)
		canvas.Refresh(t)
	})
	c.anims[v] = anim
	anim.Start()
}
