// Package markup renders engine visuals as HTML-like span markup using the
// counter's class vocabulary. It is the declarative, headless presentation
// strategy; the canvas-backed one lives in the ui package.
package markup

import (
	"fmt"
	"strings"

	"RollCounter/counter"
)

// ClassFor maps a visual to the class consumed by the style layer.
func ClassFor(v *counter.DigitVisual) string {
	switch v.State {
	case counter.StateVisible:
		return "visible"
	case counter.StateExitingUp:
		return "slide-out-up"
	case counter.StateExitingDown:
		return "slide-out-down"
	case counter.StateEntering:
		if v.Direction == counter.DirectionUp {
			return "slide-in-from-down"
		}
		return "slide-in-from-up"
	}
	return ""
}

// View is a counter.Presenter that keeps the latest engine state and renders
// it on demand.
type View struct {
	containerClass string
	width          int
	visuals        []*counter.DigitVisual
}

// NewView creates a view. containerClass is appended to the container's base
// class when non-empty.
func NewView(containerClass string) *View {
	return &View{containerClass: containerClass}
}

// NewCounter wires a fresh view to a new engine built from opts, picking up
// opts.ContainerClassName for the container span.
func NewCounter(s counter.Scheduler, opts counter.Options) (*counter.Engine, *View) {
	v := NewView(opts.ContainerClassName)
	return counter.NewEngine(v, s, opts), v
}

// Apply implements counter.Presenter.
func (v *View) Apply(visuals []*counter.DigitVisual) {
	v.visuals = append(v.visuals[:0], visuals...)
}

// Resize implements counter.Presenter.
func (v *View) Resize(widthUnits int) {
	v.width = widthUnits
}

// Width returns the container width in character units.
func (v *View) Width() int {
	return v.width
}

// Render returns the current markup: one container span sized in character
// units holding one span per digit visual.
func (v *View) Render() string {
	var b strings.Builder
	class := "roll-counter"
	if v.containerClass != "" {
		class += " " + v.containerClass
	}
	fmt.Fprintf(&b, `<span class=%q style="width: %dch">`, class, v.width)
	for _, d := range v.visuals {
		fmt.Fprintf(&b, `<span class=%q>%d</span>`, ClassFor(d), d.Value)
	}
	b.WriteString(`</span>`)
	return b.String()
}
