package counter

import "time"

// DefaultDuration is the transition length used when Options.Duration is
// unset or invalid.
const DefaultDuration = 300 * time.Millisecond

// UI constants shared with the presentation adapters.
const (
	FontSizeDigits  float32 = 64.0 // Digit display
	DigitCellWidth  float32 = 40.0 // Width of one character unit
	DigitCellHeight float32 = 76.0 // Height of the digit row
)

// Options holds the recognized widget configuration.
type Options struct {
	// Value is the authoritative target display value.
	Value int
	// OnAnimationComplete is invoked once per completed transition, and once
	// per value change applied through the synchronous path.
	OnAnimationComplete func()
	// Duration is the length of one transition. Zero or negative values are
	// clamped to DefaultDuration.
	Duration time.Duration
	// ContainerClassName is an extra class applied to the container by the
	// markup presentation strategy.
	ContainerClassName string
	// DisableAnimation makes value changes bypass the queue and engine and
	// update the display synchronously (reduced motion).
	DisableAnimation bool
}

func (o Options) normalized() Options {
	if o.Duration <= 0 {
		o.Duration = DefaultDuration
	}
	return o
}
