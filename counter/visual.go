package counter

// Direction describes which way the digit display rolls during a transition.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
)

// VisualState defines the rendering phase of a single DigitVisual.
type VisualState int

const (
	StateEntering VisualState = iota
	StateVisible
	StateExitingUp
	StateExitingDown
)

// DigitVisual is one rendered instance of a numeric value. At most two exist
// at any time: outside of a transition a single visible one, during a
// transition the outgoing one (not visible, exiting by direction) and the
// incoming one (not yet visible until promoted).
type DigitVisual struct {
	Value     int
	Direction Direction
	Visible   bool
	State     VisualState
}
