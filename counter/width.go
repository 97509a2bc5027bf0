package counter

import "strconv"

// WidthOf returns the display width of value in character units: one unit per
// decimal digit plus one for the sign of a negative value.
func WidthOf(value int) int {
	return len(strconv.Itoa(value))
}
