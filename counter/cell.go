package counter

import "sync"

// Cell is an owned, injectable store for a counter's integer value. It is
// created alongside the widget or application that displays it and carries no
// process-wide state.
type Cell struct {
	mu       sync.RWMutex
	value    int
	onChange func(int)
}

// NewCell creates a cell holding initial.
func NewCell(initial int) *Cell {
	return &Cell{value: initial}
}

// Get returns the current value.
func (c *Cell) Get() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set stores v and notifies the change listener. Setting the current value
// again does nothing.
func (c *Cell) Set(v int) {
	c.mu.Lock()
	if v == c.value {
		c.mu.Unlock()
		return
	}
	c.value = v
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn(v)
	}
}

// Add adjusts the value by delta and returns the result.
func (c *Cell) Add(delta int) int {
	c.mu.Lock()
	c.value += delta
	v := c.value
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil && delta != 0 {
		fn(v)
	}
	return v
}

// OnChange registers fn to run after every value change. The listener is
// invoked outside the cell lock.
func (c *Cell) OnChange(fn func(int)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}
