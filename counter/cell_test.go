package counter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellSetAndGet(t *testing.T) {
	c := NewCell(5)
	assert.Equal(t, 5, c.Get())

	c.Set(9)
	assert.Equal(t, 9, c.Get())
}

func TestCellAdd(t *testing.T) {
	c := NewCell(10)
	assert.Equal(t, 7, c.Add(-3))
	assert.Equal(t, 7, c.Get())
}

func TestCellNotifiesOnChange(t *testing.T) {
	c := NewCell(0)
	var got []int
	c.OnChange(func(v int) { got = append(got, v) })

	c.Set(1)
	c.Set(1) // unchanged, no notification
	c.Add(2)
	c.Add(0) // unchanged, no notification

	assert.Equal(t, []int{1, 3}, got)
}
