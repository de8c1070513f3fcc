package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigatorMove(t *testing.T) {
	n := NewNavigator()
	n.UpdateState(0, 0, 3, 10)

	sel, off := n.Move(1)
	assert.Equal(t, 1, sel)
	assert.Equal(t, 0, off)

	sel, off = n.Move(2)
	assert.Equal(t, 3, sel)
	assert.Equal(t, 1, off, "viewport follows the cursor")

	sel, off = n.Move(-10)
	assert.Equal(t, 0, sel)
	assert.Equal(t, 0, off)

	sel, off = n.End()
	assert.Equal(t, 9, sel)
	assert.Equal(t, 7, off)

	sel, off = n.Home()
	assert.Equal(t, 0, sel)
	assert.Equal(t, 0, off)
}

func TestNavigatorPage(t *testing.T) {
	n := NewNavigator()
	n.UpdateState(0, 0, 4, 10)

	sel, off := n.Page(1)
	assert.Equal(t, 4, sel)
	assert.Equal(t, 1, off)

	sel, _ = n.Page(5)
	assert.Equal(t, 9, sel)

	sel, off = n.Page(-1)
	assert.Equal(t, 5, sel)
	assert.Equal(t, 5, off)
}

func TestNavigatorEmptyList(t *testing.T) {
	n := NewNavigator()
	n.UpdateState(3, 2, 5, 0)
	assert.Equal(t, 0, n.SelectedIndex())
	assert.Equal(t, 0, n.ViewportOffset())

	sel, off := n.Move(1)
	assert.Equal(t, 0, sel)
	assert.Equal(t, 0, off)
}

func TestNavigatorShrinkingList(t *testing.T) {
	n := NewNavigator()
	n.UpdateState(8, 6, 3, 3)
	assert.Equal(t, 2, n.SelectedIndex())
	assert.Equal(t, 0, n.ViewportOffset())
}
