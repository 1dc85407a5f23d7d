package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutoScroller_Step(t *testing.T) {
	a := &AutoScroller{Offset: 100, MaxOffset: 500}

	assert.Equal(t, ScrollSpeed, a.Step(950, 0, 1000))
	assert.Equal(t, 112, a.Offset)
	assert.True(t, a.Active())

	assert.Equal(t, -ScrollSpeed, a.Step(79, 0, 1000))
	assert.Equal(t, 100, a.Offset)

	assert.Equal(t, 0, a.Step(500, 0, 1000), "outside the edge margin")
	assert.False(t, a.Active())

	assert.Equal(t, 0, a.Step(80, 0, 1000), "margin boundary does not scroll")
	assert.Equal(t, 0, a.Step(920, 0, 1000))
}

func TestAutoScroller_Clamps(t *testing.T) {
	a := &AutoScroller{Offset: 5, MaxOffset: 20}

	assert.Equal(t, -5, a.Step(0, 0, 400))
	assert.Equal(t, 0, a.Offset)
	assert.Equal(t, 0, a.Step(0, 0, 400))
	assert.False(t, a.Active())

	a.Offset = 15
	assert.Equal(t, 5, a.Step(400, 0, 400))
	assert.Equal(t, 20, a.Offset)

	a.Stop()
	assert.False(t, a.Active())
}

func TestAutoScroller_CustomUnits(t *testing.T) {
	// terminal: 30-cell columns, 15-cell margin
	a := &AutoScroller{MaxOffset: 60, EdgeSize: 15, Speed: 30}

	assert.Equal(t, 0, a.Step(105, 0, 120), "last visible column center sits on the margin")
	assert.Equal(t, 30, a.Step(135, 0, 120))
	assert.Equal(t, 0, a.Step(105, 0, 120), "stops once the column is in view")
	assert.False(t, a.Active())
	assert.Equal(t, -30, a.Step(-15, 0, 120))
	assert.Equal(t, 0, a.Offset)
}
