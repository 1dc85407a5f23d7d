package usecase

// Defaults in pixels, used when AutoScroller leaves EdgeSize or Speed at zero.
const (
	ScrollEdgeSize = 80
	ScrollSpeed    = 12
)

// AutoScroller scrolls the board horizontally while a card is dragged near an edge
// of the viewport. Step is called once per frame.
//
// EdgeSize and Speed are in the viewport's own unit (pixels, terminal cells).
type AutoScroller struct {
	Offset    int
	MaxOffset int
	EdgeSize  int
	Speed     int
	active    bool
}

func (a *AutoScroller) edge() int {
	if a.EdgeSize > 0 {
		return a.EdgeSize
	}
	return ScrollEdgeSize
}

func (a *AutoScroller) speed() int {
	if a.Speed > 0 {
		return a.Speed
	}
	return ScrollSpeed
}

// Step applies one frame of scrolling for a pointer at pointerX inside a viewport
// spanning [left, right] and returns the applied delta.
func (a *AutoScroller) Step(pointerX, left, right int) int {
	delta := 0
	switch edge := a.edge(); {
	case pointerX < left+edge:
		delta = -a.speed()
	case pointerX > right-edge:
		delta = a.speed()
	}
	if delta == 0 {
		a.active = false
		return 0
	}

	next := a.Offset + delta
	if next < 0 {
		next = 0
	}
	if a.MaxOffset >= 0 && next > a.MaxOffset {
		next = a.MaxOffset
	}
	applied := next - a.Offset
	a.Offset = next
	a.active = applied != 0
	return applied
}

// Active reports whether the last frame scrolled.
func (a *AutoScroller) Active() bool { return a.active }

// Stop ends scrolling when the drag ends.
func (a *AutoScroller) Stop() { a.active = false }
