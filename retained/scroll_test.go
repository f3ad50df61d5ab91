package retained

import (
	"math/rand"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eventRecorder collects scroll events in order.
type eventRecorder struct {
	events []ScrollEvent
}

func (r *eventRecorder) listen(_ *ScrollView, ev ScrollEvent) {
	r.events = append(r.events, ev)
}

func (r *eventRecorder) reset() {
	r.events = nil
}

func (r *eventRecorder) count(ev ScrollEvent) int {
	n := 0
	for _, e := range r.events {
		if e == ev {
			n++
		}
	}
	return n
}

// newTestView builds a 300x400 viewport over content of the given size,
// resting with the top-left of the content visible.
func newTestView(t *testing.T, dir Direction, content Size) (*ScrollView, *eventRecorder) {
	t.Helper()
	sv := NewScrollView(Sz(300, 400))
	sv.SetDirection(dir)
	sv.SetInnerContainerSize(content)
	rec := &eventRecorder{}
	sv.SetEventListener(rec.listen)
	return sv, rec
}

func TestNewScrollViewDefaults(t *testing.T) {
	sv := NewScrollView(Sz(300, 400))

	assert.Equal(t, DirectionVertical, sv.Direction())
	assert.True(t, sv.IsInertiaScrollEnabled())
	assert.Equal(t, DefaultChildFocusCancelOffset, sv.ChildFocusCancelOffset())
	assert.Equal(t, Sz(300, 400), sv.InnerContainerSize())
	assert.Equal(t, gg.Pt(0, 0), sv.InnerContainerPosition())

	top, bottom, left, right := sv.Boundaries()
	assert.Equal(t, 400.0, top)
	assert.Equal(t, 0.0, bottom)
	assert.Equal(t, 0.0, left)
	assert.Equal(t, 300.0, right)
}

func TestSetInnerContainerSizeAnchorsTop(t *testing.T) {
	sv, _ := newTestView(t, DirectionVertical, Sz(300, 1000))
	assert.Equal(t, gg.Pt(0, -600), sv.InnerContainerPosition())
	assert.Equal(t, 400.0, sv.InnerContainer().Top())

	// Growing keeps the top edge in place.
	sv.SetInnerContainerSize(Sz(300, 1200))
	assert.Equal(t, gg.Pt(0, -800), sv.InnerContainerPosition())

	// Shrinking below the viewport clamps to the viewport.
	sv.SetInnerContainerSize(Sz(100, 50))
	assert.Equal(t, Sz(300, 400), sv.InnerContainerSize())
	assert.Equal(t, gg.Pt(0, 0), sv.InnerContainerPosition())
}

func TestSetViewportSizeReclamps(t *testing.T) {
	sv, _ := newTestView(t, DirectionVertical, Sz(300, 1000))
	sv.JumpToPercentVertical(100) // bottom aligned, y = 0

	sv.SetViewportSize(Sz(300, 600))
	top, _, _, right := sv.Boundaries()
	assert.Equal(t, 600.0, top)
	assert.Equal(t, 300.0, right)
	assert.Equal(t, gg.Pt(0, 0), sv.InnerContainerPosition())

	// Scrolled to the top, a taller viewport pulls the content down into range.
	sv.JumpToTop()
	assert.Equal(t, -400.0, sv.InnerContainerPosition().Y)
	sv.SetViewportSize(Sz(300, 900))
	assert.Equal(t, -100.0, sv.InnerContainerPosition().Y)

	// A viewport larger than the content grows the content.
	sv.SetViewportSize(Sz(500, 1100))
	assert.Equal(t, Sz(500, 1100), sv.InnerContainerSize())
	assert.Equal(t, gg.Pt(0, 0), sv.InnerContainerPosition())
}

func TestScrollChildrenVertical(t *testing.T) {
	tests := []struct {
		name       string
		start      gg.Point
		dx, dy     float64
		wantOK     bool
		wantPos    gg.Point
		wantEvents []ScrollEvent
	}{
		{
			name:       "pull down at top rest clamps to top",
			start:      gg.Pt(0, -600),
			dy:         -50,
			wantOK:     false,
			wantPos:    gg.Pt(0, -600),
			wantEvents: []ScrollEvent{Scrolling, ScrollToTop},
		},
		{
			name:       "push up from top rest moves freely",
			start:      gg.Pt(0, -600),
			dy:         50,
			wantOK:     true,
			wantPos:    gg.Pt(0, -550),
			wantEvents: []ScrollEvent{Scrolling},
		},
		{
			name:       "push up at bottom clamps to bottom",
			start:      gg.Pt(0, 0),
			dy:         50,
			wantOK:     false,
			wantPos:    gg.Pt(0, 0),
			wantEvents: []ScrollEvent{Scrolling, ScrollToBottom},
		},
		{
			name:       "pull down from bottom moves exactly",
			start:      gg.Pt(0, 0),
			dy:         -50,
			wantOK:     true,
			wantPos:    gg.Pt(0, -50),
			wantEvents: []ScrollEvent{Scrolling},
		},
		{
			name:       "partial overshoot lands on the boundary",
			start:      gg.Pt(0, -20),
			dy:         50,
			wantOK:     false,
			wantPos:    gg.Pt(0, 0),
			wantEvents: []ScrollEvent{Scrolling, ScrollToBottom},
		},
		{
			name:       "landing exactly on the boundary counts as a hit",
			start:      gg.Pt(0, -570),
			dy:         -30,
			wantOK:     false,
			wantPos:    gg.Pt(0, -600),
			wantEvents: []ScrollEvent{Scrolling, ScrollToTop},
		},
		{
			name:       "zero offset resting on the top edge hits it",
			start:      gg.Pt(0, -600),
			wantOK:     false,
			wantPos:    gg.Pt(0, -600),
			wantEvents: []ScrollEvent{Scrolling, ScrollToTop},
		},
		{
			name:       "horizontal offset ignored",
			start:      gg.Pt(0, -300),
			dx:         40,
			wantOK:     true,
			wantPos:    gg.Pt(0, -300),
			wantEvents: []ScrollEvent{Scrolling},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sv, rec := newTestView(t, DirectionVertical, Sz(300, 1000))
			sv.InnerContainer().SetPosition(tt.start)

			ok := sv.ScrollChildren(tt.dx, tt.dy)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPos, sv.InnerContainerPosition())
			assert.Equal(t, tt.wantEvents, rec.events)
		})
	}
}

func TestScrollChildrenHorizontal(t *testing.T) {
	tests := []struct {
		name       string
		start      gg.Point
		dx         float64
		wantOK     bool
		wantX      float64
		wantEvents []ScrollEvent
	}{
		{"push right at left edge", gg.Pt(0, 0), 50, false, 0, []ScrollEvent{Scrolling, ScrollToLeft}},
		{"pull left from left edge", gg.Pt(0, 0), -50, true, -50, []ScrollEvent{Scrolling}},
		{"pull left at right edge", gg.Pt(-600, 0), -10, false, -600, []ScrollEvent{Scrolling, ScrollToRight}},
		{"push right from right edge", gg.Pt(-600, 0), 10, true, -590, []ScrollEvent{Scrolling}},
		{"zero offset resting on the left edge", gg.Pt(0, 0), 0, false, 0, []ScrollEvent{Scrolling, ScrollToLeft}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sv, rec := newTestView(t, DirectionHorizontal, Sz(900, 400))
			sv.InnerContainer().SetPosition(tt.start)

			ok := sv.ScrollChildren(tt.dx, 25)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, gg.Pt(tt.wantX, 0), sv.InnerContainerPosition())
			assert.Equal(t, tt.wantEvents, rec.events)
		})
	}
}

func TestScrollChildrenBothChecksLeadingEdgesOnly(t *testing.T) {
	sv, rec := newTestView(t, DirectionBoth, Sz(900, 1000))
	require.Equal(t, gg.Pt(0, -600), sv.InnerContainerPosition())

	// Diagonal into the top-left corner clamps both axes, one event each.
	ok := sv.ScrollChildren(50, -50)
	assert.False(t, ok)
	assert.Equal(t, gg.Pt(0, -600), sv.InnerContainerPosition())
	assert.Equal(t, []ScrollEvent{Scrolling, ScrollToTop, ScrollToLeft}, rec.events)

	// Free diagonal travel.
	rec.reset()
	sv.InnerContainer().SetPosition(gg.Pt(-300, -300))
	assert.True(t, sv.ScrollChildren(-50, 50))
	assert.Equal(t, gg.Pt(-350, -250), sv.InnerContainerPosition())
	assert.Equal(t, []ScrollEvent{Scrolling}, rec.events)

	// Only the x axis hits a wall; y keeps moving.
	rec.reset()
	sv.InnerContainer().SetPosition(gg.Pt(-590, -300))
	assert.False(t, sv.ScrollChildren(-50, 20))
	assert.Equal(t, gg.Pt(-600, -280), sv.InnerContainerPosition())
	assert.Equal(t, []ScrollEvent{Scrolling, ScrollToRight}, rec.events)
}

func TestScrollChildrenDirectionNone(t *testing.T) {
	sv, rec := newTestView(t, DirectionNone, Sz(900, 1000))
	start := sv.InnerContainerPosition()

	assert.True(t, sv.ScrollChildren(30, 30))
	assert.Equal(t, start, sv.InnerContainerPosition())
	assert.Equal(t, []ScrollEvent{Scrolling}, rec.events)
}

func TestScrollChildrenBoundaryInvariant(t *testing.T) {
	for _, dir := range []Direction{DirectionVertical, DirectionHorizontal, DirectionBoth} {
		t.Run(dir.String(), func(t *testing.T) {
			sv, _ := newTestView(t, dir, Sz(900, 1000))
			rng := rand.New(rand.NewSource(42))
			inner := sv.InnerContainer()
			const eps = 1e-9

			for i := 0; i < 500; i++ {
				sv.ScrollChildren(rng.Float64()*400-200, rng.Float64()*400-200)

				require.LessOrEqual(t, inner.Bottom(), eps, "step %d", i)
				require.GreaterOrEqual(t, inner.Top(), 400.0-eps, "step %d", i)
				require.LessOrEqual(t, inner.Left(), eps, "step %d", i)
				require.GreaterOrEqual(t, inner.Right(), 300.0-eps, "step %d", i)
			}
		})
	}
}

func TestScrollChildrenOverscrollIsIdempotent(t *testing.T) {
	sv, rec := newTestView(t, DirectionVertical, Sz(300, 1000))
	start := sv.InnerContainerPosition()

	for i := 0; i < 3; i++ {
		assert.False(t, sv.ScrollChildren(0, -30))
		assert.Equal(t, start, sv.InnerContainerPosition())
	}
	assert.Equal(t, 3, rec.count(ScrollToTop))
	assert.Equal(t, 3, rec.count(Scrolling))
}

func TestScrollChildrenContentEqualsViewport(t *testing.T) {
	sv, rec := newTestView(t, DirectionVertical, Sz(300, 400))

	// Travel hits the edge it moves into.
	assert.False(t, sv.ScrollChildren(0, 10))
	assert.False(t, sv.ScrollChildren(0, -10))
	assert.Equal(t, gg.Pt(0, 0), sv.InnerContainerPosition())
	assert.Equal(t, []ScrollEvent{Scrolling, ScrollToBottom, Scrolling, ScrollToTop}, rec.events)

	// At rest the content touches both edges.
	rec.reset()
	assert.False(t, sv.ScrollChildren(0, 0))
	assert.Equal(t, gg.Pt(0, 0), sv.InnerContainerPosition())
	assert.Equal(t, []ScrollEvent{Scrolling, ScrollToBottom, ScrollToTop}, rec.events)

	sv.SetDirection(DirectionHorizontal)
	rec.reset()
	assert.False(t, sv.ScrollChildren(0, 0))
	assert.Equal(t, []ScrollEvent{Scrolling, ScrollToRight, ScrollToLeft}, rec.events)

	// Diagonal scrolling only tests the edges leading the travel.
	sv.SetDirection(DirectionBoth)
	rec.reset()
	assert.True(t, sv.ScrollChildren(0, 0))
	assert.Equal(t, []ScrollEvent{Scrolling}, rec.events)
}

// ============================================================================
// Jumps
// ============================================================================

func TestJumpToPercentVertical(t *testing.T) {
	tests := []struct {
		percent float64
		wantY   float64
	}{
		{50, -300},
		{0, -600},
		{100, 0},
		{25, -450},
		{150, 0},
		{-10, -600},
	}

	for _, tt := range tests {
		sv, _ := newTestView(t, DirectionVertical, Sz(300, 1000))
		sv.JumpToPercentVertical(tt.percent)
		assert.Equal(t, tt.wantY, sv.InnerContainerPosition().Y, "percent %v", tt.percent)
	}
}

func TestJumpToPercentHorizontal(t *testing.T) {
	sv, _ := newTestView(t, DirectionHorizontal, Sz(900, 400))

	sv.JumpToPercentHorizontal(50)
	assert.Equal(t, gg.Pt(-300, 0), sv.InnerContainerPosition())

	sv.JumpToPercentHorizontal(100)
	assert.Equal(t, gg.Pt(-600, 0), sv.InnerContainerPosition())
}

func TestJumpToPercentContentEqualsViewport(t *testing.T) {
	sv, _ := newTestView(t, DirectionBoth, Sz(300, 400))

	sv.JumpToPercentBothDirection(gg.Pt(50, 50))
	assert.Equal(t, gg.Pt(0, 0), sv.InnerContainerPosition())
}

func TestJumpToDestination(t *testing.T) {
	sv, _ := newTestView(t, DirectionVertical, Sz(900, 1000))

	// Past the lowest reachable position: raised to it.
	sv.JumpToDestination(gg.Pt(0, -900))
	assert.Equal(t, gg.Pt(0, -600), sv.InnerContainerPosition())

	// Positive targets are taken as given.
	sv.JumpToDestination(gg.Pt(0, 50))
	assert.Equal(t, gg.Pt(0, 50), sv.InnerContainerPosition())

	// The x axis is not scrollable, so it is not clamped.
	sv.JumpToDestination(gg.Pt(-2000, -100))
	assert.Equal(t, gg.Pt(-2000, -100), sv.InnerContainerPosition())
}

func TestJumpToEdges(t *testing.T) {
	sv, _ := newTestView(t, DirectionBoth, Sz(900, 1000))

	sv.JumpToBottom()
	assert.Equal(t, gg.Pt(0, 0), sv.InnerContainerPosition())
	sv.JumpToRight()
	assert.Equal(t, gg.Pt(-600, 0), sv.InnerContainerPosition())
	sv.JumpToTop()
	assert.Equal(t, gg.Pt(-600, -600), sv.InnerContainerPosition())
	sv.JumpToLeft()
	assert.Equal(t, gg.Pt(0, -600), sv.InnerContainerPosition())

	sv.JumpToBottomRight()
	assert.Equal(t, gg.Pt(-600, 0), sv.InnerContainerPosition())
	sv.JumpToTopLeft()
	assert.Equal(t, gg.Pt(0, -600), sv.InnerContainerPosition())
	sv.JumpToTopRight()
	assert.Equal(t, gg.Pt(-600, -600), sv.InnerContainerPosition())
	sv.JumpToBottomLeft()
	assert.Equal(t, gg.Pt(0, 0), sv.InnerContainerPosition())

	sv.JumpToPercentBothDirection(gg.Pt(50, 50))
	assert.Equal(t, gg.Pt(-300, -300), sv.InnerContainerPosition())
}

func TestCornerOperationsNeedBothDirections(t *testing.T) {
	sv, _ := newTestView(t, DirectionVertical, Sz(900, 1000))
	start := sv.InnerContainerPosition()

	sv.JumpToBottomRight()
	sv.JumpToPercentBothDirection(gg.Pt(100, 100))
	assert.Equal(t, start, sv.InnerContainerPosition())

	assert.NoError(t, sv.ScrollToBottomRight(1, true))
	assert.NoError(t, sv.ScrollToTopRight(1, false))
	assert.NoError(t, sv.ScrollToBottomLeft(1, false))
	assert.NoError(t, sv.ScrollToTopLeft(1, false))
	assert.NoError(t, sv.ScrollToPercentBothDirection(gg.Pt(10, 10), 1, false))
	assert.False(t, sv.IsAutoScrolling())
}
