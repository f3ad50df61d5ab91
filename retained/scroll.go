package retained

import (
	"math"

	"github.com/gogpu/gg"
)

// ============================================================================
// Boundary Clamping
// ============================================================================

// axisHit is the set of boundaries a clamp stopped at.
type axisHit uint8

const (
	hitLow  axisHit = 1 << iota // bottom or left
	hitHigh                     // top or right

	hitNone axisHit = 0
)

// clampAxis limits delta so the edge leading the travel does not cross its
// boundary. Moving in the positive direction the low edge leads and may not
// pass lowBound; moving negative the high edge may not pass highBound.
// Landing exactly on the boundary counts as a hit.
func clampAxis(lowEdge, highEdge, lowBound, highBound, delta float64) (float64, axisHit) {
	switch {
	case delta > 0:
		if lowEdge+delta >= lowBound {
			return lowBound - lowEdge, hitLow
		}
	case delta < 0:
		if highEdge+delta <= highBound {
			return highBound - highEdge, hitHigh
		}
	}
	return delta, hitNone
}

// clampEdges tests both edges of the axis whatever the sign of delta, so a
// zero delta resting on a boundary still hits it. Both edges hit only when
// the content exactly fills the axis, and then both give the same offset.
func clampEdges(lowEdge, highEdge, lowBound, highBound, delta float64) (float64, axisHit) {
	d, hit := delta, hitNone
	if lowEdge+delta >= lowBound {
		d, hit = lowBound-lowEdge, hit|hitLow
	}
	if highEdge+delta <= highBound {
		d, hit = highBound-highEdge, hit|hitHigh
	}
	return d, hit
}

// ScrollChildren pans the inner container by (dx, dy), clamped so it never
// crosses a viewport boundary on a scrollable axis. Offsets on other axes are
// ignored. Scrolling fires on every call, followed by one edge event per
// boundary hit. Returns false if any axis was clamped.
//
// A single-axis view tests both of its edges on every call. A view scrolling
// both ways tests only the edges leading the travel, so diagonal travel into
// a corner fires at most one event per axis.
func (sv *ScrollView) ScrollChildren(dx, dy float64) bool {
	var realX, realY float64
	var hitY, hitX axisHit

	switch sv.direction {
	case DirectionVertical:
		realY, hitY = clampEdges(sv.inner.Bottom(), sv.inner.Top(), sv.bottomBoundary, sv.topBoundary, dy)
	case DirectionHorizontal:
		realX, hitX = clampEdges(sv.inner.Left(), sv.inner.Right(), sv.leftBoundary, sv.rightBoundary, dx)
	case DirectionBoth:
		realY, hitY = clampAxis(sv.inner.Bottom(), sv.inner.Top(), sv.bottomBoundary, sv.topBoundary, dy)
		realX, hitX = clampAxis(sv.inner.Left(), sv.inner.Right(), sv.leftBoundary, sv.rightBoundary, dx)
	}

	sv.moveChildren(realX, realY, hitX, hitY)
	sv.emit(Scrolling)

	if hitY&hitLow != 0 {
		sv.emit(ScrollToBottom)
	}
	if hitY&hitHigh != 0 {
		sv.emit(ScrollToTop)
	}
	if hitX&hitHigh != 0 {
		sv.emit(ScrollToRight)
	}
	if hitX&hitLow != 0 {
		sv.emit(ScrollToLeft)
	}
	return hitY == hitNone && hitX == hitNone
}

// moveChildren translates the inner container. A clamped axis is placed
// exactly on its boundary so repeated clamps do not accumulate rounding.
func (sv *ScrollView) moveChildren(dx, dy float64, hitX, hitY axisHit) {
	if dx == 0 && dy == 0 && hitX == hitNone && hitY == hitNone {
		return
	}
	p := sv.inner.Position().Add(gg.Pt(dx, dy))
	switch {
	case hitY&hitLow != 0:
		p.Y = sv.bottomBoundary
	case hitY&hitHigh != 0:
		p.Y = sv.topBoundary - sv.inner.size.Height
	}
	switch {
	case hitX&hitLow != 0:
		p.X = sv.leftBoundary
	case hitX&hitHigh != 0:
		p.X = sv.rightBoundary - sv.inner.size.Width
	}
	sv.inner.SetPosition(p)
}

// overshoots reports whether stepping from at by delta reaches or passes
// target, given the sign of travel on that axis.
func overshoots(at, delta, travel, target float64) bool {
	switch {
	case travel > 0:
		return at+delta >= target
	case travel < 0:
		return at+delta <= target
	}
	return false
}

// checkDestination trims step so it does not carry the inner container past
// dest. When any scrollable axis reaches dest, every scrollable axis is
// snapped onto it and arrived is true.
func (sv *ScrollView) checkDestination(dir, step, dest gg.Point) (gg.Point, bool) {
	pos := sv.inner.Position()
	arrived := false
	if sv.direction.vertical() && overshoots(pos.Y, step.Y, dir.Y, dest.Y) {
		arrived = true
	}
	if sv.direction.horizontal() && overshoots(pos.X, step.X, dir.X, dest.X) {
		arrived = true
	}
	if !arrived {
		return step, false
	}
	if sv.direction.vertical() {
		step.Y = dest.Y - pos.Y
	}
	if sv.direction.horizontal() {
		step.X = dest.X - pos.X
	}
	return step, true
}

// ============================================================================
// Instant Jumps
// ============================================================================

// JumpToDestination moves the inner container to p without animation. On each
// scrollable axis a target at or below zero is raised to the lowest reachable
// position, so the far edge never separates from the viewport. Any running
// auto-scroll is stopped.
func (sv *ScrollView) JumpToDestination(p gg.Point) {
	sv.StopAutoScroll()
	lo := sv.minPosition()
	if sv.direction.horizontal() && p.X <= 0 {
		p.X = math.Max(p.X, lo.X)
	}
	if sv.direction.vertical() && p.Y <= 0 {
		p.Y = math.Max(p.Y, lo.Y)
	}
	sv.inner.SetPosition(p)
}

// JumpToBottom shows the bottom of the content.
func (sv *ScrollView) JumpToBottom() {
	sv.JumpToDestination(gg.Pt(sv.inner.pos.X, 0))
}

// JumpToTop shows the top of the content.
func (sv *ScrollView) JumpToTop() {
	sv.JumpToDestination(gg.Pt(sv.inner.pos.X, sv.minPosition().Y))
}

// JumpToLeft shows the left side of the content.
func (sv *ScrollView) JumpToLeft() {
	sv.JumpToDestination(gg.Pt(0, sv.inner.pos.Y))
}

// JumpToRight shows the right side of the content.
func (sv *ScrollView) JumpToRight() {
	sv.JumpToDestination(gg.Pt(sv.minPosition().X, sv.inner.pos.Y))
}

// JumpToTopLeft shows the top-left corner. Requires DirectionBoth.
func (sv *ScrollView) JumpToTopLeft() {
	if sv.requireBoth("JumpToTopLeft") {
		sv.JumpToDestination(gg.Pt(0, sv.minPosition().Y))
	}
}

// JumpToTopRight shows the top-right corner. Requires DirectionBoth.
func (sv *ScrollView) JumpToTopRight() {
	if sv.requireBoth("JumpToTopRight") {
		sv.JumpToDestination(sv.minPosition())
	}
}

// JumpToBottomLeft shows the bottom-left corner. Requires DirectionBoth.
func (sv *ScrollView) JumpToBottomLeft() {
	if sv.requireBoth("JumpToBottomLeft") {
		sv.JumpToDestination(gg.Pt(0, 0))
	}
}

// JumpToBottomRight shows the bottom-right corner. Requires DirectionBoth.
func (sv *ScrollView) JumpToBottomRight() {
	if sv.requireBoth("JumpToBottomRight") {
		sv.JumpToDestination(gg.Pt(sv.minPosition().X, 0))
	}
}

// JumpToPercentVertical jumps so that percent (0 = top, 100 = bottom) of the
// vertical scroll range is consumed.
func (sv *ScrollView) JumpToPercentVertical(percent float64) {
	sv.JumpToDestination(gg.Pt(sv.inner.pos.X, sv.percentY(percent)))
}

// JumpToPercentHorizontal jumps so that percent (0 = left, 100 = right) of
// the horizontal scroll range is consumed.
func (sv *ScrollView) JumpToPercentHorizontal(percent float64) {
	sv.JumpToDestination(gg.Pt(sv.percentX(percent), sv.inner.pos.Y))
}

// JumpToPercentBothDirection jumps on both axes at once; percent.X is the
// horizontal share and percent.Y the vertical one. Requires DirectionBoth.
func (sv *ScrollView) JumpToPercentBothDirection(percent gg.Point) {
	if sv.requireBoth("JumpToPercentBothDirection") {
		sv.JumpToDestination(gg.Pt(sv.percentX(percent.X), sv.percentY(percent.Y)))
	}
}

func (sv *ScrollView) percentY(percent float64) float64 {
	minY := sv.minPosition().Y
	return minY + clampPercent(percent)*(-minY)/100
}

func (sv *ScrollView) percentX(percent float64) float64 {
	w := sv.inner.size.Width - sv.viewport.Width
	return -(clampPercent(percent) * w / 100)
}

func clampPercent(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return math.Min(math.Max(p, 0), 100)
}

func (sv *ScrollView) requireBoth(op string) bool {
	if sv.direction == DirectionBoth {
		return true
	}
	Logger().Warn("scroll view: corner scroll needs both directions, ignored",
		"op", op, "direction", sv.direction)
	return false
}

// ============================================================================
// Animated Scrolls
// ============================================================================

// ScrollToBottom animates to the bottom of the content over seconds.
func (sv *ScrollView) ScrollToBottom(seconds float64, attenuated bool) error {
	return sv.StartAutoScrollToDestination(gg.Pt(sv.inner.pos.X, 0), seconds, attenuated)
}

// ScrollToTop animates to the top of the content over seconds.
func (sv *ScrollView) ScrollToTop(seconds float64, attenuated bool) error {
	return sv.StartAutoScrollToDestination(gg.Pt(sv.inner.pos.X, sv.minPosition().Y), seconds, attenuated)
}

// ScrollToLeft animates to the left side of the content over seconds.
func (sv *ScrollView) ScrollToLeft(seconds float64, attenuated bool) error {
	return sv.StartAutoScrollToDestination(gg.Pt(0, sv.inner.pos.Y), seconds, attenuated)
}

// ScrollToRight animates to the right side of the content over seconds.
func (sv *ScrollView) ScrollToRight(seconds float64, attenuated bool) error {
	return sv.StartAutoScrollToDestination(gg.Pt(sv.minPosition().X, sv.inner.pos.Y), seconds, attenuated)
}

// ScrollToTopLeft animates to the top-left corner. Requires DirectionBoth;
// otherwise it logs a warning and does nothing.
func (sv *ScrollView) ScrollToTopLeft(seconds float64, attenuated bool) error {
	if !sv.requireBoth("ScrollToTopLeft") {
		return nil
	}
	return sv.StartAutoScrollToDestination(gg.Pt(0, sv.minPosition().Y), seconds, attenuated)
}

// ScrollToTopRight animates to the top-right corner. Requires DirectionBoth.
func (sv *ScrollView) ScrollToTopRight(seconds float64, attenuated bool) error {
	if !sv.requireBoth("ScrollToTopRight") {
		return nil
	}
	return sv.StartAutoScrollToDestination(sv.minPosition(), seconds, attenuated)
}

// ScrollToBottomLeft animates to the bottom-left corner. Requires DirectionBoth.
func (sv *ScrollView) ScrollToBottomLeft(seconds float64, attenuated bool) error {
	if !sv.requireBoth("ScrollToBottomLeft") {
		return nil
	}
	return sv.StartAutoScrollToDestination(gg.Pt(0, 0), seconds, attenuated)
}

// ScrollToBottomRight animates to the bottom-right corner. Requires DirectionBoth.
func (sv *ScrollView) ScrollToBottomRight(seconds float64, attenuated bool) error {
	if !sv.requireBoth("ScrollToBottomRight") {
		return nil
	}
	return sv.StartAutoScrollToDestination(gg.Pt(sv.minPosition().X, 0), seconds, attenuated)
}

// ScrollToPercentVertical animates to a vertical percentage (0 = top).
func (sv *ScrollView) ScrollToPercentVertical(percent, seconds float64, attenuated bool) error {
	return sv.StartAutoScrollToDestination(gg.Pt(sv.inner.pos.X, sv.percentY(percent)), seconds, attenuated)
}

// ScrollToPercentHorizontal animates to a horizontal percentage (0 = left).
func (sv *ScrollView) ScrollToPercentHorizontal(percent, seconds float64, attenuated bool) error {
	return sv.StartAutoScrollToDestination(gg.Pt(sv.percentX(percent), sv.inner.pos.Y), seconds, attenuated)
}

// ScrollToPercentBothDirection animates on both axes. Requires DirectionBoth.
func (sv *ScrollView) ScrollToPercentBothDirection(percent gg.Point, seconds float64, attenuated bool) error {
	if !sv.requireBoth("ScrollToPercentBothDirection") {
		return nil
	}
	return sv.StartAutoScrollToDestination(gg.Pt(sv.percentX(percent.X), sv.percentY(percent.Y)), seconds, attenuated)
}
