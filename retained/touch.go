package retained

import (
	"math"

	"github.com/gogpu/gg"
)

// ============================================================================
// Touch Handling
// ============================================================================
//
// Points are widget-local and already hit-tested by the host. A gesture runs
// press -> move* -> release (or cancel); the release may start a fling.

// IsTouchEnabled reports whether the view accepts presses.
func (sv *ScrollView) IsTouchEnabled() bool {
	return sv.touchEnabled
}

// SetTouchEnabled turns touch input on or off. Disabling it during a drag
// ends the drag without a fling.
func (sv *ScrollView) SetTouchEnabled(enabled bool) {
	sv.touchEnabled = enabled
	if !enabled && sv.IsPressed() {
		sv.motion = nil
	}
}

// HandlePress starts a drag at p, cancelling any running auto-scroll.
// Ignored while touch is disabled.
func (sv *ScrollView) HandlePress(p gg.Point) {
	if !sv.touchEnabled {
		return
	}
	sv.StopAutoScroll()
	sv.motion = &dragMotion{began: p, moving: p}
}

// HandleMove pans the content by the movement since the previous move on the
// scrollable axes. Ignored when no drag is in progress.
func (sv *ScrollView) HandleMove(p gg.Point) {
	drag, ok := sv.motion.(*dragMotion)
	if !ok {
		return
	}
	delta := p.Sub(drag.moving)
	drag.moving = p

	switch sv.direction {
	case DirectionVertical:
		sv.ScrollChildren(0, delta.Y)
	case DirectionHorizontal:
		sv.ScrollChildren(delta.X, 0)
	case DirectionBoth:
		sv.ScrollChildren(delta.X, delta.Y)
	}
}

// HandleRelease ends the drag at p and, if inertia is enabled, flings the
// content with the average velocity of the gesture.
func (sv *ScrollView) HandleRelease(p gg.Point) {
	drag, ok := sv.motion.(*dragMotion)
	if !ok {
		return
	}
	sv.motion = nil
	sv.fling(drag, p)
}

// HandleCancel ends the drag exactly like a release.
func (sv *ScrollView) HandleCancel(p gg.Point) {
	sv.HandleRelease(p)
}

// fling launches an attenuated auto-scroll from a finished drag. Taps
// (press time at or below MinSlideTime) and zero-length drags do nothing.
func (sv *ScrollView) fling(drag *dragMotion, ended gg.Point) {
	if !sv.cfg.InertiaEnabled || drag.slideTime <= sv.cfg.MinSlideTime {
		return
	}
	disp := ended.Sub(drag.began)

	var dir gg.Point
	var distance float64
	switch sv.direction {
	case DirectionVertical:
		distance = disp.Y
		dir = gg.Pt(0, math.Copysign(1, distance))
	case DirectionHorizontal:
		distance = disp.X
		dir = gg.Pt(math.Copysign(1, distance), 0)
	case DirectionBoth:
		distance = disp.Length()
		dir = disp.Normalize()
	default:
		return
	}
	if distance == 0 {
		return
	}

	speed := math.Min(math.Abs(distance)/drag.slideTime, sv.cfg.MaxFlingSpeed)
	if err := sv.StartAutoScrollWithSpeed(dir, speed, true, sv.cfg.FlingDeceleration); err != nil {
		Logger().Debug("scroll view: fling rejected", "error", err)
	}
}

// ============================================================================
// Nested Widget Delegation
// ============================================================================

// InterceptTouchEvent receives a gesture phase from a nested child that does
// not consume drags itself. Presses and releases are handled as if they hit
// the scroll view. A move is only taken over once it is farther than
// ChildFocusCancelOffset from where the child's press began; the child then
// loses focus and the scroll view pans. Nothing is intercepted while touch
// is disabled.
func (sv *ScrollView) InterceptTouchEvent(phase TouchPhase, sender TouchChild, p gg.Point) {
	if !sv.touchEnabled {
		return
	}
	switch phase {
	case TouchBegan:
		sv.HandlePress(p)
	case TouchMoved:
		if sender != nil {
			if sender.TouchBeganPoint().Sub(p).Length() <= sv.cfg.ChildFocusCancelOffset {
				return
			}
			sender.SetFocused(false)
		}
		sv.HandleMove(p)
	case TouchEnded:
		sv.HandleRelease(p)
	case TouchCancelled:
		sv.HandleCancel(p)
	}
}

// CheckChildInfo is InterceptTouchEvent keyed by integer handle state:
// 0 press, 1 move, 2 release, 3 cancel. Other states are ignored.
func (sv *ScrollView) CheckChildInfo(handleState int, sender TouchChild, p gg.Point) {
	if handleState < int(TouchBegan) || handleState > int(TouchCancelled) {
		Logger().Warn("scroll view: unknown child handle state", "state", handleState)
		return
	}
	sv.InterceptTouchEvent(TouchPhase(handleState), sender, p)
}
