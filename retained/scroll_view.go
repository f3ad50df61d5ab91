package retained

import (
	"errors"
	"math"

	"github.com/gogpu/gg"
)

var (
	// ErrInvalidDuration is returned when an animated scroll is requested with
	// a duration that is zero, negative or not finite.
	ErrInvalidDuration = errors.New("scroll duration must be a positive, finite number of seconds")

	// ErrInvalidSpeed is returned when an auto-scroll is started with a speed
	// that is zero, negative or not finite.
	ErrInvalidSpeed = errors.New("auto-scroll speed must be positive and finite")

	// ErrInvalidAcceleration is returned when an attenuated auto-scroll is
	// started with a non-negative acceleration; it would never decelerate.
	ErrInvalidAcceleration = errors.New("attenuated auto-scroll needs a negative acceleration")

	// ErrInvalidDirection is returned when an auto-scroll direction has no
	// component on any scrollable axis.
	ErrInvalidDirection = errors.New("auto-scroll direction has no component on a scrollable axis")

	// ErrDragInProgress is returned when a programmatic auto-scroll is
	// requested while the user is dragging. The drag wins.
	ErrDragInProgress = errors.New("scroll view is being dragged")
)

// ScrollView is a viewport over a larger inner container. It turns touch
// input into clamped pans and flings, and animates programmatic scrolls one
// Update at a time.
//
// The viewport spans (0,0)-(width,height) in its own y-up space. The inner
// container is at least as large as the viewport on both axes; its position
// is its bottom-left corner, so at rest with the top of the content visible
// the position is (0, viewportHeight - innerHeight).
type ScrollView struct {
	viewport  Size
	direction Direction
	inner     *Node

	// Boundaries of the viewport the inner container may not cross.
	topBoundary    float64
	bottomBoundary float64
	leftBoundary   float64
	rightBoundary  float64

	cfg          ScrollConfig
	touchEnabled bool

	motion   motion // nil when idle
	listener ScrollEventListener
}

// NewScrollView creates a scroll view with the given viewport size and
// DefaultScrollConfig. The inner container starts at viewport size.
func NewScrollView(viewport Size) *ScrollView {
	sv := &ScrollView{
		inner:        NewNode().SetName("inner_container"),
		cfg:          DefaultScrollConfig(),
		touchEnabled: true,
	}
	sv.direction = sv.cfg.Direction
	sv.inner.resized = sv.clampInnerPosition
	sv.SetViewportSize(viewport)
	sv.inner.SetPosition(gg.Pt(0, sv.viewport.Height-sv.inner.size.Height))
	return sv
}

// Clone returns a new scroll view with the same viewport, configuration,
// direction, touch state, layout and inner container size, resting with the
// top of its content visible. Children, the listener and any motion are not
// copied.
func (sv *ScrollView) Clone() *ScrollView {
	c := NewScrollView(sv.viewport)
	c.cfg = sv.cfg
	c.direction = sv.direction
	c.touchEnabled = sv.touchEnabled
	c.SetLayoutType(sv.LayoutType())
	c.SetInnerContainerSize(sv.InnerContainerSize())
	return c
}

// ============================================================================
// Configuration
// ============================================================================

// ApplyConfig validates and applies cfg, including its direction.
func (sv *ScrollView) ApplyConfig(cfg ScrollConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	sv.cfg = cfg
	sv.SetDirection(cfg.Direction)
	return nil
}

// Config returns the active configuration.
func (sv *ScrollView) Config() ScrollConfig {
	cfg := sv.cfg
	cfg.Direction = sv.direction
	return cfg
}

// Direction returns the scrollable axes.
func (sv *ScrollView) Direction() Direction {
	return sv.direction
}

// SetDirection changes the scrollable axes. Ignored while a drag is in
// progress; an in-flight auto-scroll is stopped.
func (sv *ScrollView) SetDirection(d Direction) {
	if d == sv.direction {
		return
	}
	if sv.IsPressed() {
		Logger().Warn("scroll view: direction change ignored during drag",
			"current", sv.direction, "requested", d)
		return
	}
	sv.StopAutoScroll()
	sv.direction = d
}

// IsInertiaScrollEnabled reports whether releases can start a fling.
func (sv *ScrollView) IsInertiaScrollEnabled() bool {
	return sv.cfg.InertiaEnabled
}

// SetInertiaScrollEnabled turns flings on or off.
func (sv *ScrollView) SetInertiaScrollEnabled(enabled bool) {
	sv.cfg.InertiaEnabled = enabled
}

// ChildFocusCancelOffset returns the nested-child drag deadzone.
func (sv *ScrollView) ChildFocusCancelOffset() float64 {
	return sv.cfg.ChildFocusCancelOffset
}

// SetChildFocusCancelOffset sets the nested-child drag deadzone. Negative
// values are treated as zero.
func (sv *ScrollView) SetChildFocusCancelOffset(offset float64) {
	sv.cfg.ChildFocusCancelOffset = math.Max(offset, 0)
}

// SetEventListener installs the scroll event listener, replacing any
// previous one. Pass nil to remove it.
func (sv *ScrollView) SetEventListener(fn ScrollEventListener) {
	sv.listener = fn
}

func (sv *ScrollView) emit(ev ScrollEvent) {
	if sv.listener != nil {
		sv.listener(sv, ev)
	}
}

// ============================================================================
// Viewport and Inner Container
// ============================================================================

// Viewport returns the viewport size.
func (sv *ScrollView) Viewport() Size {
	return sv.viewport
}

// SetViewportSize resizes the viewport, re-derives the boundaries, grows the
// inner container to at least the viewport and re-clamps its position.
func (sv *ScrollView) SetViewportSize(size Size) {
	sv.viewport = Size{Width: math.Max(size.Width, 0), Height: math.Max(size.Height, 0)}
	sv.topBoundary = sv.viewport.Height
	sv.rightBoundary = sv.viewport.Width
	sv.bottomBoundary = 0
	sv.leftBoundary = 0
	sv.inner.minSize = sv.viewport

	inner := sv.inner.Size()
	sv.inner.SetSize(Size{
		Width:  math.Max(inner.Width, sv.viewport.Width),
		Height: math.Max(inner.Height, sv.viewport.Height),
	})
	sv.clampInnerPosition()
}

// Boundaries returns the top, bottom, left and right viewport boundaries.
func (sv *ScrollView) Boundaries() (top, bottom, left, right float64) {
	return sv.topBoundary, sv.bottomBoundary, sv.leftBoundary, sv.rightBoundary
}

// InnerContainer returns the node that holds the scrolled content. Resizing
// it directly is clamped to the viewport and re-clamps its position, but
// only SetInnerContainerSize keeps the top edge anchored and logs the clamp.
func (sv *ScrollView) InnerContainer() *Node {
	return sv.inner
}

// InnerContainerSize returns the size of the scrolled content.
func (sv *ScrollView) InnerContainerSize() Size {
	return sv.inner.Size()
}

// InnerContainerPosition returns the pan offset (bottom-left corner of the
// inner container in viewport space).
func (sv *ScrollView) InnerContainerPosition() gg.Point {
	return sv.inner.Position()
}

// SetInnerContainerSize resizes the scrolled content. Each axis smaller than
// the viewport is raised to the viewport size with a warning. The top edge of
// the content stays where it was, then the position is re-clamped so no gap
// opens between the content and the viewport.
func (sv *ScrollView) SetInnerContainerSize(size Size) {
	w, h := size.Width, size.Height
	if w < sv.viewport.Width {
		Logger().Warn("scroll view: inner width smaller than viewport, clamped",
			"requested", w, "viewport", sv.viewport.Width)
		w = sv.viewport.Width
	}
	if h < sv.viewport.Height {
		Logger().Warn("scroll view: inner height smaller than viewport, clamped",
			"requested", h, "viewport", sv.viewport.Height)
		h = sv.viewport.Height
	}

	top := sv.inner.Top()
	sv.inner.SetSize(Size{Width: w, Height: h})
	sv.inner.SetPosition(gg.Pt(sv.inner.Position().X, top-h))
	sv.clampInnerPosition()
}

// minPosition is the lowest reachable inner container position per axis.
func (sv *ScrollView) minPosition() gg.Point {
	return gg.Pt(sv.viewport.Width-sv.inner.size.Width, sv.viewport.Height-sv.inner.size.Height)
}

func (sv *ScrollView) clampInnerPosition() {
	lo := sv.minPosition()
	p := sv.inner.Position()
	p.X = math.Min(math.Max(p.X, lo.X), 0)
	p.Y = math.Min(math.Max(p.Y, lo.Y), 0)
	sv.inner.SetPosition(p)
}

// SetLayoutType sets how the inner container arranges its children.
func (sv *ScrollView) SetLayoutType(layout LayoutType) {
	sv.inner.SetLayoutType(layout)
}

// LayoutType returns the inner container's layout.
func (sv *ScrollView) LayoutType() LayoutType {
	return sv.inner.LayoutType()
}

// ============================================================================
// Child Management (delegated to the inner container)
// ============================================================================

// AddChild adds content to the inner container.
func (sv *ScrollView) AddChild(child *Node) {
	sv.inner.AddChild(child)
}

// RemoveChild removes content from the inner container.
func (sv *ScrollView) RemoveChild(child *Node) bool {
	return sv.inner.RemoveChild(child)
}

// RemoveAllChildren clears the inner container.
func (sv *ScrollView) RemoveAllChildren() {
	sv.inner.RemoveAllChildren()
}

// Children returns a copy of the inner container's children.
func (sv *ScrollView) Children() []*Node {
	return sv.inner.Children()
}

// ChildrenCount returns the number of children in the inner container.
func (sv *ScrollView) ChildrenCount() int {
	return sv.inner.ChildrenCount()
}

// ChildByTag finds a direct child of the inner container by tag.
func (sv *ScrollView) ChildByTag(tag int) *Node {
	return sv.inner.ChildByTag(tag)
}

// ChildByName finds a direct child of the inner container by name.
func (sv *ScrollView) ChildByName(name string) *Node {
	return sv.inner.ChildByName(name)
}
