package retained

import (
	"fmt"
	"strings"

	"github.com/gogpu/gg"
)

// ============================================================================
// Scroll Direction
// ============================================================================

// Direction selects which axes respond to scroll input.
type Direction uint8

const (
	DirectionNone Direction = iota
	DirectionVertical
	DirectionHorizontal
	DirectionBoth
)

func (d Direction) vertical() bool   { return d == DirectionVertical || d == DirectionBoth }
func (d Direction) horizontal() bool { return d == DirectionHorizontal || d == DirectionBoth }

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirectionNone:
		return "none"
	case DirectionVertical:
		return "vertical"
	case DirectionHorizontal:
		return "horizontal"
	case DirectionBoth:
		return "both"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// ParseDirection parses a direction name, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return DirectionNone, nil
	case "vertical", "v":
		return DirectionVertical, nil
	case "horizontal", "h":
		return DirectionHorizontal, nil
	case "both":
		return DirectionBoth, nil
	}
	return DirectionNone, fmt.Errorf("unknown scroll direction %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// project zeroes the components of v on axes the direction ignores.
func (d Direction) project(v gg.Point) gg.Point {
	if !d.horizontal() {
		v.X = 0
	}
	if !d.vertical() {
		v.Y = 0
	}
	return v
}

// ============================================================================
// Scroll Events
// ============================================================================

// ScrollEvent identifies a scroll lifecycle notification.
type ScrollEvent uint8

const (
	// ScrollToTop fires when the inner container's top edge is clamped to
	// the viewport's top boundary.
	ScrollToTop ScrollEvent = iota

	// ScrollToBottom fires when the bottom edge is clamped to the bottom boundary.
	ScrollToBottom

	// ScrollToLeft fires when the left edge is clamped to the left boundary.
	ScrollToLeft

	// ScrollToRight fires when the right edge is clamped to the right boundary.
	ScrollToRight

	// Scrolling fires on every scroll step, clamped or not.
	Scrolling
)

// String returns the event name.
func (e ScrollEvent) String() string {
	switch e {
	case ScrollToTop:
		return "scroll_to_top"
	case ScrollToBottom:
		return "scroll_to_bottom"
	case ScrollToLeft:
		return "scroll_to_left"
	case ScrollToRight:
		return "scroll_to_right"
	case Scrolling:
		return "scrolling"
	default:
		return fmt.Sprintf("scroll_event(%d)", uint8(e))
	}
}

// ScrollEventListener receives scroll events. A ScrollView holds at most one.
type ScrollEventListener func(sv *ScrollView, ev ScrollEvent)

// ============================================================================
// Touch Phases
// ============================================================================

// TouchPhase is a stage of a single-finger gesture.
// The numeric values match the handle states accepted by CheckChildInfo.
type TouchPhase uint8

const (
	TouchBegan TouchPhase = iota
	TouchMoved
	TouchEnded
	TouchCancelled
)

// String returns the phase name.
func (p TouchPhase) String() string {
	switch p {
	case TouchBegan:
		return "began"
	case TouchMoved:
		return "moved"
	case TouchEnded:
		return "ended"
	case TouchCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// TouchChild is a nested interactive widget that forwards gestures it does
// not consume to its enclosing scroll view.
type TouchChild interface {
	// TouchBeganPoint returns where the child's own press started, in the
	// same space as the points it forwards.
	TouchBeganPoint() gg.Point

	// SetFocused changes the child's focus/highlight state. The scroll view
	// clears it when it takes a drag over.
	SetFocused(focused bool)
}
