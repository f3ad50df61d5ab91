package retained

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"
)

// motion is the scroll view's current activity. A nil motion is idle.
// Each variant carries only the state it needs, so a view can never be
// dragged and auto-scrolling at the same time.
type motion interface {
	// step advances the motion by dt seconds and reports whether it finished.
	step(sv *ScrollView, dt float64) (done bool)
}

// dragMotion is an active press. It accumulates press time for the fling
// velocity estimate.
type dragMotion struct {
	began     gg.Point // press point
	moving    gg.Point // last point a move was applied from
	slideTime float64  // seconds spent pressed
}

func (m *dragMotion) step(_ *ScrollView, dt float64) bool {
	m.slideTime += dt
	return false
}

// attenuatedScroll decelerates linearly from speed to zero.
type attenuatedScroll struct {
	dir     gg.Point // unit vector
	speed   float64  // initial speed
	accel   float64  // negative
	elapsed float64
}

func (m *attenuatedScroll) step(sv *ScrollView, dt float64) bool {
	prior := m.elapsed
	m.elapsed += dt

	if m.speed+m.accel*m.elapsed <= 0 {
		// Cover the distance left between the previous frame and the instant
		// the speed reaches zero, then stop.
		stop := -m.speed / m.accel
		if stop > prior {
			d := m.speed*(stop-prior) + m.accel*(stop*stop-prior*prior)/2
			sv.ScrollChildren(m.dir.X*d, m.dir.Y*d)
		}
		return true
	}

	offset := (m.speed + m.accel*(2*prior+dt)/2) * dt
	return !sv.ScrollChildren(m.dir.X*offset, m.dir.Y*offset)
}

// constantScroll moves at a fixed speed until it hits a boundary.
type constantScroll struct {
	dir   gg.Point
	speed float64
}

func (m *constantScroll) step(sv *ScrollView, dt float64) bool {
	d := m.speed * dt
	return !sv.ScrollChildren(m.dir.X*d, m.dir.Y*d)
}

// seekingScroll moves at a fixed speed and lands exactly on dest.
type seekingScroll struct {
	dir   gg.Point
	speed float64
	dest  gg.Point
}

func (m *seekingScroll) step(sv *ScrollView, dt float64) bool {
	step, arrived := sv.checkDestination(m.dir, m.dir.Mul(m.speed*dt), m.dest)
	unclamped := sv.ScrollChildren(step.X, step.Y)
	if arrived && unclamped {
		// Remove rounding left by the relative move.
		pos := sv.inner.Position()
		if sv.direction.vertical() {
			pos.Y = m.dest.Y
		}
		if sv.direction.horizontal() {
			pos.X = m.dest.X
		}
		sv.inner.SetPosition(pos)
	}
	return arrived || !unclamped
}

// ============================================================================
// Frame Update
// ============================================================================

// Update advances the scroll view by dt seconds. While pressed it accumulates
// press time; while auto-scrolling it moves the inner container one step.
// Non-positive or non-finite dt is ignored.
func (sv *ScrollView) Update(dt float64) {
	if sv.motion == nil || !(dt > 0) || math.IsInf(dt, 0) {
		return
	}
	m := sv.motion
	// Listeners may replace the motion from inside step; only clear it if
	// it is still the one that finished.
	if m.step(sv, dt) && sv.motion == m {
		sv.motion = nil
		Logger().Debug("scroll view: auto-scroll finished", "position", sv.inner.Position())
	}
}

// IsAutoScrolling reports whether an animated scroll is running.
func (sv *ScrollView) IsAutoScrolling() bool {
	switch sv.motion.(type) {
	case *attenuatedScroll, *constantScroll, *seekingScroll:
		return true
	}
	return false
}

// IsPressed reports whether a drag is in progress.
func (sv *ScrollView) IsPressed() bool {
	_, ok := sv.motion.(*dragMotion)
	return ok
}

// StopAutoScroll cancels an animated scroll. A drag in progress is untouched.
func (sv *ScrollView) StopAutoScroll() {
	if sv.IsAutoScrolling() {
		sv.motion = nil
	}
}

// AutoScrollSpeed returns the instantaneous speed of the running auto-scroll,
// or zero when none is running.
func (sv *ScrollView) AutoScrollSpeed() float64 {
	switch m := sv.motion.(type) {
	case *attenuatedScroll:
		return math.Max(m.speed+m.accel*m.elapsed, 0)
	case *constantScroll:
		return m.speed
	case *seekingScroll:
		return m.speed
	}
	return 0
}

// StartAutoScrollToDestination animates the inner container to dest over
// seconds. Components of dest on axes the view cannot scroll are ignored.
//
// Attenuated scrolls decelerate to rest exactly at dest: the initial speed is
// 2d/t and the acceleration -2d/t². Otherwise the view moves at d/t and the
// final step is clamped onto dest.
//
// A destination equal to the current position is a no-op. Returns
// ErrInvalidDuration for seconds that are not positive and finite, and
// ErrDragInProgress while the view is pressed.
func (sv *ScrollView) StartAutoScrollToDestination(dest gg.Point, seconds float64, attenuated bool) error {
	if sv.IsPressed() {
		return ErrDragInProgress
	}
	pos := sv.inner.Position()
	delta := sv.direction.project(dest.Sub(pos))
	distance := delta.Length()
	if distance == 0 {
		return nil
	}
	if math.IsNaN(distance) || math.IsInf(distance, 0) {
		return fmt.Errorf("scroll to %v: %w", dest, ErrInvalidDirection)
	}
	if !(seconds > 0) || math.IsInf(seconds, 0) {
		return fmt.Errorf("scroll to %v over %v: %w", dest, seconds, ErrInvalidDuration)
	}

	dir := delta.Mul(1 / distance)
	if attenuated {
		sv.motion = &attenuatedScroll{
			dir:   dir,
			speed: 2 * distance / seconds,
			accel: -2 * distance / (seconds * seconds),
		}
	} else {
		sv.motion = &seekingScroll{
			dir:   dir,
			speed: distance / seconds,
			dest:  pos.Add(delta),
		}
	}
	Logger().Debug("scroll view: auto-scroll to destination",
		"dest", dest, "seconds", seconds, "attenuated", attenuated)
	return nil
}

// StartAutoScrollWithSpeed starts an open-ended auto-scroll along dir.
// Attenuated scrolls decelerate by accel (which must be negative) until they
// stop; others keep going until they hit a boundary. dir is projected onto the
// scrollable axes and normalized.
func (sv *ScrollView) StartAutoScrollWithSpeed(dir gg.Point, speed float64, attenuated bool, accel float64) error {
	if sv.IsPressed() {
		return ErrDragInProgress
	}
	if !(speed > 0) || math.IsInf(speed, 0) {
		return fmt.Errorf("auto-scroll speed %v: %w", speed, ErrInvalidSpeed)
	}
	dir = sv.direction.project(dir)
	if dir.Length() == 0 || math.IsNaN(dir.Length()) {
		return ErrInvalidDirection
	}
	dir = dir.Normalize()

	if attenuated {
		if !(accel < 0) || math.IsInf(accel, 0) {
			return fmt.Errorf("auto-scroll acceleration %v: %w", accel, ErrInvalidAcceleration)
		}
		sv.motion = &attenuatedScroll{dir: dir, speed: speed, accel: accel}
	} else {
		sv.motion = &constantScroll{dir: dir, speed: speed}
	}
	Logger().Debug("scroll view: auto-scroll with speed",
		"dir", dir, "speed", speed, "attenuated", attenuated)
	return nil
}
