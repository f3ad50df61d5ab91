package retained

import (
	"errors"
	"fmt"
	"math"

	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultChildFocusCancelOffset is the drag distance a nested child's press
	// must travel before the scroll view takes the gesture over.
	DefaultChildFocusCancelOffset = 5.0

	// MaxAutoScrollSpeed caps the initial speed of an inertial fling, in units/s.
	MaxAutoScrollSpeed = 1000.0

	// DefaultFlingDeceleration is the acceleration applied to a fling, in units/s².
	DefaultFlingDeceleration = -1000.0

	// MinSlideTime is the press duration at or below which a release is a tap,
	// not a fling. One frame at 60 Hz.
	MinSlideTime = 0.016
)

// ScrollConfig holds the tunables of a ScrollView.
// The zero value is not valid; start from DefaultScrollConfig.
type ScrollConfig struct {
	// Direction selects the scrollable axes.
	Direction Direction `toml:"direction" mapstructure:"direction"`

	// InertiaEnabled turns post-release flings on or off.
	InertiaEnabled bool `toml:"inertia_enabled" mapstructure:"inertia_enabled"`

	// ChildFocusCancelOffset is the deadzone for nested-child drags.
	ChildFocusCancelOffset float64 `toml:"child_focus_cancel_offset" mapstructure:"child_focus_cancel_offset"`

	// MaxFlingSpeed caps the fling speed (units/s).
	MaxFlingSpeed float64 `toml:"max_fling_speed" mapstructure:"max_fling_speed"`

	// FlingDeceleration is the (negative) fling acceleration (units/s²).
	FlingDeceleration float64 `toml:"fling_deceleration" mapstructure:"fling_deceleration"`

	// MinSlideTime is the tap debounce in seconds.
	MinSlideTime float64 `toml:"min_slide_time" mapstructure:"min_slide_time"`
}

// DefaultScrollConfig returns the stock tuning: vertical scrolling with inertia.
func DefaultScrollConfig() ScrollConfig {
	return ScrollConfig{
		Direction:              DirectionVertical,
		InertiaEnabled:         true,
		ChildFocusCancelOffset: DefaultChildFocusCancelOffset,
		MaxFlingSpeed:          MaxAutoScrollSpeed,
		FlingDeceleration:      DefaultFlingDeceleration,
		MinSlideTime:           MinSlideTime,
	}
}

// LoadScrollConfig decodes a TOML document over DefaultScrollConfig, so keys
// that are absent keep their defaults.
func LoadScrollConfig(data []byte) (ScrollConfig, error) {
	cfg := DefaultScrollConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse scroll config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the config for values the motion code cannot run with.
func (c ScrollConfig) Validate() error {
	var errs []error
	if c.Direction > DirectionBoth {
		errs = append(errs, fmt.Errorf("direction %v out of range", c.Direction))
	}
	if !finite(c.ChildFocusCancelOffset) || c.ChildFocusCancelOffset < 0 {
		errs = append(errs, fmt.Errorf("child_focus_cancel_offset must be >= 0, got %v", c.ChildFocusCancelOffset))
	}
	if !finite(c.MaxFlingSpeed) || c.MaxFlingSpeed <= 0 {
		errs = append(errs, fmt.Errorf("max_fling_speed must be > 0, got %v", c.MaxFlingSpeed))
	}
	if !finite(c.FlingDeceleration) || c.FlingDeceleration >= 0 {
		errs = append(errs, fmt.Errorf("fling_deceleration must be < 0, got %v", c.FlingDeceleration))
	}
	if !finite(c.MinSlideTime) || c.MinSlideTime < 0 {
		errs = append(errs, fmt.Errorf("min_slide_time must be >= 0, got %v", c.MinSlideTime))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid scroll config: %w", errors.Join(errs...))
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
