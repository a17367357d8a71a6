package config

import (
	"errors"
	"fmt"
)

// ValidationError contains details about a single invalid setting.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks the whole configuration and returns every problem found,
// joined into one error.
func (c FlappyConfig) Validate() error {
	var errs []error

	if len(c.Profiles) == 0 {
		errs = append(errs, ValidationError{Code: "NO_PROFILES", Message: "at least one profile is required"})
	}
	if _, ok := c.Profiles[c.DefaultProfile]; !ok && len(c.Profiles) > 0 {
		errs = append(errs, ValidationError{
			Code:    "UNKNOWN_DEFAULT",
			Message: fmt.Sprintf("default_profile %q is not defined", c.DefaultProfile),
		})
	}

	for _, name := range c.ProfileNames() {
		if err := c.Profiles[name].Validate(); err != nil {
			errs = append(errs, fmt.Errorf("profile %s: %w", name, err))
		}
	}

	return errors.Join(errs...)
}

// Validate checks a single profile.
func (p Profile) Validate() error {
	var errs []error
	positive := func(field string, v float64) {
		if v <= 0 {
			errs = append(errs, ValidationError{
				Code:    "NOT_POSITIVE",
				Message: fmt.Sprintf("%s must be > 0, got %g", field, v),
			})
		}
	}
	nonNegative := func(field string, v float64) {
		if v < 0 {
			errs = append(errs, ValidationError{
				Code:    "NEGATIVE",
				Message: fmt.Sprintf("%s must be >= 0, got %g", field, v),
			})
		}
	}
	fraction := func(field string, v float64) {
		if v <= 0 || v >= 1 {
			errs = append(errs, ValidationError{
				Code:    "OUT_OF_RANGE",
				Message: fmt.Sprintf("%s must be in (0, 1), got %g", field, v),
			})
		}
	}

	switch p.Scale.Mode {
	case ScaleFixed:
	case ScaleWidth, ScaleMinSide:
		positive("scale.reference", p.Scale.Reference)
	default:
		errs = append(errs, ValidationError{
			Code:    "INVALID_SCALE_MODE",
			Message: fmt.Sprintf("scale.mode %q is not one of fixed, width, min_side", p.Scale.Mode),
		})
	}
	positive("scale.min", p.Scale.Min)

	positive("physics.gravity", p.Physics.Gravity)
	positive("physics.jump_impulse", p.Physics.JumpImpulse)
	positive("physics.obstacle_speed", p.Physics.ObstacleSpeed)
	nonNegative("physics.max_fall_speed", p.Physics.MaxFallSpeed)

	positive("body.size_divisor", p.Body.SizeDivisor)
	fraction("body.x_fraction", p.Body.XFraction)
	fraction("body.y_fraction", p.Body.YFraction)

	positive("obstacles.width_divisor", p.Obstacles.WidthDivisor)
	positive("obstacles.gap_divisor", p.Obstacles.GapDivisor)
	nonNegative("obstacles.spawn_threshold", p.Obstacles.SpawnThreshold)
	nonNegative("obstacles.spawn_lead_in", p.Obstacles.SpawnLeadIn)
	nonNegative("obstacles.margin_top", p.Obstacles.MarginTop)
	nonNegative("obstacles.margin_bottom", p.Obstacles.MarginBottom)
	nonNegative("obstacles.first_gap_top", p.Obstacles.FirstGapTop)

	return errors.Join(errs...)
}
