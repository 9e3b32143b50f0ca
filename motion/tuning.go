package motion

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNonFinite       = errors.New("motion: tuning value is not finite")
	ErrNegativeSpeed   = errors.New("motion: run speed must not be negative")
	ErrJumpHeight      = errors.New("motion: jump height must be positive")
	ErrGravity         = errors.New("motion: gravity must be negative")
	ErrSpeedLimit      = errors.New("motion: speed limits must be positive")
	ErrDamping         = errors.New("motion: damping must not be negative")
	ErrRepulsionBounds = errors.New("motion: invalid repulsion bounds")
	ErrThreshold       = errors.New("motion: speed check and about-face offset must not be negative")
)

// Tuning holds the numeric constants of the motion pipeline. Units are world
// units and seconds, y pointing up.
type Tuning struct {
	Gravity         float64
	RunSpeed        float64
	GroundDamping   float64
	InAirDamping    float64
	JumpHeight      float64
	MaxFallingSpeed float64
	// MaxRisingSpeed caps upward speed while riding a fast platform.
	MaxRisingSpeed float64
	// SpeedCheck is the per-tick rise above which MaxRisingSpeed applies.
	SpeedCheck      float64
	AboutFaceOffset float64

	RepulseMinVelocity float64
	RepulseMinDelay    float64
	RepulseMaxDelay    float64
}

// DefaultTuning returns the stock player tuning.
func DefaultTuning() Tuning {
	return Tuning{
		Gravity:            -35,
		RunSpeed:           7,
		GroundDamping:      20,
		InAirDamping:       5,
		JumpHeight:         3.5,
		MaxFallingSpeed:    100,
		MaxRisingSpeed:     2,
		SpeedCheck:         0.1,
		AboutFaceOffset:    0.4,
		RepulseMinVelocity: 2,
		RepulseMinDelay:    0.1,
		RepulseMaxDelay:    0.3,
	}
}

// JumpImpulse is the launch speed that peaks exactly at JumpHeight.
func (t Tuning) JumpImpulse() float64 {
	return math.Sqrt(2 * t.JumpHeight * -t.Gravity)
}

// Validate rejects tunings that would make the pipeline produce non-finite or
// nonsensical motion.
func (t Tuning) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"gravity", t.Gravity},
		{"run_speed", t.RunSpeed},
		{"ground_damping", t.GroundDamping},
		{"in_air_damping", t.InAirDamping},
		{"jump_height", t.JumpHeight},
		{"max_falling_speed", t.MaxFallingSpeed},
		{"max_rising_speed", t.MaxRisingSpeed},
		{"speed_check", t.SpeedCheck},
		{"about_face_offset", t.AboutFaceOffset},
		{"repulse_min_velocity", t.RepulseMinVelocity},
		{"repulse_min_delay", t.RepulseMinDelay},
		{"repulse_max_delay", t.RepulseMaxDelay},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s", ErrNonFinite, f.name)
		}
	}

	if t.RunSpeed < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeSpeed, t.RunSpeed)
	}
	if t.JumpHeight <= 0 {
		return fmt.Errorf("%w: %v", ErrJumpHeight, t.JumpHeight)
	}
	if t.Gravity >= 0 {
		return fmt.Errorf("%w: %v", ErrGravity, t.Gravity)
	}
	if t.MaxFallingSpeed <= 0 || t.MaxRisingSpeed <= 0 {
		return fmt.Errorf("%w: falling=%v rising=%v", ErrSpeedLimit, t.MaxFallingSpeed, t.MaxRisingSpeed)
	}
	if t.GroundDamping < 0 || t.InAirDamping < 0 {
		return fmt.Errorf("%w: ground=%v air=%v", ErrDamping, t.GroundDamping, t.InAirDamping)
	}
	if t.SpeedCheck < 0 || t.AboutFaceOffset < 0 {
		return fmt.Errorf("%w: speed_check=%v about_face_offset=%v", ErrThreshold, t.SpeedCheck, t.AboutFaceOffset)
	}
	if t.RepulseMinVelocity < 0 || t.RepulseMinDelay < 0 || t.RepulseMaxDelay < t.RepulseMinDelay {
		return fmt.Errorf("%w: velocity>=%v delay=[%v,%v]", ErrRepulsionBounds, t.RepulseMinVelocity, t.RepulseMinDelay, t.RepulseMaxDelay)
	}
	return nil
}
