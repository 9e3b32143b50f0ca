package motion

import (
	"errors"
	"math"
	"testing"
)

func TestTuningValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Tuning)
		want   error
	}{
		{"default", func(*Tuning) {}, nil},
		{"nan_gravity", func(t *Tuning) { t.Gravity = math.NaN() }, ErrNonFinite},
		{"inf_run_speed", func(t *Tuning) { t.RunSpeed = math.Inf(1) }, ErrNonFinite},
		{"negative_run_speed", func(t *Tuning) { t.RunSpeed = -1 }, ErrNegativeSpeed},
		{"zero_run_speed", func(t *Tuning) { t.RunSpeed = 0 }, nil},
		{"zero_jump_height", func(t *Tuning) { t.JumpHeight = 0 }, ErrJumpHeight},
		{"positive_gravity", func(t *Tuning) { t.Gravity = 9.8 }, ErrGravity},
		{"zero_max_falling", func(t *Tuning) { t.MaxFallingSpeed = 0 }, ErrSpeedLimit},
		{"zero_max_rising", func(t *Tuning) { t.MaxRisingSpeed = 0 }, ErrSpeedLimit},
		{"negative_air_damping", func(t *Tuning) { t.InAirDamping = -5 }, ErrDamping},
		{"inverted_repulse_delay", func(t *Tuning) { t.RepulseMinDelay, t.RepulseMaxDelay = 0.3, 0.1 }, ErrRepulsionBounds},
		{"negative_speed_check", func(t *Tuning) { t.SpeedCheck = -0.1 }, ErrThreshold},
		{"zero_speed_check", func(t *Tuning) { t.SpeedCheck = 0 }, nil},
		{"negative_about_face", func(t *Tuning) { t.AboutFaceOffset = -0.4 }, ErrThreshold},
		{"zero_about_face", func(t *Tuning) { t.AboutFaceOffset = 0 }, nil},
		{"negative_repulse_velocity", func(t *Tuning) { t.RepulseMinVelocity = -2 }, ErrRepulsionBounds},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tuning := DefaultTuning()
			tc.mutate(&tuning)
			err := tuning.Validate()
			if tc.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestJumpImpulseReachesJumpHeight(t *testing.T) {
	tuning := DefaultTuning()
	v := tuning.JumpImpulse()
	// apex of projectile motion: v^2 / (2g)
	apex := v * v / (2 * -tuning.Gravity)
	if math.Abs(apex-tuning.JumpHeight) > 1e-9 {
		t.Fatalf("apex = %v, want %v", apex, tuning.JumpHeight)
	}
}

func TestSetTuningKeepsOldOnError(t *testing.T) {
	c, _ := newTestController(t, &fakeProbe{})
	bad := DefaultTuning()
	bad.Gravity = 1
	if err := c.SetTuning(bad); !errors.Is(err, ErrGravity) {
		t.Fatalf("SetTuning error = %v, want ErrGravity", err)
	}
	if c.Tuning() != DefaultTuning() {
		t.Fatalf("tuning changed despite validation failure")
	}

	good := DefaultTuning()
	good.RunSpeed = 9
	if err := c.SetTuning(good); err != nil {
		t.Fatalf("SetTuning: %v", err)
	}
	if c.Tuning().RunSpeed != 9 {
		t.Fatalf("run speed = %v, want 9", c.Tuning().RunSpeed)
	}
}
