package motion

import (
	"math"
	"math/rand/v2"
)

// Direction is the way a repulsion pushes the actor.
type Direction int

const (
	DirectionLeft Direction = iota + 1
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// repulsion is a knockback that overrides velocity until its timer expires.
// Only the most recent timer may clear it.
type repulsion struct {
	left     bool
	right    bool
	velocity float64
	timer    TimerID
}

func (r *repulsion) active() bool {
	return r.left || r.right
}

// override returns the forced velocity for this tick, left before right.
func (r *repulsion) override() (x float64, ok bool) {
	switch {
	case r.left:
		return -r.velocity, true
	case r.right:
		return r.velocity, true
	default:
		return 0, false
	}
}

func (r *repulsion) clear() {
	r.left = false
	r.right = false
}

// uniform draws from [lo, hi]; a degenerate or inverted range yields lo.
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// ApplyRepulsion knocks the actor toward dir at a random speed in
// [RepulseMinVelocity, maxVelocity] for a random short duration. A new
// repulsion replaces the expiry of any earlier one.
func (c *Controller) ApplyRepulsion(dir Direction, maxVelocity float64) {
	if !c.enabled {
		return
	}
	if math.IsNaN(maxVelocity) || math.IsInf(maxVelocity, 0) {
		c.log.WithField("max_velocity", maxVelocity).Warn("repulsion ignored: max velocity is not finite")
		return
	}

	switch dir {
	case DirectionLeft:
		c.repulse.left = true
	case DirectionRight:
		c.repulse.right = true
	default:
		return
	}
	c.repulse.velocity = uniform(c.rng, c.tuning.RepulseMinVelocity, maxVelocity)

	if c.repulse.timer != 0 {
		c.scheduler.Cancel(c.repulse.timer)
	}
	delay := uniform(c.rng, c.tuning.RepulseMinDelay, c.tuning.RepulseMaxDelay)
	var id TimerID
	id = c.scheduler.After(delay, func() {
		if c.repulse.timer != id {
			return
		}
		c.repulse.clear()
		c.repulse.timer = 0
	})
	c.repulse.timer = id

	c.log.WithField("direction", dir.String()).
		WithField("velocity", c.repulse.velocity).
		WithField("duration", delay).
		Debug("repulsion applied")
}

// Repulsed reports whether a knockback currently overrides movement.
func (c *Controller) Repulsed() bool {
	return c.repulse.active()
}
