package motion

import "github.com/go-gl/mathgl/mgl64"

// frame is the mutable scratch state threaded through one tick.
type frame struct {
	dt            float64
	state         *ActorState
	in            Input
	grounded      bool
	category      Category
	facingChanged bool
}

type stage struct {
	name string
	run  func(c *Controller, f *frame)
}

// The order is load bearing: each stage reads what the previous ones wrote.
var pipeline = []stage{
	{"sync_velocity", (*Controller).syncVelocity},
	{"ground_check", (*Controller).groundCheck},
	{"resolve_intent", (*Controller).resolveIntent},
	{"wall_fall", (*Controller).wallFall},
	{"dispatch_action", (*Controller).dispatchAction},
	{"snapshot_position", (*Controller).snapshotPosition},
	{"smooth_horizontal", (*Controller).smoothHorizontal},
	{"gravity", (*Controller).applyGravity},
	{"repulsion", (*Controller).applyRepulsion},
	{"clamp_vertical", (*Controller).clampVertical},
	{"apply_movement", (*Controller).applyMovement},
	{"record_position", (*Controller).recordPosition},
}

// Stages lists the pipeline stage names in execution order.
func Stages() []string {
	names := make([]string, 0, len(pipeline))
	for _, s := range pipeline {
		names = append(names, s.name)
	}
	return names
}

func (c *Controller) syncVelocity(f *frame) {
	c.velocity = c.probe.Velocity()
}

func (c *Controller) groundCheck(f *frame) {
	if f.grounded {
		c.velocity[1] = 0
		f.state.Grounded = true
		f.state.JumpedFromFastPlatform = false
		c.setCue(CueAirborne, false)
		return
	}
	c.action = ActionFall
	f.state.Grounded = false
	c.setCue(CueAirborne, true)
}

func (c *Controller) resolveIntent(f *frame) {
	if !f.in.Attack {
		switch {
		case f.in.MoveRight:
			c.move(f, 1)
		case f.in.MoveLeft:
			c.move(f, -1)
		case f.grounded:
			c.idle(f)
		}

		if f.in.Jump && f.grounded {
			c.jump(f)
		}
		f.in.MoveRight, f.in.MoveLeft = false, false
		return
	}

	switch {
	case f.in.MoveRight:
		c.move(f, 1)
		c.attackWhileRunning(f)
	case f.in.MoveLeft:
		c.move(f, -1)
		c.attackWhileRunning(f)
	case f.grounded:
		c.attackWhileIdle(f)
	}

	// Checked on its own so an airborne attack overrides whatever the move
	// branch classified.
	if !f.grounded {
		c.attackWhileJumping(f)
	}
	// moves are never carried into the next tick, even the one that lost
	f.in.MoveRight, f.in.MoveLeft = false, false
}

func (c *Controller) idle(f *frame) {
	c.normalizedHorizontalSpeed = 0
	c.action = ActionIdle
	c.setCue(CueAirborne, false)
	c.setCue(CueRunning, false)
	c.setCue(CueAttacking, false)

	f.state.Grounded = true
	f.state.JumpedFromFastPlatform = false
}

func (c *Controller) jump(f *frame) {
	c.velocity[1] = c.tuning.JumpImpulse()
	c.action = ActionJump
	c.setCue(CueAirborne, true)
	f.in.Jump = false

	f.state.Grounded = false
	if f.state.RidingFastPlatform && f.state.MovingHorizontally {
		f.state.JumpedFromFastPlatform = true
	}
}

// move handles a run step toward dir (1 right, -1 left).
func (c *Controller) move(f *frame, dir float64) {
	c.normalizedHorizontalSpeed = dir

	if c.scaleX*dir < 0 {
		c.scaleX = -c.scaleX
		// keep the contact box from jumping forward when the sprite flips
		pos := c.probe.Position()
		pos[0] -= dir * c.tuning.AboutFaceOffset
		c.probe.SetPosition(pos)
	}

	if f.grounded {
		c.action = ActionRun
		c.setCue(CueRunning, true)
	} else {
		c.setCue(CueRunning, false)
	}
	c.setCue(CueAttacking, false)

	right := dir > 0
	if c.facingRight != right {
		c.facingRight = right
		f.state.FacingRight = right
		f.facingChanged = true
		c.notifyFacing(right)
	}
}

func (c *Controller) attackWhileIdle(f *frame) {
	if f.grounded {
		c.action = ActionAttack
		c.normalizedHorizontalSpeed = 0
		c.setCue(CueAttacking, true)
		c.setCue(CueRunning, false)
	}
	f.in.Attack = false
}

func (c *Controller) attackWhileRunning(f *frame) {
	if f.grounded {
		c.action = ActionRunAttack
		c.setCue(CueAttacking, true)
		c.setCue(CueRunning, true)
	}
	f.in.Attack = false
}

// attackWhileJumping adds no vertical impulse.
func (c *Controller) attackWhileJumping(f *frame) {
	c.action = ActionJumpAttack
	c.setCue(CueAirborne, true)
	c.setCue(CueAttacking, true)
	f.in.Jump = false
	f.in.Attack = false
}

func (c *Controller) wallFall(f *frame) {
	if f.state.TouchingWall && !f.grounded {
		c.normalizedHorizontalSpeed = 0
		c.velocity[0] = 0
	}
}

func (c *Controller) dispatchAction(f *frame) {
	defer func() {
		if r := recover(); r != nil {
			c.log.WithField("action", c.action.String()).Error("unclassified action reached dispatch")
			panic(r)
		}
	}()
	f.category = categoryFor(c.action)
	c.sink.Dispatch(f.category)
}

func (c *Controller) snapshotPosition(f *frame) {
	pos := c.probe.Position()
	f.state.X = pos.X()
	f.state.Y = pos.Y()
}

func (c *Controller) smoothHorizontal(f *frame) {
	damping := c.tuning.InAirDamping
	if f.grounded {
		damping = c.tuning.GroundDamping
	}
	target := c.normalizedHorizontalSpeed * c.tuning.RunSpeed
	c.velocity[0] = lerp(c.velocity[0], target, clamp01(f.dt*damping))
}

func (c *Controller) applyGravity(f *frame) {
	c.velocity[1] += c.tuning.Gravity * f.dt
}

func (c *Controller) applyRepulsion(f *frame) {
	if x, ok := c.repulse.override(); ok {
		c.velocity = mgl64.Vec2{x, 0}
	}
}

func (c *Controller) clampVertical(f *frame) {
	upper := c.tuning.MaxFallingSpeed
	if c.risingTooFast() && f.state.RidingFastPlatform && !f.state.MovingHorizontally {
		upper = c.tuning.MaxRisingSpeed
	}
	c.velocity[1] = mgl64.Clamp(c.velocity[1], -c.tuning.MaxFallingSpeed, upper)
}

func (c *Controller) risingTooFast() bool {
	return c.probe.Position().Y()-c.previousY > c.tuning.SpeedCheck
}

func (c *Controller) applyMovement(f *frame) {
	f.grounded = c.probe.Move(c.velocity.Mul(f.dt))
}

func (c *Controller) recordPosition(f *frame) {
	pos := c.probe.Position()
	f.state.MovingHorizontally = c.previousX != pos.X()

	c.previousX = pos.X()
	c.previousY = pos.Y()
	f.state.PreviousX = c.previousX
	f.state.PreviousY = c.previousY
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func clamp01(t float64) float64 {
	return mgl64.Clamp(t, 0, 1)
}
