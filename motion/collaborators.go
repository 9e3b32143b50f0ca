package motion

import "github.com/go-gl/mathgl/mgl64"

// ContactProbe is the collision resolver the controller drives. Grounded and
// Velocity describe the result of the previous Move.
type ContactProbe interface {
	Grounded() bool
	Velocity() mgl64.Vec2
	Position() mgl64.Vec2
	SetPosition(p mgl64.Vec2)
	// Move displaces the actor by delta, resolving collisions, and reports
	// whether it ended on solid ground.
	Move(delta mgl64.Vec2) bool
}

// ActionSink receives the tick's action category.
type ActionSink interface {
	Dispatch(category Category)
}

// ActionSinkFunc adapts a function to ActionSink.
type ActionSinkFunc func(category Category)

func (f ActionSinkFunc) Dispatch(category Category) { f(category) }

// Cue is an animation flag driven by the controller.
type Cue string

const (
	CueAirborne  Cue = "jump"
	CueRunning   Cue = "run"
	CueAttacking Cue = "attack"
)

// CueSink receives animation cue changes.
type CueSink interface {
	SetCue(cue Cue, on bool)
}

// Creature is the input surface of anything that can be driven like the
// player.
type Creature interface {
	RequestMoveRight()
	RequestMoveLeft()
	RequestJump()
	RequestAttack()
}

// ActorState is cross-component state shared with camera, weapon and
// animation code. The simulation root owns it and lends it to Tick.
type ActorState struct {
	Grounded               bool
	FacingRight            bool
	TouchingWall           bool
	RidingFastPlatform     bool
	MovingHorizontally     bool
	JumpedFromFastPlatform bool

	X         float64
	Y         float64
	PreviousX float64
	PreviousY float64
}
