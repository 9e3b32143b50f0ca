package component

import "github.com/milk9111/platformer/motion"

// Actor is the shared record for one actor, read and written by the
// motion controller and the physics system.
type Actor struct {
	State motion.ActorState
}

var ActorComponent = NewComponent[Actor]()

// Motion holds the actor's controller and the last tick's result.
type Motion struct {
	Controller *motion.Controller
	Last       motion.Result
}

var MotionComponent = NewComponent[Motion]()

// Weapon counts dispatched action categories and keeps an attack window
// open for a few ticks after each swing.
type Weapon struct {
	LastCategory motion.Category
	Swings       int
	WindowTicks  int
	// Remaining ticks of the open attack window.
	Remaining int
}

var WeaponComponent = NewComponent[Weapon]()

// RepulsionRequest asks the repulsion system to shove the actor.
type RepulsionRequest struct {
	Direction   motion.Direction
	MaxVelocity float64
}

var RepulsionRequestComponent = NewComponent[RepulsionRequest]()

// Repulsor shoves actors that overlap it away from its centre.
type Repulsor struct {
	Width       float64
	Height      float64
	MaxVelocity float64
}

var RepulsorComponent = NewComponent[Repulsor]()
