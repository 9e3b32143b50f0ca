package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores the Chipmunk2D runtime data for an axis-aligned box.
// Static and kinematic bodies live in the space; actor bodies are swept by
// the physics system.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Width  float64
	Height float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Solid marks level geometry that blocks actors.
type Solid struct{}

var SolidComponent = NewComponent[Solid]()

// Platform is a kinematic solid shuttling between two points.
type Platform struct {
	FromX, FromY float64
	ToX, ToY     float64
	Speed        float64
	// Forward is true while travelling toward To.
	Forward bool
}

var PlatformComponent = NewComponent[Platform]()

// Contacts is written by the physics system for each actor every step.
type Contacts struct {
	Grounded     bool
	TouchingWall bool
	// Riding is the platform entity the actor stands on, or zero.
	Riding             uint64
	RidingFastPlatform bool
}

var ContactsComponent = NewComponent[Contacts]()
