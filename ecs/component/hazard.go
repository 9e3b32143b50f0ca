package component

// Hazard kills an actor on overlap. Bounds are centred on the entity's
// Transform.
type Hazard struct {
	Width  float64
	Height float64
}

var HazardComponent = NewComponent[Hazard]()

// KillPlane kills any actor that falls below Y.
type KillPlane struct {
	Y float64
}

var KillPlaneComponent = NewComponent[KillPlane]()
