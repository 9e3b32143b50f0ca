package component

// Camera follows the player. Transform holds the world point at the centre
// of the view.
type Camera struct {
	// Zoom is screen pixels per world unit.
	Zoom       float64
	Smoothness float64
	// LookOffset leads the view in the facing direction.
	LookOffset float64
}

var CameraComponent = NewComponent[Camera]()
