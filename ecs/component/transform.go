package component

// Transform is an entity's world position in y-up units. ScaleX carries the
// sprite's horizontal orientation.
type Transform struct {
	X      float64
	Y      float64
	ScaleX float64
	ScaleY float64
}

var TransformComponent = NewComponent[Transform]()
