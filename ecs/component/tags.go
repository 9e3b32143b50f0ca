package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// Dead marks an actor whose controller has been disabled.
type Dead struct {
	Cause string
}

var DeadComponent = NewComponent[Dead]()
