package component

// Input stores the intents read from the keyboard this tick.
type Input struct {
	MoveLeft  bool
	MoveRight bool
	Jump      bool
	Attack    bool
}

var InputComponent = NewComponent[Input]()
