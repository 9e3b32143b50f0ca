package component

// AnimationDef describes one clip's timing.
type AnimationDef struct {
	Name       string
	FrameCount int
	FPS        float64
	Loop       bool
}

// Animation holds the actor's boolean cue flags and the clip they select.
type Animation struct {
	Defs       map[string]AnimationDef
	Cues       map[string]bool
	Current    string
	Frame      int
	FrameTimer int
	Playing    bool
}

var AnimationComponent = NewComponent[Animation]()
