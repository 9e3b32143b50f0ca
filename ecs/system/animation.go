package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/motion"
)

// AnimationSystem picks a clip from the actor's cue flags and advances its
// frame counter.
type AnimationSystem struct {
	tps float64
}

func NewAnimationSystem(tps float64) *AnimationSystem {
	if tps <= 0 {
		tps = 60
	}
	return &AnimationSystem{tps: tps}
}

// clipFor ranks cues: attacking over airborne over running.
func clipFor(cues map[string]bool) string {
	switch {
	case cues[string(motion.CueAttacking)] && cues[string(motion.CueAirborne)]:
		return "jump_attack"
	case cues[string(motion.CueAttacking)]:
		return "attack"
	case cues[string(motion.CueAirborne)]:
		return "jump"
	case cues[string(motion.CueRunning)]:
		return "run"
	default:
		return "idle"
	}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AnimationComponent.Kind(), func(e ecs.Entity, anim *component.Animation) {
		if ecs.Has(w, e, component.DeadComponent.Kind()) {
			anim.Playing = false
			return
		}

		if next := clipFor(anim.Cues); next != anim.Current {
			anim.Current = next
			anim.Frame = 0
			anim.FrameTimer = 0
			anim.Playing = true
		}
		if !anim.Playing {
			return
		}

		def, ok := anim.Defs[anim.Current]
		if !ok || def.FrameCount <= 0 || def.FPS <= 0 {
			return
		}

		ticksPerFrame := int(a.tps / def.FPS)
		if ticksPerFrame < 1 {
			ticksPerFrame = 1
		}

		anim.FrameTimer++
		if anim.FrameTimer >= ticksPerFrame {
			anim.FrameTimer = 0
			anim.Frame++
			if anim.Frame >= def.FrameCount {
				if def.Loop {
					anim.Frame = 0
				} else {
					anim.Frame = def.FrameCount - 1
					anim.Playing = false
				}
			}
		}
	})
}
