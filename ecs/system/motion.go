package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/motion"
)

// MotionSystem ticks every live actor's controller. It runs after the
// physics and repulsion systems so the controller sees this step's contacts.
type MotionSystem struct {
	dt float64
}

func NewMotionSystem(dt float64) *MotionSystem {
	return &MotionSystem{dt: dt}
}

func (s *MotionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach3(w, component.MotionComponent.Kind(), component.ActorComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, m *component.Motion, actor *component.Actor, t *component.Transform) {
		if m.Controller == nil || ecs.Has(w, e, component.DeadComponent.Kind()) {
			return
		}

		if input, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			forwardInput(input, m.Controller)
		}
		if contacts, ok := ecs.Get(w, e, component.ContactsComponent.Kind()); ok {
			actor.State.TouchingWall = contacts.TouchingWall
			actor.State.RidingFastPlatform = contacts.RidingFastPlatform
		}

		m.Last = m.Controller.Tick(s.dt, &actor.State)
		t.ScaleX = m.Controller.ScaleX()
	})
}

func forwardInput(in *component.Input, c motion.Creature) {
	if in.MoveRight {
		c.RequestMoveRight()
	}
	if in.MoveLeft {
		c.RequestMoveLeft()
	}
	if in.Jump {
		c.RequestJump()
	}
	if in.Attack {
		c.RequestAttack()
	}
}

// NewWeaponSink returns the ActionSink for e's weapon. It records the last
// category and opens the attack window on every attack.
func NewWeaponSink(w *ecs.World, e ecs.Entity) motion.ActionSink {
	return motion.ActionSinkFunc(func(category motion.Category) {
		weapon, ok := ecs.Get(w, e, component.WeaponComponent.Kind())
		if !ok {
			return
		}
		weapon.LastCategory = category
		if category.IsAttack() {
			weapon.Swings++
			weapon.Remaining = weapon.WindowTicks
		}
	})
}

// animationCues writes controller cues into the actor's Animation.
type animationCues struct {
	world  *ecs.World
	entity ecs.Entity
}

// NewAnimationCues returns the CueSink for e's animation.
func NewAnimationCues(w *ecs.World, e ecs.Entity) motion.CueSink {
	return &animationCues{world: w, entity: e}
}

func (c *animationCues) SetCue(cue motion.Cue, on bool) {
	anim, ok := ecs.Get(c.world, c.entity, component.AnimationComponent.Kind())
	if !ok {
		return
	}
	if anim.Cues == nil {
		anim.Cues = make(map[string]bool)
	}
	anim.Cues[string(cue)] = on
}
