package entity

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/motion"
	"github.com/milk9111/platformer/prefabs"
	"github.com/sirupsen/logrus"
)

// NewPlayerAt builds the player actor at (x, y) and binds its motion
// controller to the physics system's probe.
func NewPlayerAt(w *ecs.World, physics *system.PhysicsSystem, spec *prefabs.PlayerSpec, x, y float64, log *logrus.Entry, opts ...motion.Option) (ecs.Entity, error) {
	e := w.CreateEntity()

	defs := make(map[string]component.AnimationDef, len(spec.Animations))
	for _, a := range spec.Animations {
		defs[a.Name] = component.AnimationDef{Name: a.Name, FrameCount: a.FrameCount, FPS: a.FPS, Loop: a.Loop}
	}

	scaleX := 1.0
	if !spec.FacingRight {
		scaleX = -1
	}

	adds := []func() error{
		func() error { return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}) },
		func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: scaleX, ScaleY: 1})
		},
		func() error {
			return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: spec.Collider.Width, Height: spec.Collider.Height})
		},
		func() error { return ecs.Add(w, e, component.ContactsComponent.Kind(), &component.Contacts{}) },
		func() error { return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}) },
		func() error {
			return ecs.Add(w, e, component.ActorComponent.Kind(), &component.Actor{State: motion.ActorState{FacingRight: spec.FacingRight, X: x, Y: y, PreviousX: x, PreviousY: y}})
		},
		func() error {
			return ecs.Add(w, e, component.WeaponComponent.Kind(), &component.Weapon{WindowTicks: spec.Weapon.WindowTicks})
		},
		func() error {
			return ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{Defs: defs, Cues: make(map[string]bool), Current: "idle", Playing: true})
		},
	}
	for _, add := range adds {
		if err := add(); err != nil {
			w.DestroyEntity(e)
			return 0, fmt.Errorf("player: add component: %w", err)
		}
	}

	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	opts = append([]motion.Option{
		motion.WithCueSink(system.NewAnimationCues(w, e)),
		motion.WithFacingRight(spec.FacingRight),
		motion.WithLogger(log.WithField("entity", e.String())),
	}, opts...)

	ctrl, err := motion.NewController(physics.Probe(w, e), system.NewWeaponSink(w, e), spec.Tuning.Tuning(), opts...)
	if err != nil {
		w.DestroyEntity(e)
		return 0, fmt.Errorf("player: %w", err)
	}
	if err := ecs.Add(w, e, component.MotionComponent.Kind(), &component.Motion{Controller: ctrl}); err != nil {
		w.DestroyEntity(e)
		return 0, fmt.Errorf("player: add motion: %w", err)
	}
	return e, nil
}
