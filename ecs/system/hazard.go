package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// HazardSystem raises actor_died for actors overlapping a hazard or below
// the kill plane.
type HazardSystem struct{}

func NewHazardSystem() *HazardSystem { return &HazardSystem{} }

func (h *HazardSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var hazards []cp.BB
	ecs.ForEach2(w, component.HazardComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, hz *component.Hazard, t *component.Transform) {
		if hz.Width <= 0 || hz.Height <= 0 {
			return
		}
		hazards = append(hazards, boxAt(t.X, t.Y, hz.Width, hz.Height))
	})

	killY, hasKillPlane := 0.0, false
	if e, ok := w.First(component.KillPlaneComponent.Kind()); ok {
		plane, _ := ecs.Get(w, e, component.KillPlaneComponent.Kind())
		killY, hasKillPlane = plane.Y, true
	}

	ecs.ForEach3(w, component.ActorComponent.Kind(), component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Actor, body *component.PhysicsBody, t *component.Transform) {
		if ecs.Has(w, e, component.DeadComponent.Kind()) {
			return
		}

		if hasKillPlane && t.Y < killY {
			w.Events().Push(ecs.Event{Type: ecs.EventActorDied, Data: ecs.ActorDied{Entity: e, Cause: "fell"}})
			return
		}

		bb := boxAt(t.X, t.Y, body.Width, body.Height)
		for _, hz := range hazards {
			if bb.Intersects(hz) {
				w.Events().Push(ecs.Event{Type: ecs.EventActorDied, Data: ecs.ActorDied{Entity: e, Cause: "hazard"}})
				return
			}
		}
	})
}
