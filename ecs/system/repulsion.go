package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/motion"
)

// RepulsionSystem turns repulsor overlaps into repulsion requests and hands
// pending requests to the actor's controller.
type RepulsionSystem struct{}

func NewRepulsionSystem() *RepulsionSystem {
	return &RepulsionSystem{}
}

func (r *RepulsionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	r.detect(w)

	for _, e := range w.Query(component.RepulsionRequestComponent.Kind(), component.MotionComponent.Kind()) {
		req, _ := ecs.Get(w, e, component.RepulsionRequestComponent.Kind())
		m, _ := ecs.Get(w, e, component.MotionComponent.Kind())
		if m.Controller != nil {
			m.Controller.ApplyRepulsion(req.Direction, req.MaxVelocity)
		}
		ecs.Remove(w, e, component.RepulsionRequestComponent.Kind())
	}
}

// detect requests a shove, away from the repulsor's centre, for each actor
// that overlaps one and is not already being repulsed.
func (r *RepulsionSystem) detect(w *ecs.World) {
	type repulsor struct {
		x, y float64
		r    *component.Repulsor
	}
	var repulsors []repulsor
	ecs.ForEach2(w, component.RepulsorComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, rep *component.Repulsor, t *component.Transform) {
		repulsors = append(repulsors, repulsor{x: t.X, y: t.Y, r: rep})
	})
	if len(repulsors) == 0 {
		return
	}

	ecs.ForEach3(w, component.MotionComponent.Kind(), component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, m *component.Motion, body *component.PhysicsBody, t *component.Transform) {
		if m.Controller == nil || m.Controller.Repulsed() || ecs.Has(w, e, component.RepulsionRequestComponent.Kind()) {
			return
		}
		bb := boxAt(t.X, t.Y, body.Width, body.Height)
		for _, rep := range repulsors {
			if !bb.Intersects(boxAt(rep.x, rep.y, rep.r.Width, rep.r.Height)) {
				continue
			}
			dir := motion.DirectionRight
			if t.X < rep.x {
				dir = motion.DirectionLeft
			}
			_ = ecs.Add(w, e, component.RepulsionRequestComponent.Kind(), &component.RepulsionRequest{
				Direction:   dir,
				MaxVelocity: rep.r.MaxVelocity,
			})
			return
		}
	})
}
