package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// PlatformSystem steers kinematic platforms back and forth between their
// endpoints. The physics step applies the velocity.
type PlatformSystem struct {
	dt float64
}

func NewPlatformSystem(dt float64) *PlatformSystem {
	return &PlatformSystem{dt: dt}
}

func (s *PlatformSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.PlatformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, p *component.Platform, body *component.PhysicsBody) {
		if body.Body == nil {
			return
		}
		pos := body.Body.Position()
		at := mgl64.Vec2{pos.X, pos.Y}

		target := mgl64.Vec2{p.ToX, p.ToY}
		if !p.Forward {
			target = mgl64.Vec2{p.FromX, p.FromY}
		}

		toTarget := target.Sub(at)
		dist := toTarget.Len()
		if dist <= p.Speed*s.dt {
			body.Body.SetPosition(cp.Vector{X: target.X(), Y: target.Y()})
			body.Body.SetVelocityVector(cp.Vector{})
			p.Forward = !p.Forward
			return
		}
		vel := toTarget.Mul(p.Speed / dist)
		body.Body.SetVelocityVector(cp.Vector{X: vel.X(), Y: vel.Y()})
	})
}
