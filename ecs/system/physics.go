package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/motion"
	"github.com/sirupsen/logrus"
)

// contactSkin is how close two boxes must be to count as touching.
const contactSkin = 0.02

// PhysicsSystem owns the Chipmunk space holding level geometry. Platforms are
// kinematic bodies stepped by the space; actors are swept against the
// geometry on demand through their ContactProbe.
type PhysicsSystem struct {
	space             *cp.Space
	dt                float64
	fastPlatformSpeed float64
	log               *logrus.Entry
}

func NewPhysicsSystem(dt, fastPlatformSpeed float64, log *logrus.Entry) *PhysicsSystem {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &PhysicsSystem{
		space:             cp.NewSpace(),
		dt:                dt,
		fastPlatformSpeed: fastPlatformSpeed,
		log:               log.WithField("system", "physics"),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.syncEntities(w)

	before := make(map[ecs.Entity]cp.Vector)
	ecs.ForEach2(w, component.PlatformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, _ *component.Platform, body *component.PhysicsBody) {
		if body.Body != nil {
			before[e] = body.Body.Position()
		}
	})

	ps.space.Step(ps.dt)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if body.Body == nil || !ecs.Has(w, e, component.PlatformComponent.Kind()) {
			return
		}
		pos := body.Body.Position()
		t.X = pos.X
		t.Y = pos.Y
	})

	ps.carryRiders(w, before)
}

// carryRiders moves every actor standing on a platform by that platform's
// displacement this step.
func (ps *PhysicsSystem) carryRiders(w *ecs.World, before map[ecs.Entity]cp.Vector) {
	ecs.ForEach2(w, component.ContactsComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, contacts *component.Contacts, _ *component.Transform) {
		if contacts.Riding == 0 {
			return
		}
		platform := ecs.Entity(contacts.Riding)
		start, ok := before[platform]
		if !ok {
			contacts.Riding = 0
			contacts.RidingFastPlatform = false
			return
		}
		body, ok := ecs.Get(w, platform, component.PhysicsBodyComponent.Kind())
		if !ok || body.Body == nil {
			return
		}
		end := body.Body.Position()
		delta := mgl64.Vec2{end.X - start.X, end.Y - start.Y}
		if delta.Len() == 0 {
			return
		}
		ps.sweep(w, e, delta, platform)
	})
}

// syncEntities creates Chipmunk bodies for new level geometry and actors.
func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if body.Body != nil {
			return
		}
		if body.Width <= 0 || body.Height <= 0 {
			ps.log.WithField("entity", e.String()).Warn("physics body without extent")
			return
		}

		_, platform := ecs.Get(w, e, component.PlatformComponent.Kind())
		_, solid := ecs.Get(w, e, component.SolidComponent.Kind())
		if solid && !platform {
			bb := cp.BB{L: t.X - body.Width/2, B: t.Y - body.Height/2, R: t.X + body.Width/2, T: t.Y + body.Height/2}
			body.Body = ps.space.StaticBody
			body.Shape = ps.space.AddShape(cp.NewBox2(ps.space.StaticBody, bb, 0))
			return
		}

		// platforms and actors are kinematic: moved by velocity or by hand
		b := ps.space.AddBody(cp.NewKinematicBody())
		b.SetPosition(cp.Vector{X: t.X, Y: t.Y})
		body.Body = b
		body.Shape = ps.space.AddShape(cp.NewBox(b, body.Width, body.Height, 0))
	})
}

// Remove drops an entity's body and shape from the space.
func (ps *PhysicsSystem) Remove(w *ecs.World, e ecs.Entity) {
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || body.Body == nil {
		return
	}
	if body.Shape != nil {
		ps.space.RemoveShape(body.Shape)
	}
	if body.Body != ps.space.StaticBody {
		ps.space.RemoveBody(body.Body)
	}
	body.Body = nil
	body.Shape = nil
}

type solidBox struct {
	entity ecs.Entity
	bb     cp.BB
}

func boxAt(x, y, width, height float64) cp.BB {
	return cp.BB{L: x - width/2, B: y - height/2, R: x + width/2, T: y + height/2}
}

func (ps *PhysicsSystem) solids(w *ecs.World, skip ecs.Entity) []solidBox {
	var out []solidBox
	ecs.ForEach3(w, component.SolidComponent.Kind(), component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Solid, body *component.PhysicsBody, t *component.Transform) {
		if e == skip {
			return
		}
		out = append(out, solidBox{entity: e, bb: boxAt(t.X, t.Y, body.Width, body.Height)})
	})
	return out
}

func overlapsSpan(aMin, aMax, bMin, bMax float64) bool {
	return aMin < bMax-contactSkin/2 && aMax > bMin+contactSkin/2
}

// sweep displaces an actor by delta, one axis at a time, stopping at the
// first solid face on each axis, then refreshes its contacts. skip is
// ignored as an obstacle.
func (ps *PhysicsSystem) sweep(w *ecs.World, e ecs.Entity, delta mgl64.Vec2, skip ecs.Entity) mgl64.Vec2 {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return mgl64.Vec2{}
	}
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return mgl64.Vec2{}
	}
	hw, hh := body.Width/2, body.Height/2
	solids := ps.solids(w, skip)

	startX, startY := t.X, t.Y

	x := t.X + delta.X()
	for _, s := range solids {
		if !overlapsSpan(t.Y-hh, t.Y+hh, s.bb.B, s.bb.T) {
			continue
		}
		if delta.X() > 0 && t.X+hw <= s.bb.L+contactSkin && x+hw > s.bb.L {
			x = s.bb.L - hw
		}
		if delta.X() < 0 && t.X-hw >= s.bb.R-contactSkin && x-hw < s.bb.R {
			x = s.bb.R + hw
		}
	}
	t.X = x

	y := t.Y + delta.Y()
	for _, s := range solids {
		if !overlapsSpan(t.X-hw, t.X+hw, s.bb.L, s.bb.R) {
			continue
		}
		if delta.Y() < 0 && t.Y-hh >= s.bb.T-contactSkin && y-hh < s.bb.T {
			y = s.bb.T + hh
		}
		if delta.Y() > 0 && t.Y+hh <= s.bb.B+contactSkin && y+hh > s.bb.B {
			y = s.bb.B - hh
		}
	}
	t.Y = y

	if body.Body != nil {
		body.Body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
	}
	if skip != 0 {
		solids = ps.solids(w, 0)
	}
	ps.refreshContacts(w, e, t, body, solids)
	return mgl64.Vec2{t.X - startX, t.Y - startY}
}

// refreshContacts records ground, wall and platform contact for an actor
// at its current position.
func (ps *PhysicsSystem) refreshContacts(w *ecs.World, e ecs.Entity, t *component.Transform, body *component.PhysicsBody, solids []solidBox) {
	contacts, ok := ecs.Get(w, e, component.ContactsComponent.Kind())
	if !ok {
		return
	}
	hw, hh := body.Width/2, body.Height/2
	bottom := t.Y - hh

	contacts.Grounded = false
	contacts.TouchingWall = false
	riding := ecs.Entity(0)
	for _, s := range solids {
		if overlapsSpan(t.X-hw, t.X+hw, s.bb.L, s.bb.R) && math.Abs(bottom-s.bb.T) <= contactSkin {
			contacts.Grounded = true
			if ecs.Has(w, s.entity, component.PlatformComponent.Kind()) {
				riding = s.entity
			}
		}
		if overlapsSpan(t.Y-hh, t.Y+hh, s.bb.B, s.bb.T) &&
			(math.Abs(t.X+hw-s.bb.L) <= contactSkin || math.Abs(t.X-hw-s.bb.R) <= contactSkin) {
			contacts.TouchingWall = true
		}
	}

	contacts.Riding = uint64(riding)
	contacts.RidingFastPlatform = false
	if riding != 0 {
		if p, ok := ecs.Get(w, riding, component.PlatformComponent.Kind()); ok {
			contacts.RidingFastPlatform = p.Speed >= ps.fastPlatformSpeed
		}
	}
}

// Probe returns the ContactProbe a motion controller uses to move e.
func (ps *PhysicsSystem) Probe(w *ecs.World, e ecs.Entity) motion.ContactProbe {
	return &actorProbe{physics: ps, world: w, entity: e}
}

// actorProbe adapts an actor entity to motion.ContactProbe.
type actorProbe struct {
	physics  *PhysicsSystem
	world    *ecs.World
	entity   ecs.Entity
	velocity mgl64.Vec2
}

func (p *actorProbe) Grounded() bool {
	contacts, ok := ecs.Get(p.world, p.entity, component.ContactsComponent.Kind())
	return ok && contacts.Grounded
}

func (p *actorProbe) Velocity() mgl64.Vec2 {
	return p.velocity
}

func (p *actorProbe) Position() mgl64.Vec2 {
	t, ok := ecs.Get(p.world, p.entity, component.TransformComponent.Kind())
	if !ok {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{t.X, t.Y}
}

func (p *actorProbe) SetPosition(pos mgl64.Vec2) {
	t, ok := ecs.Get(p.world, p.entity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	t.X = pos.X()
	t.Y = pos.Y()
	if body, ok := ecs.Get(p.world, p.entity, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		body.Body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
	}
}

// Move resolves delta against level geometry. The probe's velocity becomes
// the displacement actually achieved over one step. Platform carry is not
// part of it; carryRiders moves the actor directly.
func (p *actorProbe) Move(delta mgl64.Vec2) bool {
	moved := p.physics.sweep(p.world, p.entity, delta, 0)
	if p.physics.dt > 0 {
		p.velocity = moved.Mul(1 / p.physics.dt)
	}
	return p.Grounded()
}
