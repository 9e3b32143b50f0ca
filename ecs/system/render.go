package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/motion"
	"golang.org/x/image/colornames"
)

// view maps y-up world units onto the screen around the camera.
type view struct {
	camX, camY float64
	zoom       float64
	halfW      float64
	halfH      float64
}

func cameraView(w *ecs.World, screen *ebiten.Image) view {
	b := screen.Bounds()
	v := view{zoom: 32, halfW: float64(b.Dx()) / 2, halfH: float64(b.Dy()) / 2}
	camEntity, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return v
	}
	if camTransform, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
		v.camX = camTransform.X
		v.camY = camTransform.Y
	}
	if camComp, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok && camComp.Zoom > 0 {
		v.zoom = camComp.Zoom
	}
	return v
}

func (v view) toScreen(x, y float64) (float32, float32) {
	return float32((x-v.camX)*v.zoom + v.halfW), float32(v.halfH - (y-v.camY)*v.zoom)
}

// rect returns the screen rectangle of a centred world box.
func (v view) rect(x, y, width, height float64) (float32, float32, float32, float32) {
	sx, sy := v.toScreen(x-width/2, y+height/2)
	return sx, sy, float32(width * v.zoom), float32(height * v.zoom)
}

type RenderSystem struct {
	Debug             bool
	FastPlatformSpeed float64
	Background        color.Color
}

func NewRenderSystem(debug bool, fastPlatformSpeed float64) *RenderSystem {
	return &RenderSystem{Debug: debug, FastPlatformSpeed: fastPlatformSpeed, Background: colornames.Midnightblue}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	if r.Background != nil {
		screen.Fill(r.Background)
	}
	v := cameraView(w, screen)

	ecs.ForEach2(w, component.HazardComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, hz *component.Hazard, t *component.Transform) {
		x, y, wd, ht := v.rect(t.X, t.Y, hz.Width, hz.Height)
		vector.FillRect(screen, x, y, wd, ht, colornames.Crimson, false)
	})

	ecs.ForEach2(w, component.RepulsorComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, rep *component.Repulsor, t *component.Transform) {
		x, y, wd, ht := v.rect(t.X, t.Y, rep.Width, rep.Height)
		vector.StrokeRect(screen, x, y, wd, ht, 2, colornames.Gold, false)
	})

	ecs.ForEach3(w, component.SolidComponent.Kind(), component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Solid, body *component.PhysicsBody, t *component.Transform) {
		clr := color.Color(colornames.Slategray)
		if p, ok := ecs.Get(w, e, component.PlatformComponent.Kind()); ok {
			clr = colornames.Steelblue
			if p.Speed >= r.FastPlatformSpeed {
				clr = colornames.Darkorange
			}
		}
		x, y, wd, ht := v.rect(t.X, t.Y, body.Width, body.Height)
		vector.FillRect(screen, x, y, wd, ht, clr, false)
	})

	ecs.ForEach3(w, component.ActorComponent.Kind(), component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, actor *component.Actor, body *component.PhysicsBody, t *component.Transform) {
		r.drawActor(w, screen, v, e, actor, body, t)
	})

	if r.Debug {
		r.drawDebugText(w, screen)
	}
}

func categoryColor(c motion.Category) color.Color {
	switch c {
	case motion.CategoryRun:
		return colornames.Limegreen
	case motion.CategoryJump, motion.CategoryFall:
		return colornames.Deepskyblue
	case motion.CategoryAttack, motion.CategoryRunAttack, motion.CategoryJumpAttack:
		return colornames.Tomato
	default:
		return colornames.Mediumseagreen
	}
}

func (r *RenderSystem) drawActor(w *ecs.World, screen *ebiten.Image, v view, e ecs.Entity, actor *component.Actor, body *component.PhysicsBody, t *component.Transform) {
	clr := color.Color(colornames.Mediumseagreen)
	if m, ok := ecs.Get(w, e, component.MotionComponent.Kind()); ok {
		clr = categoryColor(m.Last.Category)
	}
	if ecs.Has(w, e, component.DeadComponent.Kind()) {
		clr = colornames.Dimgray
	}
	x, y, wd, ht := v.rect(t.X, t.Y, body.Width, body.Height)
	vector.FillRect(screen, x, y, wd, ht, clr, false)

	// facing marker on the leading edge
	dir := t.ScaleX
	if dir == 0 {
		dir = 1
	}
	eyeX, eyeY := v.toScreen(t.X+dir*body.Width/4, t.Y+body.Height/4)
	vector.FillRect(screen, eyeX-2, eyeY-2, 4, 4, colornames.White, false)

	if weapon, ok := ecs.Get(w, e, component.WeaponComponent.Kind()); ok && weapon.Remaining > 0 {
		sx, sy, sw, sh := v.rect(t.X+dir*body.Width, t.Y, body.Width, body.Height/2)
		vector.StrokeRect(screen, sx, sy, sw, sh, 2, colornames.Orange, false)
	}
}

func (r *RenderSystem) drawDebugText(w *ecs.World, screen *ebiten.Image) {
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	actor, ok := ecs.Get(w, player, component.ActorComponent.Kind())
	if !ok {
		return
	}
	text := fmt.Sprintf("FPS: %.1f\nGrounded: %v\nFacingRight: %v\nWall: %v\nFastPlatform: %v\nJumpedFromFast: %v",
		ebiten.ActualFPS(), actor.State.Grounded, actor.State.FacingRight, actor.State.TouchingWall,
		actor.State.RidingFastPlatform, actor.State.JumpedFromFastPlatform)
	if m, ok := ecs.Get(w, player, component.MotionComponent.Kind()); ok {
		vel := m.Last.Velocity
		text += fmt.Sprintf("\nAction: %s\nVelocity: %.2f, %.2f", m.Last.Action, vel.X(), vel.Y())
	}
	if anim, ok := ecs.Get(w, player, component.AnimationComponent.Kind()); ok {
		text += fmt.Sprintf("\nClip: %s #%d", anim.Current, anim.Frame)
	}
	if weapon, ok := ecs.Get(w, player, component.WeaponComponent.Kind()); ok {
		text += fmt.Sprintf("\nSwings: %d", weapon.Swings)
	}
	if dead, ok := ecs.Get(w, player, component.DeadComponent.Kind()); ok {
		text += "\nDEAD: " + dead.Cause
	}
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}
