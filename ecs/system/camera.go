package system

import (
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update eases the camera toward the player's shared actor position, leading
// in the facing direction. A player launched off a fast platform is tracked
// without easing so the view keeps up.
func (cs *CameraSystem) Update(w *ecs.World) {
	if !cs.camEntity.Valid() || !w.IsAlive(cs.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			cs.camEntity = camEntity
		}
	}
	if !cs.targetEntity.Valid() || !w.IsAlive(cs.targetEntity) {
		if player, ok := w.First(component.PlayerTagComponent.Kind()); ok {
			cs.targetEntity = player
		}
	}

	actor, ok := ecs.Get(w, cs.targetEntity, component.ActorComponent.Kind())
	if !ok {
		return
	}
	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	lead := cam.LookOffset
	if !actor.State.FacingRight {
		lead = -lead
	}
	targetX := actor.State.X + lead
	targetY := actor.State.Y

	smooth := cam.Smoothness
	if actor.State.JumpedFromFastPlatform || smooth <= 0 {
		smooth = 1
	}
	camTransform.X = common.Lerp(camTransform.X, targetX, smooth)
	camTransform.Y = common.Lerp(camTransform.Y, targetY, smooth)
}
