package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// WeaponSystem closes attack windows once they run out.
type WeaponSystem struct{}

func NewWeaponSystem() *WeaponSystem {
	return &WeaponSystem{}
}

func (s *WeaponSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.WeaponComponent.Kind(), func(e ecs.Entity, weapon *component.Weapon) {
		if weapon.Remaining > 0 {
			weapon.Remaining--
		}
	})
}
