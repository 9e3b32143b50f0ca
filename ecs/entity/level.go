package entity

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

// LoadLevelToWorld creates the level geometry, hazards, repulsors, kill
// plane and camera described by spec.
func LoadLevelToWorld(w *ecs.World, spec *prefabs.LevelSpec) error {
	for _, s := range spec.Solids {
		e := w.CreateEntity()
		if err := addBox(w, e, s.X, s.Y, s.Width, s.Height); err != nil {
			return err
		}
	}

	for _, p := range spec.Platforms {
		e := w.CreateEntity()
		if err := addBox(w, e, p.From.X, p.From.Y, p.Width, p.Height); err != nil {
			return err
		}
		if err := ecs.Add(w, e, component.PlatformComponent.Kind(), &component.Platform{
			FromX: p.From.X, FromY: p.From.Y,
			ToX: p.To.X, ToY: p.To.Y,
			Speed:   p.Speed,
			Forward: true,
		}); err != nil {
			return fmt.Errorf("level: add platform: %w", err)
		}
	}

	for _, h := range spec.Hazards {
		e := w.CreateEntity()
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: h.X, Y: h.Y, ScaleX: 1, ScaleY: 1}); err != nil {
			return fmt.Errorf("level: add hazard: %w", err)
		}
		if err := ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{Width: h.Width, Height: h.Height}); err != nil {
			return fmt.Errorf("level: add hazard: %w", err)
		}
	}

	for _, r := range spec.Repulsors {
		e := w.CreateEntity()
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: r.X, Y: r.Y, ScaleX: 1, ScaleY: 1}); err != nil {
			return fmt.Errorf("level: add repulsor: %w", err)
		}
		if err := ecs.Add(w, e, component.RepulsorComponent.Kind(), &component.Repulsor{Width: r.Width, Height: r.Height, MaxVelocity: r.MaxVelocity}); err != nil {
			return fmt.Errorf("level: add repulsor: %w", err)
		}
	}

	if spec.KillPlane != nil {
		if err := ecs.Add(w, w.CreateEntity(), component.KillPlaneComponent.Kind(), &component.KillPlane{Y: *spec.KillPlane}); err != nil {
			return fmt.Errorf("level: add kill plane: %w", err)
		}
	}

	cam := w.CreateEntity()
	if err := ecs.Add(w, cam, component.TransformComponent.Kind(), &component.Transform{X: spec.Spawn.X, Y: spec.Spawn.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return fmt.Errorf("level: add camera: %w", err)
	}
	if err := ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{
		Zoom:       spec.Camera.Zoom,
		Smoothness: spec.Camera.Smoothness,
		LookOffset: spec.Camera.LookOffset,
	}); err != nil {
		return fmt.Errorf("level: add camera: %w", err)
	}
	return nil
}

func addBox(w *ecs.World, e ecs.Entity, x, y, width, height float64) error {
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return fmt.Errorf("level: add solid: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: width, Height: height}); err != nil {
		return fmt.Errorf("level: add solid: %w", err)
	}
	if err := ecs.Add(w, e, component.SolidComponent.Kind(), &component.Solid{}); err != nil {
		return fmt.Errorf("level: add solid: %w", err)
	}
	return nil
}
