package ecs

import "github.com/milk9111/platformer/ecs/component"

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// World owns entities, their components and the tick's event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*sparseSet
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*sparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes an entity and all of its components.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Query returns live entities that have every listed component kind.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*sparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.stores[k.ID()]
		if s.len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}

	// iterate the smallest set
	smallest := 0
	for i, s := range sets {
		if s.len() < sets[smallest].len() {
			smallest = i
		}
	}

	out := make([]Entity, 0, sets[smallest].len())
	for _, e := range sets[smallest].denseEntities {
		if !w.entities.isAlive(e) {
			continue
		}
		match := true
		for i, s := range sets {
			if i != smallest && !s.has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first live entity with the given component kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	ents := w.Query(kind)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

func (w *World) store(id component.ComponentID) *sparseSet {
	s := w.stores[id]
	if s == nil {
		s = &sparseSet{}
		w.stores[id] = s
	}
	return s
}
