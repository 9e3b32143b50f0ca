package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/sirupsen/logrus"
)

// DeathSystem disables the controller of every actor that died this tick.
type DeathSystem struct {
	log *logrus.Entry
}

func NewDeathSystem(log *logrus.Entry) *DeathSystem {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &DeathSystem{log: log.WithField("system", "death")}
}

func (d *DeathSystem) Update(w *ecs.World) {
	for _, evt := range w.Events().DrainType(ecs.EventActorDied) {
		died, ok := evt.Data.(ecs.ActorDied)
		if !ok || !w.IsAlive(died.Entity) || ecs.Has(w, died.Entity, component.DeadComponent.Kind()) {
			continue
		}

		if m, ok := ecs.Get(w, died.Entity, component.MotionComponent.Kind()); ok && m.Controller != nil {
			m.Controller.Disable()
		}
		if err := ecs.Add(w, died.Entity, component.DeadComponent.Kind(), &component.Dead{Cause: died.Cause}); err != nil {
			d.log.WithError(err).Error("mark actor dead")
			continue
		}
		d.log.WithFields(logrus.Fields{
			"entity": died.Entity.String(),
			"cause":  died.Cause,
		}).Info("actor died")
	}
}
