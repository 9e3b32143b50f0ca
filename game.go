package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/prefabs"
	"github.com/sirupsen/logrus"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Config struct {
	Level string
	Debug bool
	Watch bool
	Log   *logrus.Entry
}

type Game struct {
	cfg Config
	log *logrus.Entry

	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	render    *system.RenderSystem
	watcher   *prefabs.Watcher
	player    ecs.Entity
}

func NewGame(cfg Config) (*Game, error) {
	if cfg.Log == nil {
		cfg.Log = logrus.NewEntry(logrus.StandardLogger())
	}
	g := &Game{cfg: cfg, log: cfg.Log}
	if err := g.load(); err != nil {
		return nil, err
	}

	if cfg.Watch {
		watcher, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			// embedded prefabs still work without a directory to watch
			g.log.WithError(err).Warn("prefab hot reload disabled")
		} else {
			g.watcher = watcher
		}
	}
	return g, nil
}

// load builds a fresh world from the prefabs. The player gets a new
// controller every time.
func (g *Game) load() error {
	levelSpec, err := prefabs.LoadLevelSpec(g.cfg.Level)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}

	dt := 1.0 / float64(ebiten.DefaultTPS)
	world := ecs.NewWorld()
	physics := system.NewPhysicsSystem(dt, levelSpec.FastPlatformSpeed, g.log)

	if err := entity.LoadLevelToWorld(world, levelSpec); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	player, err := entity.NewPlayerAt(world, physics, playerSpec, levelSpec.Spawn.X, levelSpec.Spawn.Y, g.log)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}

	g.world = world
	g.physics = physics
	g.player = player
	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewPlatformSystem(dt),
		physics,
		system.NewRepulsionSystem(),
		system.NewWeaponSystem(),
		system.NewMotionSystem(dt),
		system.NewHazardSystem(),
		system.NewDeathSystem(g.log),
		system.NewAnimationSystem(float64(ebiten.DefaultTPS)),
		system.NewCameraSystem(),
	)
	g.render = system.NewRenderSystem(g.cfg.Debug, levelSpec.FastPlatformSpeed)
	if levelSpec.Background != nil {
		g.render.Background = levelSpec.Background.Color
	}

	g.log.WithFields(logrus.Fields{
		"level":  levelSpec.Name,
		"player": player.String(),
	}).Info("level loaded")
	return nil
}

func (g *Game) Update() error {
	g.reloadPrefabs()

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.load(); err != nil {
			g.log.WithError(err).Error("restart level")
		}
	}

	g.scheduler.Update(g.world)
	return nil
}

// reloadPrefabs applies edited player tuning to the live controller. Level
// edits wait for a restart.
func (g *Game) reloadPrefabs() {
	if g.watcher == nil {
		return
	}
	for _, name := range g.watcher.Drain() {
		switch name {
		case "player.yaml":
			spec, err := prefabs.LoadPlayerSpec()
			if err != nil {
				g.log.WithError(err).Warn("player prefab rejected")
				continue
			}
			m, ok := ecs.Get(g.world, g.player, component.MotionComponent.Kind())
			if !ok || m.Controller == nil {
				continue
			}
			if err := m.Controller.SetTuning(spec.Tuning.Tuning()); err != nil {
				g.log.WithError(err).Warn("player tuning rejected")
				continue
			}
			g.log.Info("player tuning reloaded")
		default:
			g.log.WithField("file", name).Info("prefab changed; press R to restart")
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	if g.cfg.Debug {
		system.DrawPhysicsDebug(g.physics.Space(), g.world, screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}
