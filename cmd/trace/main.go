// Command trace runs the player through a scripted input sequence on a
// level prefab without opening a window and prints the motion state of
// every tick. It is meant for checking tuning changes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/prefabs"
	"github.com/sirupsen/logrus"
)

var errBadScript = errors.New("trace: bad script")

// step holds one scripted input for a number of ticks.
type step struct {
	input component.Input
	ticks int
}

// parseScript reads "right:30,jump+right:1,idle:10". Keys combine with '+'.
func parseScript(script string) ([]step, error) {
	var steps []step
	for _, part := range strings.Split(script, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		keys, count, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q has no tick count", errBadScript, part)
		}
		n, err := strconv.Atoi(count)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: %q tick count must be a positive integer", errBadScript, part)
		}

		var in component.Input
		for _, key := range strings.Split(keys, "+") {
			switch key {
			case "left":
				in.MoveLeft = true
			case "right":
				in.MoveRight = true
			case "jump":
				in.Jump = true
			case "attack":
				in.Attack = true
			case "idle":
			default:
				return nil, fmt.Errorf("%w: unknown key %q", errBadScript, key)
			}
		}
		steps = append(steps, step{input: in, ticks: n})
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: empty", errBadScript)
	}
	return steps, nil
}

func main() {
	levelName := flag.String("level", "level.yaml", "level prefab to load")
	prefabDir := flag.String("prefabs", prefabs.Dir, "directory checked for prefab overrides")
	script := flag.String("script", "idle:30,right:60,jump+right:1,right:40,attack:1,idle:20", "comma separated key:ticks steps")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	log := logrus.New()
	if level, err := logrus.ParseLevel(*logLevel); err == nil {
		log.SetLevel(level)
	}
	prefabs.Dir = *prefabDir

	if err := run(*levelName, *script, logrus.NewEntry(log)); err != nil {
		log.WithError(err).Fatal("trace failed")
	}
}

func run(levelName, script string, log *logrus.Entry) error {
	steps, err := parseScript(script)
	if err != nil {
		return err
	}
	levelSpec, err := prefabs.LoadLevelSpec(levelName)
	if err != nil {
		return err
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}

	dt := 1.0 / float64(ebiten.DefaultTPS)
	w := ecs.NewWorld()
	physics := system.NewPhysicsSystem(dt, levelSpec.FastPlatformSpeed, log)
	if err := entity.LoadLevelToWorld(w, levelSpec); err != nil {
		return err
	}
	player, err := entity.NewPlayerAt(w, physics, playerSpec, levelSpec.Spawn.X, levelSpec.Spawn.Y, log)
	if err != nil {
		return err
	}

	// same order as the game, minus keyboard input and drawing
	sched := ecs.NewScheduler(
		system.NewPlatformSystem(dt),
		physics,
		system.NewRepulsionSystem(),
		system.NewWeaponSystem(),
		system.NewMotionSystem(dt),
		system.NewHazardSystem(),
		system.NewDeathSystem(log),
		system.NewAnimationSystem(float64(ebiten.DefaultTPS)),
	)

	out := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(out, "tick\taction\tx\ty\tvx\tvy\tgrounded\tfacing\twall\tclip")

	tick := 0
	for _, s := range steps {
		for i := 0; i < s.ticks; i++ {
			input, ok := ecs.Get(w, player, component.InputComponent.Kind())
			if !ok {
				return fmt.Errorf("trace: player lost its input")
			}
			*input = s.input
			sched.Update(w)
			tick++

			m, _ := ecs.Get(w, player, component.MotionComponent.Kind())
			actor, _ := ecs.Get(w, player, component.ActorComponent.Kind())
			anim, _ := ecs.Get(w, player, component.AnimationComponent.Kind())
			t, _ := ecs.Get(w, player, component.TransformComponent.Kind())
			facing := "L"
			if actor.State.FacingRight {
				facing = "R"
			}
			fmt.Fprintf(out, "%d\t%s\t%.3f\t%.3f\t%.3f\t%.3f\t%v\t%s\t%v\t%s\n",
				tick, m.Last.Action, t.X, t.Y, m.Last.Velocity.X(), m.Last.Velocity.Y(),
				actor.State.Grounded, facing, actor.State.TouchingWall, anim.Current)

			if dead, ok := ecs.Get(w, player, component.DeadComponent.Kind()); ok {
				fmt.Fprintf(out, "died\t%s\n", dead.Cause)
				return out.Flush()
			}
		}
	}
	return out.Flush()
}
