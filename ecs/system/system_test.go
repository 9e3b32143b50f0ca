package system

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/motion"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

const testDT = 1.0 / 60

func nullLog() *logrus.Entry {
	logger, _ := test.NewNullLogger()
	return logrus.NewEntry(logger)
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func addSolid(t *testing.T, w *ecs.World, x, y, width, height float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: width, Height: height})
	mustAdd(t, w, e, component.SolidComponent.Kind(), &component.Solid{})
	return e
}

func addPlatform(t *testing.T, w *ecs.World, from, to mgl64.Vec2, speed float64) ecs.Entity {
	t.Helper()
	e := addSolid(t, w, from.X(), from.Y(), 4, 0.5)
	mustAdd(t, w, e, component.PlatformComponent.Kind(), &component.Platform{
		FromX: from.X(), FromY: from.Y(), ToX: to.X(), ToY: to.Y(), Speed: speed, Forward: true,
	})
	return e
}

// addActor builds a 0.8x1.6 actor centred at (x, y) with a live controller.
func addActor(t *testing.T, w *ecs.World, ps *PhysicsSystem, x, y float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 0.8, Height: 1.6})
	mustAdd(t, w, e, component.ContactsComponent.Kind(), &component.Contacts{})
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, e, component.ActorComponent.Kind(), &component.Actor{State: motion.ActorState{FacingRight: true}})
	mustAdd(t, w, e, component.WeaponComponent.Kind(), &component.Weapon{WindowTicks: 3})
	mustAdd(t, w, e, component.AnimationComponent.Kind(), &component.Animation{Cues: map[string]bool{}})

	ctrl, err := motion.NewController(ps.Probe(w, e), NewWeaponSink(w, e), motion.DefaultTuning(),
		motion.WithCueSink(NewAnimationCues(w, e)),
		motion.WithRand(rand.New(rand.NewPCG(3, 4))),
		motion.WithLogger(nullLog()),
	)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	mustAdd(t, w, e, component.MotionComponent.Kind(), &component.Motion{Controller: ctrl})
	return e
}

func transformOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no transform", e)
	}
	return tr
}

func contactsOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.Contacts {
	t.Helper()
	c, ok := ecs.Get(w, e, component.ContactsComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no contacts", e)
	}
	return c
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestProbeMoveResolvesAgainstSolids(t *testing.T) {
	cases := []struct {
		name         string
		start        mgl64.Vec2
		delta        mgl64.Vec2
		want         mgl64.Vec2
		wantGrounded bool
		wantWall     bool
	}{
		{"lands_on_ground", mgl64.Vec2{0, 2}, mgl64.Vec2{0, -5}, mgl64.Vec2{0, 0.8}, true, false},
		{"free_fall", mgl64.Vec2{0, 5}, mgl64.Vec2{0, -1}, mgl64.Vec2{0, 4}, false, false},
		{"stops_at_wall", mgl64.Vec2{0, 0.8}, mgl64.Vec2{5, 0}, mgl64.Vec2{2.1, 0.8}, true, true},
		{"walks_away_from_wall", mgl64.Vec2{2.1, 0.8}, mgl64.Vec2{-1, 0}, mgl64.Vec2{1.1, 0.8}, true, false},
		{"bonks_ceiling", mgl64.Vec2{-6, 0.8}, mgl64.Vec2{0, 5}, mgl64.Vec2{-6, 2.4}, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			ps := NewPhysicsSystem(testDT, 4, nullLog())
			addSolid(t, w, 0, -0.5, 20, 1)  // ground, top at 0
			addSolid(t, w, 3, 3, 1, 6)      // wall, left face at 2.5
			addSolid(t, w, -6, 3.5, 2, 0.6) // low ceiling, bottom at 3.2
			e := addActor(t, w, ps, tc.start.X(), tc.start.Y())
			ps.Update(w)

			probe := ps.Probe(w, e)
			grounded := probe.Move(tc.delta)
			got := probe.Position()
			if !near(got.X(), tc.want.X()) || !near(got.Y(), tc.want.Y()) {
				t.Fatalf("position = %v, want %v", got, tc.want)
			}
			if grounded != tc.wantGrounded {
				t.Fatalf("grounded = %v, want %v", grounded, tc.wantGrounded)
			}
			if wall := contactsOf(t, w, e).TouchingWall; wall != tc.wantWall {
				t.Fatalf("touching wall = %v, want %v", wall, tc.wantWall)
			}

			moved := got.Sub(tc.start)
			if v := probe.Velocity(); !near(v.X(), moved.X()/testDT) || !near(v.Y(), moved.Y()/testDT) {
				t.Fatalf("velocity = %v, want displacement over one step", v)
			}
		})
	}
}

func TestPlatformCarriesRider(t *testing.T) {
	cases := []struct {
		name     string
		to       mgl64.Vec2
		speed    float64
		wantFast bool
	}{
		{"slow_horizontal", mgl64.Vec2{10, 0}, 2, false},
		{"fast_vertical", mgl64.Vec2{0, 10}, 5, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			ps := NewPhysicsSystem(testDT, 4, nullLog())
			platforms := NewPlatformSystem(testDT)
			platform := addPlatform(t, w, mgl64.Vec2{0, 0}, tc.to, tc.speed)
			// platform top is at 0.25
			e := addActor(t, w, ps, 0, 0.25+0.8)
			ps.Update(w)

			if !ps.Probe(w, e).Move(mgl64.Vec2{0, -0.1}) {
				t.Fatalf("actor should stand on the platform")
			}
			contacts := contactsOf(t, w, e)
			if ecs.Entity(contacts.Riding) != platform {
				t.Fatalf("riding = %v, want %v", contacts.Riding, platform)
			}
			if contacts.RidingFastPlatform != tc.wantFast {
				t.Fatalf("fast = %v, want %v", contacts.RidingFastPlatform, tc.wantFast)
			}

			for i := 0; i < 30; i++ {
				platforms.Update(w)
				ps.Update(w)
			}

			pt := transformOf(t, w, platform)
			at := transformOf(t, w, e)
			if !near(at.X, pt.X) || !near(at.Y, pt.Y+0.25+0.8) {
				t.Fatalf("rider at (%v, %v), platform at (%v, %v)", at.X, at.Y, pt.X, pt.Y)
			}
			if pt.X == 0 && pt.Y == 0 {
				t.Fatalf("platform never moved")
			}
		})
	}
}

func TestIdleRiderHoldsItsPlaceOnPlatform(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(testDT, 4, nullLog())
	platform := addPlatform(t, w, mgl64.Vec2{0, 0}, mgl64.Vec2{10, 0}, 2)
	e := addActor(t, w, ps, 0, 0.25+0.8)

	sched := ecs.NewScheduler(NewPlatformSystem(testDT), ps, NewMotionSystem(testDT))
	sched.Update(w)
	if ecs.Entity(contactsOf(t, w, e).Riding) != platform {
		t.Fatalf("actor should land on the platform")
	}
	offset := transformOf(t, w, e).X - transformOf(t, w, platform).X

	for i := 0; i < 60; i++ {
		sched.Update(w)
	}

	m, _ := ecs.Get(w, e, component.MotionComponent.Kind())
	if m.Last.Action != motion.ActionIdle {
		t.Fatalf("action = %s, want idle", m.Last.Action)
	}
	if got := transformOf(t, w, e).X - transformOf(t, w, platform).X; !near(got, offset) {
		t.Fatalf("rider drifted on the platform: offset %v, started at %v", got, offset)
	}
	if transformOf(t, w, platform).X < 1 {
		t.Fatalf("platform never moved")
	}
}

func TestPlatformReversesAtEndpoints(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(testDT, 4, nullLog())
	platforms := NewPlatformSystem(testDT)
	e := addPlatform(t, w, mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, 6)
	ps.Update(w)

	// 1 unit at 6 units/s is ten steps
	for i := 0; i < 12; i++ {
		platforms.Update(w)
		ps.Update(w)
	}
	p, _ := ecs.Get(w, e, component.PlatformComponent.Kind())
	if p.Forward {
		t.Fatalf("platform should be heading back after reaching its endpoint")
	}
	if x := transformOf(t, w, e).X; x > 1+1e-9 {
		t.Fatalf("platform overshot to %v", x)
	}
}

func TestHazardsKillActors(t *testing.T) {
	cases := []struct {
		name      string
		y         float64
		wantCause string
	}{
		{"hazard_overlap", 0.8, "hazard"},
		{"below_kill_plane", -20, "fell"},
		{"safe", 5, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			ps := NewPhysicsSystem(testDT, 4, nullLog())
			e := addActor(t, w, ps, 0, tc.y)

			spike := w.CreateEntity()
			mustAdd(t, w, spike, component.TransformComponent.Kind(), &component.Transform{X: 0, Y: 0.25})
			mustAdd(t, w, spike, component.HazardComponent.Kind(), &component.Hazard{Width: 1, Height: 0.5})
			mustAdd(t, w, w.CreateEntity(), component.KillPlaneComponent.Kind(), &component.KillPlane{Y: -10})

			logger, hook := test.NewNullLogger()
			ecs.NewScheduler(NewHazardSystem(), NewDeathSystem(logrus.NewEntry(logger))).Update(w)

			dead, isDead := ecs.Get(w, e, component.DeadComponent.Kind())
			m, _ := ecs.Get(w, e, component.MotionComponent.Kind())
			if tc.wantCause == "" {
				if isDead || !m.Controller.Enabled() {
					t.Fatalf("actor should be alive")
				}
				return
			}
			if !isDead || dead.Cause != tc.wantCause {
				t.Fatalf("dead = %v %+v, want cause %q", isDead, dead, tc.wantCause)
			}
			if m.Controller.Enabled() {
				t.Fatalf("controller should be disabled")
			}
			last := hook.LastEntry()
			if last == nil || last.Message != "actor died" || last.Data["cause"] != tc.wantCause {
				t.Fatalf("missing death log entry, got %+v", last)
			}
		})
	}
}

func TestDeathIsReportedOnce(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(testDT, 4, nullLog())
	e := addActor(t, w, ps, 0, 0)

	logger, hook := test.NewNullLogger()
	death := NewDeathSystem(logrus.NewEntry(logger))
	for i := 0; i < 2; i++ {
		w.Events().Push(ecs.Event{Type: ecs.EventActorDied, Data: ecs.ActorDied{Entity: e, Cause: "hazard"}})
		death.Update(w)
	}
	if n := len(hook.AllEntries()); n != 1 {
		t.Fatalf("logged %d deaths, want 1", n)
	}
}

func TestRepulsorPushesActorAway(t *testing.T) {
	cases := []struct {
		name     string
		actorX   float64
		wantSign float64
	}{
		{"left_of_repulsor", -0.3, -1},
		{"right_of_repulsor", 0.3, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			ps := NewPhysicsSystem(testDT, 4, nullLog())
			e := addActor(t, w, ps, tc.actorX, 5)
			rep := w.CreateEntity()
			mustAdd(t, w, rep, component.TransformComponent.Kind(), &component.Transform{X: 0, Y: 5})
			mustAdd(t, w, rep, component.RepulsorComponent.Kind(), &component.Repulsor{Width: 0.5, Height: 1, MaxVelocity: 10})

			ps.Update(w)
			NewRepulsionSystem().Update(w)

			if ecs.Has(w, e, component.RepulsionRequestComponent.Kind()) {
				t.Fatalf("request should be consumed")
			}
			m, _ := ecs.Get(w, e, component.MotionComponent.Kind())
			if !m.Controller.Repulsed() {
				t.Fatalf("controller should be repulsed")
			}

			actor, _ := ecs.Get(w, e, component.ActorComponent.Kind())
			m.Controller.Tick(testDT, &actor.State)
			if v := m.Controller.Velocity(); v.X()*tc.wantSign < 2 || v.Y() != 0 {
				t.Fatalf("velocity = %v, want a horizontal shove with sign %v", v, tc.wantSign)
			}
		})
	}
}

func TestClipFor(t *testing.T) {
	cases := []struct {
		cues map[string]bool
		want string
	}{
		{map[string]bool{}, "idle"},
		{map[string]bool{"run": true}, "run"},
		{map[string]bool{"run": true, "jump": true}, "jump"},
		{map[string]bool{"attack": true, "run": true}, "attack"},
		{map[string]bool{"attack": true, "jump": true}, "jump_attack"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			if got := clipFor(tc.cues); got != tc.want {
				t.Fatalf("clipFor(%v) = %q, want %q", tc.cues, got, tc.want)
			}
		})
	}
}

func TestAnimationAdvancesFrames(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.AnimationComponent.Kind(), &component.Animation{
		Defs: map[string]component.AnimationDef{
			"run":    {Name: "run", FrameCount: 2, FPS: 30, Loop: true},
			"attack": {Name: "attack", FrameCount: 2, FPS: 30},
		},
		Cues: map[string]bool{"run": true},
	})
	sys := NewAnimationSystem(60)

	anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())
	frames := []int{}
	for i := 0; i < 5; i++ {
		sys.Update(w)
		frames = append(frames, anim.Frame)
	}
	// switching clips restarts at frame 0; 30 fps at 60 tps is two ticks a frame
	want := []int{0, 1, 1, 0, 0}
	for i := range want {
		if frames[i] != want[i] {
			t.Fatalf("frames = %v, want %v", frames, want)
		}
	}

	anim.Cues["attack"] = true
	for i := 0; i < 10; i++ {
		sys.Update(w)
	}
	if anim.Current != "attack" || anim.Frame != 1 || anim.Playing {
		t.Fatalf("one-shot clip should hold its last frame, got %+v", anim)
	}
}

func TestWeaponSinkOpensAttackWindow(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.WeaponComponent.Kind(), &component.Weapon{WindowTicks: 2})
	sink := NewWeaponSink(w, e)
	weapons := NewWeaponSystem()

	sink.Dispatch(motion.CategoryRun)
	weapon, _ := ecs.Get(w, e, component.WeaponComponent.Kind())
	if weapon.Swings != 0 || weapon.Remaining != 0 || weapon.LastCategory != motion.CategoryRun {
		t.Fatalf("run should not swing: %+v", weapon)
	}

	sink.Dispatch(motion.CategoryJumpAttack)
	if weapon.Swings != 1 || weapon.Remaining != 2 {
		t.Fatalf("attack should open the window: %+v", weapon)
	}
	weapons.Update(w)
	weapons.Update(w)
	weapons.Update(w)
	if weapon.Remaining != 0 {
		t.Fatalf("window should close, remaining %d", weapon.Remaining)
	}
}

func TestMotionSystemRunsActorAcrossGround(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(testDT, 4, nullLog())
	addSolid(t, w, 0, -0.5, 100, 1)
	e := addActor(t, w, ps, 0, 0.8)

	input, _ := ecs.Get(w, e, component.InputComponent.Kind())
	input.MoveRight = true

	sched := ecs.NewScheduler(ps, NewMotionSystem(testDT), NewAnimationSystem(60))
	for i := 0; i < 60; i++ {
		sched.Update(w)
	}

	m, _ := ecs.Get(w, e, component.MotionComponent.Kind())
	actor, _ := ecs.Get(w, e, component.ActorComponent.Kind())
	weapon, _ := ecs.Get(w, e, component.WeaponComponent.Kind())
	anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())
	tr := transformOf(t, w, e)

	if m.Last.Action != motion.ActionRun || weapon.LastCategory != motion.CategoryRun {
		t.Fatalf("action = %s, weapon saw %s, want run", m.Last.Action, weapon.LastCategory)
	}
	if !actor.State.Grounded || !actor.State.MovingHorizontally || !actor.State.FacingRight {
		t.Fatalf("unexpected actor state %+v", actor.State)
	}
	if tr.X < 3 || !near(tr.Y, 0.8) {
		t.Fatalf("actor at (%v, %v), want it running along the ground", tr.X, tr.Y)
	}
	if anim.Current != "run" {
		t.Fatalf("clip = %q, want run", anim.Current)
	}

	// turning around flips the sprite
	input.MoveRight = false
	input.MoveLeft = true
	sched.Update(w)
	if tr.ScaleX != -1 || actor.State.FacingRight {
		t.Fatalf("scaleX = %v facingRight = %v after turning left", tr.ScaleX, actor.State.FacingRight)
	}
}

func TestMotionSystemSkipsDeadActors(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(testDT, 4, nullLog())
	e := addActor(t, w, ps, 0, 5)
	mustAdd(t, w, e, component.DeadComponent.Kind(), &component.Dead{Cause: "test"})

	ecs.NewScheduler(ps, NewMotionSystem(testDT)).Update(w)
	if y := transformOf(t, w, e).Y; y != 5 {
		t.Fatalf("dead actor moved to y=%v", y)
	}
}
