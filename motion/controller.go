package motion

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

// Input is the set of latched intents. Moves are consumed when acted on; jump
// and attack stay latched until the pipeline consumes them.
type Input struct {
	MoveRight bool
	MoveLeft  bool
	Jump      bool
	Attack    bool
}

func (in Input) merge(other Input) Input {
	return Input{
		MoveRight: in.MoveRight || other.MoveRight,
		MoveLeft:  in.MoveLeft || other.MoveLeft,
		Jump:      in.Jump || other.Jump,
		Attack:    in.Attack || other.Attack,
	}
}

// Result summarises one tick for the caller.
type Result struct {
	Action        Action
	Category      Category
	Velocity      mgl64.Vec2
	Grounded      bool
	FacingRight   bool
	FacingChanged bool
}

var _ Creature = (*Controller)(nil)

// Controller turns latched intents and contact feedback into actor motion.
// It is not safe for concurrent use; all calls belong on the simulation
// thread.
type Controller struct {
	probe  ContactProbe
	sink   ActionSink
	cues   CueSink
	tuning Tuning
	log    *logrus.Entry

	scheduler     *Scheduler
	ownsScheduler bool
	rng           *rand.Rand

	velocity                  mgl64.Vec2
	normalizedHorizontalSpeed float64
	input                     Input
	facingRight               bool
	scaleX                    float64
	previousX                 float64
	previousY                 float64
	repulse                   repulsion
	action                    Action
	cueState                  map[Cue]bool
	facingListeners           []func(facingRight bool)
	enabled                   bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithCueSink routes animation cue changes to sink.
func WithCueSink(sink CueSink) Option {
	return func(c *Controller) { c.cues = sink }
}

// WithScheduler shares a simulation-wide scheduler. The caller advances it;
// without this option the controller owns one and advances it every tick.
func WithScheduler(s *Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.scheduler = s
			c.ownsScheduler = false
		}
	}
}

// WithRand sets the source for repulsion randomness.
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// WithLogger sets the controller's log entry.
func WithLogger(entry *logrus.Entry) Option {
	return func(c *Controller) {
		if entry != nil {
			c.log = entry
		}
	}
}

// WithFacingRight sets the initial facing and sprite orientation.
func WithFacingRight(right bool) Option {
	return func(c *Controller) {
		c.facingRight = right
		if right {
			c.scaleX = 1
		} else {
			c.scaleX = -1
		}
	}
}

// NewController binds a controller to its collision probe and action sink.
func NewController(probe ContactProbe, sink ActionSink, tuning Tuning, opts ...Option) (*Controller, error) {
	if probe == nil {
		return nil, fmt.Errorf("motion: new controller: nil contact probe")
	}
	if sink == nil {
		return nil, fmt.Errorf("motion: new controller: nil action sink")
	}
	if err := tuning.Validate(); err != nil {
		return nil, fmt.Errorf("motion: new controller: %w", err)
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Controller{
		probe:         probe,
		sink:          sink,
		tuning:        tuning,
		log:           logrus.NewEntry(discard),
		scheduler:     NewScheduler(),
		ownsScheduler: true,
		rng:           rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		facingRight:   true,
		scaleX:        1,
		cueState:      make(map[Cue]bool, 3),
		enabled:       true,
	}
	for _, opt := range opts {
		opt(c)
	}

	pos := probe.Position()
	c.previousX = pos.X()
	c.previousY = pos.Y()
	c.velocity = probe.Velocity()
	return c, nil
}

func (c *Controller) RequestMoveRight() {
	if c.enabled {
		c.input.MoveRight = true
	}
}

func (c *Controller) RequestMoveLeft() {
	if c.enabled {
		c.input.MoveLeft = true
	}
}

func (c *Controller) RequestJump() {
	if c.enabled {
		c.input.Jump = true
	}
}

func (c *Controller) RequestAttack() {
	if c.enabled {
		c.input.Attack = true
	}
}

// OnFacingChanged registers fn to be told about every committed facing change.
func (c *Controller) OnFacingChanged(fn func(facingRight bool)) {
	if fn != nil {
		c.facingListeners = append(c.facingListeners, fn)
	}
}

// Disable stops the controller for good. Ticks and requests are ignored
// afterwards; a respawned actor gets a new controller.
func (c *Controller) Disable() {
	if !c.enabled {
		return
	}
	c.enabled = false
	c.input = Input{}
	if c.repulse.timer != 0 {
		c.scheduler.Cancel(c.repulse.timer)
		c.repulse.timer = 0
	}
	c.repulse.clear()
	c.log.Info("motion controller disabled")
}

func (c *Controller) Enabled() bool { return c.enabled }

// SetTuning swaps the tuning after validating it.
func (c *Controller) SetTuning(t Tuning) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("motion: set tuning: %w", err)
	}
	c.tuning = t
	return nil
}

func (c *Controller) Tuning() Tuning            { return c.tuning }
func (c *Controller) Velocity() mgl64.Vec2      { return c.velocity }
func (c *Controller) Action() Action            { return c.action }
func (c *Controller) FacingRight() bool         { return c.facingRight }
func (c *Controller) Pending() Input            { return c.input }
func (c *Controller) Scheduler() *Scheduler     { return c.scheduler }
func (c *Controller) HorizontalIntent() float64 { return c.normalizedHorizontalSpeed }
func (c *Controller) Previous() (x, y float64)  { return c.previousX, c.previousY }

// Cue reports the last value sent for cue, and whether one was sent at all.
func (c *Controller) Cue(cue Cue) (on, known bool) {
	on, known = c.cueState[cue]
	return on, known
}

// ScaleX is the sign of the sprite's horizontal scale.
func (c *Controller) ScaleX() float64 { return c.scaleX }

// Tick runs the pipeline once. state is the actor's shared record for this
// tick and must not be nil.
func (c *Controller) Tick(dt float64, state *ActorState) Result {
	if !c.enabled {
		return Result{Velocity: c.velocity, FacingRight: c.facingRight}
	}
	if state == nil {
		panic("motion: tick without actor state")
	}

	if c.ownsScheduler {
		c.scheduler.Advance(dt)
	}

	f := frame{
		dt:       dt,
		state:    state,
		in:       c.input,
		grounded: c.probe.Grounded(),
	}
	c.input = Input{}
	c.action = ActionNone

	for _, s := range pipeline {
		s.run(c, &f)
	}

	c.input = f.in.merge(c.input)

	return Result{
		Action:        c.action,
		Category:      f.category,
		Velocity:      c.velocity,
		Grounded:      f.grounded,
		FacingRight:   c.facingRight,
		FacingChanged: f.facingChanged,
	}
}

func (c *Controller) setCue(cue Cue, on bool) {
	if prev, ok := c.cueState[cue]; ok && prev == on {
		return
	}
	c.cueState[cue] = on
	if c.cues != nil {
		c.cues.SetCue(cue, on)
	}
}

func (c *Controller) notifyFacing(right bool) {
	c.log.WithField("facing_right", right).Debug("facing changed")
	for _, fn := range c.facingListeners {
		fn(right)
	}
}
