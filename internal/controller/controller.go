package controller

import (
	"math"
	"math/rand"
	"time"

	"github.com/sethgrid/beagle/internal/fetch"
	"github.com/sethgrid/beagle/internal/kinematics"
	"github.com/sethgrid/beagle/internal/mood"
	"github.com/sethgrid/beagle/internal/particles"
	"github.com/sethgrid/beagle/internal/pet"
	"github.com/sethgrid/beagle/internal/sniff"
	"github.com/sethgrid/beagle/internal/sound"
	"go.uber.org/zap"
)

// MaxStep bounds a single Advance so a long pause does not teleport the pet.
const MaxStep = 100 * time.Millisecond

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Capabilities are device traits resolved once at startup.
type Capabilities struct {
	Coarse        bool // touch-only pointer
	ReducedMotion bool // Advance leaves the pet standing still
}

// Inputs are the read-only signals sampled for one frame. All timestamps
// share the clock of Now.
type Inputs struct {
	Now            time.Duration
	Pointer        kinematics.Vec
	HasPointer     bool
	PointerMovedAt time.Duration
	ScrollVelocity float64 // px/s, zero when there was no scroll this frame
	AudioPlaying   bool
	Theme          Theme
	Landmarks      []sniff.Landmark
}

// TransitionFunc observes state changes.
type TransitionFunc func(from, to pet.State, at time.Duration)

type sample struct {
	pos kinematics.Vec
	at  time.Duration
}

// Controller owns the pet's state, position and everything it drags along
// (ball, particles, gesture bookkeeping). It is not safe for concurrent use;
// the frame loop and the input handlers run on one goroutine.
type Controller struct {
	cfg     pet.PetConfig
	caps    Capabilities
	cues    sound.Cues
	rng     *rand.Rand
	log     *zap.Logger
	sniffer *sniff.Sniffer
	onTrans TransitionFunc

	width, height float64
	bounds        kinematics.Bounds

	state        pet.State
	stateElapsed time.Duration
	frame        int
	pos          kinematics.Vec
	facingLeft   bool
	now          time.Duration

	restSince   time.Duration
	paceTarget  float64
	sniffTarget *kinematics.Vec
	theme       Theme

	pressed      bool
	pressPos     kinematics.Vec
	grabOffset   kinematics.Vec
	samples      []sample
	pendingClick bool
	clickDue     time.Duration
	trickIndex   int
	tossVel      kinematics.Vec

	ball *fetch.Ball

	bubbles *particles.Pool[particles.Bubble]
	paws    *particles.Pool[particles.PawPrint]
	lastPaw kinematics.Vec
	pawSide particles.Side
}

// New creates a controller for a width x height viewport with the pet
// standing at the bottom centre.
func New(cfg pet.PetConfig, caps Capabilities, width, height float64, cues sound.Cues, rng *rand.Rand, log *zap.Logger) *Controller {
	cfg.FillDefaults()
	if cues == nil {
		cues = sound.Nop{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = zap.NewNop()
	}

	c := &Controller{
		cfg:   cfg,
		caps:  caps,
		cues:  cues,
		rng:   rng,
		log:   log,
		state: pet.StateIdle,
		sniffer: sniff.New(rng,
			pet.Seconds(cfg.SniffCooldown),
			pet.Seconds(cfg.SniffMinIdle),
			cfg.SniffChance),
		bubbles: particles.NewPool[particles.Bubble](particles.MaxBubbles),
		paws:    particles.NewPool[particles.PawPrint](particles.MaxPawPrints),
	}
	c.resize(width, height)
	c.pos = kinematics.Vec{X: c.bounds.Width / 2, Y: c.bounds.FloorY()}
	c.lastPaw = c.feet()
	c.paceTarget = c.pickPaceTarget()
	return c
}

// OnTransition registers fn to be called on every state change.
func (c *Controller) OnTransition(fn TransitionFunc) {
	c.onTrans = fn
}

// State returns the active state.
func (c *Controller) State() pet.State { return c.state }

// Position returns the sprite's top-left corner.
func (c *Controller) Position() kinematics.Vec { return c.pos }

// Place stands the pet on the floor at x.
func (c *Controller) Place(x float64) {
	c.pos = c.bounds.Clamp(kinematics.Vec{X: x, Y: c.bounds.FloorY()})
	c.lastPaw = c.feet()
}

// Resize adapts to a new viewport.
func (c *Controller) Resize(width, height float64) {
	c.resize(width, height)
	// the page reflowed: old prints and bubbles no longer sit on anything,
	// and the landmarks are new
	c.bubbles.Clear()
	c.paws.Clear()
	c.sniffer.Reset()
	c.pos = c.bounds.Clamp(c.pos)
	if c.state.Interruptible() && c.state != pet.StateReturnToBottom {
		c.pos.Y = c.bounds.FloorY()
	}
}

func (c *Controller) resize(width, height float64) {
	c.width, c.height = width, height
	c.bounds = kinematics.BoundsFor(width, height, pet.PetWidth, pet.PetHeight)
	c.clampPaceTarget()
}

// Advance runs one frame. It never fails; dt is clamped to [0, MaxStep].
// With reduced motion it does nothing.
func (c *Controller) Advance(dt time.Duration, in Inputs) {
	if c.caps.ReducedMotion {
		return
	}
	if dt < 0 {
		dt = 0
	}
	if dt > MaxStep {
		dt = MaxStep
	}
	secs := dt.Seconds()

	c.now = in.Now
	c.stateElapsed += dt

	c.firePendingClick()
	c.stepBall(secs)
	c.step(secs, in)
	c.carryBall()

	c.frame, _ = pet.FrameIndex(c.cfg.Animation(c.state), c.stateElapsed)
	c.bubbles.Update(func(b *particles.Bubble) bool { return particles.StepBubble(b, secs) })
	c.paws.Update(func(p *particles.PawPrint) bool { return particles.StepPaw(p, secs) })
}

func (c *Controller) step(dt float64, in Inputs) {
	// (1) locked states run to completion
	if !c.state.Interruptible() {
		c.stepLocked(dt, in)
		return
	}

	themeChanged := in.Theme != "" && c.theme != "" && in.Theme != c.theme
	if in.Theme != "" {
		c.theme = in.Theme
	}

	switch {
	// (2) scroll spike
	case in.ScrollVelocity > c.cfg.TumbleSpeed:
		c.setState(pet.StateTumble)
		return
	// (3) theme flip
	case themeChanged:
		c.setState(pet.StateBark)
		return
	// (4) ball waiting on the ground
	case c.ball != nil && c.ball.Landed():
		c.sniffTarget = nil
		c.setState(pet.StateFetchRun)
		return
	}

	if c.state == pet.StateReturnToBottom {
		res := kinematics.ReturnToBottom(c.pos, c.bounds, c.cfg.WalkSpeed, dt)
		c.pos = res.Pos
		if res.Arrived {
			c.setState(pet.StateIdle)
		}
		return
	}

	// (5) everyday roaming
	c.roam(dt, in)
}

func (c *Controller) stepLocked(dt float64, in Inputs) {
	switch c.state {
	case pet.StateDrag:
		// follows the pointer in PointerMove; released in PointerUp

	case pet.StateToss:
		res := kinematics.Toss(c.pos, c.tossVel, c.bounds, dt)
		c.pos, c.tossVel = res.Pos, res.Vel
		if res.Vel.X != 0 {
			c.facingLeft = res.Vel.X < 0
		}
		if res.Settled {
			c.tossVel = kinematics.Vec{}
			c.setState(pet.StateReturnToBottom)
		}

	case pet.StateFetchRun:
		if c.ball == nil {
			c.finish()
			return
		}
		if c.moveTo(c.fetchGoal(), c.cfg.RunSpeed*c.cfg.FetchSpeedMult, dt) {
			c.ball.Pickup()
			c.setState(pet.StateFetchReturn)
		}

	case pet.StateFetchReturn:
		goal := c.pos
		if in.HasPointer {
			goal = c.bounds.Clamp(in.Pointer.Sub(kinematics.Vec{X: pet.PetWidth / 2, Y: pet.PetHeight / 2}))
		}
		if c.moveTo(goal, c.cfg.RunSpeed*c.cfg.FetchSpeedMult, dt) {
			if c.ball != nil {
				c.ball.Carry(c.mouth())
				c.ball.Fade()
			}
			c.emit(mood.EventFetched)
			c.finish()
		}

	default:
		// one-shot tricks, tumble, bark, sniff
		if _, done := pet.FrameIndex(c.cfg.Animation(c.state), c.stateElapsed); done {
			c.finish()
		}
	}
}

// finish leaves a completed locked state.
func (c *Controller) finish() {
	if c.pos.Y < c.bounds.FloorY()-0.5 {
		c.setState(pet.StateReturnToBottom)
		return
	}
	c.pos.Y = c.bounds.FloorY()
	c.setState(pet.StateIdle)
}

func (c *Controller) roam(dt float64, in Inputs) {
	cursorActive := in.HasPointer && in.Now-in.PointerMovedAt < pet.Seconds(c.cfg.CursorActive)

	var target float64
	hasTarget, sniffing := false, false
	switch {
	case cursorActive:
		c.sniffTarget = nil
		target = clamp(in.Pointer.X-pet.PetWidth/2, 0, c.bounds.Width)
		hasTarget = true
	case in.AudioPlaying || c.caps.Coarse:
		c.sniffTarget = nil
		c.clampPaceTarget()
		if math.Abs(c.pos.X-c.paceTarget) < c.cfg.CloseThreshold {
			c.paceTarget = c.pickPaceTarget()
		}
		target = c.paceTarget
		hasTarget = true
	case c.sniffTarget != nil:
		target = c.sniffTarget.X
		hasTarget, sniffing = true, true
	}

	if hasTarget {
		dist := math.Abs(target - c.pos.X)
		switch {
		case dist > c.cfg.RunThreshold:
			c.setState(pet.StateRun)
		case dist > c.cfg.CloseThreshold:
			c.setState(pet.StateWalk)
		case sniffing:
			c.sniffTarget = nil
			c.setState(pet.StateSniff)
			return
		case c.state == pet.StateWalk || c.state == pet.StateRun:
			c.setState(pet.StateIdle)
		case cursorActive && (c.state == pet.StateSit || c.state == pet.StateSleep):
			c.setState(pet.StateIdle)
		}

		if c.state == pet.StateWalk || c.state == pet.StateRun {
			speed := c.cfg.WalkSpeed
			if c.state == pet.StateRun {
				speed = c.cfg.RunSpeed
			}
			c.moveTo(kinematics.Vec{X: target, Y: c.pos.Y}, speed, dt)
		}
		return
	}

	if c.state == pet.StateWalk || c.state == pet.StateRun {
		c.setState(pet.StateIdle)
	}

	since := c.restSince
	if in.HasPointer && in.PointerMovedAt > since {
		since = in.PointerMovedAt
	}
	restFor := in.Now - since
	sit := pet.Seconds(c.cfg.SitDelay)

	switch {
	case c.state == pet.StateIdle && restFor >= sit:
		c.setState(pet.StateSit)
	case c.state == pet.StateSit && restFor >= sit+pet.Seconds(c.cfg.SleepDelay):
		c.setState(pet.StateSleep)
	case c.state == pet.StateIdle && c.cfg.SniffEnabled && !c.caps.Coarse && c.sniffer.ShouldSniff(in.Now, restFor, dt):
		goal, ok := sniff.Nearest(c.pos.X, in.Landmarks, c.width, c.height, pet.PetWidth, pet.PetHeight)
		if !ok {
			return
		}
		c.sniffer.Mark(in.Now)
		c.sniffTarget = &goal
		c.setState(pet.StateWalk)
	}
}

// moveTo seeks goal, updating facing and paw prints. It reports arrival.
func (c *Controller) moveTo(goal kinematics.Vec, speed, dt float64) bool {
	res := kinematics.Seek(c.pos, goal, speed, dt)
	if res.Dir.X != 0 {
		c.facingLeft = res.Dir.X < 0
	}
	c.pos = c.bounds.Clamp(res.Pos)
	c.leavePaw()
	return res.Arrived
}

func (c *Controller) leavePaw() {
	if c.pos.Y < c.bounds.FloorY()-0.5 {
		return
	}
	feet := c.feet()
	if !particles.ShouldEmitPaw(c.lastPaw, feet) {
		return
	}
	c.paws.Push(particles.NewPawPrint(c.rng, feet, c.pawSide, c.facingLeft))
	c.pawSide = c.pawSide.Other()
	c.lastPaw = feet
}

func (c *Controller) setState(s pet.State) {
	if c.state == s {
		return
	}
	from := c.state
	c.state = s
	c.stateElapsed = 0
	c.frame = 0
	if s.Resting() && !from.Resting() {
		c.restSince = c.now
	}

	c.log.Debug("state change",
		zap.String("from", string(from)),
		zap.String("to", string(s)),
		zap.Duration("at", c.now))

	switch s {
	case pet.StateJump, pet.StateBackflip:
		c.cues.Jump()
	case pet.StateBark:
		c.cues.Bark()
		c.emit(mood.EventBark)
	case pet.StateTumble:
		c.cues.Whimper()
		c.emit(mood.EventTumble)
	case pet.StateDrag:
		c.cues.Whimper()
	case pet.StateToss:
		c.emit(mood.EventToss)
	case pet.StateFetchRun:
		c.cues.Pant()
	case pet.StateSleep:
		c.emit(mood.EventSleep)
	case pet.StateSniff:
		c.emit(mood.EventSniff)
	}

	if c.onTrans != nil {
		c.onTrans(from, s, c.now)
	}
}

func (c *Controller) emit(e mood.Event) {
	head := kinematics.Vec{X: c.pos.X + pet.PetWidth/2, Y: c.pos.Y - 4}
	c.bubbles.Push(particles.NewBubble(c.rng, mood.Glyph(e), head))
}

func (c *Controller) pickPaceTarget() float64 {
	margin := c.cfg.PaceMargin
	x := margin + c.rng.Float64()*math.Max(0, c.width-margin*2)
	return clamp(x, 0, c.bounds.Width)
}

func (c *Controller) clampPaceTarget() {
	if c.paceTarget < 0 || c.paceTarget > c.bounds.Width {
		c.paceTarget = c.pickPaceTarget()
	}
}

func (c *Controller) feet() kinematics.Vec {
	return kinematics.Vec{X: c.pos.X + pet.PetWidth/2, Y: c.pos.Y + pet.PetHeight}
}

func (c *Controller) mouth() kinematics.Vec {
	x := c.pos.X + pet.PetWidth*0.85
	if c.facingLeft {
		x = c.pos.X + pet.PetWidth*0.15
	}
	return kinematics.Vec{X: x, Y: c.pos.Y + pet.PetHeight*0.45}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
