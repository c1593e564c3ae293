package controller

import (
	"math/rand"
	"testing"
	"time"

	"github.com/sethgrid/beagle/internal/fetch"
	"github.com/sethgrid/beagle/internal/kinematics"
	"github.com/sethgrid/beagle/internal/pet"
	"github.com/sethgrid/beagle/internal/sniff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const tick = 10 * time.Millisecond

type transition struct {
	From, To pet.State
	At       time.Duration
}

type cueCounter struct {
	bark, jump, whimper, pant int
}

func (c *cueCounter) Bark()    { c.bark++ }
func (c *cueCounter) Jump()    { c.jump++ }
func (c *cueCounter) Whimper() { c.whimper++ }
func (c *cueCounter) Pant()    { c.pant++ }

type harness struct {
	t     *testing.T
	c     *Controller
	in    Inputs
	now   time.Duration
	cues  *cueCounter
	trans []transition
}

func newHarness(t *testing.T, cfg pet.PetConfig, w, h float64) *harness {
	t.Helper()
	cues := &cueCounter{}
	hs := &harness{
		t:    t,
		c:    New(cfg, Capabilities{}, w, h, cues, rand.New(rand.NewSource(7)), zaptest.NewLogger(t)),
		cues: cues,
	}
	hs.c.OnTransition(func(from, to pet.State, at time.Duration) {
		hs.trans = append(hs.trans, transition{from, to, at})
	})
	return hs
}

func quietConfig() pet.PetConfig {
	cfg := pet.DefaultConfig()
	cfg.SniffEnabled = false
	return cfg
}

func (h *harness) frame() {
	h.now += tick
	h.in.Now = h.now
	h.c.Advance(tick, h.in)
}

func (h *harness) run(d time.Duration) {
	for end := h.now + d; h.now < end; {
		h.frame()
	}
}

// runUntil advances until the controller reaches s, failing after limit.
func (h *harness) runUntil(s pet.State, limit time.Duration) {
	h.t.Helper()
	for end := h.now + limit; h.now < end; {
		h.frame()
		if h.c.State() == s {
			return
		}
	}
	h.t.Fatalf("never reached %s, stuck in %s", s, h.c.State())
}

func (h *harness) centre() kinematics.Vec {
	return h.c.Position().Add(kinematics.Vec{X: pet.PetWidth / 2, Y: pet.PetHeight / 2})
}

func (h *harness) click() {
	p := h.centre()
	h.c.PointerDown(p, h.now)
	h.c.PointerUp(p, h.now)
}

func (h *harness) entered() []pet.State {
	var out []pet.State
	for _, tr := range h.trans {
		out = append(out, tr.To)
	}
	return out
}

func TestStartsIdleOnTheFloor(t *testing.T) {
	h := newHarness(t, quietConfig(), 1280, 720)
	assert.Equal(t, pet.StateIdle, h.c.State())
	assert.Equal(t, 720.0-pet.PetHeight, h.c.Position().Y)
}

func TestJumpRunsToCompletionDespiteScrollSpike(t *testing.T) {
	h := newHarness(t, quietConfig(), 1280, 720)
	h.click()

	h.runUntil(pet.StateJump, 300*time.Millisecond)
	assert.Equal(t, 1, h.cues.jump)
	started := h.now

	h.in.ScrollVelocity = 5000
	for h.now-started < 390*time.Millisecond {
		h.frame()
		require.Equal(t, pet.StateJump, h.c.State(), "left jump after %v", h.now-started)
	}
	h.frame()
	assert.Equal(t, pet.StateIdle, h.c.State())

	// the spike is only honoured once the pet is interruptible again
	h.frame()
	assert.Equal(t, pet.StateTumble, h.c.State())
}

func TestRestTimers(t *testing.T) {
	h := newHarness(t, quietConfig(), 1280, 720)
	h.in.HasPointer = true
	h.in.Pointer = h.centre()
	h.in.PointerMovedAt = 0

	h.run(23500 * time.Millisecond)

	assert.Equal(t, []transition{
		{pet.StateIdle, pet.StateSit, 8 * time.Second},
		{pet.StateSit, pet.StateSleep, 23 * time.Second},
	}, h.trans)
	assert.Equal(t, pet.StateSleep, h.c.State())
}

func TestPointerWakesSleepingPet(t *testing.T) {
	h := newHarness(t, quietConfig(), 1280, 720)
	h.run(24 * time.Second)
	require.Equal(t, pet.StateSleep, h.c.State())

	h.in.HasPointer = true
	h.in.Pointer = h.centre()
	h.in.PointerMovedAt = h.now
	h.frame()
	assert.Equal(t, pet.StateIdle, h.c.State())
}

func TestTrickCycle(t *testing.T) {
	h := newHarness(t, quietConfig(), 1280, 720)
	for i := 0; i < 5; i++ {
		h.click()
		h.run(time.Second)
		require.Equal(t, pet.StateIdle, h.c.State())
	}

	var tricks []pet.State
	for _, s := range h.entered() {
		if s != pet.StateIdle {
			tricks = append(tricks, s)
		}
	}
	assert.Equal(t, []pet.State{
		pet.StateJump, pet.StateRoll, pet.StateBark, pet.StateBackflip, pet.StateJump,
	}, tricks)
	assert.Equal(t, 3, h.cues.jump, "jump, backflip, jump")
	assert.Equal(t, 1, h.cues.bark)
}

func TestClickDuringTrickIsDropped(t *testing.T) {
	h := newHarness(t, quietConfig(), 1280, 720)
	h.click()
	h.runUntil(pet.StateJump, 300*time.Millisecond)

	h.click()
	h.run(time.Second)
	assert.Equal(t, []pet.State{pet.StateJump, pet.StateIdle}, h.entered())

	h.click()
	h.runUntil(pet.StateRoll, 300*time.Millisecond)
}

func TestClickWaitsForDoubleClickWindow(t *testing.T) {
	h := newHarness(t, quietConfig(), 1280, 720)
	h.click()
	h.run(200 * time.Millisecond)
	assert.Equal(t, pet.StateIdle, h.c.State())
	h.run(60 * time.Millisecond)
	assert.Equal(t, pet.StateJump, h.c.State())
}

func TestDoubleClickCancelsPendingClick(t *testing.T) {
	h := newHarness(t, quietConfig(), 1280, 720)
	h.click()
	h.c.DoubleClick(kinematics.Vec{X: 900, Y: 200}, h.now)
	h.run(300 * time.Millisecond)

	assert.Equal(t, pet.StateIdle, h.c.State())
	assert.NotNil(t, h.c.View().Ball)
}

func TestDoubleClickFetch(t *testing.T) {
	h := newHarness(t, quietConfig(), 1280, 564)
	h.c.pos = kinematics.Vec{X: 100, Y: 500}
	target := kinematics.Vec{X: 400, Y: 300}

	// the first click misses the pet, so nothing is pending
	h.c.PointerDown(target, h.now)
	h.c.PointerUp(target, h.now)
	h.c.DoubleClick(target, h.now)

	ball := h.c.View().Ball
	require.NotNil(t, ball)
	assert.Equal(t, fetch.PhaseArc, ball.Phase)
	assert.Less(t, ball.Vel.Y, 0.0)

	// a second ball is refused while the first is out
	h.c.DoubleClick(kinematics.Vec{X: 1000, Y: 100}, h.now)
	assert.Equal(t, target, h.c.View().Ball.Target)

	h.runUntil(pet.StateFetchRun, 3*time.Second)
	v := h.c.View()
	require.NotNil(t, v.Ball)
	assert.Equal(t, fetch.PhaseLanded, v.Ball.Phase)
	assert.InDelta(t, target.Y, v.Ball.Pos.Y, 1)
	assert.Equal(t, 1, h.cues.pant)

	last := h.centre().Dist(v.Ball.Pos)
	for h.c.State() == pet.StateFetchRun {
		h.frame()
		if h.c.State() != pet.StateFetchRun {
			break
		}
		d := h.centre().Dist(h.c.View().Ball.Pos)
		require.LessOrEqual(t, d, last)
		last = d
		require.Less(t, h.now, 10*time.Second)
	}

	h.runUntil(pet.StateIdle, 10*time.Second)
	assert.Equal(t, []pet.State{
		pet.StateFetchRun, pet.StateFetchReturn, pet.StateReturnToBottom, pet.StateIdle,
	}, h.entered())
	assert.Equal(t, 500.0, h.c.Position().Y)

	h.run(time.Second)
	assert.Nil(t, h.c.View().Ball, "ball fades out after delivery")
}

func TestDragAndToss(t *testing.T) {
	h := newHarness(t, quietConfig(), 1280, 720)
	start := h.c.Position()
	p := h.centre()
	grab := p.Sub(start)

	h.c.PointerDown(p, h.now)
	h.c.PointerMove(p.Add(kinematics.Vec{X: 3}), h.now+10*time.Millisecond)
	assert.Equal(t, pet.StateIdle, h.c.State(), "inside the slop")

	to := p.Add(kinematics.Vec{X: -50, Y: -200})
	h.c.PointerMove(to, h.now+20*time.Millisecond)
	require.Equal(t, pet.StateDrag, h.c.State())
	assert.Equal(t, to.Sub(grab), h.c.Position())
	assert.Equal(t, 1, h.cues.whimper)

	h.c.PointerUp(to, h.now+30*time.Millisecond)
	require.Equal(t, pet.StateToss, h.c.State())
	assert.Less(t, h.c.tossVel.Y, 0.0)
	assert.Less(t, h.c.tossVel.X, 0.0)

	h.runUntil(pet.StateIdle, 30*time.Second)
	assert.Contains(t, h.entered(), pet.StateReturnToBottom)
	assert.Equal(t, 720.0-pet.PetHeight, h.c.Position().Y)
}

func TestTossStaysInBounds(t *testing.T) {
	h := newHarness(t, quietConfig(), 800, 600)
	p := h.centre()
	h.c.PointerDown(p, 0)
	h.c.PointerMove(p.Add(kinematics.Vec{X: 100}), 5*time.Millisecond)
	h.c.PointerUp(p.Add(kinematics.Vec{X: 300, Y: -100}), 10*time.Millisecond)
	require.Equal(t, pet.StateToss, h.c.State())

	for h.c.State() == pet.StateToss {
		h.frame()
		pos := h.c.Position()
		require.GreaterOrEqual(t, pos.X, 0.0)
		require.LessOrEqual(t, pos.X, 800.0-pet.PetWidth)
		require.GreaterOrEqual(t, pos.Y, 0.0)
		require.LessOrEqual(t, pos.Y, 600.0-pet.PetHeight)
		require.Less(t, h.now, 30*time.Second)
	}
}

func TestPointerCancelDropsWithoutThrow(t *testing.T) {
	h := newHarness(t, quietConfig(), 1280, 720)
	p := h.centre()
	h.c.PointerDown(p, 0)
	h.c.PointerMove(p.Add(kinematics.Vec{X: 40, Y: -300}), 10*time.Millisecond)
	require.Equal(t, pet.StateDrag, h.c.State())

	h.c.PointerCancel(20 * time.Millisecond)
	assert.Equal(t, pet.StateToss, h.c.State())
	assert.Equal(t, kinematics.Vec{}, h.c.tossVel)
	h.runUntil(pet.StateIdle, 10*time.Second)
}

func TestScrollTumble(t *testing.T) {
	h := newHarness(t, quietConfig(), 1280, 720)
	h.in.ScrollVelocity = 1500
	h.frame()
	assert.Equal(t, pet.StateIdle, h.c.State())

	h.in.ScrollVelocity = 2500
	h.frame()
	assert.Equal(t, pet.StateTumble, h.c.State())
	assert.Equal(t, 1, h.cues.whimper)

	h.in.ScrollVelocity = 0
	h.run(700 * time.Millisecond)
	assert.Equal(t, pet.StateIdle, h.c.State())
}

func TestThemeChangeBarks(t *testing.T) {
	h := newHarness(t, quietConfig(), 1280, 720)
	h.in.Theme = ThemeLight
	h.run(100 * time.Millisecond)
	assert.Equal(t, pet.StateIdle, h.c.State())

	h.in.Theme = ThemeDark
	h.frame()
	assert.Equal(t, pet.StateBark, h.c.State())
	assert.Equal(t, 1, h.cues.bark)

	h.run(time.Second)
	assert.Equal(t, pet.StateIdle, h.c.State())
	assert.Equal(t, 1, h.cues.bark)
}

func TestFollowsPointer(t *testing.T) {
	h := newHarness(t, quietConfig(), 1280, 720)
	h.in.HasPointer = true
	h.in.Pointer = kinematics.Vec{X: 1200, Y: 100}

	h.in.PointerMovedAt = h.now
	h.frame()
	assert.Equal(t, pet.StateRun, h.c.State())
	assert.False(t, h.c.View().FacingLeft)

	for i := 0; i < 1000 && h.c.State() != pet.StateIdle; i++ {
		h.in.PointerMovedAt = h.now
		h.frame()
	}
	assert.Equal(t, pet.StateIdle, h.c.State())
	assert.Contains(t, h.entered(), pet.StateWalk)
	assert.InDelta(t, 1200-pet.PetWidth/2, h.c.Position().X, 30)
	assert.NotEmpty(t, h.c.View().Paws)
}

func TestSniffWalksToLandmark(t *testing.T) {
	cfg := pet.DefaultConfig()
	cfg.SniffChance = 1000
	h := newHarness(t, cfg, 1280, 720)
	h.in.Landmarks = []sniff.Landmark{
		{Name: "top", Rect: sniff.Rect{X: 100, Y: 50, W: 100, H: 40}},
		{Name: "card", Rect: sniff.Rect{X: 800, Y: 500, W: 100, H: 40}},
	}

	h.run(5 * time.Second)
	require.Equal(t, []transition{{pet.StateIdle, pet.StateWalk, 5 * time.Second}}, h.trans)

	h.runUntil(pet.StateSniff, 5*time.Second)
	assert.InDelta(t, 850-pet.PetWidth/2, h.c.Position().X, 30)

	h.runUntil(pet.StateIdle, 2*time.Second)
	assert.Equal(t, []pet.State{pet.StateWalk, pet.StateSniff, pet.StateIdle}, h.entered())
}

func TestResizeDropsParticlesAndSniffCooldown(t *testing.T) {
	cfg := pet.DefaultConfig()
	cfg.SniffChance = 1000
	h := newHarness(t, cfg, 1280, 720)
	h.in.Landmarks = []sniff.Landmark{
		{Name: "card", Rect: sniff.Rect{X: 800, Y: 500, W: 100, H: 40}},
	}
	h.runUntil(pet.StateSniff, 10*time.Second)

	v := h.c.View()
	require.NotEmpty(t, v.Paws, "the walk left prints")
	require.NotEmpty(t, v.Bubbles)
	require.False(t, h.c.sniffer.ShouldSniff(h.now, time.Hour, 1), "cooling down")

	h.c.Resize(1280, 720)
	v = h.c.View()
	assert.Empty(t, v.Paws)
	assert.Empty(t, v.Bubbles)
	assert.True(t, h.c.sniffer.ShouldSniff(h.now, time.Hour, 1))
}

func TestReducedMotionHoldsStill(t *testing.T) {
	cues := &cueCounter{}
	c := New(quietConfig(), Capabilities{ReducedMotion: true}, 1280, 720, cues, rand.New(rand.NewSource(7)), zaptest.NewLogger(t))
	start := c.Position()

	in := Inputs{
		HasPointer:     true,
		Pointer:        kinematics.Vec{X: 100, Y: 100},
		ScrollVelocity: 10000,
		Theme:          ThemeDark,
	}
	for now := tick; now <= 30*time.Second; now += tick {
		in.Now = now
		c.Advance(tick, in)
	}

	assert.Equal(t, pet.StateIdle, c.State())
	assert.Equal(t, start, c.Position())
	assert.Equal(t, cueCounter{}, *cues)
}

func TestPacingWithAudio(t *testing.T) {
	h := newHarness(t, quietConfig(), 1280, 720)
	h.in.AudioPlaying = true
	h.run(2 * time.Second)

	moved := false
	for _, s := range h.entered() {
		if s == pet.StateWalk || s == pet.StateRun {
			moved = true
		}
	}
	assert.True(t, moved)
	assert.NotContains(t, h.entered(), pet.StateSit)
}

func TestAdvanceClampsStep(t *testing.T) {
	h := newHarness(t, quietConfig(), 1280, 720)
	h.in.HasPointer = true
	h.in.Pointer = kinematics.Vec{X: 1200, Y: 100}
	h.in.PointerMovedAt = 0
	before := h.c.Position().X

	h.in.Now = 10 * time.Millisecond
	h.c.Advance(5*time.Second, h.in)
	assert.LessOrEqual(t, h.c.Position().X-before, pet.DefaultConfig().RunSpeed*MaxStep.Seconds()+1e-9)

	h.c.Advance(-time.Second, h.in)
	assert.Equal(t, pet.StateRun, h.c.State())
}

func TestResizeKeepsPetInside(t *testing.T) {
	h := newHarness(t, quietConfig(), 1280, 720)
	h.c.Resize(400, 300)
	pos := h.c.Position()
	assert.LessOrEqual(t, pos.X, 400.0-pet.PetWidth)
	assert.Equal(t, 300.0-pet.PetHeight, pos.Y)
}
