package controller

import (
	"time"

	"github.com/sethgrid/beagle/internal/fetch"
	"github.com/sethgrid/beagle/internal/kinematics"
	"github.com/sethgrid/beagle/internal/pet"
	"go.uber.org/zap"
)

const velocitySamples = 5

// Hit reports whether p lies on the pet sprite.
func (c *Controller) Hit(p kinematics.Vec) bool {
	return p.X >= c.pos.X && p.X <= c.pos.X+pet.PetWidth &&
		p.Y >= c.pos.Y && p.Y <= c.pos.Y+pet.PetHeight
}

// PointerDown starts a press if p lands on the pet.
func (c *Controller) PointerDown(p kinematics.Vec, at time.Duration) {
	if !c.state.Interruptible() || !c.Hit(p) {
		return
	}
	c.pressed = true
	c.pressPos = p
	c.grabOffset = p.Sub(c.pos)
	c.samples = append(c.samples[:0], sample{pos: p, at: at})
}

// PointerMove turns a press into a drag once it travels past the slop, and
// then keeps the grab point under the pointer.
func (c *Controller) PointerMove(p kinematics.Vec, at time.Duration) {
	if !c.pressed {
		return
	}
	c.record(p, at)

	if c.state != pet.StateDrag {
		if p.Dist(c.pressPos) <= c.cfg.DragSlop || !c.state.Interruptible() {
			return
		}
		c.now = at
		c.sniffTarget = nil
		c.pendingClick = false
		c.setState(pet.StateDrag)
	}
	c.pos = c.bounds.Clamp(p.Sub(c.grabOffset))
}

// PointerUp releases a drag into a toss. A press that never became a drag
// is a click; it plays the next trick after the click delay unless a
// double-click claims it first.
func (c *Controller) PointerUp(p kinematics.Vec, at time.Duration) {
	if !c.pressed {
		return
	}
	c.pressed = false

	if c.state == pet.StateDrag {
		c.record(p, at)
		c.now = at
		c.tossVel = releaseVelocity(c.samples)
		c.setState(pet.StateToss)
		return
	}

	c.pendingClick = true
	c.clickDue = at + pet.Seconds(c.cfg.ClickDelay)
}

// PointerCancel drops a drag without any throw.
func (c *Controller) PointerCancel(at time.Duration) {
	if !c.pressed {
		return
	}
	c.pressed = false
	if c.state == pet.StateDrag {
		c.now = at
		c.tossVel = kinematics.Vec{}
		c.setState(pet.StateToss)
	}
}

// DoubleClick throws a ball toward p when none is out. It also swallows the
// pending single click.
func (c *Controller) DoubleClick(p kinematics.Vec, at time.Duration) {
	c.pendingClick = false
	if c.ball != nil {
		return
	}
	c.ball = fetch.Launch(c.mouth(), p)
	c.log.Debug("ball thrown", zap.Float64("x", p.X), zap.Float64("y", p.Y), zap.Duration("at", at))
}

func (c *Controller) firePendingClick() {
	if !c.pendingClick || c.now < c.clickDue {
		return
	}
	c.pendingClick = false
	if !c.state.Interruptible() {
		return
	}
	trick := pet.TrickCycle[c.trickIndex%len(pet.TrickCycle)]
	c.trickIndex++
	c.sniffTarget = nil
	c.setState(trick)
}

func (c *Controller) record(p kinematics.Vec, at time.Duration) {
	c.samples = append(c.samples, sample{pos: p, at: at})
	if n := len(c.samples); n > velocitySamples {
		c.samples = append(c.samples[:0], c.samples[n-velocitySamples:]...)
	}
}

// releaseVelocity is the displacement across the sample window over its
// elapsed time, in px/s.
func releaseVelocity(samples []sample) kinematics.Vec {
	if len(samples) < 2 {
		return kinematics.Vec{}
	}
	first, last := samples[0], samples[len(samples)-1]
	elapsed := (last.at - first.at).Seconds()
	if elapsed <= 0 {
		return kinematics.Vec{}
	}
	return last.pos.Sub(first.pos).Scale(1 / elapsed)
}
