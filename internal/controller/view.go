package controller

import (
	"github.com/sethgrid/beagle/internal/fetch"
	"github.com/sethgrid/beagle/internal/kinematics"
	"github.com/sethgrid/beagle/internal/particles"
	"github.com/sethgrid/beagle/internal/pet"
)

// View is a read-only snapshot of everything the renderer draws.
type View struct {
	State      pet.State
	Pos        kinematics.Vec
	FacingLeft bool
	Frame      int
	Sprite     string
	Width      float64
	Height     float64
	Ball       *fetch.Ball
	Bubbles    []particles.Bubble
	Paws       []particles.PawPrint
}

// BallOut reports whether a ball is in play.
func (v View) BallOut() bool { return v.Ball != nil }

// View snapshots the controller.
func (c *Controller) View() View {
	v := View{
		State:      c.state,
		Pos:        c.pos,
		FacingLeft: c.facingLeft,
		Frame:      c.frame,
		Sprite:     c.cfg.Animation(c.state).Sprite,
		Width:      c.width,
		Height:     c.height,
		Bubbles:    c.bubbles.Items(),
		Paws:       c.paws.Items(),
	}
	if c.ball != nil {
		b := *c.ball
		v.Ball = &b
	}
	return v
}

func (c *Controller) stepBall(dt float64) {
	if c.ball == nil {
		return
	}
	if !c.ball.Step(dt, c.width, c.height) {
		c.ball = nil
	}
}

func (c *Controller) carryBall() {
	if c.ball != nil {
		c.ball.Carry(c.mouth())
	}
}

// fetchGoal is the sprite position that puts the pet's body over the ball.
func (c *Controller) fetchGoal() kinematics.Vec {
	return c.bounds.Clamp(c.ball.Pos.Sub(kinematics.Vec{X: pet.PetWidth / 2, Y: pet.PetHeight / 2}))
}
