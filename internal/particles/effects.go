package particles

import (
	"math/rand"

	"github.com/sethgrid/beagle/internal/kinematics"
)

const (
	MaxBubbles    = 10
	MaxPawPrints  = 30
	BubbleLife    = 1.5 // seconds
	PawFade       = 2.0 // seconds from full to gone
	PawStartAlpha = 0.5
	PawEmitDist   = 25.0 // px travelled between prints
)

// Bubble is a floating emotion glyph above the pet.
type Bubble struct {
	Glyph string
	Pos   kinematics.Vec
	VY    float64
	Alpha float64
	Life  float64
}

// Side is the foot that left a paw print.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// Other returns the opposite foot.
func (s Side) Other() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

// PawPrint is a fading footprint left behind a moving pet.
type PawPrint struct {
	Pos      kinematics.Vec
	Alpha    float64
	Rotation float64
	Side     Side
}

// NewBubble spawns a glyph near pos with a little horizontal jitter.
func NewBubble(rng *rand.Rand, glyph string, pos kinematics.Vec) Bubble {
	return Bubble{
		Glyph: glyph,
		Pos:   kinematics.Vec{X: pos.X + (rng.Float64()-0.5)*20, Y: pos.Y},
		VY:    -(40 + rng.Float64()*20),
		Alpha: 1,
		Life:  BubbleLife,
	}
}

// StepBubble rises and fades b. It reports false once the bubble expired.
func StepBubble(b *Bubble, dt float64) bool {
	b.Pos.Y += b.VY * dt
	b.Life -= dt
	b.Alpha = b.Life / BubbleLife
	if b.Alpha < 0 {
		b.Alpha = 0
	}
	return b.Life > 0
}

// NewPawPrint places a print for the given foot under pos.
func NewPawPrint(rng *rand.Rand, pos kinematics.Vec, side Side, facingLeft bool) PawPrint {
	offset := 4.0
	if side == SideLeft {
		offset = -4
	}
	if facingLeft {
		offset = -offset
	}
	return PawPrint{
		Pos:      kinematics.Vec{X: pos.X + offset, Y: pos.Y},
		Alpha:    PawStartAlpha,
		Rotation: (rng.Float64() - 0.5) * 0.3,
		Side:     side,
	}
}

// StepPaw fades p. It reports false once the print is invisible.
func StepPaw(p *PawPrint, dt float64) bool {
	p.Alpha -= dt / PawFade
	return p.Alpha > 0
}

// ShouldEmitPaw reports whether the pet moved far enough from the last print.
func ShouldEmitPaw(last, pos kinematics.Vec) bool {
	d := pos.Sub(last)
	return d.X*d.X+d.Y*d.Y >= PawEmitDist*PawEmitDist
}
