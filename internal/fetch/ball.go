package fetch

import (
	"math"

	"github.com/sethgrid/beagle/internal/kinematics"
)

const (
	BallRadius    = 5.0
	ArcGravity    = 600.0 // px/s^2
	ArcSpeed      = 350.0 // px of travel per second of flight
	MinFlightTime = 0.6   // seconds
	FadeRate      = 2.0   // alpha per second
	offscreenSlop = 100.0
)

// Phase is the lifecycle stage of the ball.
type Phase string

const (
	PhaseArc     Phase = "arc"
	PhaseLanded  Phase = "landed"
	PhaseCarried Phase = "carried"
	PhaseFade    Phase = "fade"
)

// Ball is the single fetch toy. Pos is the ball's centre.
type Ball struct {
	Pos    kinematics.Vec
	Vel    kinematics.Vec
	Target kinematics.Vec
	Phase  Phase
	Alpha  float64
	Peaked bool
}

// FlightTime returns the time of flight for a throw from start to target.
// It grows with distance and is stretched when the target sits far below
// the start, so the ball always leaves upward and visibly peaks.
func FlightTime(start, target kinematics.Vec) float64 {
	t := math.Max(MinFlightTime, start.Dist(target)/ArcSpeed)
	if dy := target.Y - start.Y; dy > 0 {
		// vy < 0 requires dy < g*t^2/2
		t = math.Max(t, math.Sqrt(2*dy/ArcGravity)+0.1)
	}
	return t
}

// Launch throws a ball from start so that it arcs onto target.
func Launch(start, target kinematics.Vec) *Ball {
	t := FlightTime(start, target)
	d := target.Sub(start)
	return &Ball{
		Pos:    start,
		Vel:    kinematics.Vec{X: d.X / t, Y: (d.Y - 0.5*ArcGravity*t*t) / t},
		Target: target,
		Phase:  PhaseArc,
		Alpha:  1,
	}
}

// Step advances the ball inside a w x h viewport. It returns false once the
// ball has faded out and should be dropped.
func (b *Ball) Step(dt, w, h float64) bool {
	switch b.Phase {
	case PhaseArc:
		prevVY := b.Vel.Y
		b.Vel.Y += ArcGravity * dt
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))

		if prevVY < 0 && b.Vel.Y >= 0 {
			b.Peaked = true
		}

		floor := h - BallRadius
		if b.Peaked && b.Vel.Y > 0 && (b.Pos.Y >= b.Target.Y || b.Pos.Y >= floor) {
			b.land(math.Min(b.Target.Y, floor), w)
		} else if b.Pos.Y > h+offscreenSlop {
			b.land(floor, w)
		}

	case PhaseFade:
		b.Alpha -= FadeRate * dt
		if b.Alpha <= 0 {
			b.Alpha = 0
			return false
		}
	}
	return true
}

func (b *Ball) land(y, w float64) {
	b.Pos.Y = y
	b.Pos.X = math.Min(math.Max(b.Pos.X, BallRadius), math.Max(BallRadius, w-BallRadius))
	b.Vel = kinematics.Vec{}
	b.Phase = PhaseLanded
}

// Landed reports whether the ball is waiting on the ground.
func (b *Ball) Landed() bool { return b.Phase == PhaseLanded }

// Pickup hands the ball to the pet.
func (b *Ball) Pickup() {
	b.Phase = PhaseCarried
	b.Vel = kinematics.Vec{}
}

// Carry moves a carried ball to the pet's mouth.
func (b *Ball) Carry(mouth kinematics.Vec) {
	if b.Phase == PhaseCarried {
		b.Pos = mouth
	}
}

// Fade starts the fade-out.
func (b *Ball) Fade() {
	b.Phase = PhaseFade
}
