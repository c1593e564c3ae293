package kinematics

import "math"

const (
	Gravity         = 1200.0 // px/s^2
	BounceDamping   = 0.7
	FrictionPerSec  = 0.3 // fraction of vx left after one second
	SettleThreshold = 20.0
)

// TossResult is one step of Toss.
type TossResult struct {
	Pos     Vec
	Vel     Vec
	Settled bool
	Bounced bool
	Impact  float64 // speed just before the bounce, zero without one
}

// Toss integrates a thrown pet for dt seconds inside b. Any edge contact
// reflects the normal component and scales the whole velocity by
// BounceDamping, so a bounce never leaves with more than 0.7 of the
// incoming speed.
func Toss(pos, vel Vec, b Bounds, dt float64) TossResult {
	vel.Y += Gravity * dt
	vel.X *= math.Pow(FrictionPerSec, dt)

	next := pos.Add(vel.Scale(dt))
	incoming := vel.Len()

	var bounced, onFloor bool
	if next.X < 0 {
		next.X = 0
		vel.X = -vel.X
		bounced = true
	} else if next.X > b.Width {
		next.X = b.Width
		vel.X = -vel.X
		bounced = true
	}

	if next.Y > b.Height {
		next.Y = b.Height
		vel.Y = -vel.Y
		bounced = true
		onFloor = true
	} else if next.Y < 0 {
		next.Y = 0
		vel.Y = -vel.Y
		bounced = true
	}

	res := TossResult{Pos: next, Bounced: bounced}
	if bounced {
		vel = vel.Scale(BounceDamping)
		res.Impact = incoming
	}

	// A body resting on the floor picks up g*dt every step, so that much
	// vertical speed still counts as at rest.
	if onFloor && math.Abs(vel.Y) < SettleThreshold+Gravity*dt && math.Abs(vel.X) < SettleThreshold {
		vel = Vec{}
		res.Settled = true
	}

	res.Vel = vel
	return res
}
