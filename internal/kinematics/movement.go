package kinematics

// ArriveRadius is the distance under which Seek snaps to its target.
const ArriveRadius = 5.0

// SeekResult is one step of Seek.
type SeekResult struct {
	Pos     Vec
	Dir     Vec // unit vector of travel, zero when already within ArriveRadius
	Arrived bool
}

// Seek moves pos toward target at speed px/s for dt seconds. It arrives,
// landing exactly on target, when the remaining distance is under
// ArriveRadius or the step would overshoot.
func Seek(pos, target Vec, speed, dt float64) SeekResult {
	delta := target.Sub(pos)
	dist := delta.Len()

	if dist < ArriveRadius {
		return SeekResult{Pos: target, Arrived: true}
	}

	dir := delta.Scale(1 / dist)
	step := speed * dt
	if step >= dist {
		return SeekResult{Pos: target, Dir: dir, Arrived: true}
	}

	return SeekResult{Pos: pos.Add(dir.Scale(step)), Dir: dir}
}

// ReturnToBottom walks straight down to the floor line of b.
func ReturnToBottom(pos Vec, b Bounds, speed, dt float64) SeekResult {
	return Seek(pos, Vec{X: pos.X, Y: b.FloorY()}, speed, dt)
}
