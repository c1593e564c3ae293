package kinematics

import "math"

// Vec is a 2D point or velocity in viewport pixels.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec       { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(k float64) Vec { return Vec{v.X * k, v.Y * k} }
func (v Vec) Len() float64        { return math.Hypot(v.X, v.Y) }

// Dist returns the distance between v and o.
func (v Vec) Dist(o Vec) float64 { return o.Sub(v).Len() }

// Bounds is the area available to the sprite's top-left corner:
// x in [0, Width], y in [0, Height].
type Bounds struct {
	Width, Height float64
}

// BoundsFor returns the sprite bounds for a viewport of w x h pixels.
func BoundsFor(w, h, spriteW, spriteH float64) Bounds {
	return Bounds{Width: math.Max(0, w-spriteW), Height: math.Max(0, h-spriteH)}
}

// Clamp keeps p inside b.
func (b Bounds) Clamp(p Vec) Vec {
	return Vec{X: clamp(p.X, 0, b.Width), Y: clamp(p.Y, 0, b.Height)}
}

// FloorY is the resting line.
func (b Bounds) FloorY() float64 { return b.Height }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
