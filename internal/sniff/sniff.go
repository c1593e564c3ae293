package sniff

import (
	"math"
	"math/rand"
	"time"

	"github.com/sethgrid/beagle/internal/kinematics"
	"github.com/sethgrid/beagle/internal/pet"
)

// Rect is an axis-aligned box in viewport pixels.
type Rect struct {
	X, Y, W, H float64
}

// Landmark is a page element the pet may wander over to sniff.
type Landmark struct {
	Name string
	Rect Rect
}

// Sniffer decides when an idle pet goes sniffing.
type Sniffer struct {
	Cooldown        time.Duration
	ChancePerSecond float64
	MinIdle         time.Duration

	rng    *rand.Rand
	last   time.Duration
	marked bool
}

// New creates a Sniffer drawing from rng.
func New(rng *rand.Rand, cooldown, minIdle time.Duration, chancePerSecond float64) *Sniffer {
	return &Sniffer{
		Cooldown:        cooldown,
		ChancePerSecond: chancePerSecond,
		MinIdle:         minIdle,
		rng:             rng,
	}
}

// ShouldSniff rolls the per-frame chance. It never fires during the
// cooldown or before the pet has idled for MinIdle.
func (s *Sniffer) ShouldSniff(now, idleFor time.Duration, dt float64) bool {
	if s.marked && now-s.last < s.Cooldown {
		return false
	}
	if idleFor < s.MinIdle {
		return false
	}
	return s.rng.Float64() < s.ChancePerSecond*dt
}

// Mark starts the cooldown at now.
func (s *Sniffer) Mark(now time.Duration) {
	s.last = now
	s.marked = true
}

// Reset clears the cooldown.
func (s *Sniffer) Reset() {
	s.last = 0
	s.marked = false
}

// Nearest picks the landmark closest to petX among those whose top edge is
// in the lower half of a w x h viewport and that lie within half a viewport
// width. The returned point is a sprite position on the floor under the
// landmark's centre.
func Nearest(petX float64, landmarks []Landmark, w, h, spriteW, spriteH float64) (kinematics.Vec, bool) {
	best := math.Inf(1)
	var found kinematics.Vec
	ok := false

	for _, lm := range landmarks {
		if lm.Rect.Y < h*0.5 || lm.Rect.Y > h {
			continue
		}

		x := lm.Rect.X + lm.Rect.W/2 - spriteW/2
		dist := math.Abs(x - petX)
		if dist > w*0.5 {
			continue
		}

		if dist < best {
			best = dist
			found = kinematics.Vec{
				X: math.Max(0, math.Min(x, w-spriteW)),
				Y: math.Max(0, h-spriteH),
			}
			ok = true
		}
	}
	return found, ok
}

// FromConfig converts landmarks declared in pet.toml.
func FromConfig(lms []pet.Landmark) []Landmark {
	out := make([]Landmark, 0, len(lms))
	for _, lm := range lms {
		out = append(out, Landmark{
			Name: lm.Name,
			Rect: Rect{X: lm.X, Y: lm.Y, W: lm.Width, H: lm.Height},
		})
	}
	return out
}
