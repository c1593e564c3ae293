// Package input turns raw terminal mouse reports into pointer gestures.
package input

import (
	"time"

	"github.com/sethgrid/beagle/internal/kinematics"
)

// Handler receives gestures. The pet controller implements it.
type Handler interface {
	PointerDown(p kinematics.Vec, at time.Duration)
	PointerMove(p kinematics.Vec, at time.Duration)
	PointerUp(p kinematics.Vec, at time.Duration)
	DoubleClick(p kinematics.Vec, at time.Duration)
}

// ClickDetector tracks the primary button across mouse reports. Terminals
// report button state, not transitions, so presses and releases are
// derived here. Two releases within Window and Slop make a double-click.
type ClickDetector struct {
	Window time.Duration
	Slop   float64

	pressed bool
	pos     kinematics.Vec
	movedAt time.Duration
	seen    bool

	lastUp    kinematics.Vec
	lastUpAt  time.Duration
	hasLastUp bool
}

func NewClickDetector(window time.Duration, slop float64) *ClickDetector {
	return &ClickDetector{Window: window, Slop: slop}
}

// Mouse feeds one report: the pointer position and whether the primary
// button is held.
func (d *ClickDetector) Mouse(p kinematics.Vec, down bool, at time.Duration, h Handler) {
	moved := !d.seen || p != d.pos
	d.seen = true
	if moved {
		d.pos = p
		d.movedAt = at
	}

	switch {
	case down && !d.pressed:
		d.pressed = true
		h.PointerDown(p, at)
	case down && moved:
		h.PointerMove(p, at)
	case !down && d.pressed:
		d.pressed = false
		h.PointerUp(p, at)
		if d.hasLastUp && at-d.lastUpAt <= d.Window && p.Dist(d.lastUp) <= d.Slop {
			d.hasLastUp = false
			h.DoubleClick(p, at)
			return
		}
		d.lastUp, d.lastUpAt, d.hasLastUp = p, at, true
	}
}

// Pointer returns the last known position and when it last changed.
func (d *ClickDetector) Pointer() (p kinematics.Vec, movedAt time.Duration, ok bool) {
	return d.pos, d.movedAt, d.seen
}

// Pressed reports whether the primary button is held.
func (d *ClickDetector) Pressed() bool { return d.pressed }

// ScrollMeter converts wheel notches into a scroll speed.
type ScrollMeter struct {
	Step float64 // px per notch

	last    time.Duration
	hasLast bool
	peak    float64
}

// firstNotchGap stands in for the interval before the first notch of a burst.
const firstNotchGap = 100 * time.Millisecond

func NewScrollMeter(step float64) *ScrollMeter {
	return &ScrollMeter{Step: step}
}

// Notch records one wheel notch at time at and returns the implied speed
// in px/s.
func (m *ScrollMeter) Notch(at time.Duration) float64 {
	gap := firstNotchGap
	if m.hasLast {
		gap = at - m.last
	}
	if gap > firstNotchGap {
		gap = firstNotchGap
	}
	if gap < time.Millisecond {
		gap = time.Millisecond
	}
	m.last, m.hasLast = at, true

	v := m.Step / gap.Seconds()
	m.peak = max(m.peak, v)
	return v
}

// Take returns the fastest speed seen since the previous Take and resets it.
func (m *ScrollMeter) Take() float64 {
	v := m.peak
	m.peak = 0
	return v
}
