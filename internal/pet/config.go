package pet

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Sprite dimensions in logical pixels. The width keeps the 300x280 aspect of
// the source sprite sheets.
const (
	PetHeight = 64
	PetWidth  = 69 // round(64 * 300 / 280)
)

// Landmark is a static sniff anchor declared in pet.toml, in pixels.
type Landmark struct {
	Name   string  `toml:"name"`
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// PetConfig is the on-disk pet.toml document.
type PetConfig struct {
	Version   string    `toml:"version"`
	ID        string    `toml:"id,omitempty"`
	Name      string    `toml:"name"`
	CreatedAt time.Time `toml:"createdAt"`

	WalkSpeed      float64 `toml:"walkSpeed"`      // px/s
	RunSpeed       float64 `toml:"runSpeed"`       // px/s
	FetchSpeedMult float64 `toml:"fetchSpeedMult"` // applied to RunSpeed while fetching
	CloseThreshold float64 `toml:"closeThreshold"` // px
	RunThreshold   float64 `toml:"runThreshold"`   // px
	PaceMargin     float64 `toml:"paceMargin"`     // px

	CursorActive float64 `toml:"cursorActive"` // seconds
	SitDelay     float64 `toml:"sitDelay"`     // seconds
	SleepDelay   float64 `toml:"sleepDelay"`   // seconds, after sitting
	ClickDelay   float64 `toml:"clickDelay"`   // seconds, click vs double-click
	DragSlop     float64 `toml:"dragSlop"`     // px
	TumbleSpeed  float64 `toml:"tumbleSpeed"`  // scroll px/s

	SniffEnabled  bool    `toml:"sniffEnabled"`
	SniffCooldown float64 `toml:"sniffCooldown"` // seconds
	SniffChance   float64 `toml:"sniffChance"`   // per second
	SniffMinIdle  float64 `toml:"sniffMinIdle"`  // seconds

	CellWidth  int     `toml:"cellWidth"`  // px per terminal column
	CellHeight int     `toml:"cellHeight"` // px per terminal row
	ScrollStep float64 `toml:"scrollStep"` // px per wheel notch
	FPS        int     `toml:"fps"`

	SoundEnabled bool    `toml:"soundEnabled"`
	Volume       float64 `toml:"volume"` // 0..1

	Animations map[string]AnimationConfig `toml:"animations"`
	Landmarks  []Landmark                 `toml:"landmarks"`
}

// DefaultConfig returns a config carrying the built-in tunables.
func DefaultConfig() PetConfig {
	return PetConfig{
		Version:        "1.0",
		Name:           "Biscuit",
		WalkSpeed:      80,
		RunSpeed:       180,
		FetchSpeedMult: 1.2,
		CloseThreshold: 30,
		RunThreshold:   250,
		PaceMargin:     100,
		CursorActive:   0.2,
		SitDelay:       8,
		SleepDelay:     15,
		ClickDelay:     0.25,
		DragSlop:       5,
		TumbleSpeed:    2000,
		SniffEnabled:   true,
		SniffCooldown:  30,
		SniffChance:    0.1,
		SniffMinIdle:   5,
		CellWidth:      8,
		CellHeight:     16,
		ScrollStep:     100,
		FPS:            60,
		SoundEnabled:   true,
		Volume:         1,
		Animations:     animationTable(),
	}
}

// Seconds converts one of the float-second tunables to a duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Animation returns the animation for s, falling back to idle.
func (c *PetConfig) Animation(s State) AnimationConfig {
	if a, ok := c.Animations[string(s)]; ok {
		return a
	}
	if a, ok := DefaultAnimations()[s]; ok {
		return a
	}
	return DefaultAnimations()[StateIdle]
}

// FillDefaults replaces zero tunables with built-in values and merges the
// animation table so partial overrides keep the remaining states.
func (c *PetConfig) FillDefaults() {
	def := DefaultConfig()

	setF := func(v *float64, d float64) {
		if *v == 0 {
			*v = d
		}
	}
	setF(&c.WalkSpeed, def.WalkSpeed)
	setF(&c.RunSpeed, def.RunSpeed)
	setF(&c.FetchSpeedMult, def.FetchSpeedMult)
	setF(&c.CloseThreshold, def.CloseThreshold)
	setF(&c.RunThreshold, def.RunThreshold)
	setF(&c.PaceMargin, def.PaceMargin)
	setF(&c.CursorActive, def.CursorActive)
	setF(&c.SitDelay, def.SitDelay)
	setF(&c.SleepDelay, def.SleepDelay)
	setF(&c.ClickDelay, def.ClickDelay)
	setF(&c.DragSlop, def.DragSlop)
	setF(&c.TumbleSpeed, def.TumbleSpeed)
	setF(&c.SniffCooldown, def.SniffCooldown)
	setF(&c.SniffChance, def.SniffChance)
	setF(&c.SniffMinIdle, def.SniffMinIdle)
	setF(&c.ScrollStep, def.ScrollStep)

	if c.Name == "" {
		c.Name = def.Name
	}
	if c.Version == "" {
		c.Version = def.Version
	}
	if c.CellWidth <= 0 {
		c.CellWidth = def.CellWidth
	}
	if c.CellHeight <= 0 {
		c.CellHeight = def.CellHeight
	}
	if c.FPS <= 0 {
		c.FPS = def.FPS
	}

	if c.Animations == nil {
		c.Animations = make(map[string]AnimationConfig)
	}
	for k, a := range def.Animations {
		if _, ok := c.Animations[k]; !ok {
			c.Animations[k] = a
		}
	}
}

// Validate checks the animation table and the tunables that would break
// the frame loop.
func (c *PetConfig) Validate() error {
	keys := make([]string, 0, len(c.Animations))
	for k := range c.Animations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		s := State(k)
		a := c.Animations[k]
		if !s.Valid() {
			return fmt.Errorf("unknown animation state %q", k)
		}
		if a.Frames <= 0 {
			return fmt.Errorf("animation %q: frames must be positive, got %d", k, a.Frames)
		}
		if a.Duration <= 0 || math.IsNaN(a.Duration) {
			return fmt.Errorf("animation %q: duration must be positive, got %v", k, a.Duration)
		}
	}

	if c.WalkSpeed <= 0 || c.RunSpeed <= 0 {
		return fmt.Errorf("speeds must be positive (walk %v, run %v)", c.WalkSpeed, c.RunSpeed)
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("volume must be within [0, 1], got %v", c.Volume)
	}
	return nil
}

func animationTable() map[string]AnimationConfig {
	table := make(map[string]AnimationConfig, len(AllStates))
	for s, a := range DefaultAnimations() {
		table[string(s)] = a
	}
	return table
}
