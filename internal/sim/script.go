// Package sim drives the pet controller from a timed script, without a
// terminal.
package sim

import (
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/sethgrid/beagle/internal/pet"
)

type EventKind string

const (
	EventPointerMove EventKind = "pointer-move" // hover, no button
	EventPress       EventKind = "press"
	EventMove        EventKind = "move" // with the button held
	EventRelease     EventKind = "release"
	EventClick       EventKind = "click"
	EventDoubleClick EventKind = "double-click"
	EventScroll      EventKind = "scroll"
	EventTheme       EventKind = "theme"
	EventAudio       EventKind = "audio"
)

// Event happens At seconds into the run.
type Event struct {
	At       float64   `toml:"at"`
	Kind     EventKind `toml:"kind"`
	X        float64   `toml:"x"`
	Y        float64   `toml:"y"`
	Velocity float64   `toml:"velocity"` // scroll, px/s
	Theme    string    `toml:"theme"`
	On       bool      `toml:"on"` // audio
}

// Script is a scenario. Pet holds pet.toml overrides on top of the
// defaults.
type Script struct {
	Name     string        `toml:"name"`
	Width    float64       `toml:"width"`
	Height   float64       `toml:"height"`
	Theme    string        `toml:"theme"`
	Audio    bool          `toml:"audio"`
	Touch    bool          `toml:"touch"`
	Seed     int64         `toml:"seed"`
	Duration float64       `toml:"duration"` // seconds
	StartX   *float64      `toml:"startX"`
	Pet      pet.PetConfig `toml:"pet"`
	Events   []Event       `toml:"events"`
}

// ParseScript decodes a TOML script and sorts its events by time.
func ParseScript(data []byte) (*Script, error) {
	s := &Script{
		Width:    1280,
		Height:   720,
		Theme:    "light",
		Seed:     1,
		Duration: 10,
		Pet:      pet.DefaultConfig(),
	}
	if err := toml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	s.Pet.FillDefaults()

	sort.SliceStable(s.Events, func(i, j int) bool { return s.Events[i].At < s.Events[j].At })
	return s, nil
}

// LoadScript reads a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return ParseScript(data)
}

func (s *Script) validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %vx%v", s.Width, s.Height)
	}
	if s.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", s.Duration)
	}
	for i, e := range s.Events {
		switch e.Kind {
		case EventPointerMove, EventPress, EventMove, EventRelease, EventClick,
			EventDoubleClick, EventScroll, EventTheme, EventAudio:
		default:
			return fmt.Errorf("event %d: unknown kind %q", i, e.Kind)
		}
		if e.At < 0 {
			return fmt.Errorf("event %d: negative time %v", i, e.At)
		}
	}
	return nil
}
