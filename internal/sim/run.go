package sim

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/sethgrid/beagle/internal/controller"
	"github.com/sethgrid/beagle/internal/input"
	"github.com/sethgrid/beagle/internal/kinematics"
	"github.com/sethgrid/beagle/internal/mood"
	"github.com/sethgrid/beagle/internal/pet"
	"github.com/sethgrid/beagle/internal/sniff"
	"github.com/sethgrid/beagle/internal/sound"
	"go.uber.org/zap"
)

// Transition is one state change.
type Transition struct {
	At       time.Duration
	From, To pet.State
}

// NewController builds the controller a script describes, with no sound.
func NewController(s *Script, log *zap.Logger) *controller.Controller {
	caps := controller.Capabilities{Coarse: s.Touch}
	ctl := controller.New(s.Pet, caps, s.Width, s.Height, sound.Nop{}, rand.New(rand.NewSource(s.Seed)), log)
	if s.StartX != nil {
		ctl.Place(*s.StartX)
	}
	return ctl
}

// Run replays the script against ctl at fps until the given time, or the
// script's duration when until is zero.
func Run(ctl *controller.Controller, s *Script, fps int, until time.Duration) []Transition {
	if fps <= 0 {
		fps = 60
	}
	if until <= 0 {
		until = pet.Seconds(s.Duration)
	}
	dt := time.Second / time.Duration(fps)

	var trans []Transition
	ctl.OnTransition(func(from, to pet.State, at time.Duration) {
		trans = append(trans, Transition{At: at, From: from, To: to})
	})

	clicks := input.NewClickDetector(pet.Seconds(s.Pet.ClickDelay), s.Pet.DragSlop)
	in := controller.Inputs{
		AudioPlaying: s.Audio,
		Theme:        controller.Theme(s.Theme),
		Landmarks:    sniff.FromConfig(s.Pet.Landmarks),
	}

	next := 0
	for now := time.Duration(0); now < until; {
		now += dt
		in.Now = now
		in.ScrollVelocity = 0

		for ; next < len(s.Events) && pet.Seconds(s.Events[next].At) <= now; next++ {
			apply(ctl, clicks, &in, s.Events[next], pet.Seconds(s.Events[next].At))
		}

		if p, movedAt, ok := clicks.Pointer(); ok {
			in.Pointer, in.PointerMovedAt, in.HasPointer = p, movedAt, true
		}
		ctl.Advance(dt, in)
	}
	return trans
}

func apply(ctl *controller.Controller, clicks *input.ClickDetector, in *controller.Inputs, e Event, at time.Duration) {
	p := kinematics.Vec{X: e.X, Y: e.Y}
	switch e.Kind {
	case EventPointerMove:
		clicks.Mouse(p, false, at, ctl)
	case EventPress, EventMove:
		clicks.Mouse(p, true, at, ctl)
	case EventRelease:
		clicks.Mouse(p, false, at, ctl)
	case EventClick:
		clicks.Mouse(p, true, at, ctl)
		clicks.Mouse(p, false, at, ctl)
	case EventDoubleClick:
		for i := 0; i < 2; i++ {
			clicks.Mouse(p, true, at, ctl)
			clicks.Mouse(p, false, at, ctl)
		}
	case EventScroll:
		in.ScrollVelocity = max(in.ScrollVelocity, e.Velocity)
	case EventTheme:
		in.Theme = controller.Theme(e.Theme)
	case EventAudio:
		in.AudioPlaying = e.On
	}
}

// Print writes a human-readable trace.
func Print(w io.Writer, s *Script, trans []Transition) error {
	name := s.Name
	if name == "" {
		name = "script"
	}
	if _, err := fmt.Fprintf(w, "%s (%s, %vx%v)\n", name, s.Pet.Name, s.Width, s.Height); err != nil {
		return fmt.Errorf("failed to write trace: %w", err)
	}
	for _, tr := range trans {
		if _, err := fmt.Fprintf(w, "%8.3fs  %-16s -> %-16s %s\n",
			tr.At.Seconds(), tr.From, tr.To, mood.Describe(tr.To)); err != nil {
			return fmt.Errorf("failed to write trace: %w", err)
		}
	}
	return nil
}
