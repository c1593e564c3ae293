package mood

import (
	"strings"

	"github.com/sethgrid/beagle/internal/pet"
)

type Mood string

const (
	MoodStartled Mood = "startled"
	MoodPlayful  Mood = "playful"
	MoodCurious  Mood = "curious"
	MoodSleepy   Mood = "sleepy"
	MoodBored    Mood = "bored"
	MoodExcited  Mood = "excited"
	MoodHappy    Mood = "happy"
)

// Event is a moment worth a bubble over the pet's head.
type Event string

const (
	EventBark    Event = "bark"
	EventSleep   Event = "sleep"
	EventTumble  Event = "tumble"
	EventToss    Event = "toss"
	EventFetched Event = "fetched"
	EventSniff   Event = "sniff"
)

var glyphs = map[Event]string{
	EventBark:    "!",
	EventSleep:   "z",
	EventTumble:  "✶",
	EventToss:    "!",
	EventFetched: "🐾",
	EventSniff:   "?",
}

// Glyph returns the bubble text for e.
func Glyph(e Event) string {
	if g, ok := glyphs[e]; ok {
		return g
	}
	return "…"
}

type Derived struct {
	Primary    Mood
	AllOrdered []Mood
}

// Derive orders the moods implied by the pet's state, highest priority
// first. A pet with nothing else going on is happy.
func Derive(state pet.State, ballOut bool) Derived {
	var all []Mood

	// Priority 1: startled
	if state == pet.StateTumble || state == pet.StateToss || state == pet.StateDrag {
		all = append(all, MoodStartled)
	}

	// Priority 2: playful
	if ballOut || state == pet.StateFetchRun || state == pet.StateFetchReturn {
		all = append(all, MoodPlayful)
	}

	// Priority 3: curious
	if state == pet.StateSniff {
		all = append(all, MoodCurious)
	}

	// Priority 4: sleepy
	if state == pet.StateSleep {
		all = append(all, MoodSleepy)
	}

	// Priority 5: bored
	if state == pet.StateSit {
		all = append(all, MoodBored)
	}

	// Priority 6: excited
	switch state {
	case pet.StateRun, pet.StateJump, pet.StateRoll, pet.StateBark, pet.StateBackflip:
		all = append(all, MoodExcited)
	}

	if len(all) == 0 {
		all = append(all, MoodHappy)
	}

	return Derived{Primary: all[0], AllOrdered: all}
}

var activities = map[pet.State]string{
	pet.StateIdle:           "hanging around",
	pet.StateWalk:           "trotting",
	pet.StateRun:            "running",
	pet.StateJump:           "jumping",
	pet.StateSit:            "sitting",
	pet.StateSleep:          "sleeping",
	pet.StateRoll:           "rolling over",
	pet.StateBark:           "barking",
	pet.StateBackflip:       "doing a backflip",
	pet.StateDrag:           "being carried",
	pet.StateToss:           "flying",
	pet.StateTumble:         "tumbling",
	pet.StateFetchRun:       "chasing the ball",
	pet.StateFetchReturn:    "bringing the ball back",
	pet.StateSniff:          "sniffing around",
	pet.StateReturnToBottom: "climbing down",
}

// Describe returns a short activity for the status line.
func Describe(state pet.State) string {
	if a, ok := activities[state]; ok {
		return a
	}
	return string(state)
}

// FormatMoods joins moods as "a, b and c". Returns "happy" if the slice is
// empty.
func FormatMoods(moods []Mood) string {
	if len(moods) == 0 {
		return string(MoodHappy)
	}

	parts := make([]string, len(moods))
	for i, m := range moods {
		parts[i] = string(m)
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}

// Status renders "<name> is <activity> (<moods>)".
func Status(name string, state pet.State, ballOut bool) string {
	d := Derive(state, ballOut)
	return name + " is " + Describe(state) + " (" + FormatMoods(d.AllOrdered) + ")"
}
