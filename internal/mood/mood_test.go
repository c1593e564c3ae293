package mood

import (
	"testing"

	"github.com/sethgrid/beagle/internal/pet"
)

func TestFormatMoods(t *testing.T) {
	tests := []struct {
		name     string
		moods    []Mood
		expected string
	}{
		{
			name:     "empty moods returns happy",
			moods:    []Mood{},
			expected: "happy",
		},
		{
			name:     "nil slice",
			moods:    nil,
			expected: "happy",
		},
		{
			name:     "single mood",
			moods:    []Mood{MoodSleepy},
			expected: "sleepy",
		},
		{
			name:     "two moods",
			moods:    []Mood{MoodStartled, MoodPlayful},
			expected: "startled and playful",
		},
		{
			name:     "three moods",
			moods:    []Mood{MoodStartled, MoodPlayful, MoodExcited},
			expected: "startled, playful and excited",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatMoods(tt.moods)
			if result != tt.expected {
				t.Errorf("FormatMoods(%v) = %q, want %q", tt.moods, result, tt.expected)
			}
		})
	}
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name    string
		state   pet.State
		ballOut bool
		primary Mood
		count   int
	}{
		{name: "idle is happy", state: pet.StateIdle, primary: MoodHappy, count: 1},
		{name: "sleep", state: pet.StateSleep, primary: MoodSleepy, count: 1},
		{name: "sit", state: pet.StateSit, primary: MoodBored, count: 1},
		{name: "sniff", state: pet.StateSniff, primary: MoodCurious, count: 1},
		{name: "fetch run is playful", state: pet.StateFetchRun, primary: MoodPlayful, count: 1},
		{name: "tumble beats ball", state: pet.StateTumble, ballOut: true, primary: MoodStartled, count: 2},
		{name: "running after a thrown ball", state: pet.StateRun, ballOut: true, primary: MoodPlayful, count: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Derive(tt.state, tt.ballOut)
			if d.Primary != tt.primary {
				t.Errorf("primary = %q, want %q", d.Primary, tt.primary)
			}
			if len(d.AllOrdered) != tt.count {
				t.Errorf("got %d moods %v, want %d", len(d.AllOrdered), d.AllOrdered, tt.count)
			}
		})
	}
}

func TestDescribeCoversEveryState(t *testing.T) {
	for _, s := range pet.AllStates {
		if Describe(s) == string(s) {
			t.Errorf("state %q has no activity text", s)
		}
	}
}

func TestGlyph(t *testing.T) {
	if Glyph(EventFetched) != "🐾" {
		t.Errorf("fetched glyph = %q", Glyph(EventFetched))
	}
	if Glyph(Event("unknown")) != "…" {
		t.Errorf("unknown glyph = %q", Glyph(Event("unknown")))
	}
}

func TestStatus(t *testing.T) {
	got := Status("Biscuit", pet.StateSleep, false)
	want := "Biscuit is sleeping (sleepy)"
	if got != want {
		t.Errorf("Status() = %q, want %q", got, want)
	}
}
