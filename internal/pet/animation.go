package pet

import (
	"math"
	"time"
)

// AnimationConfig describes how a state's sprite sheet is played.
type AnimationConfig struct {
	Frames   int     `toml:"frames"`
	Duration float64 `toml:"duration"` // seconds per loop
	Loop     bool    `toml:"loop"`
	Sprite   string  `toml:"sprite"`
}

// DefaultAnimations returns the built-in animation table.
func DefaultAnimations() map[State]AnimationConfig {
	return map[State]AnimationConfig{
		StateIdle:           {Frames: 4, Duration: 1.6, Loop: true, Sprite: "idle"},
		StateWalk:           {Frames: 8, Duration: 0.8, Loop: true, Sprite: "walk"},
		StateRun:            {Frames: 8, Duration: 0.5, Loop: true, Sprite: "run"},
		StateJump:           {Frames: 4, Duration: 0.4, Loop: false, Sprite: "jump"},
		StateSit:            {Frames: 4, Duration: 0.8, Loop: false, Sprite: "sit"},
		StateSleep:          {Frames: 4, Duration: 2.0, Loop: true, Sprite: "sleep"},
		StateRoll:           {Frames: 4, Duration: 0.6, Loop: false, Sprite: "roll"},
		StateBark:           {Frames: 4, Duration: 0.5, Loop: false, Sprite: "bark"},
		StateBackflip:       {Frames: 4, Duration: 0.5, Loop: false, Sprite: "backflip"},
		StateDrag:           {Frames: 4, Duration: 1.6, Loop: true, Sprite: "idle"},
		StateToss:           {Frames: 4, Duration: 1.6, Loop: true, Sprite: "jump"},
		StateTumble:         {Frames: 4, Duration: 0.6, Loop: false, Sprite: "roll"},
		StateFetchRun:       {Frames: 8, Duration: 0.5, Loop: true, Sprite: "run"},
		StateFetchReturn:    {Frames: 8, Duration: 0.8, Loop: true, Sprite: "walk"},
		StateSniff:          {Frames: 4, Duration: 1.2, Loop: false, Sprite: "idle"},
		StateReturnToBottom: {Frames: 8, Duration: 0.8, Loop: true, Sprite: "walk"},
	}
}

// Period returns the loop duration as a time.Duration.
func (a AnimationConfig) Period() time.Duration {
	return time.Duration(a.Duration * float64(time.Second))
}

// FPS is the playback rate that fits Frames into one Period.
func (a AnimationConfig) FPS() int {
	if a.Frames <= 0 || a.Duration <= 0 {
		return 1
	}
	return max(1, int(math.Round(float64(a.Frames)/a.Period().Seconds())))
}

// FrameIndex derives the frame to show after elapsed time in the state.
// Looping animations wrap; one-shot animations clamp to the last frame and
// report done once the full duration has passed.
func FrameIndex(a AnimationConfig, elapsed time.Duration) (index int, done bool) {
	if a.Frames <= 0 || a.Duration <= 0 {
		return 0, !a.Loop
	}
	secs := elapsed.Seconds()
	if secs < 0 {
		secs = 0
	}

	if a.Loop {
		progress := math.Mod(secs, a.Duration) / a.Duration
		return int(math.Floor(progress*float64(a.Frames))) % a.Frames, false
	}

	progress := math.Min(secs/a.Duration, 1-1e-6)
	return int(math.Floor(progress * float64(a.Frames))), secs >= a.Duration
}
