package pet

// State is the single active behavior of the pet.
type State string

const (
	StateIdle           State = "idle"
	StateWalk           State = "walk"
	StateRun            State = "run"
	StateJump           State = "jump"
	StateSit            State = "sit"
	StateSleep          State = "sleep"
	StateRoll           State = "roll"
	StateBark           State = "bark"
	StateBackflip       State = "backflip"
	StateDrag           State = "drag"
	StateToss           State = "toss"
	StateTumble         State = "tumble"
	StateFetchRun       State = "fetch_run"
	StateFetchReturn    State = "fetch_return"
	StateSniff          State = "sniff"
	StateReturnToBottom State = "return_to_bottom"
)

// AllStates lists every state in declaration order.
var AllStates = []State{
	StateIdle,
	StateWalk,
	StateRun,
	StateJump,
	StateSit,
	StateSleep,
	StateRoll,
	StateBark,
	StateBackflip,
	StateDrag,
	StateToss,
	StateTumble,
	StateFetchRun,
	StateFetchReturn,
	StateSniff,
	StateReturnToBottom,
}

// TrickCycle is the order in which clicks play tricks.
var TrickCycle = []State{StateJump, StateRoll, StateBark, StateBackflip}

// Interruptible reports whether targeting and behavior logic may leave the
// state early. Everything else exits only through its own completion.
func (s State) Interruptible() bool {
	switch s {
	case StateJump, StateRoll, StateBark, StateBackflip, StateTumble,
		StateDrag, StateToss, StateFetchRun, StateFetchReturn, StateSniff:
		return false
	}
	return true
}

// Valid reports whether s names a known state.
func (s State) Valid() bool {
	for _, known := range AllStates {
		if s == known {
			return true
		}
	}
	return false
}

// Resting reports whether the pet is standing still on the floor.
func (s State) Resting() bool {
	return s == StateIdle || s == StateSit || s == StateSleep
}
