package art

import "strings"

// Rows and Cols are the size of every frame, in terminal cells.
const (
	Rows = 4
	Cols = 9
)

// Frame is one picture of the pet facing right, top row first.
type Frame [Rows]string

var sheets = map[string][]Frame{
	"idle": {
		{`      __ `, `~\___/ o\`, ` \____ _>`, `  || ||  `},
		{`      __ `, `\\___/ o\`, ` \____ _>`, `  || ||  `},
		{`      __ `, `~\___/ o\`, ` \____ _>`, `  || ||  `},
		{`      __ `, `/\___/ o\`, ` \____ _>`, `  || ||  `},
	},
	"walk": {
		{`      __ `, `~\___/ o\`, ` \____ _>`, `  /| |\  `},
		{`      __ `, `~\___/ o\`, ` \____ _>`, `  || ||  `},
		{`      __ `, `~\___/ o\`, ` \____ _>`, `  |\ /|  `},
		{`      __ `, `~\___/ o\`, ` \____ _>`, `  || ||  `},
		{`      __ `, `-\___/ o\`, ` \____ _>`, `  /| |\  `},
		{`      __ `, `-\___/ o\`, ` \____ _>`, `  || ||  `},
		{`      __ `, `-\___/ o\`, ` \____ _>`, `  |\ /|  `},
		{`      __ `, `-\___/ o\`, ` \____ _>`, `  || ||  `},
	},
	"run": {
		{`       __`, ` _\___/ o`, `/ \____ >`, ` /\   /\ `},
		{`       __`, ` _\___/ o`, `/ \____ >`, ` \/   \/ `},
		{`       __`, ` _\___/ o`, `/ \____ >`, `  \\ //  `},
		{`       __`, ` _\___/ o`, `/ \____ >`, `  -- --  `},
		{`       __`, ` -\___/ o`, `/ \____ >`, ` /\   /\ `},
		{`       __`, ` -\___/ o`, `/ \____ >`, ` \/   \/ `},
		{`       __`, ` -\___/ o`, `/ \____ >`, `  \\ //  `},
		{`       __`, ` -\___/ o`, `/ \____ >`, `  -- --  `},
	},
	"jump": {
		{`         `, `      __ `, `~\___/ o\`, ` \_,,_,_>`},
		{`      __ `, `/\___/ o\`, ` \____ _>`, `  \\ //  `},
		{`      __ `, `/\___/ o\`, ` \____ _>`, `  // \\  `},
		{`         `, `      __ `, `~\___/ o\`, ` \_||_|_>`},
	},
	"sit": {
		{`      __ `, `~\___/ o\`, ` \____ _>`, `  || ||  `},
		{`     __  `, `  __/ o\ `, `~/  \ _> `, `  || |   `},
		{`     __  `, `   _/ o\ `, `~(  | _> `, ` (_|_|   `},
		{`     __  `, `   _/ o\ `, `~(  | _> `, ` (_|_|   `},
	},
	"sleep": {
		{`       z `, `   ____  `, ` _/ -  \_`, `(_______)`},
		{`      z  `, `   ____  `, ` _/ -  \_`, `(_______)`},
		{`     Z   `, `   ____  `, ` _/ -  \_`, `(_______)`},
		{`         `, `   ____  `, ` _/ -  \_`, `(_______)`},
	},
	"roll": {
		{`      __ `, `~\___/ o\`, ` \____ _>`, `  || ||  `},
		{`  _____  `, ` / o   \ `, `|  ===  |`, ` \_____/ `},
		{`  || ||  `, ` /____ _\`, `~/___\ o/`, `      -- `},
		{`  _____  `, ` / ===  \`, `|   o   |`, ` \_____/ `},
	},
	"bark": {
		{`      __!`, `~\___/ o\`, ` \____ _<`, `  || ||  `},
		{`      __ `, `~\___/ o\`, ` \____ _>`, `  || ||  `},
		{`      __!`, `~\___/ O\`, ` \____ _<`, `  || ||  `},
		{`      __ `, `~\___/ o\`, ` \____ _>`, `  || ||  `},
	},
	"backflip": {
		{`         `, `      __ `, `~\___/ o\`, ` \_,,_,_>`},
		{`  \\ //  `, ` /____ _\`, `/\___/ o/`, `      -- `},
		{`  || ||  `, ` /____ _\`, `~/___\ o/`, `      -- `},
		{`      __ `, `~\___/ o\`, ` \____ _>`, `  || ||  `},
	},
}

var mirrorPairs = strings.NewReplacer(
	"/", `\`, `\`, "/",
	"(", ")", ")", "(",
	"<", ">", ">", "<",
	"[", "]", "]", "[",
	"{", "}", "}", "{",
)

// Sprites lists the sheets that have art.
func Sprites() []string {
	return []string{"idle", "walk", "run", "jump", "sit", "sleep", "roll", "bark", "backflip"}
}

// Has reports whether sprite has its own sheet.
func Has(sprite string) bool {
	_, ok := sheets[sprite]
	return ok
}

// FrameCount returns the number of frames in sprite's sheet, falling back
// to idle for unknown sprites.
func FrameCount(sprite string) int {
	return len(sheet(sprite))
}

// FrameFor returns frame index of sprite. Unknown sprites use the idle
// sheet and the index wraps around the sheet length.
func FrameFor(sprite string, index int, facingLeft bool) Frame {
	frames := sheet(sprite)
	if index < 0 {
		index = 0
	}
	f := frames[index%len(frames)]
	if facingLeft {
		return Mirror(f)
	}
	return f
}

// Mirror flips a frame horizontally.
func Mirror(f Frame) Frame {
	var out Frame
	for i, row := range f {
		r := []rune(mirrorPairs.Replace(row))
		for a, b := 0, len(r)-1; a < b; a, b = a+1, b-1 {
			r[a], r[b] = r[b], r[a]
		}
		out[i] = string(r)
	}
	return out
}

func sheet(sprite string) []Frame {
	if frames, ok := sheets[sprite]; ok && len(frames) > 0 {
		return frames
	}
	return sheets["idle"]
}
