package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/sethgrid/beagle/internal/controller"
)

// Palette is the set of colors for one theme.
type Palette struct {
	Bg, Fg          tcell.Color
	Heading, Card   tcell.Color
	Pet, Ball       tcell.Color
	Paw, Bubble     tcell.Color
	StatusBg, Muted tcell.Color
}

var (
	lightPalette = Palette{
		Bg:       tcell.NewHexColor(0xfaf7f2),
		Fg:       tcell.NewHexColor(0x2b2b2b),
		Heading:  tcell.NewHexColor(0x8a4b14),
		Card:     tcell.NewHexColor(0x3b6e8f),
		Pet:      tcell.NewHexColor(0x6b3e1f),
		Ball:     tcell.NewHexColor(0xd64545),
		Paw:      tcell.NewHexColor(0x8c7b6b),
		Bubble:   tcell.NewHexColor(0x2b2b2b),
		StatusBg: tcell.NewHexColor(0xe6dfd3),
		Muted:    tcell.NewHexColor(0x7a7a7a),
	}
	darkPalette = Palette{
		Bg:       tcell.NewHexColor(0x16181d),
		Fg:       tcell.NewHexColor(0xd8d8d8),
		Heading:  tcell.NewHexColor(0xf0b46a),
		Card:     tcell.NewHexColor(0x7fb4d9),
		Pet:      tcell.NewHexColor(0xe0a878),
		Ball:     tcell.NewHexColor(0xff6b6b),
		Paw:      tcell.NewHexColor(0x9c8f80),
		Bubble:   tcell.NewHexColor(0xf2f2f2),
		StatusBg: tcell.NewHexColor(0x262a31),
		Muted:    tcell.NewHexColor(0x8a8f98),
	}
)

// PaletteFor returns the palette of a theme; anything but dark is light.
func PaletteFor(theme controller.Theme) Palette {
	if theme == controller.ThemeDark {
		return darkPalette
	}
	return lightPalette
}

// Blend mixes fg over bg at alpha in [0, 1].
func Blend(fg, bg tcell.Color, alpha float64) tcell.Color {
	alpha = math.Max(0, math.Min(1, alpha))
	fr, fg2, fb := fg.RGB()
	br, bg2, bb := bg.RGB()
	if fr < 0 || br < 0 {
		return fg
	}
	mix := func(a, b int32) int32 {
		return int32(math.Round(float64(b) + (float64(a)-float64(b))*alpha))
	}
	return tcell.NewRGBColor(mix(fr, br), mix(fg2, bg2), mix(fb, bb))
}
