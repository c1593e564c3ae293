// Package render draws the page and the pet onto a tcell screen.
package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/sethgrid/beagle/internal/art"
	"github.com/sethgrid/beagle/internal/controller"
	"github.com/sethgrid/beagle/internal/kinematics"
	"github.com/sethgrid/beagle/internal/page"
	"github.com/sethgrid/beagle/internal/particles"
)

const (
	ballGlyph = '●'
	pawGlyph  = '•'
	hints     = "t theme  m music  q quit"
)

// Scene is everything drawn in one frame.
type Scene struct {
	View   controller.View
	Rows   []page.Row
	Scroll int
	Theme  controller.Theme
	Status string
}

// Renderer maps pixel positions onto a grid of cellW x cellH cells. The
// last screen row is the status line.
type Renderer struct {
	screen       tcell.Screen
	cellW, cellH int
}

func New(screen tcell.Screen, cellW, cellH int) *Renderer {
	return &Renderer{screen: screen, cellW: max(1, cellW), cellH: max(1, cellH)}
}

// Viewport returns the pet's playfield in pixels.
func (r *Renderer) Viewport() (width, height float64) {
	cols, rows := r.screen.Size()
	return float64(cols * r.cellW), float64(r.PageRows(rows) * r.cellH)
}

// PageRows is the number of rows above the status line.
func (r *Renderer) PageRows(screenRows int) int {
	return max(1, screenRows-1)
}

// ToPixels converts a cell to the pixel at its centre.
func (r *Renderer) ToPixels(col, row int) kinematics.Vec {
	return kinematics.Vec{
		X: float64(col*r.cellW) + float64(r.cellW)/2,
		Y: float64(row*r.cellH) + float64(r.cellH)/2,
	}
}

func (r *Renderer) toCell(p kinematics.Vec) (col, row int) {
	return int(math.Floor(p.X / float64(r.cellW))), int(math.Floor(p.Y / float64(r.cellH)))
}

// Draw renders a full animated frame.
func (r *Renderer) Draw(s Scene) {
	pal := PaletteFor(s.Theme)
	r.clear(pal)
	r.drawPage(s, pal)

	v := s.View
	for _, paw := range v.Paws {
		col, row := r.toCell(paw.Pos)
		r.put(col, row, pawGlyph, pal.Paw, pal, paw.Alpha)
	}
	if v.Ball != nil {
		col, row := r.toCell(v.Ball.Pos)
		r.put(col, row, ballGlyph, pal.Ball, pal, v.Ball.Alpha)
	}

	col, row := r.toCell(v.Pos)
	r.drawSprite(col, row, art.FrameFor(v.Sprite, v.Frame, v.FacingLeft), pal)

	for _, b := range v.Bubbles {
		r.drawBubble(b, pal)
	}

	r.drawStatus(s.Status, pal)
	r.screen.Show()
}

// DrawStatic renders the reduced-motion frame: the page and a still pet at
// the bottom centre.
func (r *Renderer) DrawStatic(s Scene) {
	pal := PaletteFor(s.Theme)
	r.clear(pal)
	r.drawPage(s, pal)

	cols, rows := r.screen.Size()
	r.drawSprite((cols-art.Cols)/2, r.PageRows(rows)-art.Rows, art.FrameFor("idle", 0, false), pal)
	r.drawStatus(s.Status, pal)
	r.screen.Show()
}

func (r *Renderer) clear(pal Palette) {
	r.screen.SetStyle(tcell.StyleDefault.Background(pal.Bg).Foreground(pal.Fg))
	r.screen.Clear()
}

func (r *Renderer) drawPage(s Scene, pal Palette) {
	_, rows := r.screen.Size()
	base := tcell.StyleDefault.Background(pal.Bg)

	for y := 0; y < r.PageRows(rows); y++ {
		i := s.Scroll + y
		if i < 0 || i >= len(s.Rows) {
			continue
		}
		row := s.Rows[i]
		style := base.Foreground(pal.Fg)
		switch row.Kind {
		case page.KindTitle, page.KindHeading:
			style = base.Foreground(pal.Heading).Bold(true)
		case page.KindCard:
			style = base.Foreground(pal.Card)
			r.screen.SetContent(0, y, '▌', nil, style)
		}
		r.text(row.Indent, y, row.Text, style)
	}
}

func (r *Renderer) drawSprite(col, row int, f art.Frame, pal Palette) {
	style := tcell.StyleDefault.Background(pal.Bg).Foreground(pal.Pet).Bold(true)
	for dy, line := range f {
		x := col
		for _, ch := range line {
			if ch != ' ' {
				r.screen.SetContent(x, row+dy, ch, nil, style)
			}
			x += runewidth.RuneWidth(ch)
		}
	}
}

func (r *Renderer) drawBubble(b particles.Bubble, pal Palette) {
	col, row := r.toCell(b.Pos)
	style := tcell.StyleDefault.Background(pal.Bg).Foreground(Blend(pal.Bubble, pal.Bg, b.Alpha))
	r.text(col, row, b.Glyph, style)
}

func (r *Renderer) drawStatus(status string, pal Palette) {
	cols, rows := r.screen.Size()
	y := rows - 1
	style := tcell.StyleDefault.Background(pal.StatusBg).Foreground(pal.Fg)
	for x := 0; x < cols; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
	r.text(1, y, status, style)
	if hx := cols - runewidth.StringWidth(hints) - 1; hx > runewidth.StringWidth(status)+2 {
		r.text(hx, y, hints, style.Foreground(pal.Muted))
	}
}

func (r *Renderer) put(col, row int, ch rune, fg tcell.Color, pal Palette, alpha float64) {
	style := tcell.StyleDefault.Background(pal.Bg).Foreground(Blend(fg, pal.Bg, alpha))
	r.screen.SetContent(col, row, ch, nil, style)
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x += max(1, runewidth.RuneWidth(ch))
	}
}
