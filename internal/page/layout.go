package page

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/sethgrid/beagle/internal/sniff"
)

const cardIndent = 2

// Row is one terminal line of laid-out page text. The first row of a
// landmark block carries its name and Span, the number of rows the block
// covers.
type Row struct {
	Kind     Kind
	Text     string
	Indent   int
	Landmark string
	Span     int
}

// Layout wraps the page to cols columns with a blank row between blocks.
func (p *Page) Layout(cols int) []Row {
	if cols < 8 {
		cols = 8
	}
	var rows []Row
	for i, b := range p.Blocks {
		if i > 0 {
			rows = append(rows, Row{})
		}
		indent := 0
		if b.Kind == KindCard {
			indent = cardIndent
		}
		text := b.Text
		if b.Kind == KindTitle || b.Kind == KindHeading {
			text = strings.ToUpper(text)
		}

		lines := wrap(text, cols-indent*2)
		for j, line := range lines {
			r := Row{Kind: b.Kind, Text: line, Indent: indent}
			if j == 0 {
				r.Landmark = b.Landmark
				r.Span = len(lines)
			}
			rows = append(rows, r)
		}
	}
	return rows
}

// Landmarks returns the landmark rectangles visible with the page scrolled
// down by scroll rows, in pixels of a cellW x cellH grid, within a viewport
// of viewRows rows.
func Landmarks(rows []Row, scroll, viewRows, cellW, cellH int) []sniff.Landmark {
	var out []sniff.Landmark
	for i, r := range rows {
		if r.Landmark == "" {
			continue
		}
		top := i - scroll
		if top+r.Span <= 0 || top >= viewRows {
			continue
		}

		width := 0
		for _, line := range rows[i : i+r.Span] {
			width = max(width, runewidth.StringWidth(line.Text))
		}
		out = append(out, sniff.Landmark{
			Name: r.Landmark,
			Rect: sniff.Rect{
				X: float64(r.Indent * cellW),
				Y: float64(top * cellH),
				W: float64(width * cellW),
				H: float64(r.Span * cellH),
			},
		})
	}
	return out
}

// MaxScroll is the furthest the page scrolls in a viewport of viewRows.
func MaxScroll(rows []Row, viewRows int) int {
	return max(0, len(rows)-viewRows/2)
}

// wrap breaks text into lines at most width display cells wide. Words wider
// than a line are cut.
func wrap(text string, width int) []string {
	var lines []string
	var cur strings.Builder
	curW := 0

	for _, word := range strings.Fields(text) {
		w := runewidth.StringWidth(word)
		for w > width {
			if curW > 0 {
				lines = append(lines, cur.String())
				cur.Reset()
				curW = 0
			}
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				head = string([]rune(word)[:1])
			}
			lines = append(lines, head)
			word = word[len(head):]
			w = runewidth.StringWidth(word)
		}
		if w == 0 {
			continue
		}

		switch {
		case curW == 0:
			cur.WriteString(word)
			curW = w
		case curW+1+w <= width:
			cur.WriteByte(' ')
			cur.WriteString(word)
			curW += 1 + w
		default:
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(word)
			curW = w
		}
	}
	if curW > 0 || len(lines) == 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
