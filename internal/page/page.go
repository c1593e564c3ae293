// Package page turns an HTML document into text rows and the landmark
// rectangles the pet can sniff.
package page

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

//go:embed default.html
var defaultHTML []byte

// LandmarkSelector picks the elements that become sniff landmarks.
const LandmarkSelector = "section[id], h2, [data-bento]"

const blockSelector = "h1, h2, h3, p, li, [data-bento]"

type Kind string

const (
	KindTitle   Kind = "title"
	KindHeading Kind = "heading"
	KindText    Kind = "text"
	KindCard    Kind = "card"
)

// Block is one run of text in document order. Landmark is empty for plain
// text and otherwise names the landmark the block starts.
type Block struct {
	Kind     Kind
	Text     string
	Landmark string
}

type Page struct {
	Title  string
	Blocks []Block
}

// Load parses an HTML document. Non-UTF-8 pages are decoded using their
// meta charset.
func Load(r io.Reader) (*Page, error) {
	decoded, err := charset.NewReader(r, "")
	if err != nil {
		return nil, fmt.Errorf("failed to detect page encoding: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(decoded)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	p := &Page{Title: normalize(doc.Find("title").First().Text())}
	seen := make(map[string]bool)

	doc.Find("body").Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		// cards are read whole
		if s.ParentsFiltered("[data-bento]").Length() > 0 {
			return
		}
		text := normalize(s.Text())
		if text == "" {
			return
		}

		b := Block{Kind: kindOf(s), Text: text}
		if s.Is(LandmarkSelector) {
			b.Landmark = landmarkName(s, text)
		}
		if sec := s.Closest("section[id]"); sec.Length() > 0 {
			id, _ := sec.Attr("id")
			if !seen[id] {
				seen[id] = true
				b.Landmark = id
			}
		}
		p.Blocks = append(p.Blocks, b)
	})

	if p.Title == "" && len(p.Blocks) > 0 {
		p.Title = p.Blocks[0].Text
	}
	return p, nil
}

// Default returns the built-in page.
func Default() *Page {
	p, err := Load(bytes.NewReader(defaultHTML))
	if err != nil {
		panic(err)
	}
	return p
}

// Landmarks returns the names of every landmark block.
func (p *Page) Landmarks() []string {
	var names []string
	for _, b := range p.Blocks {
		if b.Landmark != "" {
			names = append(names, b.Landmark)
		}
	}
	return names
}

func kindOf(s *goquery.Selection) Kind {
	switch {
	case s.Is("[data-bento]"):
		return KindCard
	case s.Is("h1"):
		return KindTitle
	case s.Is("h2, h3"):
		return KindHeading
	}
	return KindText
}

func landmarkName(s *goquery.Selection, text string) string {
	if v, ok := s.Attr("data-bento"); ok && v != "" {
		return v
	}
	if v, ok := s.Attr("id"); ok && v != "" {
		return v
	}
	return text
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
