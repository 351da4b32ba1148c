// Package doctree holds supplementary content converted into slides. Each
// slide renders as one <section> that a deck can append before indexing.
package doctree

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/minitut/internal/dom"
)

// DocTree is the root of a parsed supplementary document.
type DocTree struct {
	Title  string   // Document title (from metadata or filename)
	Slides []*Slide // Slides in source order
}

// Slide is one future <section>.
type Slide struct {
	Title   string       // data-title; empty leaves the section untitled
	Chapter bool         // chapter markers carry a title only
	Page    int          // Source page (0 if N/A)
	Body    []*html.Node // Detached content nodes
}

// Append detaches nodes from their current parents and adds them to the
// slide body.
func (s *Slide) Append(nodes ...*html.Node) {
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		s.Body = append(s.Body, n)
	}
}

// Empty reports whether the slide has no content besides its title.
func (s *Slide) Empty() bool {
	for _, n := range s.Body {
		if n.Type != html.TextNode || strings.TrimSpace(n.Data) != "" {
			return false
		}
	}
	return true
}

// Section builds the <section> element for the slide. The body is cloned so
// the slide can be rendered more than once.
func (s *Slide) Section() *html.Node {
	sec := dom.Element("section")
	if s.Title != "" {
		dom.SetData(sec, "title", s.Title)
	}
	if s.Chapter {
		dom.SetAttr(sec, "data-chapter", "")
		return sec
	}
	if s.Page > 0 {
		dom.SetData(sec, "page", strconv.Itoa(s.Page))
	}
	for _, n := range s.Body {
		sec.AppendChild(dom.Clone(n))
	}
	return sec
}

// Sections renders every slide.
func (t *DocTree) Sections() []*html.Node {
	out := make([]*html.Node, 0, len(t.Slides))
	for _, s := range t.Slides {
		out = append(out, s.Section())
	}
	return out
}

// HTML serializes the slides as a sequence of sections.
func (t *DocTree) HTML() (string, error) {
	var buf bytes.Buffer
	for _, sec := range t.Sections() {
		if err := html.Render(&buf, sec); err != nil {
			return "", fmt.Errorf("render slide: %w", err)
		}
		buf.WriteByte('\n')
	}
	return buf.String(), nil
}

// Paragraphs splits text on blank lines and wraps each block in <p>.
func Paragraphs(text string) []*html.Node {
	var out []*html.Node
	var cur []string
	flush := func() {
		if len(cur) == 0 {
			return
		}
		p := dom.Element("p")
		p.AppendChild(dom.Text(strings.Join(cur, "\n")))
		out = append(out, p)
		cur = nil
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return out
}
