// Package deck turns a flat HTML document made of <section> elements into a
// slide deck: it indexes the sections, builds the table of contents and
// renders the visible section for a given display index.
package deck

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/minitut/internal/dom"
)

// TOCID is the reserved id of the table of contents section.
const TOCID = "toc"

// HiddenClass marks elements that must not be displayed.
const HiddenClass = "hidden"

// ErrAlreadyIndexed is returned when Index runs a second time on a document.
var ErrAlreadyIndexed = errors.New("document already indexed")

// Document is a loaded deck together with the section set established by Index.
type Document struct {
	root  *html.Node
	body  *html.Node
	main  *html.Node
	nav   *html.Node
	title *html.Node

	titlePrefix string

	sections []*Section
	ordered  []*Section // ordered[i] carries display index i+1
	indexed  bool
}

// Load parses an HTML document.
func Load(r io.Reader) (*Document, error) {
	root, err := dom.Parse(r)
	if err != nil {
		return nil, err
	}
	return New(root), nil
}

// New wraps an already parsed document. The current document title becomes
// the title prefix used for every rendered section.
func New(root *html.Node) *Document {
	d := &Document{
		root: root,
		body: dom.Query(root, "body"),
		main: dom.Query(root, "main"),
		nav:  dom.Query(root, "nav"),
	}
	if d.body == nil {
		d.body = dom.Element("body")
		root.AppendChild(d.body)
	}
	d.title = dom.Query(root, "title")
	if d.title == nil {
		d.title = dom.Element("title")
		if head := dom.Query(root, "head"); head != nil {
			head.AppendChild(d.title)
		}
	}
	d.titlePrefix = dom.TextContent(d.title)
	return d
}

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.root }

// Body returns the <body> element.
func (d *Document) Body() *html.Node { return d.body }

// Content returns the element sections live in: <main> when present, <body> otherwise.
func (d *Document) Content() *html.Node {
	if d.main != nil {
		return d.main
	}
	return d.body
}

// Nav returns the navigation link container, or nil.
func (d *Document) Nav() *html.Node { return d.nav }

// Title returns the current document title.
func (d *Document) Title() string { return dom.TextContent(d.title) }

// SetTitle replaces the document title.
func (d *Document) SetTitle(s string) { dom.SetText(d.title, s) }

// TitlePrefix returns the title the document had when it was loaded.
func (d *Document) TitlePrefix() string { return d.titlePrefix }

// Append adds an HTML fragment after the existing content. It must be called
// before Index.
func (d *Document) Append(fragment string) error {
	if d.indexed {
		return fmt.Errorf("append after indexing: %w", ErrAlreadyIndexed)
	}
	if err := dom.AppendHTML(d.Content(), fragment); err != nil {
		return fmt.Errorf("append fragment: %w", err)
	}
	return nil
}

// Indexed reports whether Index has run.
func (d *Document) Indexed() bool { return d.indexed }

// Sections returns every section in document order, including the TOC
// section and chapter markers. It is empty before Index.
func (d *Document) Sections() []*Section { return d.sections }

// Total returns the number of navigable sections.
func (d *Document) Total() int { return len(d.ordered) }

// Section returns the section with the given display index, or nil.
func (d *Document) Section(index int) *Section {
	if index < 1 || index > len(d.ordered) {
		return nil
	}
	return d.ordered[index-1]
}

// TOCSection returns the table of contents section, or nil.
func (d *Document) TOCSection() *Section {
	for _, s := range d.sections {
		if s.IsTOC() {
			return s
		}
	}
	return nil
}

// Visible returns the navigable sections currently not hidden.
func (d *Document) Visible() []*Section {
	var out []*Section
	for _, s := range d.ordered {
		if s.Visible() {
			out = append(out, s)
		}
	}
	return out
}

// WriteTo renders the whole document.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := html.Render(cw, d.root); err != nil {
		return cw.n, fmt.Errorf("render document: %w", err)
	}
	return cw.n, nil
}

// HTML renders the whole document to a string.
func (d *Document) HTML() string {
	var b strings.Builder
	_, _ = d.WriteTo(&b)
	return b.String()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
