package deck

import (
	"strconv"
	"strings"

	"github.com/dgallion1/minitut/internal/dom"
)

// Index establishes the section set. Clone references are resolved first so
// that a clone receives its own display index; then every section that is
// neither the TOC nor a chapter marker gets data-index 1..N in document order.
// It runs once per document.
func (d *Document) Index() error {
	if d.indexed {
		return ErrAlreadyIndexed
	}
	d.indexed = true

	d.resolveClones()

	for _, n := range dom.QueryAll(d.root, "section") {
		s := &Section{Node: n}
		d.sections = append(d.sections, s)
		if !s.Navigable() {
			continue
		}
		d.ordered = append(d.ordered, s)
		s.index = len(d.ordered)
		dom.SetData(n, "index", strconv.Itoa(s.index))
	}
	return nil
}

// resolveClones copies the content, and the title when the clone has none,
// of the element referenced by data-clone. Missing sources are skipped.
func (d *Document) resolveClones() {
	for _, n := range dom.QueryAll(d.root, "section[data-clone]") {
		s := &Section{Node: n}
		src := dom.Query(d.root, s.CloneRef())
		if src == nil || src == n {
			continue
		}
		dom.CopyChildren(n, src)
		if s.Title() != "" {
			continue
		}
		if title, ok := dom.Data(src, "title"); ok {
			dom.SetData(n, "title", title)
		}
	}
}

// HideAll hides every section except the table of contents.
func (d *Document) HideAll() {
	for _, s := range d.sections {
		if s.IsTOC() {
			continue
		}
		dom.AddClass(s.Node, HiddenClass)
	}
}

// InsertHeadings places an <h2> with the section title at the start of every
// titled section. withSectionTitle marks the headings print-only because the
// title is already shown in a dedicated element on screen.
func (d *Document) InsertHeadings(withSectionTitle bool) {
	for _, s := range d.sections {
		title := s.Title()
		if title == "" {
			continue
		}

		var classes []string
		switch {
		case s.IsTOC():
			classes = append(classes, "toc-title")
		case s.IsChapter():
			classes = append(classes, "chapter-title")
		default:
			classes = append(classes, "section-title")
		}
		if withSectionTitle || s.IsChapter() {
			classes = append(classes, "print-only")
		}

		h := dom.Element("h2", "class", strings.Join(classes, " "))
		dom.SetText(h, title)
		dom.Prepend(s.Node, h)
	}
}

// GobbleWhitespace strips surrounding blank lines and common indentation
// from every element marked with data-gobble. Code samples are usually
// indented with the surrounding markup.
func (d *Document) GobbleWhitespace() {
	for _, n := range dom.QueryAll(d.root, "[data-gobble]") {
		_ = dom.SetInnerHTML(n, gobble(dom.InnerHTML(n)))
	}
}

func gobble(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")

	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		} else if strings.TrimSpace(line) == "" {
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n")
}
