package deck

import (
	"strconv"

	"github.com/gosimple/slug"
	"golang.org/x/net/html"

	"github.com/dgallion1/minitut/internal/dom"
)

// TOCStyle selects how the table of contents is laid out.
type TOCStyle string

const (
	// TOCPermanent appends headings and lists directly into the TOC section.
	TOCPermanent TOCStyle = "permanent"
	// TOCHamburger hides them in a panel behind a toggle button.
	TOCHamburger TOCStyle = "hamburger"
)

// TOCList selects the list element used for entries.
type TOCList string

const (
	ListOrdered   TOCList = "ol"
	ListUnordered TOCList = "ul"
	ListNone      TOCList = "none"
)

// TOCOptions configures BuildTOC.
type TOCOptions struct {
	Style TOCStyle
	List  TOCList
}

// TOCEntry links to one navigable section.
type TOCEntry struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Icon  string `json:"icon,omitempty"`
}

// TOCGroup is an optional chapter heading followed by the entries listed
// under it. Chapters never nest.
type TOCGroup struct {
	Heading string     `json:"heading,omitempty"`
	Chapter bool       `json:"chapter"`
	Entries []TOCEntry `json:"entries"`
}

// TOC is the table of contents derived from an indexed document.
type TOC struct {
	Groups []TOCGroup

	container *html.Node
	menu      *html.Node
}

// BuildTOC derives the table of contents from the indexed sections and, when
// the document has a TOC section, renders it there. It runs once, after
// Index and before the first render.
func BuildTOC(d *Document, opts TOCOptions) *TOC {
	t := &TOC{}
	var current *TOCGroup

	for _, s := range d.Sections() {
		if s.IsChapter() {
			t.Groups = append(t.Groups, TOCGroup{Heading: s.Title(), Chapter: true})
			current = &t.Groups[len(t.Groups)-1]
			continue
		}
		if s.Index() == 0 {
			continue
		}
		if current == nil {
			t.Groups = append(t.Groups, TOCGroup{})
			current = &t.Groups[len(t.Groups)-1]
		}
		title := s.Title()
		if title == "" {
			title = strconv.Itoa(s.Index())
		}
		current.Entries = append(current.Entries, TOCEntry{Index: s.Index(), Title: title, Icon: s.Icon()})
	}

	if toc := d.TOCSection(); toc != nil {
		t.container = toc.Node
		t.render(opts)
	}
	return t
}

// Len returns the number of entries across all groups.
func (t *TOC) Len() int {
	n := 0
	for _, g := range t.Groups {
		n += len(g.Entries)
	}
	return n
}

// Collapsible reports whether the TOC was rendered behind a toggle.
func (t *TOC) Collapsible() bool { return t.menu != nil }

// MenuVisible reports whether the collapsed panel is currently shown.
// A permanent TOC is always visible.
func (t *TOC) MenuVisible() bool {
	if t.menu == nil {
		return t.container != nil
	}
	return !dom.HasClass(t.menu, HiddenClass)
}

// Toggle shows or hides the collapsed panel and returns the new visibility.
// It does nothing for a permanent TOC.
func (t *TOC) Toggle() bool {
	if t.menu == nil {
		return t.MenuVisible()
	}
	return !dom.ToggleClass(t.menu, HiddenClass)
}

func (t *TOC) render(opts TOCOptions) {
	var elements []*html.Node
	var list *html.Node

	for _, g := range t.Groups {
		list = nil
		if g.Chapter {
			h := dom.Element("h3")
			if id := slug.Make(g.Heading); id != "" {
				dom.SetAttr(h, "id", "toc-"+id)
			}
			dom.SetText(h, g.Heading)
			elements = append(elements, h)
		}
		for _, e := range g.Entries {
			if list == nil {
				list = newList(opts.List)
				elements = append(elements, list)
			}
			list.AppendChild(entryNode(e))
		}
	}

	if opts.Style != TOCHamburger {
		for _, el := range elements {
			t.container.AppendChild(el)
		}
		return
	}

	button := dom.Element("div", "class", "toc-hamburger-button __mt__icon-menu no-print")
	t.menu = dom.Element("div", "class", "toc-hamburger-menu "+HiddenClass)
	for _, el := range elements {
		t.menu.AppendChild(el)
	}
	t.container.AppendChild(button)
	t.container.AppendChild(t.menu)
}

func newList(kind TOCList) *html.Node {
	if kind == ListOrdered || kind == "" {
		return dom.Element("ol")
	}
	list := dom.Element("ul")
	if kind == ListNone {
		dom.AddClass(list, "tocListNone")
	}
	return list
}

func entryNode(e TOCEntry) *html.Node {
	li := dom.Element("li")
	dom.SetData(li, "index", strconv.Itoa(e.Index))
	if e.Icon != "" {
		li.AppendChild(dom.Element("span", "class", "icon "+e.Icon))
	}
	a := dom.Element("a", "href", "#"+strconv.Itoa(e.Index))
	dom.SetText(a, e.Title)
	li.AppendChild(a)
	return li
}
