package deck

import (
	"golang.org/x/net/html"

	"github.com/dgallion1/minitut/internal/dom"
)

// Section is one <section> element of the deck. Presentation hints are read
// from the element's data-* attributes, so they always reflect the document.
type Section struct {
	Node  *html.Node
	index int
}

// Index returns the 1-based display index, or 0 for the TOC section and
// chapter markers.
func (s *Section) Index() int { return s.index }

// ID returns the element id.
func (s *Section) ID() string {
	v, _ := dom.Attr(s.Node, "id")
	return v
}

// Title returns data-title.
func (s *Section) Title() string {
	v, _ := dom.Data(s.Node, "title")
	return v
}

// IsTOC reports whether this is the table of contents section.
func (s *Section) IsTOC() bool { return s.ID() == TOCID }

// IsChapter reports whether the section is a chapter marker (data-chapter
// present with any value).
func (s *Section) IsChapter() bool {
	_, ok := dom.Data(s.Node, "chapter")
	return ok
}

// Navigable reports whether the section takes part in navigation.
func (s *Section) Navigable() bool { return !s.IsTOC() && !s.IsChapter() }

// BackgroundColor returns data-background-color.
func (s *Section) BackgroundColor() string {
	v, _ := dom.Data(s.Node, "backgroundColor")
	return v
}

// BackgroundImage returns data-background-image.
func (s *Section) BackgroundImage() string {
	v, _ := dom.Data(s.Node, "backgroundImage")
	return v
}

// Icon returns data-icon.
func (s *Section) Icon() string {
	v, _ := dom.Data(s.Node, "icon")
	return v
}

// CloneRef returns the selector in data-clone.
func (s *Section) CloneRef() string {
	v, _ := dom.Data(s.Node, "clone")
	return v
}

// Visible reports whether the section is not hidden.
func (s *Section) Visible() bool { return !dom.HasClass(s.Node, HiddenClass) }

// InnerHTML renders the section's content.
func (s *Section) InnerHTML() string { return dom.InnerHTML(s.Node) }
