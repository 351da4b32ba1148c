package deck

import (
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/dgallion1/minitut/internal/dom"
)

// TitleSeparator joins the title prefix and the section title.
const TitleSeparator = " – "

// Viewport is the scrollable area showing the deck.
type Viewport interface {
	ScrollTo(x, y int)
}

type nopViewport struct{}

func (nopViewport) ScrollTo(int, int) {}

// Renderer applies a display index to the document: exactly the matching
// section is shown and every dependent element is updated.
type Renderer struct {
	doc          *Document
	events       *Events
	viewport     Viewport
	sectionTitle string
	log          *zap.Logger
}

// NewRenderer creates a renderer. sectionTitle is an optional selector for
// an element that displays the current section title.
func NewRenderer(doc *Document, events *Events, sectionTitle string, log *zap.Logger) *Renderer {
	if events == nil {
		events = NewEvents()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		doc:          doc,
		events:       events,
		viewport:     nopViewport{},
		sectionTitle: sectionTitle,
		log:          log,
	}
}

// SetViewport replaces the viewport that is scrolled to the top on every render.
func (r *Renderer) SetViewport(v Viewport) {
	if v == nil {
		v = nopViewport{}
	}
	r.viewport = v
}

// Render shows the section with the given display index. It reports false,
// leaving every section hidden, when no such section exists.
func (r *Renderer) Render(index int) bool {
	r.doc.HideAll()

	section := r.doc.Section(index)
	if section == nil {
		r.log.Debug("no section to render", zap.Int("index", index), zap.Int("total", r.doc.Total()))
		return false
	}
	dom.RemoveClass(section.Node, HiddenClass)

	r.events.SectionChanged(section)

	body := r.doc.Body()
	dom.SetStyle(body, "background-color", section.BackgroundColor())
	if img := section.BackgroundImage(); img != "" {
		dom.SetStyle(body, "background-image", "url("+img+")")
	} else {
		dom.SetStyle(body, "background-image", "")
	}

	r.viewport.ScrollTo(0, 0)

	title := section.Title()
	if title != "" {
		r.doc.SetTitle(r.doc.TitlePrefix() + TitleSeparator + title)
	} else {
		r.doc.SetTitle(r.doc.TitlePrefix())
	}

	if r.sectionTitle != "" {
		if el := dom.Query(r.doc.Root(), r.sectionTitle); el != nil {
			dom.AddClass(el, "no-print")
			dom.SetText(el, title)
		}
	}

	for _, a := range dom.QueryAll(r.doc.Root(), "#"+TOCID+" li a") {
		dom.RemoveClass(a, "active")
	}
	if a := dom.Query(r.doc.Root(), `#`+TOCID+` li[data-index="`+strconv.Itoa(index)+`"] a`); a != nil {
		dom.AddClass(a, "active")
	}

	r.renderNavLinks(index)

	dom.RemoveClass(body, HiddenClass)
	return true
}

// renderNavLinks rebuilds the previous/next links. A link stays empty when
// the neighbour does not exist or has no title.
func (r *Renderer) renderNavLinks(index int) {
	nav := r.doc.Nav()
	if nav == nil {
		return
	}
	dom.RemoveChildren(nav)

	prev := dom.Element("a")
	next := dom.Element("a")
	nav.AppendChild(prev)
	nav.AppendChild(next)

	fill := func(a *html.Node, target int) {
		s := r.doc.Section(target)
		if s == nil || s.Title() == "" {
			return
		}
		dom.SetText(a, s.Title())
		dom.SetAttr(a, "href", "#"+strconv.Itoa(target))
	}
	fill(prev, index-1)
	fill(next, index+1)
}
