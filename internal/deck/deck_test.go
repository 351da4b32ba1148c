package deck

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/dgallion1/minitut/internal/dom"
)

const scenario = `<!DOCTYPE html>
<html><head><title>Tut</title></head>
<body class="hidden">
<h1 id="heading"></h1>
<nav></nav>
<main>
<section id="toc" data-title="Contents"></section>
<section data-title="Intro" data-background-color="navy"><p>intro</p></section>
<section data-title="Ch1 heading" data-chapter></section>
<section data-title="A" data-icon="star" data-background-image="a.png"><p>a</p></section>
<section data-title="B"><p>b</p></section>
</main>
</body></html>`

func load(t *testing.T, src string) *Document {
	t.Helper()
	d, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	return d
}

func prepared(t *testing.T, src string, opts TOCOptions) (*Document, *TOC, *Renderer) {
	t.Helper()
	d := load(t, src)
	require.NoError(t, d.Index())
	d.HideAll()
	toc := BuildTOC(d, opts)
	return d, toc, NewRenderer(d, nil, "", nil)
}

func TestIndex_DenseInDocumentOrder(t *testing.T) {
	d := load(t, scenario)
	require.NoError(t, d.Index())

	require.Equal(t, 3, d.Total())
	assert.Equal(t, "Intro", d.Section(1).Title())
	assert.Equal(t, "A", d.Section(2).Title())
	assert.Equal(t, "B", d.Section(3).Title())
	assert.Nil(t, d.Section(0))
	assert.Nil(t, d.Section(4))

	for _, s := range d.Sections() {
		idx, ok := dom.Data(s.Node, "index")
		if !s.Navigable() {
			assert.False(t, ok, "section %q must not carry an index", s.Title())
			assert.Zero(t, s.Index())
			continue
		}
		assert.Equal(t, s.Index(), mustAtoi(t, idx))
	}
}

func TestIndex_OnlyOnce(t *testing.T) {
	d := load(t, scenario)
	require.NoError(t, d.Index())
	assert.ErrorIs(t, d.Index(), ErrAlreadyIndexed)
	assert.ErrorIs(t, d.Append("<section></section>"), ErrAlreadyIndexed)
}

func TestIndex_ClonesBeforeCounting(t *testing.T) {
	d := load(t, `<html><head><title>T</title></head><body><main>
<section id="src" data-title="Source"><p>shared</p></section>
<section data-title="Middle"></section>
<section data-clone="#src"></section>
<section data-clone="#src" data-title="Own title"></section>
<section data-clone="#missing" data-title="Orphan"></section>
</main></body></html>`)
	require.NoError(t, d.Index())

	require.Equal(t, 5, d.Total())
	clone := d.Section(3)
	assert.Equal(t, "Source", clone.Title())
	assert.Equal(t, "<p>shared</p>", clone.InnerHTML())

	assert.Equal(t, "Own title", d.Section(4).Title())
	assert.Equal(t, "<p>shared</p>", d.Section(4).InnerHTML())

	orphan := d.Section(5)
	assert.Equal(t, "Orphan", orphan.Title())
	assert.Empty(t, orphan.InnerHTML())
}

func TestIndex_CloneCopiesAreIndependent(t *testing.T) {
	d := load(t, `<html><body>
<section id="src" data-title="S"><p>x</p></section>
<section data-clone="#src"></section>
</body></html>`)
	require.NoError(t, d.Index())

	dom.SetText(d.Section(1).Node.FirstChild, "changed")
	assert.Equal(t, "<p>x</p>", d.Section(2).InnerHTML())
}

func TestAppend_AddsSectionsBeforeIndexing(t *testing.T) {
	d := load(t, scenario)
	require.NoError(t, d.Append(`<section data-title="C"></section><section data-title="D"></section>`))
	require.NoError(t, d.Index())
	assert.Equal(t, 5, d.Total())
	assert.Equal(t, "D", d.Section(5).Title())
}

func TestHideAll_KeepsTOCVisible(t *testing.T) {
	d := load(t, scenario)
	require.NoError(t, d.Index())
	d.HideAll()

	for _, s := range d.Sections() {
		assert.Equal(t, s.IsTOC(), s.Visible(), "section %q", s.Title())
	}
}

func TestInsertHeadings(t *testing.T) {
	d := load(t, scenario)
	require.NoError(t, d.Index())
	d.InsertHeadings(false)

	first := func(s *Section) *html.Node { return s.Node.FirstChild }

	toc := d.TOCSection()
	assert.Equal(t, []string{"toc-title"}, dom.Classes(first(toc)))
	assert.Equal(t, []string{"section-title"}, dom.Classes(first(d.Section(1))))
	assert.Equal(t, "Intro", dom.TextContent(first(d.Section(1))))

	for _, s := range d.Sections() {
		if s.IsChapter() {
			assert.Equal(t, []string{"chapter-title", "print-only"}, dom.Classes(first(s)))
		}
	}
}

func TestInsertHeadings_PrintOnlyWithSectionTitle(t *testing.T) {
	d := load(t, scenario)
	require.NoError(t, d.Index())
	d.InsertHeadings(true)
	assert.Equal(t, []string{"section-title", "print-only"}, dom.Classes(d.Section(2).Node.FirstChild))
}

func TestGobble(t *testing.T) {
	in := "\n\n    line one\n      nested\n\n    line two\n  \n"
	assert.Equal(t, "line one\n  nested\n\nline two", gobble(in))
	assert.Equal(t, "", gobble("\n   \n"))
	assert.Equal(t, "flat", gobble("flat"))
}

func TestGobbleWhitespace(t *testing.T) {
	d := load(t, "<html><body><pre data-gobble>\n    a &lt; b\n      c\n  </pre></body></html>")
	d.GobbleWhitespace()
	pre := dom.Query(d.Root(), "pre")
	assert.Equal(t, "a &lt; b\n  c", dom.InnerHTML(pre))
}

func TestBuildTOC_ScenarioGroups(t *testing.T) {
	d, toc, _ := prepared(t, scenario, TOCOptions{Style: TOCPermanent, List: ListOrdered})

	require.Len(t, toc.Groups, 2)
	assert.False(t, toc.Groups[0].Chapter)
	assert.Equal(t, []TOCEntry{{Index: 1, Title: "Intro"}}, toc.Groups[0].Entries)
	assert.True(t, toc.Groups[1].Chapter)
	assert.Equal(t, "Ch1 heading", toc.Groups[1].Heading)
	assert.Equal(t, []TOCEntry{{Index: 2, Title: "A", Icon: "star"}, {Index: 3, Title: "B"}}, toc.Groups[1].Entries)
	assert.Equal(t, d.Total(), toc.Len())

	container := d.TOCSection().Node
	headings := dom.QueryAll(container, "h3")
	require.Len(t, headings, 1)
	assert.Equal(t, "Ch1 heading", dom.TextContent(headings[0]))
	assert.Equal(t, "toc-ch1-heading", attr(headings[0], "id"))

	lists := dom.QueryAll(container, "ol")
	require.Len(t, lists, 2)
	assert.Equal(t, headings[0], lists[1].PrevSibling)

	links := dom.QueryAll(lists[1], "li a")
	require.Len(t, links, 2)
	assert.Equal(t, "#2", attr(links[0], "href"))
	assert.Equal(t, "A", dom.TextContent(links[0]))
	assert.Equal(t, "#3", attr(links[1], "href"))
	assert.NotNil(t, dom.Query(lists[1], `li[data-index="2"] span.icon.star`))
	assert.True(t, toc.MenuVisible())
	assert.False(t, toc.Collapsible())
}

func TestBuildTOC_ChapterResetsList(t *testing.T) {
	d, toc, _ := prepared(t, `<html><body>
<section id="toc"></section>
<section data-title="One" data-chapter></section>
<section data-title="Two" data-chapter></section>
<section data-title="x"></section>
<section></section>
</body></html>`, TOCOptions{List: ListUnordered})

	require.Len(t, toc.Groups, 2)
	assert.Empty(t, toc.Groups[0].Entries)
	assert.Equal(t, []TOCEntry{{Index: 1, Title: "x"}, {Index: 2, Title: "2"}}, toc.Groups[1].Entries)

	container := d.TOCSection().Node
	assert.Len(t, dom.QueryAll(container, "h3"), 2)
	assert.Len(t, dom.QueryAll(container, "ul"), 1)
	assert.Len(t, dom.QueryAll(container, "li"), d.Total())
}

func TestBuildTOC_ListNone(t *testing.T) {
	d, _, _ := prepared(t, scenario, TOCOptions{List: ListNone})
	lists := dom.QueryAll(d.TOCSection().Node, "ul.tocListNone")
	assert.Len(t, lists, 2)
}

func TestBuildTOC_Hamburger(t *testing.T) {
	d, toc, _ := prepared(t, scenario, TOCOptions{Style: TOCHamburger})
	container := d.TOCSection().Node

	require.NotNil(t, dom.Query(container, "div.toc-hamburger-button"))
	menu := dom.Query(container, "div.toc-hamburger-menu")
	require.NotNil(t, menu)
	assert.Len(t, dom.QueryAll(menu, "li"), 3)

	assert.True(t, toc.Collapsible())
	assert.False(t, toc.MenuVisible())
	assert.True(t, toc.Toggle())
	assert.False(t, dom.HasClass(menu, HiddenClass))
	assert.False(t, toc.Toggle())
	assert.True(t, dom.HasClass(menu, HiddenClass))
}

func TestBuildTOC_WithoutTOCSection(t *testing.T) {
	_, toc, _ := prepared(t, `<html><body><section data-title="a"></section></body></html>`, TOCOptions{})
	assert.Equal(t, 1, toc.Len())
	assert.False(t, toc.MenuVisible())
	assert.False(t, toc.Toggle())
}

func TestRender_Scenario(t *testing.T) {
	d, _, r := prepared(t, scenario, TOCOptions{})

	require.True(t, r.Render(2))

	assert.Equal(t, "Tut"+TitleSeparator+"A", d.Title())
	visible := d.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, 2, visible[0].Index())

	active := dom.QueryAll(d.Root(), "#toc a.active")
	require.Len(t, active, 1)
	assert.Equal(t, "#2", attr(active[0], "href"))

	links := dom.QueryAll(d.Nav(), "a")
	require.Len(t, links, 2)
	assert.Equal(t, "#1", attr(links[0], "href"))
	assert.Equal(t, "Intro", dom.TextContent(links[0]))
	assert.Equal(t, "#3", attr(links[1], "href"))
	assert.Equal(t, "B", dom.TextContent(links[1]))

	body := d.Body()
	assert.False(t, dom.HasClass(body, HiddenClass))
	assert.Equal(t, "url(a.png)", dom.Style(body, "background-image"))
	assert.Empty(t, dom.Style(body, "background-color"))
}

func TestRender_ExactlyOneVisibleForEveryIndex(t *testing.T) {
	d, _, r := prepared(t, scenario, TOCOptions{})
	for i := 1; i <= d.Total(); i++ {
		require.True(t, r.Render(i))
		visible := d.Visible()
		require.Len(t, visible, 1)
		assert.Equal(t, i, visible[0].Index())
		assert.Len(t, dom.QueryAll(d.Root(), "#toc a.active"), 1)
		assert.True(t, d.TOCSection().Visible())
	}
}

func TestRender_BackgroundDoesNotLeak(t *testing.T) {
	d, _, r := prepared(t, scenario, TOCOptions{})
	require.True(t, r.Render(1))
	assert.Equal(t, "navy", dom.Style(d.Body(), "background-color"))
	require.True(t, r.Render(3))
	_, ok := dom.Attr(d.Body(), "style")
	assert.False(t, ok)
}

func TestRender_EdgeLinksAndUntitledNeighbours(t *testing.T) {
	d, _, r := prepared(t, `<html><head><title>T</title></head><body><nav></nav>
<section data-title="First"></section>
<section></section>
<section data-title="Last"></section>
</body></html>`, TOCOptions{})

	require.True(t, r.Render(1))
	links := dom.QueryAll(d.Nav(), "a")
	require.Len(t, links, 2)
	_, hasHref := dom.Attr(links[0], "href")
	assert.False(t, hasHref)
	_, hasHref = dom.Attr(links[1], "href")
	assert.False(t, hasHref, "untitled neighbour yields an empty link")

	require.True(t, r.Render(2))
	assert.Equal(t, "T", d.Title())
	links = dom.QueryAll(d.Nav(), "a")
	assert.Equal(t, "#1", attr(links[0], "href"))
	assert.Equal(t, "#3", attr(links[1], "href"))
}

func TestRender_MissingSectionIsSoftFailure(t *testing.T) {
	d, _, r := prepared(t, scenario, TOCOptions{})
	var changed int
	r.events.OnSectionChanged(func(*Section) { changed++ })

	assert.False(t, r.Render(9))
	assert.Empty(t, d.Visible())
	assert.True(t, dom.HasClass(d.Body(), HiddenClass))
	assert.Equal(t, "Tut", d.Title())
	assert.Zero(t, changed)
}

func TestRender_SectionTitleTargetAndViewport(t *testing.T) {
	d := load(t, scenario)
	require.NoError(t, d.Index())
	events := NewEvents()
	var seen []int
	events.OnSectionChanged(func(s *Section) { seen = append(seen, s.Index()) })

	r := NewRenderer(d, events, "#heading", nil)
	vp := &recordingViewport{}
	r.SetViewport(vp)

	require.True(t, r.Render(3))
	h := dom.Query(d.Root(), "#heading")
	assert.Equal(t, "B", dom.TextContent(h))
	assert.True(t, dom.HasClass(h, "no-print"))
	assert.Equal(t, 1, vp.calls)
	assert.Equal(t, []int{3}, seen)
}

func TestEvents_PluginsInOrderAndContentReadyOnce(t *testing.T) {
	events := NewEvents()
	var order []string
	events.Use(
		PluginFunc(func(*html.Node) { order = append(order, "first") }),
		nil,
		PluginFunc(func(*html.Node) { order = append(order, "second") }),
	)
	events.OnContentReady(func(*html.Node) { order = append(order, "listener") })

	root := dom.Element("main")
	events.ContentReady(root)
	events.ContentReady(root)
	assert.Equal(t, []string{"first", "second", "listener"}, order)

	events.HTMLChanged(dom.Element("div"))
	assert.Equal(t, []string{"first", "second", "listener", "first", "second"}, order)
}

func TestDocument_DefaultsWithoutMainOrTitle(t *testing.T) {
	d := load(t, `<section data-title="only"></section>`)
	assert.Equal(t, d.Body(), d.Content())
	assert.Equal(t, "", d.TitlePrefix())
	d.SetTitle("x")
	assert.Equal(t, "x", d.Title())
	assert.Contains(t, d.HTML(), "<title>x</title>")
}

type recordingViewport struct{ calls int }

func (v *recordingViewport) ScrollTo(x, y int) { v.calls++ }

func attr(n *html.Node, key string) string {
	v, _ := dom.Attr(n, key)
	return v
}

func mustAtoi(t *testing.T, s string) int {
	t.Helper()
	n, err := strconv.Atoi(s)
	require.NoError(t, err)
	return n
}
