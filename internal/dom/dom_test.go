package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html><html><head><title>Deck</title></head><body class="hidden">
<main>
<section id="toc" data-title="Contents"></section>
<section id="a" data-title="Intro" data-background-color="red"><p>one</p></section>
<section data-clone="#a"></section>
</main>
</body></html>`

func TestQuery(t *testing.T) {
	doc, err := Parse(strings.NewReader(page))
	require.NoError(t, err)

	assert.Equal(t, "Deck", TextContent(Query(doc, "title")))
	assert.Len(t, QueryAll(doc, "section"), 3)
	assert.NotNil(t, Query(doc, `section[data-clone="#a"]`))
	assert.Nil(t, Query(doc, "section[[broken"))
	assert.Nil(t, Query(nil, "section"))
}

func TestDataAttributes(t *testing.T) {
	doc, err := Parse(strings.NewReader(page))
	require.NoError(t, err)

	sec := Query(doc, "#a")
	v, ok := Data(sec, "backgroundColor")
	require.True(t, ok)
	assert.Equal(t, "red", v)

	SetData(sec, "index", "1")
	v, _ = Attr(sec, "data-index")
	assert.Equal(t, "1", v)

	_, ok = Data(sec, "chapter")
	assert.False(t, ok)
}

func TestClasses(t *testing.T) {
	n := Element("div", "class", "a b")
	AddClass(n, "c")
	AddClass(n, "a")
	assert.Equal(t, []string{"a", "b", "c"}, Classes(n))

	RemoveClass(n, "b")
	assert.False(t, HasClass(n, "b"))

	assert.False(t, ToggleClass(n, "a"))
	assert.True(t, ToggleClass(n, "a"))

	RemoveClass(n, "a")
	RemoveClass(n, "c")
	_, ok := Attr(n, "class")
	assert.False(t, ok, "empty class attribute should be dropped")
}

func TestSetStyle(t *testing.T) {
	n := Element("body")
	SetStyle(n, "background-color", "red")
	SetStyle(n, "background-image", "url(x.png)")
	assert.Equal(t, "red", Style(n, "background-color"))
	assert.Equal(t, "url(x.png)", Style(n, "background-image"))

	SetStyle(n, "background-color", "")
	assert.Equal(t, "", Style(n, "background-color"))

	SetStyle(n, "background-image", "")
	_, ok := Attr(n, "style")
	assert.False(t, ok)
}

func TestInnerHTMLRoundTrip(t *testing.T) {
	n := Element("section")
	require.NoError(t, SetInnerHTML(n, "<p>hi <b>there</b></p>"))
	assert.Equal(t, "<p>hi <b>there</b></p>", InnerHTML(n))

	require.NoError(t, AppendHTML(n, "<p>more</p>"))
	assert.Equal(t, "<p>hi <b>there</b></p><p>more</p>", InnerHTML(n))
}

func TestCopyChildrenIsDeep(t *testing.T) {
	src := Element("section")
	require.NoError(t, SetInnerHTML(src, "<p>one</p>"))
	dst := Element("section")
	CopyChildren(dst, src)

	SetText(src.FirstChild, "changed")
	assert.Equal(t, "one", TextContent(dst))
}

func TestPrepend(t *testing.T) {
	n := Element("section")
	Prepend(n, Element("p"))
	Prepend(n, Element("h2"))
	assert.Equal(t, "<h2></h2><p></p>", InnerHTML(n))
}
