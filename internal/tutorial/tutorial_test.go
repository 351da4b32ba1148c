package tutorial

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"golang.org/x/net/html"

	"github.com/dgallion1/minitut/internal/assemble"
	"github.com/dgallion1/minitut/internal/config"
	"github.com/dgallion1/minitut/internal/deck"
	"github.com/dgallion1/minitut/internal/dom"
	"github.com/dgallion1/minitut/internal/nav"
)

const page = `<html><head><title>Tut</title></head><body class="hidden"><nav></nav><main>
<section id="toc" data-title="Contents"></section>
<section data-title="Intro"><pre data-gobble>
    indented
      more
</pre></section>
<section data-title="Copy" data-clone="#src"></section>
<section id="src" data-title="Source"><p>shared</p></section>
</main></body></html>`

type fakeAssembler struct {
	frags []assemble.Fragment
	err   error
	got   []string
}

func (f *fakeAssembler) FetchAll(_ context.Context, entries []string) ([]assemble.Fragment, error) {
	f.got = entries
	return f.frags, f.err
}

func load(t *testing.T) *deck.Document {
	t.Helper()
	d, err := deck.Load(strings.NewReader(page))
	require.NoError(t, err)
	return d
}

func TestStart_AssemblesBeforeIndexing(t *testing.T) {
	asm := &fakeAssembler{
		frags: []assemble.Fragment{
			{Source: "a", HTML: `<section data-title="Fetched A"></section>`},
			{Source: "b", HTML: `<section data-title="Fetched B"></section>`},
		},
		err: multierr.Combine(errors.New("c failed")),
	}
	loc := nav.NewMemoryLocation("#4")
	tut, err := Start(context.Background(), load(t), loc, asm, Options{Download: []string{"a", "b", "c"}}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, asm.got)
	assert.Equal(t, 5, tut.Doc.Total())
	assert.Equal(t, 5, tut.TOC.Len())
	assert.Equal(t, "Fetched A", tut.Current().Title())
	assert.Equal(t, nav.State{Current: 4, Total: 5}, tut.Nav.State())
	assert.Equal(t, "Tut – Fetched A", tut.Doc.Title())
	assert.Equal(t, "#4", loc.Hash())
}

func TestStart_PreparesDocument(t *testing.T) {
	tut, err := Start(context.Background(), load(t), nav.NewMemoryLocation(""), nil, Options{}, nil)
	require.NoError(t, err)

	intro := tut.Doc.Section(1)
	require.NotNil(t, intro)
	assert.True(t, intro.Visible())
	pre := dom.Query(intro.Node, "pre")
	assert.Equal(t, "indented\n  more", dom.InnerHTML(pre))

	h := dom.Query(intro.Node, "h2.section-title")
	require.NotNil(t, h)
	assert.Equal(t, "Intro", dom.TextContent(h))

	clone := tut.Doc.Section(2)
	assert.Equal(t, "Copy", clone.Title())
	assert.NotNil(t, dom.Query(clone.Node, "p"))
	assert.False(t, clone.Visible())

	assert.Equal(t, "#1", tut.Nav.Location().Hash())
	assert.False(t, dom.HasClass(tut.Doc.Body(), deck.HiddenClass))
}

func TestStart_PluginsSeeAssembledContent(t *testing.T) {
	asm := &fakeAssembler{frags: []assemble.Fragment{{HTML: `<section data-title="Late"><span class="mark"></span></section>`}}}

	var order []string
	first := deck.PluginFunc(func(root *html.Node) {
		order = append(order, "first")
		assert.NotNil(t, dom.Query(root, "span.mark"), "fetched content present")
		assert.Nil(t, dom.Query(root, "h2"), "headings not inserted yet")
	})
	second := deck.PluginFunc(func(*html.Node) { order = append(order, "second") })

	events := deck.NewEvents()
	var changed []string
	events.OnSectionChanged(func(s *deck.Section) { changed = append(changed, s.Title()) })

	tut, err := Start(context.Background(), load(t), nav.NewMemoryLocation("#3"), asm,
		Options{Download: []string{"late.html"}, Plugins: []deck.Plugin{first, second}, Events: events}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, []string{"Source"}, changed)

	tut.Nav.Next()
	assert.Equal(t, []string{"Source", "Late"}, changed)
}

func TestStart_NoSections(t *testing.T) {
	d, err := deck.Load(strings.NewReader(`<html><head><title>Empty</title></head><body class="hidden"><main></main></body></html>`))
	require.NoError(t, err)

	loc := nav.NewMemoryLocation("#7")
	tut, err := Start(context.Background(), d, loc, nil, Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, nav.State{Current: 1, Total: 0}, tut.Nav.State())
	assert.Nil(t, tut.Current())
	assert.True(t, dom.HasClass(d.Body(), deck.HiddenClass))
	assert.Equal(t, "#1", loc.Hash())
}

func TestStart_AlreadyIndexed(t *testing.T) {
	d := load(t)
	require.NoError(t, d.Index())

	asm := &fakeAssembler{frags: []assemble.Fragment{{Source: "x", HTML: "<section></section>"}}}
	_, err := Start(context.Background(), d, nav.NewMemoryLocation(""), asm, Options{Download: []string{"x"}}, nil)
	assert.ErrorIs(t, err, deck.ErrAlreadyIndexed)
}

func TestOpen_ResolvesDownloadsAgainstDocument(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "deck.html")
	require.NoError(t, os.WriteFile(docPath, []byte(page), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.md"), []byte("## Extra\n\nmore text\n"), 0644))

	cfg := config.Default()
	cfg.Document = docPath
	cfg.Download = []string{"extra.md", "missing.md"}
	cfg.TOCStyle = config.TOCHamburger

	tut, err := Open(context.Background(), cfg, nav.NewMemoryLocation("#4"), nil)
	require.NoError(t, err)
	assert.Equal(t, 4, tut.Doc.Total())
	assert.Equal(t, "Extra", tut.Current().Title())
	assert.True(t, tut.TOC.Collapsible())
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.TOCList = config.ListNone
	cfg.SectionTitle = "#title"
	cfg.NoTouchNav = true

	opts := OptionsFromConfig(cfg)
	assert.Equal(t, deck.TOCOptions{Style: deck.TOCPermanent, List: deck.ListNone}, opts.TOC)
	assert.Equal(t, "#title", opts.SectionTitle)
	assert.Equal(t, nav.Options{NoTouchNav: true}, opts.Nav)
}
