package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dgallion1/minitut/internal/doctree"
	"github.com/dgallion1/minitut/internal/dom"
)

// HTMLParser handles HTML documents without <section> markup. Every <h1>
// opens a chapter and every <h2> opens a slide.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	tree := &doctree.DocTree{Title: baseTitle(filename)}
	if t := dom.Query(doc, "head > title"); t != nil {
		if s := dom.TextContent(t); s != "" {
			tree.Title = s
		}
	}

	root := dom.Query(doc, "body")
	if root == nil {
		root = doc
	}
	tree.Slides = splitSlides(flatten(root), tree.Title)
	return tree, nil
}

// flatten lists the block-level nodes under n, descending into generic
// containers that hold headings so the headings surface as split points.
func flatten(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.CommentNode {
			continue
		}
		if c.Type == html.ElementNode {
			switch c.DataAtom {
			case atom.Script, atom.Style, atom.Nav, atom.Footer:
				continue
			case atom.Div, atom.Main, atom.Article, atom.Header:
				if dom.Query(c, "h1, h2") != nil {
					out = append(out, flatten(c)...)
					continue
				}
			}
		}
		out = append(out, c)
	}
	return out
}

// splitSlides cuts a run of nodes into slides. An <h1> emits a chapter
// marker and starts a slide with the same title that is kept only when
// content follows. An <h2> starts a titled slide. Content before any heading
// lands in a slide titled fallback.
func splitSlides(nodes []*html.Node, fallback string) []*doctree.Slide {
	var slides []*doctree.Slide
	var cur *doctree.Slide
	keepEmpty := false

	flush := func() {
		if cur != nil && (keepEmpty || !cur.Empty()) {
			slides = append(slides, cur)
		}
		cur = nil
	}

	for _, n := range nodes {
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) == "" {
			continue
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.H1:
				flush()
				title := dom.TextContent(n)
				slides = append(slides, &doctree.Slide{Title: title, Chapter: true})
				cur, keepEmpty = &doctree.Slide{Title: title}, false
				continue
			case atom.H2:
				flush()
				cur, keepEmpty = &doctree.Slide{Title: dom.TextContent(n)}, true
				continue
			}
		}
		if cur == nil {
			cur, keepEmpty = &doctree.Slide{Title: fallback}, false
		}
		cur.Append(n)
	}
	flush()
	return slides
}
