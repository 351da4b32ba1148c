package parser

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/dgallion1/minitut/internal/doctree"
	"github.com/dgallion1/minitut/internal/dom"
)

// MarkdownParser handles Markdown files using goldmark. Headings split slides
// the same way they do in HTML.
type MarkdownParser struct{}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read markdown: %w", err)
	}

	var buf bytes.Buffer
	if err := markdown.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}

	nodes, err := dom.ParseFragment(buf.String(), nil)
	if err != nil {
		return nil, err
	}

	tree := &doctree.DocTree{Title: baseTitle(filename)}
	tree.Slides = splitSlides(nodes, tree.Title)
	return tree, nil
}
