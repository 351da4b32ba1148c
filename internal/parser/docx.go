package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
	"golang.org/x/net/html"

	"github.com/dgallion1/minitut/internal/doctree"
	"github.com/dgallion1/minitut/internal/dom"
)

// DOCXParser handles .docx files. Heading 1 opens a chapter, Heading 2 a
// slide; deeper headings stay inside the slide as <h3>.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "minitut-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var nodes []*html.Node
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if n := docxNode(para); n != nil {
			nodes = append(nodes, n)
		}
	}

	tree := &doctree.DocTree{Title: baseTitle(filename)}
	tree.Slides = splitSlides(nodes, tree.Title)
	return tree, nil
}

// docxNode maps a paragraph onto the heading or paragraph element that
// splitSlides understands.
func docxNode(para *docx.Paragraph) *html.Node {
	text := docxParagraphText(para)
	if text == "" {
		return nil
	}
	tag := "p"
	switch level := docxHeadingLevel(para); {
	case level == 1:
		tag = "h1"
	case level == 2:
		tag = "h2"
	case level > 2:
		tag = "h3"
	}
	n := dom.Element(tag)
	n.AppendChild(dom.Text(text))
	return n
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if !strings.HasPrefix(style, "heading") {
		return 0
	}
	switch strings.TrimPrefix(style, "heading") {
	case "1":
		return 1
	case "2":
		return 2
	case "3", "4", "5", "6":
		return 3
	}
	return 0
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
