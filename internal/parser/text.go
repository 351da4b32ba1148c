package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/minitut/internal/doctree"
)

// TextParser handles plain text files. Slides are separated by a line
// holding only "---"; the first line of each block is its title.
type TextParser struct{}

const slideBreak = "---"

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var blocks [][]string
	var current []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == slideBreak {
			blocks = append(blocks, current)
			current = nil
			continue
		}
		current = append(current, line)
	}
	blocks = append(blocks, current)

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	tree := &doctree.DocTree{Title: baseTitle(filename)}
	for _, block := range blocks {
		if s := textSlide(block); s != nil {
			tree.Slides = append(tree.Slides, s)
		}
	}
	return tree, nil
}

func textSlide(lines []string) *doctree.Slide {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return nil
	}
	s := &doctree.Slide{Title: strings.TrimSpace(lines[0])}
	s.Append(doctree.Paragraphs(strings.Join(lines[1:], "\n"))...)
	return s
}
