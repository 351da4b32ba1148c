package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/net/html"

	"github.com/dgallion1/minitut/internal/doctree"
	"github.com/dgallion1/minitut/internal/dom"
)

// CSVParser handles CSV files. The first row is the table header and the
// data rows are paged into table slides.
type CSVParser struct{}

// RowsPerSlide bounds the data rows shown on one slide.
const RowsPerSlide = 20

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	tree := &doctree.DocTree{Title: baseTitle(filename)}
	if len(records) == 0 {
		return tree, nil
	}

	headers := records[0]
	dataRows := records[1:]
	if len(dataRows) == 0 {
		s := &doctree.Slide{Title: tree.Title}
		s.Append(table(headers, nil))
		tree.Slides = append(tree.Slides, s)
		return tree, nil
	}

	for i := 0; i < len(dataRows); i += RowsPerSlide {
		end := min(i+RowsPerSlide, len(dataRows))
		s := &doctree.Slide{
			Title: fmt.Sprintf("%s: rows %d-%d", tree.Title, i+2, end+1), // 1-indexed, skip header
		}
		s.Append(table(headers, dataRows[i:end]))
		tree.Slides = append(tree.Slides, s)
	}
	return tree, nil
}

func table(headers []string, rows [][]string) *html.Node {
	t := dom.Element("table")
	thead := dom.Element("thead")
	thead.AppendChild(row("th", headers))
	t.AppendChild(thead)

	tbody := dom.Element("tbody")
	for _, r := range rows {
		tbody.AppendChild(row("td", r))
	}
	t.AppendChild(tbody)
	return t
}

func row(cell string, values []string) *html.Node {
	tr := dom.Element("tr")
	for _, v := range values {
		c := dom.Element(cell)
		c.AppendChild(dom.Text(v))
		tr.AppendChild(c)
	}
	return tr
}
