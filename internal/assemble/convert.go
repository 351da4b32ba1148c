package assemble

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/dgallion1/minitut/internal/parser"
)

// ToHTML converts fetched content into section markup. Content that already
// contains <section> elements is returned verbatim; anything else is parsed
// by the format picked from the name's extension, then the content type,
// then a sniff of the body.
func ToHTML(name, contentType string, body []byte) (string, error) {
	if hasSections(body) {
		return string(body), nil
	}

	p, err := parser.Detect(name, contentType)
	if err != nil {
		p, err = parser.ForContentType(http.DetectContentType(body))
		if err != nil {
			return "", err
		}
	}

	tree, err := p.Parse(bytes.NewReader(body), name)
	if err != nil {
		return "", err
	}
	out, err := tree.HTML()
	if err != nil {
		return "", fmt.Errorf("render slides: %w", err)
	}
	return out, nil
}

func hasSections(body []byte) bool {
	return bytes.Contains(bytes.ToLower(body), []byte("<section"))
}
