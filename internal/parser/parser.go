package parser

import (
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/dgallion1/minitut/internal/doctree"
)

// Parser converts raw supplementary content into slides.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.DocTree, error)
}

// SupportedExtensions lists file extensions that can be turned into slides.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename or URL path.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: true}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %q", ext)
	}
}

// ForContentType returns a parser for a response media type. Parameters
// such as charset are ignored.
func ForContentType(contentType string) (Parser, error) {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("parse content type %q: %w", contentType, err)
	}
	switch mt {
	case "text/plain":
		return &TextParser{}, nil
	case "text/markdown", "text/x-markdown":
		return &MarkdownParser{}, nil
	case "text/csv":
		return &CSVParser{}, nil
	case "text/html", "application/xhtml+xml":
		return &HTMLParser{}, nil
	case "application/pdf":
		return &PDFParser{FallbackPdftotext: true}, nil
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported content type: %q", mt)
	}
}

// Detect picks a parser by extension first, then by content type.
func Detect(filename, contentType string) (Parser, error) {
	if IsSupportedExtension(filename) {
		return ForFile(filename)
	}
	if contentType == "" {
		return nil, fmt.Errorf("cannot detect format of %q", filename)
	}
	return ForContentType(contentType)
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(path.Ext(filename))
	return SupportedExtensions[ext]
}

// baseTitle derives a document title from a filename.
func baseTitle(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
