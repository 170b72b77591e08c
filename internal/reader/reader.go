// Package reader loads diary content from disk. Markdown and plain text
// pass through untouched; HTML, DOCX and PDF are converted to diary text
// (headings become '#' lines) before lexing.
package reader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Reader converts one input format to diary text.
type Reader interface {
	Read(r io.Reader, filename string) (string, error)
}

// SupportedExtensions lists the file extensions a diary can be loaded from.
var SupportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
	".html":     true,
	".htm":      true,
	".docx":     true,
	".pdf":      true,
}

// ForFile returns the reader for a filename.
func ForFile(filename string) (Reader, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown", ".txt":
		return &TextReader{}, nil
	case ".html", ".htm":
		return &HTMLReader{}, nil
	case ".docx":
		return &DOCXReader{}, nil
	case ".pdf":
		return &PDFReader{FallbackPdftotext: true}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(filename))
	}
}

// IsSupportedExtension checks whether a filename can be loaded.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// ReadFile opens path and converts it to diary text.
func ReadFile(path string) (string, error) {
	rd, err := ForFile(path)
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open diary: %w", err)
	}
	defer f.Close()
	return rd.Read(f, filepath.Base(path))
}

// TextReader handles markdown and plain text diaries verbatim.
type TextReader struct{}

func (p *TextReader) Read(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
