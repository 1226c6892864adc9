package sift

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// MaxHTMLSize limits HTML input to 10MB to prevent memory exhaustion.
const MaxHTMLSize = 10 * 1024 * 1024

// Parse parses an HTML document with automatic charset detection and
// returns its root Node.
func Parse(htmlStr string) (*Node, error) {
	return ParseBytes([]byte(htmlStr))
}

// ParseBytes parses raw HTML bytes with automatic charset detection.
func ParseBytes(data []byte) (*Node, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("html content required")
	}
	if len(data) > MaxHTMLSize {
		return nil, fmt.Errorf("html exceeds maximum size of %d bytes", MaxHTMLSize)
	}

	utf8Reader, err := charset.NewReader(bytes.NewReader(data), DetectCharset(data))
	if err != nil {
		// Fallback to direct parsing
		return fromReader(bytes.NewReader(data))
	}
	return fromReader(utf8Reader)
}

// ParseReader parses HTML from a stream, reading at most MaxHTMLSize bytes.
func ParseReader(r io.Reader) (*Node, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxHTMLSize+1))
	if err != nil {
		return nil, fmt.Errorf("read html: %w", err)
	}
	return ParseBytes(data)
}

func fromReader(r io.Reader) (*Node, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return FromDocument(doc), nil
}

// DetectCharset detects and returns the charset label of raw HTML bytes,
// defaulting to utf-8.
func DetectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}
