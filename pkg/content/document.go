package content

import (
	"bytes"
	"errors"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
)

var (
	ErrEmptyHTML             = errors.New("empty HTML content")
	ErrNoTranscriptURL       = errors.New("no transcript link found on episode page")
	ErrUnsupportedTranscript = errors.New("unsupported transcript document type")
	ErrEmptyDocument         = errors.New("transcript document is empty")
)

// FindTranscriptURL locates a published transcript link (PDF, TXT) in the
// HTML of a podcast episode page.
//
// Candidate anchors are ranked:
//  1. anchor text mentions "transcript" AND href looks like a document (.pdf/.txt)
//  2. href looks like a document
//  3. anchor text mentions "transcript"
//
// The returned href may be relative; resolve it with ResolveAgainst.
func FindTranscriptURL(html string) (string, error) {
	html = strings.TrimSpace(html)
	if html == "" {
		return "", ErrEmptyHTML
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	type candidate struct {
		href string
		text string
	}

	var (
		high []candidate // text mentions transcript AND href is document-like
		med  []candidate // href is document-like
		low  []candidate // text mentions transcript
	)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		text := strings.TrimSpace(sel.Text())
		docLike := isTranscriptDocumentHref(href)
		textLike := strings.Contains(strings.ToLower(text), "transcript")

		c := candidate{href: href, text: text}
		switch {
		case docLike && textLike:
			high = append(high, c)
		case docLike:
			med = append(med, c)
		case textLike:
			low = append(low, c)
		}
	})

	switch {
	case len(high) > 0:
		return high[0].href, nil
	case len(med) > 0:
		return med[0].href, nil
	case len(low) > 0:
		return low[0].href, nil
	default:
		return "", ErrNoTranscriptURL
	}
}

func isTranscriptDocumentHref(href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return hasTranscriptExt(href)
	}
	return hasTranscriptExt(u.Path)
}

func hasTranscriptExt(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".pdf", ".txt":
		return true
	default:
		return false
	}
}

// ResolveAgainst resolves a possibly-relative transcript href against the
// episode page URL.
func ResolveAgainst(baseURL, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrNoTranscriptURL
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(u).String(), nil
}

// ExtractDocumentText turns a downloaded transcript document into plain text.
// The document type is decided by the URL path extension first, then by the
// response Content-Type.
func ExtractDocumentText(body []byte, docURL, contentType string) (string, error) {
	if len(body) == 0 {
		return "", ErrEmptyDocument
	}

	switch strings.ToLower(path.Ext(urlPath(docURL))) {
	case ".txt":
		return string(body), nil
	case ".pdf":
		return extractPDFText(body)
	}

	lct := strings.ToLower(contentType)
	switch {
	case strings.Contains(lct, "text/plain"):
		return string(body), nil
	case strings.Contains(lct, "application/pdf"):
		return extractPDFText(body)
	default:
		return "", ErrUnsupportedTranscript
	}
}

func urlPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Path
}

// extractPDFText extracts plain text from in-memory PDF bytes.
func extractPDFText(data []byte) (string, error) {
	doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	textReader, err := doc.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, textReader); err != nil {
		return "", err
	}

	return buf.String(), nil
}
