package feed

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var feedLinkTypes = map[string]struct{}{
	"application/rss+xml":   {},
	"application/atom+xml":  {},
	"application/feed+json": {},
}

// discoverFeedURL scans an HTML page for an alternate feed link and resolves
// it against the page URL. Configured URLs sometimes point at the site root
// instead of the feed itself.
func discoverFeedURL(page []byte, pageURL string) (string, error) {
	htmlDoc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse page URL: %w", err)
	}

	var found string
	htmlDoc.Find(`link[rel="alternate"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		linkType := strings.ToLower(strings.TrimSpace(sel.AttrOr("type", "")))
		if _, ok := feedLinkTypes[linkType]; !ok {
			return true
		}

		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" {
			return true
		}

		ref, parseErr := url.Parse(href)
		if parseErr != nil {
			return true
		}

		found = base.ResolveReference(ref).String()

		return false
	})

	if found == "" {
		return "", errors.New("no alternate feed link in page")
	}

	return found, nil
}
