package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"rss-watcher/internal/domain"
)

// If-Modified-Since wants an RFC 2822 date with a literal GMT zone, not the
// numeric +0000 offset.
const httpDateLayout = "Mon, 2 Jan 2006 15:04:05 -0700"

func httpDate(t time.Time) string {
	return strings.Replace(t.UTC().Format(httpDateLayout), "+0000", "GMT", 1)
}

type Fetcher struct {
	client *http.Client
	log    *slog.Logger
}

func NewFetcher(timeout time.Duration, log *slog.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Fetch retrieves feedURL with an If-Modified-Since precondition derived from
// since. It returns notModified when the server reports no change since then.
//
// When the body fails to decode as a feed but looks like an HTML page, Fetch
// attempts feed autodiscovery once: it follows the page's alternate feed link
// with the same precondition.
func (f *Fetcher) Fetch(
	ctx context.Context,
	feedURL string,
	since time.Time,
) (doc *domain.Document, notModified bool, err error) {
	f.log.InfoContext(ctx, "Fetching feed",
		"feedURL", feedURL,
		"ifModifiedSince", httpDate(since))

	body, notModified, err := f.get(ctx, feedURL, since)
	if err != nil || notModified {
		return nil, notModified, err
	}

	doc, decodeErr := decodeDocument(body)
	if decodeErr == nil {
		return doc, false, nil
	}

	altURL, discoverErr := discoverFeedURL(body, feedURL)
	if discoverErr != nil {
		return nil, false, fmt.Errorf("decode feed (URL = %s): %w", feedURL, decodeErr)
	}

	f.log.InfoContext(ctx, "Following discovered feed link",
		"pageURL", feedURL,
		"feedURL", altURL)

	body, notModified, err = f.get(ctx, altURL, since)
	if err != nil || notModified {
		return nil, notModified, err
	}

	doc, err = decodeDocument(body)
	if err != nil {
		return nil, false, fmt.Errorf("decode discovered feed (URL = %s): %w", altURL, err)
	}

	return doc, false, nil
}

func (f *Fetcher) get(
	ctx context.Context,
	rawURL string,
	since time.Time,
) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("If-Modified-Since", httpDate(since))

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("request feed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			f.log.ErrorContext(ctx, "Failed to close response body",
				"error", closeErr,
				"feedURL", rawURL)
		}
	}()

	if resp.StatusCode == http.StatusNotModified {
		return nil, true, nil
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, false, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("read response body: %w", err)
	}

	return body, false, nil
}
