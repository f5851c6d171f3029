// Package notify turns a cycle's surviving entries into gotify notifications.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rss-watcher/internal/domain"
	"rss-watcher/internal/template"
)

type Notifier struct {
	client *http.Client
	log    *slog.Logger
}

func New(timeout time.Duration, log *slog.Logger) *Notifier {
	return &Notifier{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// PushAll renders and pushes one notification per entry published after
// cutoff, in document order. A failed delivery is logged and joined into the
// returned error but never stops the remaining entries.
func (n *Notifier) PushAll(
	ctx context.Context,
	doc *domain.Document,
	conf *domain.FeedConfig,
	cutoff time.Time,
) error {
	var errs []error

	for _, entry := range freshEntries(doc.Entries, cutoff) {
		title := template.Render(conf.Title, doc, &entry)
		message := template.Render(conf.Message, doc, &entry)

		var link string
		if len(entry.Links) > 0 {
			link = template.Escape(entry.Links[0].Href)
		}

		if err := n.push(ctx, conf, title, message, link); err != nil {
			errs = append(errs, fmt.Errorf("push notification (entry = %s): %w", entry.ID, err))
		}
	}

	return errors.Join(errs...)
}

// freshEntries keeps entries published strictly after cutoff. An entry
// without a published time cannot be judged old and is always kept. Order is
// preserved.
func freshEntries(entries []domain.Entry, cutoff time.Time) []domain.Entry {
	var fresh []domain.Entry

	for _, entry := range entries {
		if entry.Published != nil && !entry.Published.After(cutoff) {
			continue
		}

		fresh = append(fresh, entry)
	}

	return fresh
}

// buildPayload assembles the gotify message body. The title, message and
// link arguments are already escaped for JSON embedding, so the payload is
// spliced together verbatim; marshalling them again would double-escape.
func buildPayload(title, message, link string) string {
	var b strings.Builder

	b.WriteString(`{"title":"`)
	b.WriteString(title)
	b.WriteString(`","message":"`)
	b.WriteString(message)
	b.WriteString(`","priority":1`)
	b.WriteString(`,"extras": {`)
	b.WriteString(`"client::display": { "contentType": "text/markdown" }`)
	if link != "" {
		b.WriteString(`,"client::notification": { "click": { "url": "`)
		b.WriteString(link)
		b.WriteString(`"}}`)
	}
	b.WriteString(`}}`)

	return b.String()
}

func (n *Notifier) push(
	ctx context.Context,
	conf *domain.FeedConfig,
	title string,
	message string,
	link string,
) error {
	payload := buildPayload(title, message, link)

	pushURL := fmt.Sprintf("%s/message?token=%s",
		strings.TrimSuffix(conf.PushURL, "/"),
		url.QueryEscape(conf.PushToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		pushURL, strings.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			n.log.ErrorContext(ctx, "Failed to close response body",
				"error", closeErr,
				"pushURL", conf.PushURL)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		n.log.ErrorContext(ctx, "Could not send notification",
			"status", resp.StatusCode,
			"pushURL", conf.PushURL,
			"payload", payload)

		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	n.log.InfoContext(ctx, "Sent notification",
		"title", title,
		"pushURL", conf.PushURL)

	return nil
}
