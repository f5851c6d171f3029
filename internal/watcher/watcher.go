// Package watcher drives one polling cycle over every configured feed.
package watcher

import (
	"context"
	"log/slog"
	"time"

	"rss-watcher/internal/database"
	"rss-watcher/internal/domain"
	"rss-watcher/internal/feed"
	"rss-watcher/internal/notify"
)

type Watcher struct {
	db       *database.Database
	fetcher  *feed.Fetcher
	notifier *notify.Notifier
	log      *slog.Logger
}

func New(
	db *database.Database,
	fetcher *feed.Fetcher,
	notifier *notify.Notifier,
	log *slog.Logger,
) *Watcher {
	return &Watcher{
		db:       db,
		fetcher:  fetcher,
		notifier: notifier,
		log:      log,
	}
}

// RunCycle processes every feed sequentially, in store order. A feed whose
// fetch stage succeeded gets its last-fetch timestamp advanced to the instant
// its pass started, so the next cycle's window begins where this one did.
func (w *Watcher) RunCycle(ctx context.Context) {
	feeds, err := w.db.ListFeeds(ctx)
	if err != nil {
		w.log.ErrorContext(ctx, "Could not list feeds",
			"error", err)

		return
	}

	for i := range feeds {
		conf := &feeds[i]
		started := time.Now().UTC()

		if !w.processFeed(ctx, conf, started) {
			continue
		}

		if err = w.db.AdvanceLastFetch(ctx, conf.ID, started.Unix()); err != nil {
			w.log.ErrorContext(ctx, "Could not advance last fetch time",
				"error", err,
				"feedID", conf.ID,
				"feedURL", conf.URL)
		}
	}
}

// processFeed reports whether the feed's last-fetch timestamp may advance.
// Fetch-stage failure and not-modified hold the timestamp; partial delivery
// failure does not, so a flaky gateway never blocks progress (at the cost of
// at-most-once delivery).
func (w *Watcher) processFeed(ctx context.Context, conf *domain.FeedConfig, now time.Time) bool {
	// A feed that has never been fetched uses "now" as its cutoff, so its
	// backlog is not notified all at once.
	cutoff := now
	if conf.LastFetch != nil {
		cutoff = time.Unix(*conf.LastFetch, 0).UTC()
	}

	doc, notModified, err := w.fetcher.Fetch(ctx, conf.URL, cutoff)
	if err != nil {
		w.log.ErrorContext(ctx, "Could not fetch feed",
			"error", err,
			"feedID", conf.ID,
			"feedURL", conf.URL)

		return false
	}

	if notModified {
		w.log.InfoContext(ctx, "No changes since last fetch",
			"feedID", conf.ID,
			"feedURL", conf.URL)

		return false
	}

	if err = w.notifier.PushAll(ctx, doc, conf, cutoff); err != nil {
		w.log.ErrorContext(ctx, "Could not send some push notifications",
			"error", err,
			"feedID", conf.ID,
			"feedURL", conf.URL)
	}

	return true
}
