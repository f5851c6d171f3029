package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"rss-watcher/internal/domain"
)

func (d *Database) AddFeed(ctx context.Context, feed domain.FeedConfig) (int64, error) {
	feed.URL = strings.TrimSpace(feed.URL)
	if feed.URL == "" {
		return 0, errors.New("feed URL is empty")
	}

	query := `insert into feeds (url, last_fetch, title, message, push_url, push_token)
	values (?, ?, ?, ?, ?, ?)`

	var lastFetch sql.NullInt64
	if feed.LastFetch != nil {
		lastFetch = sql.NullInt64{Int64: *feed.LastFetch, Valid: true}
	}

	res, err := d.db.ExecContext(ctx, query,
		feed.URL, lastFetch, feed.Title, feed.Message, feed.PushURL, feed.PushToken)
	if err != nil {
		return 0, fmt.Errorf("execute insert: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("fetch inserted id: %w", err)
	}

	return id, nil
}

// ListFeeds returns every configured feed in id order, which is also the
// order the watcher processes them in.
func (d *Database) ListFeeds(ctx context.Context) ([]domain.FeedConfig, error) {
	query := `select id, url, last_fetch, title, message, push_url, push_token
	from feeds
	order by id`

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer func() {
		if err = rows.Close(); err != nil {
			d.log.ErrorContext(ctx, "Failed to close rows",
				"error", err,
				"operation", "ListFeeds")
		}
	}()

	var feeds []domain.FeedConfig
	for rows.Next() {
		var f domain.FeedConfig
		var lastFetch sql.NullInt64

		if err = rows.Scan(&f.ID, &f.URL, &lastFetch,
			&f.Title, &f.Message, &f.PushURL, &f.PushToken); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		if lastFetch.Valid {
			f.LastFetch = &lastFetch.Int64
		}

		f.URL = strings.TrimSpace(f.URL)
		feeds = append(feeds, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return feeds, nil
}

// AdvanceLastFetch records a successful pass over a feed. The guard keeps the
// stored timestamp monotonically non-decreasing.
func (d *Database) AdvanceLastFetch(ctx context.Context, feedID int64, lastFetch int64) error {
	query := `update feeds set last_fetch = ?
	where id = ? and (last_fetch is null or last_fetch <= ?)`

	_, err := d.db.ExecContext(ctx, query, lastFetch, feedID, lastFetch)

	return err
}
