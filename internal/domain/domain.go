package domain

import "time"

// Content classifications carried by text-bearing feed fields. They decide
// how a field is converted for the markdown-oriented notification body.
const (
	ContentTypePlain = "text/plain"
	ContentTypeHTML  = "text/html"
)

// FeedConfig is one row of the configuration store. The pipeline reads it and
// reports a new last-fetch timestamp upward; it never mutates the row itself.
type FeedConfig struct {
	ID        int64
	URL       string
	LastFetch *int64 // unix seconds, nil means never fetched
	Title     string // title template
	Message   string // message template
	PushURL   string
	PushToken string
}

// Text is a text-bearing field together with its content classification.
type Text struct {
	ContentType string
	Body        string
}

type Person struct {
	Name  string
	URI   string
	Email string
}

type Link struct {
	Href  string
	Rel   string
	Title string
}

type Category struct {
	Term  string
	Label string
}

// Document is one decoded feed, produced fresh per fetch and owned by the
// pipeline for a single cycle.
type Document struct {
	ID           string
	Title        *Text
	Description  *Text
	Rights       *Text
	Language     string
	Updated      *time.Time
	Published    *time.Time
	Authors      []Person
	Links        []Link
	Categories   []Category
	Contributors []Person
	Entries      []Entry
}

// Entry order is decoder-defined and preserved through the whole pipeline.
type Entry struct {
	ID           string
	Title        *Text
	Summary      *Text
	Rights       *Text
	Source       string
	Published    *time.Time
	Updated      *time.Time
	Authors      []Person
	Links        []Link
	Categories   []Category
	Contributors []Person
}
