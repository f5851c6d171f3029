package feed

import (
	"testing"
	"time"

	"rss-watcher/internal/domain"
)

func TestDecodeDocumentRSS(t *testing.T) {
	doc, err := decodeDocument([]byte(rssFixture))
	if err != nil {
		t.Fatalf("decodeDocument: %v", err)
	}

	if doc.ID != "https://example.com" {
		t.Fatalf("unexpected document id %q", doc.ID)
	}

	if doc.Title == nil || doc.Title.ContentType != domain.ContentTypePlain ||
		doc.Title.Body != "Changelog" {
		t.Fatalf("unexpected title: %+v", doc.Title)
	}

	if doc.Description == nil || doc.Description.ContentType != domain.ContentTypeHTML {
		t.Fatalf("unexpected description: %+v", doc.Description)
	}

	if doc.Language != "en-us" {
		t.Fatalf("unexpected language %q", doc.Language)
	}

	if len(doc.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(doc.Entries))
	}

	entry := doc.Entries[0]

	if entry.ID != "rel-2.0" {
		t.Fatalf("unexpected entry id %q", entry.ID)
	}

	if entry.Title == nil || entry.Title.Body != "Release 2.0" {
		t.Fatalf("unexpected entry title: %+v", entry.Title)
	}

	if entry.Summary == nil || entry.Summary.ContentType != domain.ContentTypeHTML ||
		entry.Summary.Body != "Bug fixes" {
		t.Fatalf("unexpected entry summary: %+v", entry.Summary)
	}

	wantPublished := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)
	if entry.Published == nil || !entry.Published.Equal(wantPublished) {
		t.Fatalf("unexpected published time: %v", entry.Published)
	}

	if len(entry.Links) == 0 || entry.Links[0].Href != "https://example.com/2.0" {
		t.Fatalf("unexpected entry links: %+v", entry.Links)
	}
}

func TestDecodeDocumentAtom(t *testing.T) {
	atom := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom Changelog</title>
  <link href="https://example.org/"/>
  <updated>2024-03-05T08:00:00Z</updated>
  <author><name>Ann</name><email>ann@example.com</email></author>
  <id>urn:uuid:60a76c80-d399-11d9-b93C-0003939e0af6</id>
  <entry>
    <title>Release 3.0</title>
    <link href="https://example.org/3.0"/>
    <id>urn:rel-3.0</id>
    <updated>2024-03-05T08:00:00Z</updated>
    <summary>Faster everything</summary>
  </entry>
</feed>`

	doc, err := decodeDocument([]byte(atom))
	if err != nil {
		t.Fatalf("decodeDocument: %v", err)
	}

	if doc.Title == nil || doc.Title.Body != "Atom Changelog" {
		t.Fatalf("unexpected title: %+v", doc.Title)
	}

	if len(doc.Authors) != 1 || doc.Authors[0].Name != "Ann" ||
		doc.Authors[0].Email != "ann@example.com" {
		t.Fatalf("unexpected authors: %+v", doc.Authors)
	}

	if len(doc.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(doc.Entries))
	}

	if doc.Entries[0].ID != "urn:rel-3.0" {
		t.Fatalf("unexpected entry id %q", doc.Entries[0].ID)
	}

	if doc.Entries[0].Updated == nil {
		t.Fatal("expected parsed updated time")
	}
}

func TestDecodeDocumentRejectsGarbage(t *testing.T) {
	if _, err := decodeDocument([]byte("<html><body>nope</body></html>")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestDiscoverFeedURL(t *testing.T) {
	page := []byte(`<!DOCTYPE html>
<html><head>
<link rel="stylesheet" href="/style.css">
<link rel="alternate" type="application/atom+xml" href="feeds/atom.xml">
</head><body></body></html>`)

	got, err := discoverFeedURL(page, "https://example.com/blog/")
	if err != nil {
		t.Fatalf("discoverFeedURL: %v", err)
	}

	if got != "https://example.com/blog/feeds/atom.xml" {
		t.Fatalf("discoverFeedURL = %q", got)
	}
}

func TestDiscoverFeedURLNoAlternate(t *testing.T) {
	if _, err := discoverFeedURL([]byte("<html></html>"), "https://example.com"); err == nil {
		t.Fatal("expected discovery error")
	}
}
