package feed

import (
	"bytes"
	"fmt"

	"github.com/mmcdole/gofeed"

	"rss-watcher/internal/domain"
)

// decodeDocument turns raw feed bytes into the pipeline's document model.
// Titles are classified as plain text; descriptions, summaries and rights
// commonly carry embedded HTML, so they classify as markup and get converted
// to markdown at render time.
func decodeDocument(data []byte) (*domain.Document, error) {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	doc := &domain.Document{
		ID:           firstNonEmpty(parsed.FeedLink, parsed.Link),
		Title:        plainText(parsed.Title),
		Description:  htmlText(parsed.Description),
		Rights:       htmlText(parsed.Copyright),
		Language:     parsed.Language,
		Updated:      parsed.UpdatedParsed,
		Published:    parsed.PublishedParsed,
		Authors:      decodePersons(parsed.Authors),
		Links:        decodeLinks(parsed.Links),
		Categories:   decodeCategories(parsed.Categories),
		Contributors: nil,
	}

	doc.Entries = make([]domain.Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}

		doc.Entries = append(doc.Entries, decodeEntry(item))
	}

	return doc, nil
}

func decodeEntry(item *gofeed.Item) domain.Entry {
	summary := item.Description
	if summary == "" {
		summary = item.Content
	}

	return domain.Entry{
		ID:         firstNonEmpty(item.GUID, item.Link),
		Title:      plainText(item.Title),
		Summary:    htmlText(summary),
		Published:  item.PublishedParsed,
		Updated:    item.UpdatedParsed,
		Authors:    decodePersons(item.Authors),
		Links:      decodeLinks(itemLinks(item)),
		Categories: decodeCategories(item.Categories),
	}
}

func itemLinks(item *gofeed.Item) []string {
	if len(item.Links) > 0 {
		return item.Links
	}
	if item.Link != "" {
		return []string{item.Link}
	}

	return nil
}

func plainText(body string) *domain.Text {
	if body == "" {
		return nil
	}

	return &domain.Text{ContentType: domain.ContentTypePlain, Body: body}
}

func htmlText(body string) *domain.Text {
	if body == "" {
		return nil
	}

	return &domain.Text{ContentType: domain.ContentTypeHTML, Body: body}
}

func decodePersons(persons []*gofeed.Person) []domain.Person {
	var out []domain.Person
	for _, p := range persons {
		if p == nil {
			continue
		}

		out = append(out, domain.Person{Name: p.Name, Email: p.Email})
	}

	return out
}

func decodeLinks(hrefs []string) []domain.Link {
	var out []domain.Link
	for _, href := range hrefs {
		if href == "" {
			continue
		}

		out = append(out, domain.Link{Href: href})
	}

	return out
}

func decodeCategories(terms []string) []domain.Category {
	var out []domain.Category
	for _, term := range terms {
		if term == "" {
			continue
		}

		out = append(out, domain.Category{Term: term})
	}

	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
