package template

import (
	"fmt"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"rss-watcher/internal/domain"
)

// RFC 2822 with an unpadded day, matching the dates the original fixtures
// were generated with.
const rfc2822 = "Mon, 2 Jan 2006 15:04:05 -0700"

// resolveField maps a placeholder path to formatted text. It never fails:
// unknown paths and absent fields resolve to diagnostic sentinels so template
// authors see what went wrong inside the notification itself.
func resolveField(path string, doc *domain.Document, entry *domain.Entry) string {
	switch path {
	case "id":
		return stringField(doc.ID, path)
	case "title":
		return textField(doc.Title, path)
	case "updated":
		return dateField(doc.Updated, path)
	case "authors":
		return personsField(doc.Authors)
	case "description":
		return textField(doc.Description, path)
	case "links":
		return linksField(doc.Links)
	case "categories":
		return categoriesField(doc.Categories)
	case "contributors":
		return personsField(doc.Contributors)
	case "language":
		return stringField(doc.Language, path)
	case "published":
		return dateField(doc.Published, path)
	case "rights":
		return textField(doc.Rights, path)

	case "entry.id":
		return stringField(entry.ID, path)
	case "entry.title":
		return textField(entry.Title, path)
	case "entry.updated":
		return dateField(entry.Updated, path)
	case "entry.authors":
		return personsField(entry.Authors)
	case "entry.links":
		return linksField(entry.Links)
	case "entry.summary":
		return textField(entry.Summary, path)
	case "entry.categories":
		return categoriesField(entry.Categories)
	case "entry.contributors":
		return personsField(entry.Contributors)
	case "entry.published":
		return dateField(entry.Published, path)
	case "entry.source":
		return stringField(entry.Source, path)
	case "entry.rights":
		return textField(entry.Rights, path)
	}

	return fmt.Sprintf("Unknown field %q", path)
}

func notInFeed(field string) string {
	return fmt.Sprintf("Field %q was not in feed", field)
}

func stringField(value string, field string) string {
	if value == "" {
		return notInFeed(field)
	}

	return value
}

func textField(text *domain.Text, field string) string {
	if text == nil {
		return notInFeed(field)
	}

	switch text.ContentType {
	case domain.ContentTypeHTML:
		md, err := htmltomarkdown.ConvertString(text.Body)
		if err != nil {
			return text.Body
		}

		return md
	case domain.ContentTypePlain:
		return text.Body
	}

	return fmt.Sprintf("Unknown field content type %s", text.ContentType)
}

func dateField(date *time.Time, field string) string {
	if date == nil {
		return notInFeed(field)
	}

	return strings.Replace(date.UTC().Format(rfc2822), "+0000", "UTC", 1)
}

func personsField(persons []domain.Person) string {
	var b strings.Builder

	for i, person := range persons {
		switch {
		case person.URI != "" && person.Email != "":
			fmt.Fprintf(&b, "[%s](%s) - [homepage](%s)", person.Name, person.Email, person.URI)
		case person.URI != "":
			fmt.Fprintf(&b, "[%s](%s)", person.Name, person.URI)
		case person.Email != "":
			fmt.Fprintf(&b, "[%s](%s)", person.Name, person.Email)
		default:
			b.WriteString(person.Name)
		}

		if i < len(persons)-1 {
			b.WriteString(", ")
		}
	}

	return b.String()
}

func linksField(links []domain.Link) string {
	var b strings.Builder

	for i, link := range links {
		switch {
		case link.Title != "":
			fmt.Fprintf(&b, "[%s](%s)", link.Title, link.Href)
		case link.Rel != "":
			fmt.Fprintf(&b, "[%s](%s)", link.Rel, link.Href)
		default:
			fmt.Fprintf(&b, "[%s](%s)", link.Href, link.Href)
		}

		if i < len(links)-1 {
			b.WriteString(", ")
		}
	}

	return b.String()
}

func categoriesField(categories []domain.Category) string {
	var b strings.Builder

	for i, category := range categories {
		if category.Label != "" {
			b.WriteString(category.Label)
		} else {
			b.WriteString(category.Term)
		}

		if i < len(categories)-1 {
			b.WriteString(", ")
		}
	}

	return b.String()
}
