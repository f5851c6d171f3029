// Package template renders notification templates against a decoded feed
// document and one of its entries. Placeholders look like {{entry.title}};
// the recognized paths are a fixed set resolved by resolveField.
package template

import (
	"strings"

	"rss-watcher/internal/domain"
)

// Render substitutes every {{...}} tag in tmpl and escapes the assembled
// result exactly once.
//
// The scanner is a two-counter state machine over brace runs:
//   - a run of two or more '{' opens a tag and resets the field buffer, so a
//     false start like {{{{ discards whatever came before;
//   - inside a tag every character except '}' accumulates into the field
//     buffer, untrimmed (a path with stray whitespace will fail resolution);
//   - a run of two or more '}' closes the tag and resolves the buffer;
//   - a lone '{' or '}' outside a tag is literal output, a lone '}' inside a
//     tag falls back into the buffer;
//   - input ending inside a tag drops the unresolved buffer silently.
//
// Template authors rely on these exact quirks; do not generalize this into a
// nesting parser.
func Render(tmpl string, doc *domain.Document, entry *domain.Entry) string {
	var out strings.Builder
	var field strings.Builder

	openRun := 0
	closeRun := 0
	inTag := false

	for _, c := range tmpl {
		if c == '{' {
			openRun++
			if openRun > 1 {
				inTag = true
				closeRun = 0
				field.Reset()
			}

			continue
		}

		if openRun == 1 {
			if inTag {
				field.WriteByte('{')
			} else {
				out.WriteByte('{')
			}
		}
		openRun = 0

		if !inTag {
			out.WriteRune(c)
			continue
		}

		if c == '}' {
			closeRun++
			if closeRun > 1 {
				out.WriteString(resolveField(field.String(), doc, entry))
				field.Reset()
				closeRun = 0
				inTag = false
			}

			continue
		}

		if closeRun == 1 {
			field.WriteByte('}')
		}
		closeRun = 0

		field.WriteRune(c)
	}

	if !inTag && openRun == 1 {
		out.WriteByte('{')
	}

	return Escape(out.String())
}
