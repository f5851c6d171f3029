package template

import "strings"

// Escape makes rendered text safe to splice into a JSON string value and
// neutralizes characters that would break the markdown/HTML rendering on the
// gotify side. The replacements run in this exact order; the ampersand pass
// runs last and therefore rewrites the entities produced by the angle-bracket
// passes (`<` ends up as `$amp;lt;`). Template authors depend on those exact
// bytes, including the literal `$amp;` marker.
//
// Escaping is not idempotent. It must run exactly once, at the final
// rendering boundary; Render takes care of that for template output.
func Escape(input string) string {
	out := strings.ReplaceAll(input, `\`, `\\`)
	out = strings.ReplaceAll(out, `"`, `\"`)
	out = strings.ReplaceAll(out, "\n", `\n`)
	out = strings.ReplaceAll(out, "<", "&lt;")
	out = strings.ReplaceAll(out, ">", "&gt;")
	out = strings.ReplaceAll(out, "&", "$amp;")

	return out
}
