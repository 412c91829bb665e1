package render

import "strings"

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

var attrReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"\n", "&#10;",
	"\r", "&#13;",
	"\t", "&#9;",
)

// escapeHTML escapes text for HTML content.
func escapeHTML(s string) string {
	return htmlReplacer.Replace(s)
}

// escapeAttr escapes text for a double-quoted attribute value, including
// whitespace that would otherwise be normalized by the parser.
func escapeAttr(s string) string {
	return attrReplacer.Replace(s)
}

// scriptJSONReplacer keeps JSON inert inside a script element. The
// replacements are valid JSON string escapes, so the payload still parses.
var scriptJSONReplacer = strings.NewReplacer(
	"<", `\u003c`,
	">", `\u003e`,
	"&", `\u0026`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

func escapeScriptJSON(data []byte) string {
	return scriptJSONReplacer.Replace(string(data))
}
