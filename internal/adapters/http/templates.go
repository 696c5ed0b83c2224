package http

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var assetFS embed.FS

// pageTemplates parses the embedded page templates with the helpers the
// pages use.
func pageTemplates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"stripOuterQuotes": stripOuterQuotes,
	}).ParseFS(templateFS, "templates/*.html"))
}

// staticFiles exposes the embedded assets rooted at static/ so the URL
// namespace does not repeat the directory name.
func staticFiles() http.FileSystem {
	sub, err := fs.Sub(assetFS, "static")
	if err != nil {
		panic(err)
	}

	return http.FS(sub)
}

// quotePairs are the opening/closing marks stripOuterQuotes recognizes,
// checked in order.
var quotePairs = [][2]string{
	{`"`, `"`},
	{"'", "'"},
	{"“", "”"},
	{"‘", "’"},
}

// stripOuterQuotes removes one pair of matching quotation marks wrapping
// the whole string, plain or curly, so the pages can add their own
// typographic quotes without doubling up. Unmatched or inner marks are
// left alone.
func stripOuterQuotes(s string) string {
	trimmed := strings.TrimSpace(s)

	for _, pair := range quotePairs {
		opening, closing := pair[0], pair[1]
		if len(trimmed) > len(opening)+len(closing) &&
			strings.HasPrefix(trimmed, opening) && strings.HasSuffix(trimmed, closing) {
			return strings.TrimSpace(trimmed[len(opening) : len(trimmed)-len(closing)])
		}
	}

	return trimmed
}
