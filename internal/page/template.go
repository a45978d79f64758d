package page

import (
	"html"
	"io"
	"strings"

	"github.com/valyala/fasttemplate"
)

// SVGTemplate is the page template used for SVG documents.
const SVGTemplate = "{body}"

// Template holds everything a page is rendered with apart from the document.
type Template struct {
	Page         string
	Breadcrumb   string
	Stylesheets  []string
	Scripts      []string
	DefaultTitle string
}

// RenderedCrumb is a breadcrumb with its href already resolved for the page
// it appears on.
type RenderedCrumb struct {
	Href string
	Text string
}

// StyleTags renders one stylesheet link per URI, newline-joined.
func StyleTags(uris []string) string {
	tags := make([]string, 0, len(uris))
	for _, u := range uris {
		tags = append(tags, `<link rel="stylesheet" href="`+html.EscapeString(u)+`">`)
	}
	return strings.Join(tags, "\n")
}

// ScriptTags renders one script element per URI, newline-joined.
func ScriptTags(uris []string) string {
	tags := make([]string, 0, len(uris))
	for _, u := range uris {
		tags = append(tags, `<script src="`+html.EscapeString(u)+`" type="application/javascript"></script>`)
	}
	return strings.Join(tags, "\n")
}

// RenderBreadcrumbs fills the item template once per crumb, in chain order.
func RenderBreadcrumbs(item string, chain []RenderedCrumb) string {
	entries := make([]string, 0, len(chain))
	for _, c := range chain {
		entries = append(entries, fill(item, map[string]string{
			"href": html.EscapeString(c.Href),
			"text": html.EscapeString(c.Text),
		}))
	}
	return strings.Join(entries, "\n")
}

// fill substitutes the named placeholders of tmpl in a single pass, so
// placeholder-like text inside substituted values is left alone. Braces that
// do not enclose a known name are written back unchanged.
func fill(tmpl string, values map[string]string) string {
	return fasttemplate.ExecuteFuncString(tmpl, "{", "}", func(w io.Writer, tag string) (int, error) {
		prefix := ""
		if i := strings.LastIndexByte(tag, '{'); i >= 0 {
			prefix, tag = "{"+tag[:i], tag[i+1:]
		}
		if v, ok := values[tag]; ok {
			return io.WriteString(w, prefix+v)
		}
		return io.WriteString(w, prefix+"{"+tag+"}")
	})
}
