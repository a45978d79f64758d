package page

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/crumbler/internal/markdown"
)

func newConverter(t *testing.T, tmpl Template) *Converter {
	t.Helper()
	md, err := markdown.New(markdown.Options{})
	require.NoError(t, err)
	return NewConverter(md, tmpl)
}

type failingConverter struct{}

func (failingConverter) Convert([]byte) (markdown.Result, error) {
	return markdown.Result{}, errors.New("boom")
}

func TestTitleFallbacks(t *testing.T) {
	c := newConverter(t, Template{DefaultTitle: "Fallback"})

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"first h1", "## Sub\n\n# Main *page*\n\n# Other\n", "Main page"},
		{"frontmatter title", "---\ntitle: From Meta\n---\nno heading\n", "From Meta"},
		{"h1 beats frontmatter", "---\ntitle: From Meta\n---\n# Heading\n", "Heading"},
		{"default", "plain text\n", "Fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := c.Convert([]byte(tt.source))
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.Title)
		})
	}

	doc, err := c.Convert([]byte("text\n"))
	require.NoError(t, err)
	assert.Empty(t, doc.SourceTitle, "source title never falls back to the default")

	doc, err = newConverter(t, Template{}).Convert([]byte("text\n"))
	require.NoError(t, err)
	assert.Empty(t, doc.Title)
}

func TestRender(t *testing.T) {
	c := newConverter(t, Template{
		Page:        "<title>{title}</title>\n{style}\n{script}\n<ul>{breadcrumbs}</ul>\n{toc}\n<main>{body}</main>",
		Breadcrumb:  `<li><a href="{href}">{text}</a></li>`,
		Stylesheets: []string{"/a.css", "/b.css"},
		Scripts:     []string{"/app.js"},
	})

	doc, err := c.Convert([]byte("# Tom & Jerry\n\nbody {title}\n"))
	require.NoError(t, err)

	out, err := c.Render(doc, []RenderedCrumb{
		{Href: "../index.html", Text: "Home"},
		{Href: "index.html", Text: "A <b>"},
	})
	require.NoError(t, err)

	want := "<title>Tom &amp; Jerry</title>\n" +
		"<link rel=\"stylesheet\" href=\"/a.css\">\n<link rel=\"stylesheet\" href=\"/b.css\">\n" +
		"<script src=\"/app.js\" type=\"application/javascript\"></script>\n" +
		"<ul><li><a href=\"../index.html\">Home</a></li>\n<li><a href=\"index.html\">A &lt;b&gt;</a></li></ul>\n" +
		"<div class=\"toc\">\n<ul>\n<li><a href=\"#tom--jerry\">Tom &amp; Jerry</a></li>\n</ul>\n</div>\n\n" +
		"<main><h1 id=\"tom--jerry\">Tom &amp; Jerry</h1>\n<p>body {title}</p>\n</main>"
	assert.Equal(t, want, out)
}

func TestRenderMissingPlaceholders(t *testing.T) {
	c := newConverter(t, Template{Page: "<body>{body}</body>", Breadcrumb: "{text}"})
	doc, err := c.Convert([]byte("# T\n"))
	require.NoError(t, err)

	out, err := c.Render(doc, []RenderedCrumb{{Href: "x", Text: "X"}})
	require.NoError(t, err)
	assert.Equal(t, "<body><h1 id=\"t\">T</h1>\n</body>", out)

	empty := newConverter(t, Template{Page: "{title}|{breadcrumbs}|{style}|{script}"})
	doc, err = empty.Convert([]byte("text\n"))
	require.NoError(t, err)
	out, err = empty.Render(doc, nil)
	require.NoError(t, err)
	assert.Equal(t, "|||", out)
}

func TestFill(t *testing.T) {
	values := map[string]string{"title": "T", "body": "{title}"}
	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{"known names", "<h1>{title}</h1>", "<h1>T</h1>"},
		{"values are not expanded again", "<main>{body}</main>", "<main>{title}</main>"},
		{"inline css untouched", "<style>body { color: red; }</style>", "<style>body { color: red; }</style>"},
		{"unknown name untouched", "{other}", "{other}"},
		{"doubled braces", "{{title}}", "{T}"},
		{"unclosed brace", "a { b {title}", "a { b T"},
		{"trailing open brace", "{title} {", "T {"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fill(tt.tmpl, values))
		})
	}
}

func TestConvertSVG(t *testing.T) {
	c := newConverter(t, Template{Page: "<html>{body}</html>"})
	src := "<?xml version=\"1.0\"?>\n<svg xmlns=\"http://www.w3.org/2000/svg\"><title>Diagram</title><a href=\"b.md\"><rect width=\"1\" height=\"1\"></rect></a></svg>"

	doc, err := c.ConvertSVG([]byte(src))
	require.NoError(t, err)
	assert.True(t, doc.IsSVG())
	assert.Equal(t, "Diagram", doc.Title)

	out, err := c.Render(doc, []RenderedCrumb{{Href: "x", Text: "ignored"}})
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestConverterErrors(t *testing.T) {
	c := NewConverter(failingConverter{}, Template{})
	_, err := c.Convert([]byte("# x"))
	assert.EqualError(t, err, "boom")

	_, err = newConverter(t, Template{}).Convert([]byte("---\ntitle: x\n"))
	assert.Error(t, err)
}

func TestTags(t *testing.T) {
	assert.Empty(t, StyleTags(nil))
	assert.Empty(t, ScriptTags(nil))
	assert.Equal(t, `<link rel="stylesheet" href="/s.css?a=1&amp;b=2">`, StyleTags([]string{"/s.css?a=1&b=2"}))
	assert.Equal(t, "<script src=\"a.js\" type=\"application/javascript\"></script>\n<script src=\"b.js\" type=\"application/javascript\"></script>", ScriptTags([]string{"a.js", "b.js"}))
}
