package htmldoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestParseRenderRoundTrip(t *testing.T) {
	src := `<h1 id="t">Title <em>here</em></h1>
<p><a href="b.md" class="x">b</a> <img src="i.png" alt="i"></p>`
	nodes, err := ParseFragment(src)
	require.NoError(t, err)

	out, err := Render(nodes)
	require.NoError(t, err)
	assert.Equal(t, `<h1 id="t">Title <em>here</em></h1>
<p><a href="b.md" class="x">b</a> <img src="i.png" alt="i"/></p>`, out)
}

func TestAttributes(t *testing.T) {
	nodes, err := ParseFragment(`<a href="b.md" title="keep">b</a>`)
	require.NoError(t, err)

	a := FindFirst(nodes, "a")
	require.NotNil(t, a)

	v, ok := GetAttr(a, "href")
	assert.True(t, ok)
	assert.Equal(t, "b.md", v)

	assert.True(t, SetAttr(a, "href", "b.html"))
	assert.False(t, SetAttr(a, "src", "x"))

	out, err := Render(nodes)
	require.NoError(t, err)
	assert.Equal(t, `<a href="b.html" title="keep">b</a>`, out)
}

func TestNamespacedAttributes(t *testing.T) {
	nodes, err := ParseFragment(`<svg xmlns:xlink="http://www.w3.org/1999/xlink"><a xlink:href="a.svg"><text>t</text></a></svg>`)
	require.NoError(t, err)

	var got []string
	Walk(nodes, func(n *html.Node) {
		if v, ok := GetAttr(n, "xlink:href"); ok {
			got = append(got, v)
			SetAttr(n, "xlink:href", "b.svg")
		}
	})
	assert.Equal(t, []string{"a.svg"}, got)

	out, err := Render(nodes)
	require.NoError(t, err)
	assert.Contains(t, out, `xlink:href="b.svg"`)
}

func TestFirstHeadingText(t *testing.T) {
	nodes, err := ParseFragment(`<p>intro</p><h2>Sub</h2><h1>Main <code>x</code></h1><h1>Second</h1>`)
	require.NoError(t, err)

	h1 := FindFirst(nodes, "h1")
	require.NotNil(t, h1)
	assert.Equal(t, "Main x", Text(h1))
	assert.Nil(t, FindFirst(nodes, "h3"))
}

func TestSplitProlog(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		prolog string
	}{
		{"none", `<svg></svg>`, ""},
		{"declaration", "<?xml version=\"1.0\"?>\n<svg></svg>", "<?xml version=\"1.0\"?>"},
		{"declaration and doctype", "<?xml version=\"1.0\"?>\n<!DOCTYPE svg PUBLIC \"-//W3C//DTD SVG 1.1//EN\" \"x.dtd\">\n<!-- made by hand -->\n<svg/>", "<?xml version=\"1.0\"?>\n<!DOCTYPE svg PUBLIC \"-//W3C//DTD SVG 1.1//EN\" \"x.dtd\">\n<!-- made by hand -->"},
		{"unterminated", "<?xml <svg/>", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prolog, rest := SplitProlog(tt.in)
			assert.Equal(t, tt.prolog, prolog)
			assert.Equal(t, tt.in, prolog+rest)
		})
	}
}
