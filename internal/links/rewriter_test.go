package links

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/crumbler/internal/config"
	"git.home.luguber.info/inful/crumbler/internal/htmldoc"
	"git.home.luguber.info/inful/crumbler/internal/paths"
	"git.home.luguber.info/inful/crumbler/internal/tree"
)

func fixture(t *testing.T) *tree.Tree {
	t.Helper()
	root := t.TempDir()
	files := []string{
		"a.md", "b.md", "docs/index.md", "docs/img/logo.png", "docs/diagram.svg",
		"my file.md", "what?.md", "100%.md", "img/pic one.png",
	}
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	tr, err := tree.Scan(root, tree.ScanOptions{})
	require.NoError(t, err)
	return tr
}

func rewrite(t *testing.T, rw *Rewriter, src, current string) (string, Result) {
	t.Helper()
	nodes, err := htmldoc.ParseFragment(src)
	require.NoError(t, err)
	res := rw.Rewrite(nodes, current)
	out, err := htmldoc.Render(nodes)
	require.NoError(t, err)
	return out, res
}

func TestRewriteModes(t *testing.T) {
	tr := fixture(t)
	local := New(tr, paths.New(config.ModeRelativeLocal, ""), Options{RewriteAssets: true})
	web := New(tr, paths.New(config.ModeWebRooted, "/docs/"), Options{RewriteAssets: true})

	out, res := rewrite(t, local, `<a href="b.md">b</a>`, "a.md")
	assert.Equal(t, `<a href="b.html">b</a>`, out)
	assert.Equal(t, 1, res.Rewritten)

	out, _ = rewrite(t, web, `<a href="b.md">b</a>`, "a.md")
	assert.Equal(t, `<a href="/docs/b.html">b</a>`, out)
}

func TestExternalReferencesUnchanged(t *testing.T) {
	tr := fixture(t)
	refs := []string{
		"https://example.com/x.md",
		"http://example.com/b.md",
		"mailto:someone@example.com",
		"data:image/png;base64,AAAA",
		"ftp://host/file.md",
		"//cdn.example.com/b.md",
		"#section",
		"?tab=2",
		"?tab=2#x",
		"{href}",
		"",
	}
	for _, mode := range []config.AddressingMode{config.ModeRelativeLocal, config.ModeWebRooted} {
		rw := New(tr, paths.New(mode, "/docs/"), Options{RewriteAssets: true})
		for _, ref := range refs {
			src := `<a href="` + ref + `" class="c">x</a>`
			out, res := rewrite(t, rw, src, "a.md")
			assert.Equal(t, src, out, "%s %q", mode, ref)
			assert.Zero(t, res.Rewritten)
			assert.Empty(t, res.Unresolved)
		}
	}
}

func TestOnlyReferenceAttributesChange(t *testing.T) {
	tr := fixture(t)
	rw := New(tr, paths.New(config.ModeRelativeLocal, ""), Options{RewriteAssets: true})

	src := `<p data-src="b.md" title="b.md"><a href="docs/index.md#top" rel="b.md">i</a><img alt="b.md" src="docs/img/logo.png"/></p>`
	out, res := rewrite(t, rw, src, "a.md")
	assert.Equal(t, `<p data-src="b.md" title="b.md"><a href="docs/index.html#top" rel="b.md">i</a><img alt="b.md" src="docs/img/logo.png"/></p>`, out)
	assert.Equal(t, 1, res.Rewritten, "asset path is already correct in relative mode")
}

func TestAssetsInWebMode(t *testing.T) {
	tr := fixture(t)
	src := `<img src="img/logo.png"/>`

	on := New(tr, paths.New(config.ModeWebRooted, "/site"), Options{RewriteAssets: true})
	out, _ := rewrite(t, on, src, "docs/index.md")
	assert.Equal(t, `<img src="/site/docs/img/logo.png"/>`, out)

	off := New(tr, paths.New(config.ModeWebRooted, "/site"), Options{})
	out, _ = rewrite(t, off, src, "docs/index.md")
	assert.Equal(t, src, out)
}

func TestUnresolvedPassThrough(t *testing.T) {
	tr := fixture(t)
	rw := New(tr, paths.New(config.ModeWebRooted, "/"), Options{RewriteAssets: true})

	src := `<a href="missing.md">m</a><a href="../outside.md">o</a>`
	out, res := rewrite(t, rw, src, "a.md")
	assert.Equal(t, src, out)
	assert.Equal(t, []string{"missing.md", "../outside.md"}, res.Unresolved)
}

func TestSVGReferences(t *testing.T) {
	tr := fixture(t)
	rw := New(tr, paths.New(config.ModeRelativeLocal, ""), Options{RewriteAssets: true})

	src := `<svg xmlns:xlink="http://www.w3.org/1999/xlink"><a xlink:href="index.md"><text>home</text></a><a href="../b.md"></a></svg>`
	out, res := rewrite(t, rw, src, "docs/diagram.svg")
	assert.Contains(t, out, `xlink:href="index.html"`)
	assert.Contains(t, out, `href="../b.html"`)
	assert.Equal(t, 2, res.Rewritten)
}

func TestEscapedReferencesStayValid(t *testing.T) {
	tr := fixture(t)
	local := New(tr, paths.New(config.ModeRelativeLocal, ""), Options{RewriteAssets: true})
	web := New(tr, paths.New(config.ModeWebRooted, "/docs/"), Options{RewriteAssets: true})

	tests := []struct {
		ref       string
		wantLocal string
		wantWeb   string
	}{
		{"my%20file.md", "my%20file.html", "/docs/my%20file.html"},
		{"what%3F.md", "what%3F.html", "/docs/what%3F.html"},
		{"what%3F.md#top", "what%3F.html#top", "/docs/what%3F.html#top"},
		{"100%25.md", "100%25.html", "/docs/100%25.html"},
		{"img/pic%20one.png", "img/pic%20one.png", "/docs/img/pic%20one.png"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			out, res := rewrite(t, local, `<a href="`+tt.ref+`">x</a>`, "a.md")
			assert.Equal(t, `<a href="`+tt.wantLocal+`">x</a>`, out)
			assert.Empty(t, res.Unresolved)

			out, _ = rewrite(t, web, `<a href="`+tt.ref+`">x</a>`, "a.md")
			assert.Equal(t, `<a href="`+tt.wantWeb+`">x</a>`, out)
		})
	}
}

func TestSurroundingWhitespaceIsTrimmed(t *testing.T) {
	tr := fixture(t)
	rw := New(tr, paths.New(config.ModeRelativeLocal, ""), Options{RewriteAssets: true})

	out, res := rewrite(t, rw, `<a href=" b.md ">b</a>`, "a.md")
	assert.Equal(t, `<a href="b.html">b</a>`, out)
	assert.Equal(t, 1, res.Rewritten)
	assert.Empty(t, res.Unresolved)

	out, res = rewrite(t, rw, `<a href=" missing.md">m</a>`, "a.md")
	assert.Equal(t, `<a href=" missing.md">m</a>`, out)
	assert.Equal(t, []string{" missing.md"}, res.Unresolved)
}

func TestIsPassThrough(t *testing.T) {
	assert.True(t, IsPassThrough("?tab=2"))
	assert.True(t, IsPassThrough("HTTPS://x"))
	assert.True(t, IsPassThrough("  "))
	assert.True(t, IsPassThrough("{script}"))
	assert.False(t, IsPassThrough("b.md"))
	assert.False(t, IsPassThrough("/docs/b.md"))
	assert.False(t, IsPassThrough("../x.md#y"))
}
