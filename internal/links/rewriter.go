// Package links rewrites reference attributes of converted documents so they
// address the output tree.
package links

import (
	"regexp"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/crumbler/internal/htmldoc"
	"git.home.luguber.info/inful/crumbler/internal/paths"
	"git.home.luguber.info/inful/crumbler/internal/tree"
)

// ReferenceAttrs are the attributes whose values are treated as references.
var ReferenceAttrs = []string{"href", "src", "xlink:href"}

var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// Options tunes the rewriter.
type Options struct {
	// RewriteAssets rewrites references to non-document files as well.
	// Document references are always rewritten.
	RewriteAssets bool
}

// Result summarizes one Rewrite call.
type Result struct {
	Rewritten  int
	Unresolved []string
}

// Rewriter rewrites references against one scanned tree.
type Rewriter struct {
	tree     *tree.Tree
	resolver *paths.Resolver
	opts     Options
}

// New returns a rewriter over t using r to compute replacement values.
func New(t *tree.Tree, r *paths.Resolver, opts Options) *Rewriter {
	return &Rewriter{tree: t, resolver: r, opts: opts}
}

// Rewrite mutates reference attribute values of nodes in place. currentRel is
// the tree-relative source path of the document the nodes belong to.
// Only attribute values change; elements and other attributes are untouched.
func (rw *Rewriter) Rewrite(nodes []*html.Node, currentRel string) Result {
	var res Result
	htmldoc.Walk(nodes, func(n *html.Node) {
		for i := range n.Attr {
			a := &n.Attr[i]
			if !slices.Contains(ReferenceAttrs, htmldoc.AttrName(*a)) {
				continue
			}
			value, changed, resolved := rw.rewriteValue(a.Val, currentRel)
			if !resolved {
				res.Unresolved = append(res.Unresolved, a.Val)
				continue
			}
			if changed {
				a.Val = value
				res.Rewritten++
			}
		}
	})
	return res
}

// rewriteValue returns the replacement for raw. resolved is false only for
// local references that match nothing in the tree. Values that are not
// rewritten come back exactly as given, surrounding whitespace included.
func (rw *Rewriter) rewriteValue(raw, currentRel string) (value string, changed, resolved bool) {
	ref := strings.TrimSpace(raw)
	if IsPassThrough(ref) {
		return raw, false, true
	}

	node, suffix, ok := rw.resolver.Target(currentRel, ref, rw.tree)
	if !ok {
		return raw, false, false
	}
	switch {
	case node.Kind == tree.KindDir:
		return raw, false, true
	case node.Kind == tree.KindAsset && !rw.opts.RewriteAssets:
		return raw, false, true
	}

	value = rw.resolver.Resolve(currentRel, node.Rel) + suffix
	return value, value != raw, true
}

// IsPassThrough reports whether ref is never rewritten: empty values,
// fragment-only and query-only references (the current document),
// {placeholders}, protocol-relative URLs and anything carrying a URL scheme.
func IsPassThrough(ref string) bool {
	trimmed := strings.TrimSpace(ref)
	switch {
	case trimmed == "":
		return true
	case strings.HasPrefix(trimmed, "#"), strings.HasPrefix(trimmed, "?"):
		return true
	case strings.HasPrefix(trimmed, "{") && strings.Contains(trimmed, "}"):
		return true
	case strings.HasPrefix(trimmed, "//"):
		return true
	}
	return schemePattern.MatchString(trimmed)
}
