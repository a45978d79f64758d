// Package paths computes reference strings between files of the source tree
// under the run's addressing mode.
//
// All paths handled here are slash-separated and relative to the source root.
// Output paths are the source paths with Markdown extensions replaced by .html.
package paths

import (
	"net/url"
	"path"
	"strings"

	"git.home.luguber.info/inful/crumbler/internal/config"
	"git.home.luguber.info/inful/crumbler/internal/tree"
)

// OutputRel maps a tree-relative source path to its output path.
func OutputRel(rel string) string {
	switch strings.ToLower(path.Ext(rel)) {
	case ".md", ".markdown":
		return strings.TrimSuffix(rel, path.Ext(rel)) + ".html"
	default:
		return rel
	}
}

// Resolver turns pairs of tree paths into reference strings.
type Resolver struct {
	mode    config.AddressingMode
	webRoot string
}

// New returns a resolver for mode. webRoot is only used in web-rooted mode.
func New(mode config.AddressingMode, webRoot string) *Resolver {
	return &Resolver{mode: mode, webRoot: webRoot}
}

// Mode returns the addressing mode of the resolver.
func (r *Resolver) Mode() config.AddressingMode { return r.mode }

// Resolve returns the reference from source file fromRel to source file toRel.
func (r *Resolver) Resolve(fromRel, toRel string) string {
	return r.Href(fromRel, OutputRel(toRel))
}

// Href returns the reference from source file fromRel to a target already
// expressed as an output path. The result is percent-encoded; the web root is
// used as given.
func (r *Resolver) Href(fromRel, targetOut string) string {
	if r.mode == config.ModeRelativeLocal {
		return escapePath(relative(path.Dir(OutputRel(fromRel)), targetOut))
	}
	return path.Join("/", r.webRoot, escapePath(targetOut))
}

// escapePath encodes p for use as a URL path. A first segment containing a
// colon gets a "./" prefix so it cannot be read as a scheme.
func escapePath(p string) string {
	escaped := (&url.URL{Path: p}).EscapedPath()
	if first, _, _ := strings.Cut(escaped, "/"); strings.Contains(first, ":") {
		escaped = "./" + escaped
	}
	return escaped
}

// Target locates the tree entry ref points at when read from source file
// fromRel. suffix holds the query and fragment of ref, if any. A leading
// slash addresses the source root.
func (r *Resolver) Target(fromRel, ref string, t *tree.Tree) (node *tree.Node, suffix string, ok bool) {
	p := ref
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p, suffix = p[:i], p[i:]
	}
	if p == "" {
		return nil, "", false
	}
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}

	var target string
	if strings.HasPrefix(p, "/") {
		target = path.Clean(p)[1:]
	} else {
		target = path.Join(path.Dir(fromRel), p)
	}
	if target == ".." || strings.HasPrefix(target, "../") {
		return nil, "", false
	}
	if target == "." {
		target = ""
	}

	node, ok = t.Lookup(target)
	if !ok {
		return nil, "", false
	}
	return node, suffix, true
}

// ResolveReference rewrites ref, read from source file fromRel, to address
// the output of its target. References outside the tree come back unchanged
// with ok false.
func (r *Resolver) ResolveReference(fromRel, ref string, t *tree.Tree) (string, bool) {
	node, suffix, ok := r.Target(fromRel, ref, t)
	if !ok || node.Kind == tree.KindDir {
		return ref, false
	}
	return r.Resolve(fromRel, node.Rel) + suffix, true
}

// relative computes the shortest slash path from directory fromDir to target.
func relative(fromDir, target string) string {
	from := splitSegments(fromDir)
	to := splitSegments(target)

	common := 0
	for common < len(from) && common < len(to)-1 && from[common] == to[common] {
		common++
	}

	parts := make([]string, 0, len(from)-common+len(to)-common)
	for range from[common:] {
		parts = append(parts, "..")
	}
	parts = append(parts, to[common:]...)
	return strings.Join(parts, "/")
}

func splitSegments(p string) []string {
	p = path.Clean(p)
	if p == "." || p == "/" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(p, "/"), "/")
}
