package crumbs

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"git.home.luguber.info/inful/crumbler/internal/paths"
	"git.home.luguber.info/inful/crumbler/internal/tree"
)

// Crumb is one breadcrumb entry. Target is the tree-relative output path of
// the index document.
type Crumb struct {
	Label  string
	Target string
}

// Chain is a root-to-leaf breadcrumb trail. Chains returned by a Resolver are
// shared and must not be modified.
type Chain []Crumb

// Resolver computes chains lazily and caches them per directory.
type Resolver struct {
	index *Index
	cache *lru.Cache[tree.NodeID, Chain]
}

// NewResolver returns a resolver over idx caching up to cacheSize chains.
func NewResolver(idx *Index, cacheSize int) (*Resolver, error) {
	cache, err := lru.New[tree.NodeID, Chain](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create chain cache: %w", err)
	}
	return &Resolver{index: idx, cache: cache}, nil
}

// Chain returns the breadcrumbs of dir: one entry per directory from the root
// down to dir inclusive that has an index document.
func (r *Resolver) Chain(dir tree.NodeID) Chain {
	if c, ok := r.cache.Get(dir); ok {
		return c
	}

	var parent Chain
	if p := r.index.tree.Node(dir).Parent; p != tree.NoParent {
		parent = r.Chain(p)
	}

	c := parent
	if e, ok := r.index.Lookup(dir); ok {
		c = make(Chain, len(parent), len(parent)+1)
		copy(c, parent)
		c = append(c, Crumb{
			Label:  r.index.Label(e.Doc),
			Target: paths.OutputRel(r.index.tree.Node(e.Doc).Rel),
		})
	}
	r.cache.Add(dir, c)
	return c
}

// ChainFor returns the breadcrumbs of the directory containing file.
func (r *Resolver) ChainFor(file tree.NodeID) Chain {
	n := r.index.tree.Node(file)
	if n.Kind == tree.KindDir {
		return r.Chain(file)
	}
	return r.Chain(n.Parent)
}
