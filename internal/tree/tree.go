// Package tree scans a source directory into an arena of nodes.
//
// Nodes refer to their parent and children by NodeID rather than by pointer,
// so the tree is a flat slice with no ownership cycles. Paths are stored
// slash-separated and relative to the source root; lookups normalize to NFC so
// a link typed on one platform finds a file stored in NFD on another.
package tree

import (
	"path"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NodeID indexes a Node within its Tree.
type NodeID int

// NoParent is the Parent of the root node.
const NoParent NodeID = -1

// Kind classifies a filesystem entry.
type Kind int

const (
	KindDir Kind = iota
	KindMarkdown
	KindSVG
	KindAsset
)

func (k Kind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindMarkdown:
		return "markdown"
	case KindSVG:
		return "svg"
	default:
		return "asset"
	}
}

// IsDocument reports whether files of this kind go through conversion and link rewriting.
func (k Kind) IsDocument() bool {
	return k == KindMarkdown || k == KindSVG
}

// Node is one entry of the source tree.
type Node struct {
	ID       NodeID
	Rel      string // slash-separated, relative to the source root; "" for the root
	Abs      string
	Kind     Kind
	Parent   NodeID
	Children []NodeID
}

// Name returns the base name of the node ("" for the root).
func (n *Node) Name() string {
	if n.Rel == "" {
		return ""
	}
	return path.Base(n.Rel)
}

// Stem returns the base name without its extension.
func (n *Node) Stem() string {
	name := n.Name()
	return strings.TrimSuffix(name, path.Ext(name))
}

// Tree is the arena holding every scanned node.
type Tree struct {
	Root  string
	nodes []Node
	byRel map[string]NodeID
}

func newTree(root string) *Tree {
	return &Tree{Root: root, byRel: make(map[string]NodeID)}
}

func (t *Tree) add(rel, abs string, kind Kind, parent NodeID) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{ID: id, Rel: rel, Abs: abs, Kind: kind, Parent: parent})
	if parent != NoParent {
		t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	}
	key := lookupKey(rel)
	if _, exists := t.byRel[key]; !exists {
		t.byRel[key] = id
	}
	return id
}

// RootID returns the ID of the source root directory.
func (t *Tree) RootID() NodeID { return 0 }

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns the node for id. The returned pointer must not be mutated.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

// Lookup finds a node by its slash-separated relative path.
func (t *Tree) Lookup(rel string) (*Node, bool) {
	id, ok := t.byRel[lookupKey(rel)]
	if !ok {
		return nil, false
	}
	return &t.nodes[id], true
}

// Child finds the direct child of dir with the given name.
func (t *Tree) Child(dir NodeID, name string) (*Node, bool) {
	return t.Lookup(path.Join(t.nodes[dir].Rel, name))
}

// Ancestors returns the directory chain from the root down to id inclusive.
func (t *Tree) Ancestors(id NodeID) []NodeID {
	var chain []NodeID
	for cur := id; cur != NoParent; cur = t.nodes[cur].Parent {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Dirs returns every directory in depth-first order.
func (t *Tree) Dirs() []NodeID {
	return t.collect(func(n *Node) bool { return n.Kind == KindDir })
}

// Documents returns every Markdown and SVG file in depth-first order.
func (t *Tree) Documents() []NodeID {
	return t.collect(func(n *Node) bool { return n.Kind.IsDocument() })
}

// Assets returns every non-document file in depth-first order.
func (t *Tree) Assets() []NodeID {
	return t.collect(func(n *Node) bool { return n.Kind == KindAsset })
}

func (t *Tree) collect(keep func(*Node) bool) []NodeID {
	var out []NodeID
	var walk func(NodeID)
	walk = func(id NodeID) {
		n := &t.nodes[id]
		if keep(n) {
			out = append(out, id)
		}
		children := append([]NodeID(nil), n.Children...)
		sort.SliceStable(children, func(i, j int) bool {
			return t.nodes[children[i]].Rel < t.nodes[children[j]].Rel
		})
		for _, c := range children {
			walk(c)
		}
	}
	if len(t.nodes) > 0 {
		walk(t.RootID())
	}
	return out
}

func lookupKey(rel string) string {
	return norm.NFC.String(path.Clean("/" + rel))[1:]
}
