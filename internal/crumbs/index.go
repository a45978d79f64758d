// Package crumbs derives breadcrumb navigation from directory index conventions.
//
// A directory is represented in breadcrumbs by its index document, chosen by
// priority: a Markdown file named after the directory in its parent, then a
// file named after the directory inside it, then index.md inside it. A
// directory with none of these contributes nothing to chains but does not
// interrupt them.
package crumbs

import (
	"log/slog"
	"path"

	"git.home.luguber.info/inful/crumbler/internal/logfields"
	"git.home.luguber.info/inful/crumbler/internal/tree"
)

// Convention records which naming rule selected a directory's index document.
type Convention int

const (
	ConventionParentNamed Convention = iota + 1
	ConventionSelfNamed
	ConventionIndex
)

func (c Convention) String() string {
	switch c {
	case ConventionParentNamed:
		return "parent-named"
	case ConventionSelfNamed:
		return "self-named"
	case ConventionIndex:
		return "index"
	default:
		return "none"
	}
}

// IndexFileName is the fallback index document name.
const IndexFileName = "index.md"

// Entry is the index document resolved for one directory.
type Entry struct {
	Dir        tree.NodeID
	Doc        tree.NodeID
	Convention Convention
}

// TitleFunc returns the title of a document, or "" when it has none.
type TitleFunc func(doc tree.NodeID) string

// Index maps directories to their index documents. It is built once and
// read-only afterwards.
type Index struct {
	tree    *tree.Tree
	titles  TitleFunc
	entries map[tree.NodeID]Entry
}

// BuildIndex evaluates the index conventions for every directory of t.
func BuildIndex(t *tree.Tree, titles TitleFunc) *Index {
	if titles == nil {
		titles = func(tree.NodeID) string { return "" }
	}
	idx := &Index{tree: t, titles: titles, entries: make(map[tree.NodeID]Entry)}
	for _, dir := range t.Dirs() {
		if e, ok := idx.resolve(dir); ok {
			idx.entries[dir] = e
			slog.Debug("Resolved directory index",
				logfields.Dir(t.Node(dir).Rel),
				logfields.File(t.Node(e.Doc).Rel),
				logfields.Convention(e.Convention.String()))
		}
	}
	return idx
}

func (idx *Index) resolve(dir tree.NodeID) (Entry, bool) {
	t := idx.tree
	n := t.Node(dir)
	named := n.Name() + ".md"

	if n.Parent != tree.NoParent {
		if doc, ok := markdownChild(t, n.Parent, named); ok {
			return Entry{Dir: dir, Doc: doc, Convention: ConventionParentNamed}, true
		}
	}
	if n.Name() != "" {
		if doc, ok := markdownChild(t, dir, named); ok {
			return Entry{Dir: dir, Doc: doc, Convention: ConventionSelfNamed}, true
		}
	}
	if doc, ok := markdownChild(t, dir, IndexFileName); ok {
		return Entry{Dir: dir, Doc: doc, Convention: ConventionIndex}, true
	}
	return Entry{}, false
}

func markdownChild(t *tree.Tree, dir tree.NodeID, name string) (tree.NodeID, bool) {
	n, ok := t.Child(dir, name)
	if !ok || n.Kind != tree.KindMarkdown {
		return 0, false
	}
	return n.ID, true
}

// Tree returns the tree the index was built from.
func (idx *Index) Tree() *tree.Tree { return idx.tree }

// Lookup returns the index entry of dir.
func (idx *Index) Lookup(dir tree.NodeID) (Entry, bool) {
	e, ok := idx.entries[dir]
	return e, ok
}

// Len returns the number of directories with an index document.
func (idx *Index) Len() int { return len(idx.entries) }

// Entries returns every entry in depth-first directory order.
func (idx *Index) Entries() []Entry {
	out := make([]Entry, 0, len(idx.entries))
	for _, dir := range idx.tree.Dirs() {
		if e, ok := idx.entries[dir]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Label returns the breadcrumb label of an index document: its title, or its
// filename stem when it has none.
func (idx *Index) Label(doc tree.NodeID) string {
	if title := idx.titles(doc); title != "" {
		return title
	}
	name := idx.tree.Node(doc).Name()
	return name[:len(name)-len(path.Ext(name))]
}
