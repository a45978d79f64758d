package tree

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/crumbler/internal/logfields"
)

// ScanOptions controls which entries the scan leaves out.
type ScanOptions struct {
	// OutputDir is skipped when it lives inside the source root.
	OutputDir     string
	// Exclude lists absolute file paths that are never part of the tree.
	Exclude       []string
	// IncludeHidden keeps entries whose name starts with a dot.
	IncludeHidden bool
}

// Scan walks root once and returns the arena describing it.
// Directory children keep the order the filesystem walk yields them in.
func Scan(root string, opts ScanOptions) (*Tree, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceRootMissing, root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceRootMissing, root)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrWalkFailed, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	skipDir := ""
	if opts.OutputDir != "" {
		if out, absErr := filepath.Abs(opts.OutputDir); absErr == nil && out != absRoot && isWithin(absRoot, out) {
			skipDir = out
		}
	}
	excluded := make(map[string]struct{}, len(opts.Exclude))
	for _, p := range opts.Exclude {
		if abs, absErr := filepath.Abs(p); absErr == nil {
			excluded[abs] = struct{}{}
		}
	}

	t := newTree(absRoot)
	dirs := map[string]NodeID{"": t.add("", absRoot, KindDir, NoParent)}

	err = filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if p == absRoot {
			return nil
		}
		if !opts.IncludeHidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() && p == skipDir {
			slog.Debug("Skipping output directory inside source root", logfields.Dir(p))
			return filepath.SkipDir
		}
		if _, skip := excluded[p]; skip {
			return nil
		}

		rel, relErr := filepath.Rel(absRoot, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		parent, ok := dirs[parentRel(rel)]
		if !ok {
			return fmt.Errorf("parent of %s not scanned", rel)
		}

		if d.IsDir() {
			dirs[rel] = t.add(rel, p, KindDir, parent)
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			target, statErr := os.Stat(p)
			if statErr != nil || target.IsDir() {
				slog.Debug("Skipping symlink", logfields.Path(rel))
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}
		t.add(rel, p, KindOf(d.Name()), parent)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWalkFailed, root, err)
	}

	slog.Debug("Scanned source tree", logfields.Path(absRoot), logfields.Count(t.Len()))
	return t, nil
}

// KindOf classifies a file by its extension.
func KindOf(name string) Kind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return KindMarkdown
	case ".svg":
		return KindSVG
	default:
		return KindAsset
	}
}

func parentRel(rel string) string {
	i := strings.LastIndex(rel, "/")
	if i < 0 {
		return ""
	}
	return rel[:i]
}

func isWithin(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
