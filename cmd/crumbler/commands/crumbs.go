package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"git.home.luguber.info/inful/crumbler/internal/build"
	"git.home.luguber.info/inful/crumbler/internal/config"
	"git.home.luguber.info/inful/crumbler/internal/crumbs"
)

// CrumbsCmd implements the 'crumbs' command: the index pass of a build with
// nothing written.
type CrumbsCmd struct {
	SourceFlags `embed:""`
}

func (c *CrumbsCmd) Run(g *Global, root *CLI) error {
	cfg, err := LoadConfig(root.Config)
	if err != nil {
		return err
	}
	c.apply(cfg)
	return RunCrumbs(g.out(), cfg)
}

// RunCrumbs prints one row per directory: the convention that matched, the
// index document and the breadcrumb chain of pages in that directory.
func RunCrumbs(w io.Writer, cfg *config.Config) error {
	builder, err := build.New(cfg)
	if err != nil {
		return err
	}
	idx, err := builder.Index()
	if err != nil {
		return err
	}
	resolver, err := crumbs.NewResolver(idx, builder.Config().ChainCacheSize)
	if err != nil {
		return err
	}

	t := idx.Tree()
	rows := make([][]string, 0, len(t.Dirs()))
	for _, dir := range t.Dirs() {
		name := t.Node(dir).Rel
		if name == "" {
			name = "."
		}
		convention, doc := crumbs.Convention(0).String(), "-"
		if e, ok := idx.Lookup(dir); ok {
			convention, doc = e.Convention.String(), t.Node(e.Doc).Rel
		}
		rows = append(rows, []string{name, convention, doc, formatChain(resolver.Chain(dir))})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("DIRECTORY", "CONVENTION", "INDEX", "BREADCRUMBS").
		Rows(rows...)
	fmt.Fprintln(w, tbl.Render())
	fmt.Fprintf(w, "%d of %d directories indexed\n", idx.Len(), len(rows))
	return nil
}

func formatChain(chain crumbs.Chain) string {
	labels := make([]string, 0, len(chain))
	for _, c := range chain {
		labels = append(labels, c.Label)
	}
	return strings.Join(labels, " > ")
}
