// Package markdown converts Markdown bodies to HTML fragments with goldmark
// and builds a table of contents from the parsed headings.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Result is the output of a conversion.
type Result struct {
	Body string
	TOC  string
}

// Converter turns a Markdown body (front matter already removed) into HTML.
type Converter interface {
	Convert(source []byte) (Result, error)
}

// Options configures the goldmark converter.
type Options struct {
	// HighlightStyle enables chroma syntax highlighting of fenced code with the
	// named style. Empty disables highlighting.
	HighlightStyle string
	// TOCMaxLevel is the deepest heading level listed in the table of contents.
	// Zero means 6.
	TOCMaxLevel    int
}

// Goldmark is the default Converter.
type Goldmark struct {
	md       goldmark.Markdown
	maxLevel int
}

// New returns a goldmark converter with GitHub Flavored Markdown, automatic
// heading IDs and raw HTML passthrough enabled.
func New(opts Options) (*Goldmark, error) {
	extensions := []goldmark.Extender{extension.GFM}
	if opts.HighlightStyle != "" {
		style := strings.ToLower(opts.HighlightStyle)
		if _, ok := styles.Registry[style]; !ok {
			return nil, fmt.Errorf("unknown highlight style %q", opts.HighlightStyle)
		}
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(style),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(false),
			),
		))
	}

	maxLevel := opts.TOCMaxLevel
	if maxLevel <= 0 || maxLevel > 6 {
		maxLevel = 6
	}

	return &Goldmark{
		md: goldmark.New(
			goldmark.WithExtensions(extensions...),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
		maxLevel: maxLevel,
	}, nil
}

// Convert renders source and returns the HTML body and table of contents.
func (g *Goldmark) Convert(source []byte) (Result, error) {
	root := g.md.Parser().Parse(text.NewReader(source))

	var buf bytes.Buffer
	if err := g.md.Renderer().Render(&buf, source, root); err != nil {
		return Result{}, fmt.Errorf("render markdown: %w", err)
	}

	return Result{
		Body: buf.String(),
		TOC:  renderTOC(Headings(root, source), g.maxLevel),
	}, nil
}

// Heading is a heading found in a parsed document.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// Headings lists the headings of a parsed document in order.
func Headings(root gmast.Node, source []byte) []Heading {
	var out []Heading
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		id, _ := h.AttributeString("id")
		var idStr string
		switch v := id.(type) {
		case []byte:
			idStr = string(v)
		case string:
			idStr = v
		}
		out = append(out, Heading{Level: h.Level, ID: idStr, Text: inlineText(h, source)})
		return gmast.WalkSkipChildren, nil
	})
	return out
}

func inlineText(n gmast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *gmast.Text:
			b.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(node.Value)
		case *gmast.RawHTML:
			// inline tags contribute no text
		default:
			b.WriteString(inlineText(c, source))
		}
	}
	return b.String()
}
