// Package page converts source documents into element trees and renders them
// into the page template.
package page

import (
	"fmt"
	"html"

	xhtml "golang.org/x/net/html"

	"git.home.luguber.info/inful/crumbler/internal/frontmatter"
	"git.home.luguber.info/inful/crumbler/internal/htmldoc"
	"git.home.luguber.info/inful/crumbler/internal/markdown"
)

// Document is a converted source file. Nodes belong to the document and may
// be mutated until Render is called. SourceTitle is the title found in the
// source itself; Title adds the default title fallback. Prolog holds the XML
// declaration and doctype of SVG documents.
type Document struct {
	Title       string
	SourceTitle string
	Nodes       []*xhtml.Node
	TOC         string
	Fingerprint string
	Prolog      string
	svg         bool
}

// IsSVG reports whether the document came from an SVG file.
func (d *Document) IsSVG() bool { return d.svg }

// Body serializes the document's nodes.
func (d *Document) Body() (string, error) {
	return htmldoc.Render(d.Nodes)
}

// Converter turns sources into Documents and Documents into pages.
type Converter struct {
	md     markdown.Converter
	tmpl   Template
	style  string
	script string
}

// NewConverter returns a converter rendering into tmpl.
func NewConverter(md markdown.Converter, tmpl Template) *Converter {
	return &Converter{
		md:     md,
		tmpl:   tmpl,
		style:  StyleTags(tmpl.Stylesheets),
		script: ScriptTags(tmpl.Scripts),
	}
}

// Convert turns Markdown source into a Document. The title is taken from the
// first <h1>, then the front matter title, then the default title.
func (c *Converter) Convert(source []byte) (*Document, error) {
	fm, err := frontmatter.Parse(source)
	if err != nil {
		return nil, err
	}
	res, err := c.md.Convert(fm.Body)
	if err != nil {
		return nil, err
	}
	nodes, err := htmldoc.ParseFragment(res.Body)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Nodes:       nodes,
		TOC:         res.TOC,
		Fingerprint: fm.Fingerprint(),
	}
	if h1 := htmldoc.FindFirst(nodes, "h1"); h1 != nil {
		doc.SourceTitle = htmldoc.Text(h1)
	} else {
		doc.SourceTitle = fm.Title()
	}
	doc.Title = doc.SourceTitle
	if doc.Title == "" {
		doc.Title = c.tmpl.DefaultTitle
	}
	return doc, nil
}

// ConvertSVG parses an SVG document so its references can be rewritten.
func (c *Converter) ConvertSVG(source []byte) (*Document, error) {
	prolog, rest := htmldoc.SplitProlog(string(source))
	nodes, err := htmldoc.ParseFragment(rest)
	if err != nil {
		return nil, err
	}
	doc := &Document{Nodes: nodes, Prolog: prolog, svg: true, Title: c.tmpl.DefaultTitle}
	if t := htmldoc.FindFirst(nodes, "title"); t != nil {
		doc.SourceTitle = htmldoc.Text(t)
		doc.Title = doc.SourceTitle
	}
	return doc, nil
}

// Render produces the final text of doc with chain as its breadcrumbs.
// Placeholders missing from the template are simply not emitted.
func (c *Converter) Render(doc *Document, chain []RenderedCrumb) (string, error) {
	body, err := doc.Body()
	if err != nil {
		return "", fmt.Errorf("serialize document: %w", err)
	}
	if doc.svg {
		return doc.Prolog + fill(SVGTemplate, map[string]string{"body": body}), nil
	}
	return fill(c.tmpl.Page, map[string]string{
		"title":       html.EscapeString(doc.Title),
		"breadcrumbs": RenderBreadcrumbs(c.tmpl.Breadcrumb, chain),
		"body":        body,
		"script":      c.script,
		"style":       c.style,
		"toc":         doc.TOC,
	}), nil
}
