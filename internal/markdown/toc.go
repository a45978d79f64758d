package markdown

import (
	"html"
	"strings"
)

type tocEntry struct {
	heading  Heading
	children []*tocEntry
}

// renderTOC renders headings as nested lists inside <div class="toc">.
// It returns "" when no heading qualifies.
func renderTOC(headings []Heading, maxLevel int) string {
	root := &tocEntry{}
	stack := []*tocEntry{root}
	for _, h := range headings {
		if h.Level > maxLevel || h.ID == "" {
			continue
		}
		for len(stack) > 1 && stack[len(stack)-1].heading.Level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		e := &tocEntry{heading: h}
		parent := stack[len(stack)-1]
		parent.children = append(parent.children, e)
		stack = append(stack, e)
	}
	if len(root.children) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("<div class=\"toc\">\n")
	writeTOCList(&b, root.children)
	b.WriteString("</div>\n")
	return b.String()
}

func writeTOCList(b *strings.Builder, entries []*tocEntry) {
	b.WriteString("<ul>\n")
	for _, e := range entries {
		b.WriteString(`<li><a href="#`)
		b.WriteString(html.EscapeString(e.heading.ID))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(e.heading.Text))
		b.WriteString("</a>")
		if len(e.children) > 0 {
			b.WriteString("\n")
			writeTOCList(b, e.children)
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
}
