// Package htmldoc wraps golang.org/x/net/html for working on HTML fragments:
// parsing into a mutable node list, reading and writing attributes, and
// serializing back to text.
package htmldoc

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses s as the content of a <body> element.
func ParseFragment(s string) ([]*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), body)
	if err != nil {
		return nil, fmt.Errorf("parse html fragment: %w", err)
	}
	return nodes, nil
}

// Render serializes nodes in order.
func Render(nodes []*html.Node) (string, error) {
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
	}
	return buf.String(), nil
}

// Walk calls fn for every element node in document order.
func Walk(nodes []*html.Node, fn func(*html.Node)) {
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			fn(n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	for _, n := range nodes {
		visit(n)
	}
}

// AttrName returns the qualified name of a, e.g. "xlink:href" for namespaced
// attributes of foreign (SVG) content.
func AttrName(a html.Attribute) string {
	if a.Namespace == "" {
		return a.Key
	}
	return a.Namespace + ":" + a.Key
}

// GetAttr returns the value of the attribute with the qualified name key.
func GetAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if AttrName(a) == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr replaces the value of the attribute with the qualified name key.
// It reports false when n has no such attribute.
func SetAttr(n *html.Node, key, val string) bool {
	for i := range n.Attr {
		if AttrName(n.Attr[i]) == key {
			n.Attr[i].Val = val
			return true
		}
	}
	return false
}

// FindFirst returns the first element with the given tag name, or nil.
func FindFirst(nodes []*html.Node, tag string) *html.Node {
	var found *html.Node
	Walk(nodes, func(n *html.Node) {
		if found == nil && n.Data == tag {
			found = n
		}
	})
	return found
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}

// SplitProlog separates a leading XML declaration, doctype, comments and
// whitespace from the rest of an XML document such as SVG. The HTML parser
// would otherwise turn the declaration into a bogus comment.
func SplitProlog(s string) (prolog, rest string) {
	i := 0
	for {
		j := i
		for j < len(s) && strings.ContainsRune(" \t\r\n", rune(s[j])) {
			j++
		}
		var end int
		switch {
		case strings.HasPrefix(s[j:], "<?"):
			end = strings.Index(s[j:], "?>") + 2
		case strings.HasPrefix(s[j:], "<!--"):
			end = strings.Index(s[j:], "-->") + 3
		case len(s[j:]) >= 9 && strings.EqualFold(s[j:j+9], "<!doctype"):
			end = strings.Index(s[j:], ">") + 1
		default:
			return s[:i], s[i:]
		}
		if end <= 2 {
			return s[:i], s[i:]
		}
		i = j + end
	}
}
