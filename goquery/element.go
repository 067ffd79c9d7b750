package goquery

import (
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/locgen"
	"golang.org/x/net/html"
)

// element holds the per-element facts the locator strategies work from.
type element struct {
	node    *html.Node
	tag     string
	id      string
	name    string
	classes []string
	text    string
	attrs   locgen.Attributes

	// ids counts id occurrences across the whole document.
	ids *idIndex
}

func newElement(sel *goquery.Selection, tag string, ids *idIndex) *element {
	el := &element{
		node:  sel.Get(0),
		tag:   tag,
		text:  directText(sel),
		attrs: attributes(sel.Get(0)),
		ids:   ids,
	}
	el.id, _ = el.attrs.Get("id")
	el.name, _ = el.attrs.Get("name")
	class, _ := el.attrs.Get("class")
	el.classes = classList(class)
	return el
}

// attributes returns the element's attributes in source order. Repeated
// names keep their first value, as browsers do.
func attributes(n *html.Node) locgen.Attributes {
	attrs := make(locgen.Attributes, 0, len(n.Attr))
	for _, a := range n.Attr {
		name := a.Key
		if a.Namespace != "" {
			name = a.Namespace + ":" + a.Key
		}
		if _, ok := attrs.Get(name); ok {
			continue
		}
		attrs = append(attrs, locgen.Attribute{Name: name, Value: a.Val})
	}
	return attrs
}

// classList splits a class attribute into unique tokens in order.
func classList(class string) []string {
	classes := []string{}
	for _, c := range strings.FieldsFunc(class, isASCIISpace) {
		if !slices.Contains(classes, c) {
			classes = append(classes, c)
		}
	}
	return classes
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

// directText concatenates the element's own text nodes, ignoring text inside
// child elements, and collapses whitespace.
func directText(sel *goquery.Selection) string {
	var b strings.Builder
	sel.Contents().Each(func(_ int, c *goquery.Selection) {
		if n := c.Get(0); n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
	})
	return strings.Join(strings.FieldsFunc(b.String(), isTextSpace), " ")
}

// isTextSpace reports whether r is white space or a line terminator in the
// sense of JavaScript's \s, the set browser-side text matching collapses.
func isTextSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\u00a0', '\u1680',
		'\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}

// textSample truncates text to locgen.TextSampleLimit characters, marking
// the cut with an ellipsis.
func textSample(text string) string {
	if r := []rune(text); len(r) > locgen.TextSampleLimit {
		return string(r[:locgen.TextSampleLimit]) + "..."
	}
	return text
}

// truncate returns the first n characters of s.
func truncate(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}
