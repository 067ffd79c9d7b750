package goquery

import (
	"slices"
	"strconv"
	"strings"

	"github.com/fwojciec/locgen"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FullXPath returns an absolute XPath for n.
//
// An id carried by exactly one element in the document short-circuits to
// //*[@id='...']. Otherwise the path is built from n up to the document
// element or body, or up to the topmost element of a detached fragment.
// Segments get a 1-based [n] suffix when the parent has more than one child
// element with the same tag. Returns false when no segment can be built.
func FullXPath(n *html.Node) (string, bool) {
	if n == nil {
		return "", false
	}
	return fullXPath(n, newIDIndex(n))
}

func fullXPath(n *html.Node, ids *idIndex) (string, bool) {
	if n == nil {
		return "", false
	}
	if id := attr(n, "id"); id != "" && ids.unique(id) {
		return "//*[@id='" + locgen.EscapeQuotes(id) + "']", true
	}

	var segments []string
	for cur := n; cur != nil && cur.Type == html.ElementNode && cur.Data != ""; {
		segment := strings.ToLower(cur.Data)

		parent := cur.Parent
		if isPathRoot(cur) || parent == nil || parent.Type != html.ElementNode {
			segments = append(segments, segment)
			break
		}

		if pos, count := siblingPosition(cur); count > 1 {
			segment += "[" + strconv.Itoa(pos) + "]"
		}
		segments = append(segments, segment)
		cur = parent
	}

	if len(segments) == 0 {
		return "", false
	}
	slices.Reverse(segments)
	return "/" + strings.Join(segments, "/"), true
}

// isPathRoot reports whether n is the document element or the document's
// body.
func isPathRoot(n *html.Node) bool {
	if n.Parent == nil {
		return false
	}
	if n.Parent.Type == html.DocumentNode {
		return true
	}
	if n.DataAtom != atom.Body && n.DataAtom != atom.Frameset {
		return false
	}
	return n.Parent.Parent != nil && n.Parent.Parent.Type == html.DocumentNode &&
		bodyOf(n.Parent) == n
}

// siblingPosition returns n's 1-based rank among its parent's child elements
// with the same tag, and how many such elements there are.
func siblingPosition(n *html.Node) (pos, count int) {
	for c := n.Parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != n.Data {
			continue
		}
		count++
		if c == n {
			pos = count
		}
	}
	return pos, count
}

// idIndex counts element ids over a whole tree, outside template contents.
// A document without a doctype is in quirks mode, where id selectors match
// ASCII case-insensitively, so ids are folded there.
type idIndex struct {
	counts map[string]int
	fold   bool
}

// newIDIndex indexes the tree n belongs to.
func newIDIndex(n *html.Node) *idIndex {
	top := n
	for top.Parent != nil {
		top = top.Parent
	}
	x := &idIndex{counts: make(map[string]int), fold: !hasDoctype(top)}
	count := func(el *html.Node) {
		if id := attr(el, "id"); id != "" {
			x.counts[x.key(id)]++
		}
	}
	if top.Type == html.ElementNode {
		count(top)
	}
	walkElements(top, count)
	return x
}

func (x *idIndex) key(id string) string {
	if !x.fold {
		return id
	}
	b := []byte(id)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// unique reports whether exactly one element carries id.
func (x *idIndex) unique(id string) bool {
	return x.counts[x.key(id)] == 1
}

func hasDoctype(doc *html.Node) bool {
	if doc.Type != html.DocumentNode {
		return false
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.DoctypeNode {
			return true
		}
	}
	return false
}

// walkElements calls fn for every element below n in document order. The
// contents of template elements are skipped.
func walkElements(n *html.Node, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		fn(c)
		if c.DataAtom == atom.Template && c.Namespace == "" {
			continue
		}
		walkElements(c, fn)
	}
}

// attr returns the first value of the named attribute without a namespace.
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val
		}
	}
	return ""
}
