package goquery

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/locgen"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Extractor implements locgen.Extractor at compile time.
var _ locgen.Extractor = (*Extractor)(nil)

// ignoredTags have no interactive or visual meaning and get no locators.
var ignoredTags = []string{"SCRIPT", "STYLE", "NOSCRIPT", "META", "LINK", "TITLE", "HEAD", "HTML"}

// StrategyError reports a locator strategy that was skipped for one element.
type StrategyError struct {
	Key      string
	Strategy string
	Err      error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("strategy %s skipped for %s: %v", e.Strategy, e.Key, e.Err)
}

func (e *StrategyError) Unwrap() error {
	return e.Err
}

// Extractor generates locators for every element of an HTML fragment.
// It holds no per-call state and is safe for concurrent use.
type Extractor struct {
	onError func(error)
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithErrorHandler registers fn to receive non-fatal problems: a
// *StrategyError for every skipped strategy and an ENOTFOUND error when
// the parsed document has no usable root.
func WithErrorHandler(fn func(error)) Option {
	return func(e *Extractor) {
		e.onError = fn
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses src and returns one ElementInfo per element in document
// order. Ignored tags are skipped, but still count towards the traversal
// index used in keys. Template contents are inert and never visited.
func (e *Extractor) Extract(src string) ([]*locgen.ElementInfo, error) {
	results := []*locgen.ElementInfo{}
	if strings.TrimSpace(src) == "" {
		return results, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, locgen.Errorf(locgen.EPARSE, "failed to parse HTML: %v", err)
	}

	root := queryRoot(doc)
	if root == nil {
		e.report(locgen.Errorf(locgen.ENOTFOUND, "no processable content found in parsed HTML"))
		return results, nil
	}

	var nodes []*html.Node
	walkElements(root, func(n *html.Node) {
		nodes = append(nodes, n)
	})

	ids := newIDIndex(root)
	doc.FindNodes(nodes...).Each(func(index int, sel *goquery.Selection) {
		tag := strings.ToLower(goquery.NodeName(sel))
		if slices.Contains(ignoredTags, strings.ToUpper(tag)) {
			return
		}
		results = append(results, e.describe(newElement(sel, tag, ids), index))
	})

	return results, nil
}

// describe builds the ElementInfo for el by running every strategy in order.
func (e *Extractor) describe(el *element, index int) *locgen.ElementInfo {
	key := el.tag + "-" + el.id + "-" + strconv.Itoa(index)

	var set locgen.LocatorSet
	for _, s := range strategies {
		locs, err := s.locate(el, &set)
		if err != nil {
			e.report(&StrategyError{Key: key, Strategy: s.name, Err: err})
			continue
		}
		for _, loc := range locs {
			set.Add(loc)
		}
	}

	return &locgen.ElementInfo{
		Key:               key,
		TagName:           el.tag,
		ID:                el.id,
		Name:              el.name,
		Classes:           el.classes,
		TextContentSample: textSample(el.text),
		Attributes:        el.attrs,
		Locators:          set.Locators(),
	}
}

func (e *Extractor) report(err error) {
	if e.onError != nil {
		e.onError(err)
	}
}

// queryRoot returns the body if it has any child nodes, otherwise the
// document element. Returns nil when the document has neither.
func queryRoot(doc *goquery.Document) *html.Node {
	docElem := documentElement(doc.Get(0))
	if docElem == nil {
		return nil
	}
	if body := bodyOf(docElem); body != nil && body.FirstChild != nil {
		return body
	}
	return docElem
}

// documentElement returns the first element child of the document node.
func documentElement(doc *html.Node) *html.Node {
	if doc == nil {
		return nil
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// bodyOf returns the first body or frameset child of the document element.
func bodyOf(docElem *html.Node) *html.Node {
	for c := docElem.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Body || c.DataAtom == atom.Frameset) {
			return c
		}
	}
	return nil
}
