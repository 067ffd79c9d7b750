package goquery

import (
	"strings"

	"github.com/fwojciec/locgen"
)

// Text limits for the text-based strategies, in characters.
const (
	maxDirectText   = 100
	minPartialText  = 5
	partialTextSize = 50
)

// locatorAttributes are attributes commonly added for testing or
// accessibility, and therefore stable enough to locate by.
var locatorAttributes = []string{"data-testid", "data-cy", "aria-label", "placeholder", "title", "alt"}

// strategy generates locators for one element. seen holds the locators
// produced by earlier strategies. A strategy that returns an error
// contributes nothing for that element.
type strategy struct {
	name   string
	locate func(el *element, seen *locgen.LocatorSet) ([]locgen.Locator, error)
}

// strategies run in this order for every element. The order decides the
// position of each locator in the result.
var strategies = []strategy{
	{"id", byID},
	{"name", byName},
	{"class", byClass},
	{"tag", byTag},
	{"full-xpath", byFullXPath},
	{"link-text", byLinkText},
	{"direct-text", byDirectText},
	{"attributes", byAttributes},
}

func css(value, description string) locgen.Locator {
	return locgen.Locator{Type: locgen.LocatorCSS, Value: value, Description: description}
}

func xpath(value, description string) locgen.Locator {
	return locgen.Locator{Type: locgen.LocatorXPath, Value: value, Description: description}
}

func byID(el *element, _ *locgen.LocatorSet) ([]locgen.Locator, error) {
	if el.id == "" {
		return nil, nil
	}
	escaped, err := locgen.CSSEscape(el.id)
	if err != nil {
		return nil, err
	}
	return []locgen.Locator{
		{Type: locgen.LocatorID, Value: el.id, Description: "Direct ID attribute"},
		css("#"+escaped, "CSS by ID"),
		xpath("//*[@id='"+locgen.EscapeQuotes(el.id)+"']", "XPath by ID"),
	}, nil
}

func byName(el *element, _ *locgen.LocatorSet) ([]locgen.Locator, error) {
	if el.name == "" {
		return nil, nil
	}
	value := locgen.EscapeQuotes(el.name)
	return []locgen.Locator{
		css(el.tag+"[name='"+value+"']", "CSS by name attribute"),
		xpath("//"+el.tag+"[@name='"+value+"']", "XPath by name attribute"),
	}, nil
}

func byClass(el *element, _ *locgen.LocatorSet) ([]locgen.Locator, error) {
	if len(el.classes) == 0 {
		return nil, nil
	}
	escaped := make([]string, len(el.classes))
	contains := make([]string, len(el.classes))
	for i, c := range el.classes {
		e, err := locgen.CSSEscape(c)
		if err != nil {
			return nil, err
		}
		escaped[i] = e
		contains[i] = "contains(@class, '" + locgen.EscapeQuotes(c) + "')"
	}
	return []locgen.Locator{
		css(el.tag+"."+strings.Join(escaped, "."), "CSS by tag and classes"),
		xpath("//"+el.tag+"["+strings.Join(contains, " and ")+"]", "XPath by tag and classes"),
	}, nil
}

func byTag(el *element, _ *locgen.LocatorSet) ([]locgen.Locator, error) {
	return []locgen.Locator{css(el.tag, "CSS by tag name")}, nil
}

func byFullXPath(el *element, seen *locgen.LocatorSet) ([]locgen.Locator, error) {
	path, ok := fullXPath(el.node, el.ids)
	if !ok || seen.HasXPath(path) {
		return nil, nil
	}
	return []locgen.Locator{xpath(path, "Calculated Full XPath")}, nil
}

func byLinkText(el *element, _ *locgen.LocatorSet) ([]locgen.Locator, error) {
	if el.tag != "a" || el.text == "" {
		return nil, nil
	}
	text := locgen.EscapeQuotes(el.text)
	return []locgen.Locator{
		xpath("//a[normalize-space(.)='"+text+"']", "XPath by exact link text"),
		xpath("//a[contains(normalize-space(.), '"+truncate(text, partialTextSize)+"')]", "XPath by partial link text"),
	}, nil
}

func byDirectText(el *element, _ *locgen.LocatorSet) ([]locgen.Locator, error) {
	n := len([]rune(el.text))
	if el.tag == "a" || n == 0 || n >= maxDirectText {
		return nil, nil
	}
	text := locgen.EscapeQuotes(el.text)
	locs := []locgen.Locator{
		xpath("//"+el.tag+"[normalize-space(.)='"+text+"']", "XPath by exact direct text"),
	}
	if n > minPartialText {
		locs = append(locs, xpath("//"+el.tag+"[contains(normalize-space(.), '"+truncate(text, partialTextSize)+"')]", "XPath by partial direct text"))
	}
	return locs, nil
}

func byAttributes(el *element, _ *locgen.LocatorSet) ([]locgen.Locator, error) {
	var locs []locgen.Locator
	for _, name := range locatorAttributes {
		v, _ := el.attrs.Get(name)
		if v == "" {
			continue
		}
		value := locgen.EscapeQuotes(v)
		locs = append(locs,
			css(el.tag+"["+name+"='"+value+"']", "CSS by "+name),
			xpath("//"+el.tag+"[@"+name+"='"+value+"']", "XPath by "+name),
		)
	}
	return locs, nil
}
