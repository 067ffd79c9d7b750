package locgen

import (
	"slices"
	"strings"
)

// ElementFilter narrows an extraction result. Zero-value fields match
// everything.
type ElementFilter struct {
	// Search is a case-insensitive substring matched against the tag, id,
	// name, classes, text sample, locator values and attribute names/values.
	Search string

	// Tag matches the element's tag name, ignoring case.
	Tag string

	// LocatorType keeps elements with at least one locator of this type.
	LocatorType LocatorType
}

// IsZero reports whether the filter matches every element.
func (f ElementFilter) IsZero() bool {
	return f.Search == "" && f.Tag == "" && f.LocatorType == ""
}

// Match reports whether el passes all filter criteria.
func (f ElementFilter) Match(el *ElementInfo) bool {
	if f.Search != "" && !matchSearch(el, strings.ToLower(f.Search)) {
		return false
	}
	if f.Tag != "" && !strings.EqualFold(el.TagName, f.Tag) {
		return false
	}
	if f.LocatorType != "" && !slices.ContainsFunc(el.Locators, func(l Locator) bool {
		return l.Type == f.LocatorType
	}) {
		return false
	}
	return true
}

func matchSearch(el *ElementInfo, term string) bool {
	has := func(s string) bool {
		return s != "" && strings.Contains(strings.ToLower(s), term)
	}

	if has(el.TagName) || has(el.ID) || has(el.Name) || has(el.TextContentSample) {
		return true
	}
	if slices.ContainsFunc(el.Classes, has) {
		return true
	}
	for _, loc := range el.Locators {
		if has(loc.Value) {
			return true
		}
	}
	for _, attr := range el.Attributes {
		if has(attr.Name) || has(attr.Value) {
			return true
		}
	}
	return false
}

// FilterElements returns the elements matching f, preserving order.
func FilterElements(elems []*ElementInfo, f ElementFilter) []*ElementInfo {
	if f.IsZero() {
		return elems
	}
	out := make([]*ElementInfo, 0, len(elems))
	for _, el := range elems {
		if f.Match(el) {
			out = append(out, el)
		}
	}
	return out
}

// TagNames returns the distinct upper-cased tag names in elems, sorted.
func TagNames(elems []*ElementInfo) []string {
	seen := make(map[string]struct{})
	for _, el := range elems {
		seen[strings.ToUpper(el.TagName)] = struct{}{}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// LocatorTypes returns the distinct locator types in elems together with
// the standard types, sorted.
func LocatorTypes(elems []*ElementInfo) []LocatorType {
	seen := make(map[LocatorType]struct{})
	for _, t := range StandardLocatorTypes {
		seen[t] = struct{}{}
	}
	for _, el := range elems {
		for _, loc := range el.Locators {
			seen[loc.Type] = struct{}{}
		}
	}
	types := make([]LocatorType, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}
