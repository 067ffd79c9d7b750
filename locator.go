package locgen

// LocatorType tags the kind of expression a Locator holds. The set is open;
// the constants below are the types the extractor always produces.
type LocatorType string

// Standard locator types.
const (
	LocatorID    LocatorType = "ID"
	LocatorCSS   LocatorType = "CSS Selector"
	LocatorXPath LocatorType = "XPath"
)

// StandardLocatorTypes lists the locator types every extraction can produce.
var StandardLocatorTypes = []LocatorType{LocatorID, LocatorCSS, LocatorXPath}

// Locator is a single candidate expression for finding an element.
type Locator struct {
	Type  LocatorType `json:"type"`
	Value string      `json:"value"`

	// Description is a human-readable rationale such as "CSS by ID".
	// It is informational only.
	Description string `json:"description,omitempty"`
}

// LocatorSet is an insertion-ordered collection of locators keyed by Value.
//
// Adding a locator whose value is already present replaces the stored
// locator in place: the entry keeps its original position but carries the
// type and description of the most recent Add. The zero value is ready to use.
type LocatorSet struct {
	index    map[string]int
	locators []Locator
}

// Add inserts loc if its value is new, otherwise overwrites the existing
// entry with the same value without moving it.
func (s *LocatorSet) Add(loc Locator) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[loc.Value]; ok {
		s.locators[i] = loc
		return
	}
	s.index[loc.Value] = len(s.locators)
	s.locators = append(s.locators, loc)
}

// HasXPath reports whether an XPath locator with the given value is present.
func (s *LocatorSet) HasXPath(value string) bool {
	i, ok := s.index[value]
	return ok && s.locators[i].Type == LocatorXPath
}

// Len returns the number of distinct values in the set.
func (s *LocatorSet) Len() int {
	return len(s.locators)
}

// Locators returns a copy of the locators in first-insertion order.
func (s *LocatorSet) Locators() []Locator {
	out := make([]Locator, len(s.locators))
	copy(out, s.locators)
	return out
}
