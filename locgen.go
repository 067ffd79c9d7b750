// Package locgen generates locator candidates (ID, CSS selector, XPath) for
// every element of an HTML fragment, for use in UI automation scripts.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package locgen
