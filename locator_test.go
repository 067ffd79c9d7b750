package locgen_test

import (
	"testing"

	"github.com/fwojciec/locgen"
	"github.com/stretchr/testify/assert"
)

func TestLocatorSet_Add(t *testing.T) {
	t.Parallel()

	t.Run("keeps insertion order of distinct values", func(t *testing.T) {
		t.Parallel()

		var set locgen.LocatorSet
		set.Add(locgen.Locator{Type: locgen.LocatorCSS, Value: "div"})
		set.Add(locgen.Locator{Type: locgen.LocatorXPath, Value: "/body/div"})
		set.Add(locgen.Locator{Type: locgen.LocatorCSS, Value: "div.card"})

		values := make([]string, 0, set.Len())
		for _, loc := range set.Locators() {
			values = append(values, loc.Value)
		}
		assert.Equal(t, []string{"div", "/body/div", "div.card"}, values)
	})

	t.Run("duplicate value keeps first position and last payload", func(t *testing.T) {
		t.Parallel()

		var set locgen.LocatorSet
		set.Add(locgen.Locator{Type: locgen.LocatorCSS, Value: "a", Description: "first"})
		set.Add(locgen.Locator{Type: locgen.LocatorCSS, Value: "b"})
		set.Add(locgen.Locator{Type: locgen.LocatorXPath, Value: "a", Description: "second"})

		locs := set.Locators()
		assert.Len(t, locs, 2)
		assert.Equal(t, locgen.Locator{Type: locgen.LocatorXPath, Value: "a", Description: "second"}, locs[0])
		assert.Equal(t, "b", locs[1].Value)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		t.Parallel()

		var set locgen.LocatorSet
		set.Add(locgen.Locator{Type: locgen.LocatorCSS, Value: "p"})

		locs := set.Locators()
		locs[0].Value = "changed"

		assert.Equal(t, "p", set.Locators()[0].Value)
	})
}

func TestLocatorSet_HasXPath(t *testing.T) {
	t.Parallel()

	var set locgen.LocatorSet
	assert.False(t, set.HasXPath("//*[@id='x']"), "zero value has nothing")

	set.Add(locgen.Locator{Type: locgen.LocatorXPath, Value: "//*[@id='x']"})
	set.Add(locgen.Locator{Type: locgen.LocatorCSS, Value: "span"})

	assert.True(t, set.HasXPath("//*[@id='x']"))
	assert.False(t, set.HasXPath("span"), "CSS value is not an XPath")
}
