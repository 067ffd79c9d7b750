package main_test

import (
	"strings"
	"testing"

	main "github.com/fwojciec/locgen/cmd/locgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("accepts an empty document", func(t *testing.T) {
		t.Parallel()

		r, err := main.LoadConfig(strings.NewReader(""))

		require.NoError(t, err)
		assert.NotNil(t, r)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadConfig(strings.NewReader("db: [unclosed"))

		assert.Error(t, err)
	})
}
