package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/locgen"
	main "github.com/fwojciec/locgen/cmd/locgen"
	"github.com/fwojciec/locgen/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes run when --force is set", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		runs := &mock.RunService{
			DeleteRunFn: func(_ context.Context, id string) error {
				deletedID = id
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Runs: runs}

		err := (&main.DeleteCmd{ID: "run-1", Force: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "run-1", deletedID)
		assert.Contains(t, stdout.String(), "Deleted run run-1")
	})

	t.Run("requires --force flag", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Runs: &mock.RunService{}}

		err := (&main.DeleteCmd{ID: "run-1"}).Run(deps)

		assert.Equal(t, locgen.EINVALID, locgen.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("reports unknown runs", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			DeleteRunFn: func(context.Context, string) error {
				return locgen.Errorf(locgen.ENOTFOUND, "run not found")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Runs: runs}

		err := (&main.DeleteCmd{ID: "nope", Force: true}).Run(deps)

		assert.Equal(t, locgen.ENOTFOUND, locgen.ErrorCode(err))
		assert.Contains(t, stderr.String(), "locgen runs")
	})
}
