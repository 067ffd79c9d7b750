package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/locgen"
	"github.com/fwojciec/locgen/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRunElements() []*locgen.ElementInfo {
	return []*locgen.ElementInfo{
		{
			Key:               "button-save-0",
			TagName:           "button",
			ID:                "save",
			Classes:           []string{"btn", "primary"},
			TextContentSample: "Save",
			Attributes: locgen.Attributes{
				{Name: "id", Value: "save"},
				{Name: "class", Value: "btn primary"},
			},
			Locators: []locgen.Locator{
				{Type: locgen.LocatorID, Value: "save", Description: "Direct ID attribute"},
				{Type: locgen.LocatorCSS, Value: "#save", Description: "CSS by ID"},
			},
		},
		{
			Key:        "span--1",
			TagName:    "span",
			Classes:    []string{},
			Attributes: locgen.Attributes{},
			Locators: []locgen.Locator{
				{Type: locgen.LocatorCSS, Value: "span", Description: "CSS by tag name"},
			},
		},
	}
}

func createTestRun(t *testing.T, svc *sqlite.RunService, source, html string) *locgen.Run {
	t.Helper()
	run := &locgen.Run{Source: source, Elements: sampleRunElements()}
	require.NoError(t, svc.CreateRun(context.Background(), run, html))
	return run
}

func TestRunService_CreateRun(t *testing.T) {
	t.Parallel()

	t.Run("assigns id, hash, count and timestamp", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))

		run := createTestRun(t, svc, "page.html", "<button id=save>Save</button><span></span>")

		assert.NotEmpty(t, run.ID)
		assert.Equal(t, sqlite.HashContent("<button id=save>Save</button><span></span>"), run.ContentHash)
		assert.Equal(t, 2, run.ElementCount)
		assert.False(t, run.CreatedAt.IsZero())
	})

	t.Run("returns error for invalid run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))

		err := svc.CreateRun(context.Background(), &locgen.Run{}, "<p>x</p>")

		require.Error(t, err)
		assert.Equal(t, locgen.EINVALID, locgen.ErrorCode(err))
	})

	t.Run("saves run without elements", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		run := &locgen.Run{Source: "empty.html"}

		require.NoError(t, svc.CreateRun(context.Background(), run, "   "))

		found, err := svc.FindRunByID(context.Background(), run.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, found.ElementCount)
		assert.Empty(t, found.Elements)
	})
}

func TestRunService_FindRunByID(t *testing.T) {
	t.Parallel()

	t.Run("round-trips elements in order", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		run := createTestRun(t, svc, "page.html", "<p>x</p>")

		found, err := svc.FindRunByID(context.Background(), run.ID)

		require.NoError(t, err)
		assert.Equal(t, run.ID, found.ID)
		assert.Equal(t, "page.html", found.Source)
		assert.Equal(t, run.ContentHash, found.ContentHash)
		assert.True(t, run.CreatedAt.Equal(found.CreatedAt))
		assert.Equal(t, sampleRunElements(), found.Elements)
	})

	t.Run("returns ENOTFOUND for missing run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))

		_, err := svc.FindRunByID(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, locgen.ENOTFOUND, locgen.ErrorCode(err))
	})
}

func TestRunService_FindRuns(t *testing.T) {
	t.Parallel()

	t.Run("returns newest first without elements", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		first := createTestRun(t, svc, "a.html", "<p>a</p>")
		second := createTestRun(t, svc, "b.html", "<p>b</p>")

		runs, err := svc.FindRuns(context.Background(), locgen.RunFilter{})

		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, second.ID, runs[0].ID)
		assert.Equal(t, first.ID, runs[1].ID)
		assert.Nil(t, runs[0].Elements)
		assert.Equal(t, 2, runs[0].ElementCount)
	})

	t.Run("filters by source", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		createTestRun(t, svc, "a.html", "<p>a</p>")
		b := createTestRun(t, svc, "b.html", "<p>b</p>")

		source := "b.html"
		runs, err := svc.FindRuns(context.Background(), locgen.RunFilter{Source: &source})

		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, b.ID, runs[0].ID)
	})

	t.Run("filters by content hash", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		createTestRun(t, svc, "a.html", "<p>same</p>")
		createTestRun(t, svc, "copy.html", "<p>same</p>")
		createTestRun(t, svc, "other.html", "<p>other</p>")

		hash := sqlite.HashContent("<p>same</p>")
		runs, err := svc.FindRuns(context.Background(), locgen.RunFilter{ContentHash: &hash})

		require.NoError(t, err)
		assert.Len(t, runs, 2)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		for _, src := range []string{"1.html", "2.html", "3.html"} {
			createTestRun(t, svc, src, src)
		}

		runs, err := svc.FindRuns(context.Background(), locgen.RunFilter{Limit: 1, Offset: 1})

		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "2.html", runs[0].Source)
	})
}

func TestRunService_DeleteRun(t *testing.T) {
	t.Parallel()

	t.Run("removes run and its elements", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		run := createTestRun(t, svc, "page.html", "<p>x</p>")
		ctx := context.Background()

		require.NoError(t, svc.DeleteRun(ctx, run.ID))

		_, err := svc.FindRunByID(ctx, run.ID)
		assert.Equal(t, locgen.ENOTFOUND, locgen.ErrorCode(err))

		var count int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM elements WHERE run_id = ?", run.ID).Scan(&count))
		assert.Zero(t, count)
	})

	t.Run("returns ENOTFOUND for missing run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))

		err := svc.DeleteRun(context.Background(), "missing")

		assert.Equal(t, locgen.ENOTFOUND, locgen.ErrorCode(err))
	})
}

func TestHashContent(t *testing.T) {
	t.Parallel()

	assert.Len(t, sqlite.HashContent("abc"), 16)
	assert.Equal(t, sqlite.HashContent("abc"), sqlite.HashContent("abc"))
	assert.NotEqual(t, sqlite.HashContent("abc"), sqlite.HashContent("abd"))
}
