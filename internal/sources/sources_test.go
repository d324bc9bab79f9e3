package sources

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/braingym/internal/storage"
)

func TestKindFor(t *testing.T) {
	assert.Equal(t, "git", KindFor("https://example.com/decks.git"))
	assert.Equal(t, "git", KindFor("git@example.com:me/decks.git"))
	assert.Equal(t, "git", KindFor("https://example.com/decks"))
	assert.Equal(t, "local", KindFor("/home/me/decks"))
	assert.Equal(t, "local", KindFor("decks"))
}

func TestGitURLToLocalPath(t *testing.T) {
	got, err := gitURLToLocalPath("repos", "https://example.com/me/decks.git")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("repos", "example.com", "me", "decks"), got)

	got, err = gitURLToLocalPath("repos", "git@example.com:me/decks.git")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("repos", "example.com", "me", "decks"), got)

	_, err = gitURLToLocalPath("repos", "not a url at all")
	assert.Error(t, err)
}

func TestRunSyncReconcilesLocalSource(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	dir := t.TempDir()
	deckFile := filepath.Join(dir, "anatomy.md")
	require.NoError(t, os.WriteFile(deckFile, []byte(
		"Q: How many cervical vertebrae?\nA: Seven.\n---\nQ: Longest bone?\nA: The femur.\n",
	), 0o644))

	_, err = db.InsertSource(dir, "local")
	require.NoError(t, err)

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, RunSync(context.Background(), db, t.TempDir(), now))

	decks, err := db.ListDecks()
	require.NoError(t, err)
	require.Len(t, decks, 1)
	assert.Equal(t, "anatomy", decks[0].Name)
	require.Len(t, decks[0].Cards, 2)
	for _, c := range decks[0].Cards {
		assert.NotEmpty(t, c.SourceHash)
	}

	// Grade the first card, then change the file: drop the second card,
	// add a third. The graded card must keep its scheduling state.
	graded := decks[0].Cards[0]
	graded.Repetitions = 1
	graded.IntervalDays = 1
	graded.DueAt = now.AddDate(0, 0, 1)
	graded.UpdatedAt = now
	require.NoError(t, db.UpdateCardSchedule(graded))

	require.NoError(t, os.WriteFile(deckFile, []byte(
		"Q: How many cervical vertebrae?\nA: Seven.\n---\nQ: Smallest bone?\nA: The stapes.\n",
	), 0o644))

	later := now.Add(time.Hour)
	require.NoError(t, RunSync(context.Background(), db, t.TempDir(), later))

	decks, err = db.ListDecks()
	require.NoError(t, err)
	require.Len(t, decks, 1)
	require.Len(t, decks[0].Cards, 2)

	byFront := map[string]bool{}
	for _, c := range decks[0].Cards {
		byFront[c.Front] = true
		if c.ID == graded.ID {
			assert.Equal(t, 1, c.Repetitions, "re-sync must not reset scheduling state")
		}
	}
	assert.True(t, byFront["How many cervical vertebrae?"])
	assert.True(t, byFront["Smallest bone?"])
	assert.False(t, byFront["Longest bone?"])
}

func TestRunSyncRemovesDeckWhenFileGone(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	dir := t.TempDir()
	deckFile := filepath.Join(dir, "pharma.md")
	require.NoError(t, os.WriteFile(deckFile, []byte("Q: q\nA: a\n"), 0o644))

	_, err = db.InsertSource(dir, "local")
	require.NoError(t, err)

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, RunSync(context.Background(), db, t.TempDir(), now))

	decks, err := db.ListDecks()
	require.NoError(t, err)
	require.Len(t, decks, 1)

	require.NoError(t, os.Remove(deckFile))
	require.NoError(t, RunSync(context.Background(), db, t.TempDir(), now.Add(time.Hour)))

	decks, err = db.ListDecks()
	require.NoError(t, err)
	assert.Empty(t, decks)
}
