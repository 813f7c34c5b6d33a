package corpus

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetCorpusInfo(t *testing.T) {
	_, s := setupTestDB(t)
	ctx := context.Background()

	created, err := s.CreateCorpus(ctx, "planets")
	require.NoError(t, err)
	assert.Equal(t, "planets", created.Name)

	got, err := s.GetCorpusInfo(ctx, "planets")
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = s.GetCorpusInfo(ctx, "nonexistent")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = s.CreateCorpus(ctx, "planets")
	assert.Error(t, err, "duplicate corpus names must be rejected")

	again, err := s.GetOrCreateCorpus(ctx, "planets")
	require.NoError(t, err)
	assert.Equal(t, created, again)

	fresh, err := s.GetOrCreateCorpus(ctx, "moons")
	require.NoError(t, err)
	assert.NotEqual(t, created.Id, fresh.Id)

	infos, err := s.GetCorpusInfos(ctx)
	require.NoError(t, err)
	assert.Len(t, infos, 2)
	assert.Contains(t, infos, "planets")
	assert.Contains(t, infos, "moons")
}

func TestAddEntriesKeepsRepeats(t *testing.T) {
	_, s := setupTestDB(t)
	ctx := context.Background()

	info, err := s.CreateCorpus(ctx, "skew")
	require.NoError(t, err)

	added, err := s.AddEntries(ctx, info, []string{"aa", " ", "aa", "ab", ""})
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	entries, err := s.Entries(ctx, info)
	require.NoError(t, err)
	assert.Equal(t, []string{"aa", "aa", "ab"}, entries)

	stats, err := s.GetStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats.Corpora, 1)
	assert.Equal(t, CorpusStats{DistinctEntries: 2, TotalOccurrences: 3}, stats.Entries[info.Id])
}

func TestIngest(t *testing.T) {
	_, s := setupTestDB(t)
	ctx := context.Background()

	info, err := s.CreateCorpus(ctx, "text")
	require.NoError(t, err)

	added, err := s.Ingest(ctx, info, strings.NewReader("Mars and Venus.\nMars again!"))
	require.NoError(t, err)
	assert.Equal(t, 5, added)

	entries, err := s.Entries(ctx, info)
	require.NoError(t, err)
	assert.Equal(t, []string{"mars", "mars", "and", "venus", "again"}, entries)
}

func TestIngestRollsBackOnError(t *testing.T) {
	_, s := setupTestDB(t)
	ctx := context.Background()

	info, err := s.CreateCorpus(ctx, "broken")
	require.NoError(t, err)

	_, err = s.Ingest(ctx, info, failingReader{})
	require.Error(t, err)

	entries, err := s.Entries(ctx, info)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRemoveCorpus(t *testing.T) {
	db, s := setupTestDB(t)
	ctx := context.Background()

	doomed, err := s.CreateCorpus(ctx, "to_delete")
	require.NoError(t, err)
	kept, err := s.CreateCorpus(ctx, "to_keep")
	require.NoError(t, err)
	_, err = s.AddEntries(ctx, doomed, []string{"delete", "this"})
	require.NoError(t, err)
	_, err = s.AddEntries(ctx, kept, []string{"keep", "this"})
	require.NoError(t, err)

	require.NoError(t, s.RemoveCorpus(ctx, doomed))

	_, err = s.GetCorpusInfo(ctx, doomed.Name)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM corpus_entries WHERE corpus_id = ?", doomed.Id).Scan(&count))
	assert.Zero(t, count)

	entries, err := s.Entries(ctx, kept)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep", "this"}, entries)
}

func TestDefaultEntriesAreTokenizerClean(t *testing.T) {
	tok := NewTokenizer()
	for _, e := range DefaultEntries {
		got := collect(t, tok.NewStream(strings.NewReader(e)))
		assert.Equal(t, []string{e}, got)
	}
}
