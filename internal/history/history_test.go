package history

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/followsync/pkg/models"
)

func TestLoadMissingFileIsEmptyDocument(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "history.json"))

	doc, err := store.Load()
	require.NoError(t, err)

	assert.Empty(t, doc.Follows)
	assert.Empty(t, doc.Unfollows)
	assert.Empty(t, doc.LastRun)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	// The data directory does not exist yet; Save must create it.
	path := filepath.Join(t.TempDir(), "fsdata", "history.json")
	store := NewStore(path)

	doc := &models.HistoryDocument{}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	Append(doc, []string{"a"}, []string{"c"}, now)

	require.NoError(t, store.Save(doc))

	loaded, err := store.Load()
	require.NoError(t, err)

	require.Len(t, loaded.Follows, 1)
	require.Len(t, loaded.Unfollows, 1)
	assert.Equal(t, "a", loaded.Follows[0].User)
	assert.Equal(t, "c", loaded.Unfollows[0].User)
	assert.Equal(t, now.Format(time.RFC3339), loaded.LastRun)
	// Both records carry the run timestamp.
	assert.Equal(t, loaded.LastRun, loaded.Follows[0].Timestamp)
	assert.Equal(t, loaded.LastRun, loaded.Unfollows[0].Timestamp)
}

func TestAppendTruncatesToNewestThousand(t *testing.T) {
	doc := &models.HistoryDocument{}
	for i := 0; i < 995; i++ {
		doc.Follows = append(doc.Follows, models.ActionRecord{
			User:      fmt.Sprintf("old%d", i),
			Timestamp: "2025-01-01T00:00:00Z",
		})
	}

	var batch []string
	for i := 0; i < 10; i++ {
		batch = append(batch, fmt.Sprintf("new%d", i))
	}
	Append(doc, batch, nil, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, doc.Follows, 1000)
	// The 5 oldest entries were dropped from the front.
	assert.Equal(t, "old5", doc.Follows[0].User)
	assert.Equal(t, "new9", doc.Follows[999].User)
}

func TestAppendSetsLastRunEvenWhenIdle(t *testing.T) {
	doc := &models.HistoryDocument{}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	Append(doc, nil, nil, now)

	assert.Empty(t, doc.Follows)
	assert.Empty(t, doc.Unfollows)
	assert.Equal(t, now.Format(time.RFC3339), doc.LastRun)
}
