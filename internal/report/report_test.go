package report

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/followsync/pkg/models"
)

var testTime = time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

func TestFormatOverflowsLongLists(t *testing.T) {
	var followed []string
	for i := 1; i <= 12; i++ {
		followed = append(followed, fmt.Sprintf("user%d", i))
	}

	msg := Format(followed, nil, models.SyncStats{Followers: 50, Following: 62}, testTime)

	assert.Contains(t, msg, "Followed Back (12):")
	for i := 1; i <= 10; i++ {
		assert.Contains(t, msg, fmt.Sprintf("@user%d\n", i))
	}
	assert.NotContains(t, msg, "@user11")
	assert.Contains(t, msg, "... and 2 more")
	// Empty sections are omitted entirely.
	assert.NotContains(t, msg, "Unfollowed")
}

func TestFormatNoChanges(t *testing.T) {
	msg := Format(nil, nil, models.SyncStats{Followers: 5, Following: 5}, testTime)

	assert.Contains(t, msg, "No changes needed")
	assert.NotContains(t, msg, "Followed Back")
	assert.NotContains(t, msg, "Unfollowed")
}

func TestFormatHeaderAndStats(t *testing.T) {
	msg := Format([]string{"a"}, []string{"c"}, models.SyncStats{Followers: 2, Following: 2}, testTime)

	assert.True(t, strings.HasPrefix(msg, "<b>GitHub Follower Sync Report</b>\n"))
	assert.Contains(t, msg, "2025-06-01 12:30:00")
	assert.Contains(t, msg, "Followers: 2")
	assert.Contains(t, msg, "Following: 2")
	assert.Contains(t, msg, "Followed Back (1):")
	assert.Contains(t, msg, "Unfollowed (1):")
	assert.Contains(t, msg, "@a")
	assert.Contains(t, msg, "@c")
}
