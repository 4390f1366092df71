package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/followsync/pkg/models"
)

// maxListed caps how many logins a section enumerates before collapsing the
// rest into an overflow line, so chat messages stay short.
const maxListed = 10

// Format renders the Telegram report for one sync run. The markup is the
// HTML subset Telegram's sendMessage accepts.
func Format(followed, unfollowed []string, stats models.SyncStats, now time.Time) string {
	var b strings.Builder

	b.WriteString("<b>GitHub Follower Sync Report</b>\n")
	fmt.Fprintf(&b, "%s\n\n", now.Format("2006-01-02 15:04:05"))

	b.WriteString("<b>Stats:</b>\n")
	fmt.Fprintf(&b, "  - Followers: %d\n", stats.Followers)
	fmt.Fprintf(&b, "  - Following: %d\n\n", stats.Following)

	writeSection(&b, "Followed Back", followed)
	writeSection(&b, "Unfollowed", unfollowed)

	if len(followed) == 0 && len(unfollowed) == 0 {
		b.WriteString("No changes needed - everything is in sync!")
	}

	return b.String()
}

func writeSection(b *strings.Builder, title string, users []string) {
	if len(users) == 0 {
		return
	}

	fmt.Fprintf(b, "<b>%s (%d):</b>\n", title, len(users))
	for i, user := range users {
		if i == maxListed {
			fmt.Fprintf(b, "  ... and %d more\n", len(users)-maxListed)
			break
		}
		fmt.Fprintf(b, "  - @%s\n", user)
	}
	b.WriteString("\n")
}
