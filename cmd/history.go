package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/followsync/internal/config"
	"github.com/followsync/internal/history"
	"github.com/followsync/pkg/models"
)

// HistoryCommand returns the history command
func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recent follow/unfollow actions",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "How many records to show per list",
				Value:   20,
			},
		},
		Action: runHistory,
	}
}

func runHistory(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store := history.NewStore(cfg.HistoryPath())
	doc, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if doc.LastRun == "" {
		fmt.Println("No sync has been recorded yet")
		return nil
	}

	fmt.Printf("Last run: %s\n", doc.LastRun)
	limit := c.Int("limit")
	printRecords("Follows", doc.Follows, limit)
	printRecords("Unfollows", doc.Unfollows, limit)
	return nil
}

func printRecords(title string, records []models.ActionRecord, limit int) {
	fmt.Printf("\n%s (%d total):\n", title, len(records))
	if len(records) == 0 {
		fmt.Println("  (none)")
		return
	}

	// Newest last in storage, show newest first.
	shown := 0
	for i := len(records) - 1; i >= 0 && shown < limit; i-- {
		fmt.Printf("  %s  %s\n", records[i].Timestamp, records[i].User)
		shown++
	}
	if len(records) > limit {
		fmt.Printf("  ... and %d more\n", len(records)-limit)
	}
}
