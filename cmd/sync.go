package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/followsync/internal/config"
	"github.com/followsync/internal/history"
	"github.com/followsync/internal/logging"
	"github.com/followsync/internal/notify"
	"github.com/followsync/internal/policy"
	"github.com/followsync/internal/providers/github"
	"github.com/followsync/internal/reconcile"
	"github.com/followsync/internal/report"
	"github.com/followsync/pkg/models"
)

// SyncCommand returns the sync command
func SyncCommand() *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Fetch followers/following and converge toward mutual-follow parity",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"d"},
				Usage:   "Compute the action plan without executing it",
			},
		},
		Action: runSync,
	}
}

func runSync(c *cli.Context) error {
	// Load configuration
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Validate configuration. A missing token aborts here, before any network
	// call is made.
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NewRunLogger()
	log := logger.Logger

	log.Info().Str("user", cfg.GitHub.Username).Msg("starting follower sync")

	// Load whitelist and blacklist
	allowlist, err := policy.Load(cfg.WhitelistPath())
	if err != nil {
		return fmt.Errorf("failed to load whitelist: %w", err)
	}
	blocklist, err := policy.Load(cfg.BlacklistPath())
	if err != nil {
		return fmt.Errorf("failed to load blacklist: %w", err)
	}
	log.Info().Int("whitelist", len(allowlist)).Int("blacklist", len(blocklist)).Msg("policy lists loaded")

	dir := github.New(github.Config{
		Token:    cfg.GitHub.Token,
		Username: cfg.GitHub.Username,
	}, log)

	ctx := context.Background()

	// Get current followers and following. Partial lists are usable; the
	// client already logged what went wrong.
	followers, err := dir.ListFollowers(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("followers list is partial")
	}
	log.Info().Int("count", len(followers)).Msg("fetched followers")

	following, err := dir.ListFollowing(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("following list is partial")
	}
	log.Info().Int("count", len(following)).Msg("fetched following")

	toFollow, toUnfollow := reconcile.Plan(followers, following, allowlist, blocklist)
	log.Info().Int("to_follow", len(toFollow)).Int("to_unfollow", len(toUnfollow)).Msg("computed action plan")

	if c.Bool("dry-run") {
		printPlan(toFollow, toUnfollow)
		return nil
	}

	engine := reconcile.New(dir, reconcile.Config{
		MaxActionsPerRun: cfg.Safety.MaxActionsPerRun,
		DelayMinSeconds:  cfg.Safety.DelayMinSeconds,
		DelayMaxSeconds:  cfg.Safety.DelayMaxSeconds,
	}, log)

	followed, unfollowed := engine.Execute(ctx, toFollow, toUnfollow)

	// Update history
	store := history.NewStore(cfg.HistoryPath())
	doc, err := store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("could not load history, starting fresh")
		doc = &models.HistoryDocument{}
	}
	now := time.Now()
	history.Append(doc, followed, unfollowed, now)
	if err := store.Save(doc); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}

	// Report with stats adjusted for the actions we just took; our own
	// follower count is unaffected by them.
	stats := models.SyncStats{
		Followers: len(followers),
		Following: len(following) + len(followed) - len(unfollowed),
	}

	// A no-change run stays silent toward the notification channel.
	if len(followed) > 0 || len(unfollowed) > 0 {
		notifier := notify.New(notify.TelegramConfig{
			BotToken: cfg.Telegram.BotToken,
			ChatID:   cfg.Telegram.ChatID,
		}, log)
		message := report.Format(followed, unfollowed, stats, now)
		if err := notifier.Send(ctx, message); err != nil {
			log.Warn().Err(err).Msg("notification not delivered")
		}
	}

	log.Info().
		Int("followed", len(followed)).
		Int("unfollowed", len(unfollowed)).
		Dur("elapsed", logger.Elapsed()).
		Msg("sync complete")

	return nil
}

func printPlan(toFollow, toUnfollow []string) {
	fmt.Println("Dry run - no actions executed")
	fmt.Printf("\nWould follow (%d):\n", len(toFollow))
	for _, user := range toFollow {
		fmt.Printf("  - %s\n", user)
	}
	fmt.Printf("\nWould unfollow (%d):\n", len(toUnfollow))
	for _, user := range toUnfollow {
		fmt.Printf("  - %s\n", user)
	}
}
