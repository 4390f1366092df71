package reconcile

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/followsync/internal/providers"
)

// Config holds the safety settings for one run.
type Config struct {
	// MaxActionsPerRun is a single budget shared by follows and unfollows.
	MaxActionsPerRun int
	// DelayMinSeconds and DelayMaxSeconds bound the random pause taken before
	// every action, including the first one.
	DelayMinSeconds float64
	DelayMaxSeconds float64
}

// Engine executes a computed action plan against a Directory, pacing and
// capping the mutations.
type Engine struct {
	dir   providers.Directory
	cfg   Config
	log   zerolog.Logger
	sleep func(time.Duration)
	rng   *rand.Rand
}

// New creates an engine with real pacing.
func New(dir providers.Directory, cfg Config, log zerolog.Logger) *Engine {
	return &Engine{
		dir:   dir,
		cfg:   cfg,
		log:   log,
		sleep: time.Sleep,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Plan computes the action candidates from the fetched relation lists.
// toFollow keeps the followers fetch order and skips accounts already followed
// or deny-listed; toUnfollow keeps the following fetch order and skips
// accounts that still follow back or are allow-listed. All membership tests
// are case-insensitive; original casing is preserved for the API calls.
//
// The two policy filters are independent: a login present in both lists is
// simply excluded from both directions.
func Plan(followers, following []string, allowlist, blocklist map[string]struct{}) (toFollow, toUnfollow []string) {
	followerSet := canonSet(followers)
	followingSet := canonSet(following)

	for _, user := range followers {
		lower := strings.ToLower(user)
		if _, ok := followingSet[lower]; ok {
			continue
		}
		if _, ok := blocklist[lower]; ok {
			continue
		}
		toFollow = append(toFollow, user)
	}

	for _, user := range following {
		lower := strings.ToLower(user)
		if _, ok := followerSet[lower]; ok {
			continue
		}
		if _, ok := allowlist[lower]; ok {
			continue
		}
		toUnfollow = append(toUnfollow, user)
	}

	return toFollow, toUnfollow
}

func canonSet(users []string) map[string]struct{} {
	set := make(map[string]struct{}, len(users))
	for _, user := range users {
		set[strings.ToLower(user)] = struct{}{}
	}
	return set
}

// Execute runs the follow phase first, then the unfollow phase, both drawing
// from the one shared action budget. Exhausting the budget on follows means
// zero unfollows that run; this throttle ordering is deliberate. A failed
// attempt consumes budget like a successful one and is never retried. The
// returned lists hold the realized successes in attempt order.
func (e *Engine) Execute(ctx context.Context, toFollow, toUnfollow []string) (followed, unfollowed []string) {
	actions := 0

	for _, user := range toFollow {
		if actions >= e.cfg.MaxActionsPerRun {
			e.log.Warn().Int("limit", e.cfg.MaxActionsPerRun).Msg("reached max actions limit")
			break
		}
		e.pause()
		actions++
		if e.dir.Follow(ctx, user) {
			e.log.Info().Str("user", user).Msg("followed")
			followed = append(followed, user)
		} else {
			e.log.Warn().Str("user", user).Msg("failed to follow")
		}
	}

	for _, user := range toUnfollow {
		if actions >= e.cfg.MaxActionsPerRun {
			e.log.Warn().Int("limit", e.cfg.MaxActionsPerRun).Msg("reached max actions limit")
			break
		}
		e.pause()
		actions++
		if e.dir.Unfollow(ctx, user) {
			e.log.Info().Str("user", user).Msg("unfollowed")
			unfollowed = append(unfollowed, user)
		} else {
			e.log.Warn().Str("user", user).Msg("failed to unfollow")
		}
	}

	return followed, unfollowed
}

// pause sleeps a uniform random duration in [DelayMin, DelayMax] seconds so
// the run never presents a burst pattern to the remote side.
func (e *Engine) pause() {
	span := e.cfg.DelayMaxSeconds - e.cfg.DelayMinSeconds
	delay := e.cfg.DelayMinSeconds + e.rng.Float64()*span
	e.sleep(time.Duration(delay * float64(time.Second)))
}
