package providers

import "context"

// Directory is the remote social-graph surface the reconciliation engine acts
// on. List methods fetch every page; when pagination aborts early they return
// the partial list accumulated so far together with a non-nil error, and the
// partial list is still usable.
type Directory interface {
	ListFollowers(ctx context.Context) ([]string, error)
	ListFollowing(ctx context.Context) ([]string, error)

	// Follow and Unfollow report whether the remote accepted the change.
	// Failures are already logged by the implementation and are never retried.
	Follow(ctx context.Context, login string) bool
	Unfollow(ctx context.Context, login string) bool
}
