package courses

import "context"

// Repo is the course catalog store.
type Repo interface {
	// ListByTier returns up to limit courses of the given tier, best rated
	// first. limit <= 0 means no limit.
	ListByTier(ctx context.Context, tier Tier, limit int) ([]StoredCourse, error)
	Insert(ctx context.Context, course StoredCourse) error
}
