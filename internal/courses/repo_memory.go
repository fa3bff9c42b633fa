package courses

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory catalog used in dev mode and tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	courses []StoredCourse
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) ListByTier(ctx context.Context, tier Tier, limit int) ([]StoredCourse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []StoredCourse
	for _, course := range r.courses {
		if course.Tier == tier {
			out = append(out, course)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := ratingOrZero(out[i].Rating), ratingOrZero(out[j].Rating)
		if ri != rj {
			return ri > rj
		}
		return out[i].Title < out[j].Title
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) Insert(ctx context.Context, course StoredCourse) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now().UTC()
	}
	r.courses = append(r.courses, course)
	return nil
}

func ratingOrZero(rating *float64) float64 {
	if rating == nil {
		return 0
	}
	return *rating
}
