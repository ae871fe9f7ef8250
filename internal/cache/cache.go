// Package cache stores calculated optimal plans between requests.
//
// Entries are grouped by user under a generation counter. Any write that can
// change one of a user's plans bumps the generation, which orphans every
// cached plan of that user at once; orphans expire through their TTL.
// Readers fetch the generation before loading data and store under that
// generation, so a plan computed from data older than a concurrent write is
// written to an already-unreachable key.
package cache

import (
	"context"

	"github.com/mmynk/cardplanner/pkg/api"
)

// PlanCache caches optimal plans per (user, list).
type PlanCache interface {
	// Lookup returns the cached plan, or nil on a miss, together with the
	// user's current generation to pass to Store.
	Lookup(ctx context.Context, userID, listID string) (*api.OptimalPlan, int64, error)

	// Store saves plan under the generation returned by an earlier Lookup.
	Store(ctx context.Context, userID, listID string, generation int64, plan *api.OptimalPlan) error

	// Invalidate drops every cached plan of the user.
	Invalidate(ctx context.Context, userID string) error
}

// Noop is a PlanCache that never hits. It is used when no Redis address is configured.
type Noop struct{}

var _ PlanCache = Noop{}

func (Noop) Lookup(context.Context, string, string) (*api.OptimalPlan, int64, error) {
	return nil, 0, nil
}

func (Noop) Store(context.Context, string, string, int64, *api.OptimalPlan) error { return nil }

func (Noop) Invalidate(context.Context, string) error { return nil }
