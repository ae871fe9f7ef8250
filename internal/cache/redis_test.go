package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/cardplanner/pkg/api"
)

// fakeRedis keeps values in memory and answers with real go-redis command results.
type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	default:
		f.data[key] = fmt.Sprint(v)
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Incr(ctx context.Context, key string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, _ := strconv.ParseInt(f.data[key], 10, 64)
	n++
	f.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func samplePlan() *api.OptimalPlan {
	store, id, unit, sub := "A", "s1", 2.5, 5.0
	return &api.OptimalPlan{
		TotalPrice: 5,
		Items: []api.PlanItem{{
			ItemID: "i1", CardName: "Bolt", Quantity: 2,
			SelectedStore: &store, SelectedStoreID: &id, UnitPrice: &unit, Subtotal: &sub,
			Status: "available",
		}},
		StoreSummary: map[string]float64{"A": 5},
	}
}

func TestRedisLookupAndStore(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	c := NewRedis(fake, time.Minute)

	plan, gen, err := c.Lookup(ctx, "u1", "l1")
	require.NoError(t, err)
	assert.Nil(t, plan)
	assert.Equal(t, int64(0), gen)

	require.NoError(t, c.Store(ctx, "u1", "l1", gen, samplePlan()))
	assert.Equal(t, time.Minute, fake.ttls[planKey("u1", 0, "l1")])

	plan, _, err = c.Lookup(ctx, "u1", "l1")
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Equal(t, samplePlan(), plan)
}

func TestRedisInvalidateOrphansPlans(t *testing.T) {
	ctx := context.Background()
	c := NewRedis(newFakeRedis(), time.Minute)

	require.NoError(t, c.Store(ctx, "u1", "l1", 0, samplePlan()))
	require.NoError(t, c.Store(ctx, "u2", "l2", 0, samplePlan()))

	require.NoError(t, c.Invalidate(ctx, "u1"))

	plan, gen, err := c.Lookup(ctx, "u1", "l1")
	require.NoError(t, err)
	assert.Nil(t, plan)
	assert.Equal(t, int64(1), gen)

	// Other users keep their entries.
	plan, _, err = c.Lookup(ctx, "u2", "l2")
	require.NoError(t, err)
	assert.NotNil(t, plan)
}

func TestRedisStoreUnderStaleGeneration(t *testing.T) {
	ctx := context.Background()
	c := NewRedis(newFakeRedis(), time.Minute)

	_, gen, err := c.Lookup(ctx, "u1", "l1")
	require.NoError(t, err)

	// A write lands between the read and the store.
	require.NoError(t, c.Invalidate(ctx, "u1"))
	require.NoError(t, c.Store(ctx, "u1", "l1", gen, samplePlan()))

	plan, _, err := c.Lookup(ctx, "u1", "l1")
	require.NoError(t, err)
	assert.Nil(t, plan)
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c PlanCache = Noop{}
	require.NoError(t, c.Store(ctx, "u", "l", 0, samplePlan()))
	plan, _, err := c.Lookup(ctx, "u", "l")
	require.NoError(t, err)
	assert.Nil(t, plan)
	assert.NoError(t, c.Invalidate(ctx, "u"))
}
