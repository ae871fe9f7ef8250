package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/cardplanner/internal/auth"
	"github.com/mmynk/cardplanner/internal/metrics"
	"github.com/mmynk/cardplanner/internal/middleware"
	"github.com/mmynk/cardplanner/internal/storage/sqlite"
	"github.com/mmynk/cardplanner/pkg/api"
	"github.com/mmynk/cardplanner/pkg/api/apiconnect"
)

// memCache is an in-memory PlanCache that counts hits and invalidations.
type memCache struct {
	mu            sync.Mutex
	plans         map[string]map[string]*api.OptimalPlan
	generations   map[string]int64
	hits          int
	invalidations int
}

func newMemCache() *memCache {
	return &memCache{
		plans:       map[string]map[string]*api.OptimalPlan{},
		generations: map[string]int64{},
	}
}

func (c *memCache) Lookup(_ context.Context, userID, listID string) (*api.OptimalPlan, int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	plan := c.plans[userID][listID]
	if plan != nil {
		c.hits++
	}
	return plan, c.generations[userID], nil
}

func (c *memCache) Store(_ context.Context, userID, listID string, generation int64, plan *api.OptimalPlan) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generations[userID] {
		return nil
	}
	if c.plans[userID] == nil {
		c.plans[userID] = map[string]*api.OptimalPlan{}
	}
	c.plans[userID][listID] = plan
	return nil
}

func (c *memCache) Invalidate(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[userID]++
	delete(c.plans, userID)
	c.invalidations++
	return nil
}

func (c *memCache) counts() (hits, invalidations int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.invalidations
}

type testEnv struct {
	store   *sqlite.SQLiteStore
	cache   *memCache
	metrics *metrics.Metrics
	plans   *PlanService
	url     string
	anon    apiconnect.AuthServiceClient
}

// setupTestServer serves every service over httptest against a temp-file
// SQLite database, with real JWT authentication.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	planCache := newMemCache()
	m := metrics.New()

	requireAuth := connect.WithInterceptors(middleware.RequireAuth(jwtManager))

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(
		NewAuthService(authenticator, jwtManager, store, logger),
		connect.WithInterceptors(middleware.OptionalAuth(jwtManager)),
	))
	mux.Handle(apiconnect.NewStoreServiceHandler(NewStoreService(store, planCache, logger), requireAuth))
	mux.Handle(apiconnect.NewPurchaseServiceHandler(NewPurchaseService(store, planCache, logger), requireAuth))
	mux.Handle(apiconnect.NewPriceServiceHandler(NewPriceService(store, planCache, logger), requireAuth))
	mux.Handle(apiconnect.NewAllocationServiceHandler(NewAllocationService(store, logger), requireAuth))
	planService := NewPlanService(store, planCache, m, logger)
	mux.Handle(apiconnect.NewPlanServiceHandler(planService, requireAuth))
	mux.Handle(apiconnect.NewCardServiceHandler(NewCardService(store, logger), requireAuth))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{
		store:   store,
		cache:   planCache,
		metrics: m,
		plans:   planService,
		url:     server.URL,
		anon:    apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
	}
}

// userClients are clients that send one user's bearer token.
type userClients struct {
	userID      string
	auth        apiconnect.AuthServiceClient
	stores      apiconnect.StoreServiceClient
	purchases   apiconnect.PurchaseServiceClient
	prices      apiconnect.PriceServiceClient
	allocations apiconnect.AllocationServiceClient
	plans       apiconnect.PlanServiceClient
	cards       apiconnect.CardServiceClient
}

func bearer(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set("Authorization", "Bearer "+token)
			return next(ctx, req)
		}
	}
}

func (e *testEnv) clients(token string) *userClients {
	opt := connect.WithInterceptors(bearer(token))
	return &userClients{
		auth:        apiconnect.NewAuthServiceClient(http.DefaultClient, e.url, opt),
		stores:      apiconnect.NewStoreServiceClient(http.DefaultClient, e.url, opt),
		purchases:   apiconnect.NewPurchaseServiceClient(http.DefaultClient, e.url, opt),
		prices:      apiconnect.NewPriceServiceClient(http.DefaultClient, e.url, opt),
		allocations: apiconnect.NewAllocationServiceClient(http.DefaultClient, e.url, opt),
		plans:       apiconnect.NewPlanServiceClient(http.DefaultClient, e.url, opt),
		cards:       apiconnect.NewCardServiceClient(http.DefaultClient, e.url, opt),
	}
}

// register creates an account and returns clients authenticated as it.
func (e *testEnv) register(t *testing.T, email string) *userClients {
	t.Helper()
	resp, err := e.anon.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       email,
		DisplayName: email,
		Password:    "password123",
	}))
	require.NoError(t, err)

	c := e.clients(resp.Msg.Token)
	c.userID = resp.Msg.User.ID
	return c
}

func assertCode(t *testing.T, want connect.Code, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, connect.CodeOf(err), "error: %v", err)
}

// Fixture helpers. Each fails the test on error.

func (c *userClients) createStore(t *testing.T, name string) *api.Store {
	t.Helper()
	resp, err := c.stores.CreateStore(context.Background(), connect.NewRequest(&api.CreateStoreRequest{
		Name:  name,
		Color: "#aabbcc",
	}))
	require.NoError(t, err)
	return resp.Msg.Store
}

func (c *userClients) createList(t *testing.T, name string) *api.PurchaseList {
	t.Helper()
	resp, err := c.purchases.CreatePurchaseList(context.Background(), connect.NewRequest(&api.CreatePurchaseListRequest{Name: name}))
	require.NoError(t, err)
	return resp.Msg.List
}

func (c *userClients) customCard(t *testing.T, name string) *api.CustomCard {
	t.Helper()
	resp, err := c.cards.CreateCustomCard(context.Background(), connect.NewRequest(&api.CreateCustomCardRequest{Name: name}))
	require.NoError(t, err)
	return resp.Msg.Card
}

func (c *userClients) addItem(t *testing.T, listID, customCardID string, quantity int) *api.PurchaseItem {
	t.Helper()
	resp, err := c.purchases.AddItem(context.Background(), connect.NewRequest(&api.AddItemRequest{
		ListID:       listID,
		CustomCardID: customCardID,
		Quantity:     quantity,
	}))
	require.NoError(t, err)
	return resp.Msg.Item
}

func (c *userClients) setPrice(t *testing.T, itemID, storeID string, price *float64) {
	t.Helper()
	_, err := c.prices.SetPrice(context.Background(), connect.NewRequest(&api.SetPriceRequest{
		ItemID:  itemID,
		StoreID: storeID,
		Price:   price,
	}))
	require.NoError(t, err)
}

func ptr[T any](v T) *T { return &v }
