package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/cardplanner/internal/auth"
	"github.com/mmynk/cardplanner/internal/metrics"
	"github.com/mmynk/cardplanner/internal/middleware"
	"github.com/mmynk/cardplanner/internal/models"
	"github.com/mmynk/cardplanner/internal/storage"
	"github.com/mmynk/cardplanner/pkg/api"
)

type MockPlanner struct {
	mock.Mock
}

func (m *MockPlanner) Compute(ctx context.Context, userID, listID string) (*api.OptimalPlan, error) {
	args := m.Called(ctx, userID, listID)
	if res := args.Get(0); res != nil {
		return res.(*api.OptimalPlan), args.Error(1)
	}
	return nil, args.Error(1)
}

func strPtr(s string) *string { return &s }
func numPtr(f float64) *float64 { return &f }

func TestPlanHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.Generate(&models.User{ID: "user-1", Email: "user@example.com"})
	require.NoError(t, err)

	plan := &api.OptimalPlan{
		TotalPrice: 3,
		Items: []api.PlanItem{
			{
				ItemID:          "item-1",
				CardName:        "Lightning Bolt",
				Quantity:        2,
				SelectedStore:   strPtr("A"),
				SelectedStoreID: strPtr("store-a"),
				UnitPrice:       numPtr(1.5),
				Subtotal:        numPtr(3),
				Status:          "available",
			},
			{
				ItemID:   "item-2",
				CardName: "Black Lotus",
				Quantity: 1,
				Status:   "out_of_stock",
			},
		},
		StoreSummary: map[string]float64{"A": 3},
	}

	tests := []struct {
		name           string
		listID         string
		authorization  string
		setupMock      func(*MockPlanner)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:          "plan",
			listID:        "list-1",
			authorization: "Bearer " + token,
			setupMock: func(m *MockPlanner) {
				m.On("Compute", mock.Anything, "user-1", "list-1").Return(plan, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{
				"totalPrice": 3,
				"items": [
					{"itemId": "item-1", "cardName": "Lightning Bolt", "quantity": 2, "selectedStore": "A",
					 "selectedStoreId": "store-a", "unitPrice": 1.5, "subtotal": 3, "status": "available"},
					{"itemId": "item-2", "cardName": "Black Lotus", "quantity": 1, "selectedStore": null,
					 "selectedStoreId": null, "unitPrice": null, "subtotal": null, "status": "out_of_stock"}
				],
				"storeSummary": {"A": 3}
			}`,
		},
		{
			name:          "list not found",
			listID:        "missing",
			authorization: "Bearer " + token,
			setupMock: func(m *MockPlanner) {
				m.On("Compute", mock.Anything, "user-1", "missing").
					Return(nil, fmt.Errorf("purchase list %s: %w", "missing", storage.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"purchase list not found"}`,
		},
		{
			name:          "storage failure",
			listID:        "list-1",
			authorization: "Bearer " + token,
			setupMock: func(m *MockPlanner) {
				m.On("Compute", mock.Anything, "user-1", "list-1").Return(nil, errors.New("disk I/O error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not calculate optimal plan"}`,
		},
		{
			name:           "missing token",
			listID:         "list-1",
			setupMock:      func(_ *MockPlanner) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"authorization token required"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planner := new(MockPlanner)
			tt.setupMock(planner)
			router := NewRouter(logger, jwtManager, planner, nil, nil)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/purchases/"+tt.listID+"/optimal-plan", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

			planner.AssertExpectations(t)
		})
	}
}

func TestPlanRouteIsCountedAndRateLimited(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.Generate(&models.User{ID: "user-1", Email: "user@example.com"})
	require.NoError(t, err)

	planner := new(MockPlanner)
	planner.On("Compute", mock.Anything, "user-1", "list-1").
		Return(&api.OptimalPlan{Items: []api.PlanItem{}, StoreSummary: map[string]float64{}}, nil).Once()

	m := metrics.New()
	limiter := middleware.NewRateLimiter(0.001, 1)
	limiter.OnReject = m.RateLimited.Inc
	router := NewRouter(logger, jwtManager, planner, m, limiter)

	get := func(authorization string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/purchases/list-1/optimal-plan", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, get("Bearer "+token).Code)

	w := get("Bearer " + token)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"status":"Error","error":"too many requests"}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, get("").Code)

	const route = "GET /api/v1/purchases/{listId}/optimal-plan"
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues(route, "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues(route, "429")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues(route, "401")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimited))
	planner.AssertExpectations(t)
}

func TestHealth(t *testing.T) {
	router := NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), auth.NewJWTManager("s", time.Hour), new(MockPlanner), nil, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
