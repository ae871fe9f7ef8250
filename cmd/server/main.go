package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/cardplanner/internal/auth"
	"github.com/mmynk/cardplanner/internal/cache"
	"github.com/mmynk/cardplanner/internal/config"
	"github.com/mmynk/cardplanner/internal/httpapi"
	"github.com/mmynk/cardplanner/internal/metrics"
	"github.com/mmynk/cardplanner/internal/middleware"
	"github.com/mmynk/cardplanner/internal/service"
	"github.com/mmynk/cardplanner/internal/storage/sqlite"
	"github.com/mmynk/cardplanner/pkg/api/apiconnect"
	"github.com/mmynk/cardplanner/pkg/logging"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.MustLoad()
	logger := logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	planCache, closeCache, err := newPlanCache(ctx, cfg.Redis, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	m := metrics.New()
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.RPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		limiter.OnReject = m.RateLimited.Inc
		logger.Info("Rate limiting enabled", "rps", cfg.RateLimit.RPS, "burst", cfg.RateLimit.Burst)
	}
	public := interceptors(m, middleware.OptionalAuth(jwtManager), logger, limiter)
	protected := interceptors(m, middleware.RequireAuth(jwtManager), logger, limiter)

	planService := service.NewPlanService(store, planCache, m, logger)

	router := httpapi.NewRouter(logger, jwtManager, planService, m, limiter)

	// Register Connect services
	authPath, authHandler := apiconnect.NewAuthServiceHandler(service.NewAuthService(authenticator, jwtManager, store, logger), public)
	router.Mount(authPath, authHandler)

	storePath, storeHandler := apiconnect.NewStoreServiceHandler(service.NewStoreService(store, planCache, logger), protected)
	router.Mount(storePath, storeHandler)

	purchasePath, purchaseHandler := apiconnect.NewPurchaseServiceHandler(service.NewPurchaseService(store, planCache, logger), protected)
	router.Mount(purchasePath, purchaseHandler)

	pricePath, priceHandler := apiconnect.NewPriceServiceHandler(service.NewPriceService(store, planCache, logger), protected)
	router.Mount(pricePath, priceHandler)

	allocationPath, allocationHandler := apiconnect.NewAllocationServiceHandler(service.NewAllocationService(store, logger), protected)
	router.Mount(allocationPath, allocationHandler)

	planPath, planHandler := apiconnect.NewPlanServiceHandler(planService, protected)
	router.Mount(planPath, planHandler)

	cardPath, cardHandler := apiconnect.NewCardServiceHandler(service.NewCardService(store, logger), protected)
	router.Mount(cardPath, cardHandler)

	router.Handle("/metrics", m.Handler())

	// h2c serves HTTP/2 without TLS for Connect clients.
	srv := &http.Server{
		Addr:              cfg.HTTPServer.Address,
		Handler:           h2c.NewHandler(corsMiddleware(router), &http2.Server{}),
		ReadHeaderTimeout: cfg.HTTPServer.ReadTimeout,
		ReadTimeout:       cfg.HTTPServer.ReadTimeout,
		IdleTimeout:       cfg.HTTPServer.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", srv.Addr, "env", cfg.Env)
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// interceptors orders the Connect interceptors outermost first: metrics see
// every call, including rejected ones, and the logger sees the user ID.
func interceptors(m *metrics.Metrics, authn connect.UnaryInterceptorFunc, logger *slog.Logger, limiter *middleware.RateLimiter) connect.HandlerOption {
	chain := []connect.Interceptor{
		middleware.MetricsInterceptor(m),
		authn,
		middleware.LoggingInterceptor(logger),
	}
	if limiter != nil {
		chain = append(chain, limiter.Interceptor())
	}
	return connect.WithInterceptors(chain...)
}

func newPlanCache(ctx context.Context, cfg config.Redis, logger *slog.Logger) (cache.PlanCache, func(), error) {
	if cfg.Addr == "" {
		logger.Info("Plan cache disabled")
		return cache.Noop{}, func() {}, nil
	}

	planCache, client, err := cache.Connect(ctx, cache.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		TTL:      cfg.PlanTTL,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Plan cache connected", "addr", cfg.Addr, "ttl", cfg.PlanTTL)
	return planCache, func() { client.Close() }, nil
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
