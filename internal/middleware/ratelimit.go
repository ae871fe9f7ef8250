package middleware

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/render"
	"golang.org/x/time/rate"
)

var ErrRateLimited = errors.New("too many requests")

// idleLimiterTTL is how long an unused limiter is kept before it is dropped.
const idleLimiterTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per caller. Authenticated calls
// are keyed by user ID, anonymous ones by peer address.
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time

	// OnReject is called for every rejected call, if set.
	OnReject func()
}

// NewRateLimiter allows rps calls per second per caller with the given burst.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limit:     rate.Limit(rps),
		burst:     burst,
		visitors:  make(map[string]*visitor),
		lastSweep: time.Now(),
	}
}

// Allow reports whether key may make another call now.
func (l *RateLimiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	if now.Sub(l.lastSweep) > idleLimiterTTL {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > idleLimiterTTL {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	l.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}

// Interceptor rejects calls over the caller's budget with ResourceExhausted.
// It must run after the auth interceptor to see the user ID.
func (l *RateLimiter) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			key := GetUserID(ctx)
			if key == "" {
				key = "peer:" + req.Peer().Addr
			}
			if !l.Allow(key) {
				if l.OnReject != nil {
					l.OnReject()
				}
				return nil, connect.NewError(connect.CodeResourceExhausted, ErrRateLimited)
			}
			return next(ctx, req)
		}
	}
}

// Middleware is the chi counterpart of Interceptor for REST routes. Rejected
// requests get 429. It must run after RequireAuthHTTP to see the user ID.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := GetUserID(r.Context())
		if key == "" {
			key = "peer:" + r.RemoteAddr
		}
		if !l.Allow(key) {
			if l.OnReject != nil {
				l.OnReject()
			}
			render.Status(r, http.StatusTooManyRequests)
			render.JSON(w, r, errorResponse{Status: "Error", Error: ErrRateLimited.Error()})
			return
		}
		next.ServeHTTP(w, r)
	})
}
