// Package service implements the cardplanner Connect services on top of
// storage.Store.
package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/cardplanner/internal/auth"
	"github.com/mmynk/cardplanner/internal/cache"
	"github.com/mmynk/cardplanner/internal/middleware"
	"github.com/mmynk/cardplanner/internal/storage"
	"github.com/mmynk/cardplanner/internal/validation"
)

var errInternal = errors.New("internal error")

// currentUser returns the authenticated user ID set by the auth interceptor.
func currentUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// validateRequest checks msg against its validate tags.
func validateRequest(msg any) error {
	if err := validation.Struct(msg); err != nil {
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return nil
}

// toConnectError maps storage errors onto Connect codes. Unexpected errors
// are logged and replaced so that SQL details never reach the client.
func toConnectError(logger *slog.Logger, op string, err error) error {
	var connectErr *connect.Error
	switch {
	case errors.As(err, &connectErr):
		return connectErr
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeAlreadyExists, err)
	default:
		logger.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, errInternal)
	}
}

// planInvalidator drops a user's cached plans after writes that can change them.
type planInvalidator struct {
	cache  cache.PlanCache
	logger *slog.Logger
}

// invalidate is best effort: a failed invalidation is logged, not returned,
// since the write it follows has already been committed.
func (p planInvalidator) invalidate(ctx context.Context, userID string) {
	if err := p.cache.Invalidate(ctx, userID); err != nil {
		p.logger.Warn("Plan cache invalidation failed", "user_id", userID, "error", err)
	}
}
