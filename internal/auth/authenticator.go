package auth

import (
	"context"

	"github.com/mmynk/cardplanner/internal/models"
)

// Authenticator registers and verifies user accounts.
// The service layer only depends on this interface, so the credential
// scheme can change without touching request handling.
type Authenticator interface {
	// Register creates an account. The credential format depends on the
	// implementation. Returns ErrEmailExists when the email is taken.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the user owning email when credential matches.
	// Any mismatch, including an unknown email, is ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential reports whether credential is acceptable for a new account.
	ValidateCredential(credential string) error
}
