package ports

import "context"

// SessionManager ties opaque browser-held tokens to signed-in user ids.
// Tokens are server-side state with an expiry, so logout is an actual
// revocation rather than waiting for a cookie to lapse.
type SessionManager interface {
	// Start issues a new token for the user.
	Start(ctx context.Context, userID int64) (token string, err error)
	// Resolve returns the user id behind a valid, unexpired token.
	// Fails with domain.ErrNotLoggedIn otherwise.
	Resolve(ctx context.Context, token string) (int64, error)
	// End destroys the token. Ending an unknown token is not an error.
	End(ctx context.Context, token string) error
}
