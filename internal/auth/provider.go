package auth

import "context"

// Provider validates API bearer tokens. There are no user accounts: a token
// either grants access to the single tracker or it doesn't.
type Provider interface {
	ValidateTokenLocal(token string) error
	ValidateTokenRemote(ctx context.Context, token string) error
}
