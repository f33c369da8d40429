package storage

import "context"

// IdentityStorage keeps the visitor cookie issued by each server.
type IdentityStorage interface {
	// SaveIdentity stores the identity for serverURL, replacing any previous one
	SaveIdentity(ctx context.Context, serverURL string, identity *Identity) error

	// GetIdentity returns the identity for serverURL
	// Returns ErrIdentityNotFound if the server never issued one
	GetIdentity(ctx context.Context, serverURL string) (*Identity, error)
}

// Identity is an opaque visitor cookie as issued by the server.
type Identity struct {
	CookieName string `json:"cookie_name"`
	Token      string `json:"token"`
	ExpiresAt  int64  `json:"expires_at"` // unix seconds, 0 if unknown
}
