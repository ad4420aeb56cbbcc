package workflows

import (
	"context"

	"github.com/PolarWolf314/dotenvage/internal/secrets"
)

// PublicKeyOptions configures the pubkey workflow.
type PublicKeyOptions struct {
	// Dir is scanned for AGE_KEY_NAME during key discovery.
	Dir string
}

// PublicKeyResult contains the discovered identity's recipient.
type PublicKeyResult struct {
	PublicKey string
	// Origin describes where the identity came from, e.g. "env AGE_KEY".
	Origin string
}

// PublicKey discovers the active identity and returns its recipient string.
//
// Returns ErrKeyNotFound if no identity is available.
func PublicKey(ctx context.Context, opts PublicKeyOptions) (*PublicKeyResult, error) {
	manager, err := secrets.Discover(secrets.DiscoverOptions{Dir: opts.Dir})
	if err != nil {
		return nil, err
	}
	defer manager.Destroy()

	return &PublicKeyResult{
		PublicKey: manager.PublicKey(),
		Origin:    manager.Origin(),
	}, nil
}
