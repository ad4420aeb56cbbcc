package secrets

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"filippo.io/age"

	kerrors "github.com/PolarWolf314/dotenvage/internal/errors"
)

const redacted = "age identity [REDACTED]"

// Identity is an age X25519 private key. It never renders its secret part
// through fmt, so it is safe to pass to loggers and error messages.
type Identity struct {
	key *age.X25519Identity
}

// GenerateIdentity creates a fresh random identity.
func GenerateIdentity() (*Identity, error) {
	key, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("generating identity: %w", err)
	}
	return &Identity{key: key}, nil
}

// ParseIdentity parses an identity from a bare AGE-SECRET-KEY-1... string
// or from age-keygen output with comment lines.
func ParseIdentity(data string) (*Identity, error) {
	trimmed := strings.TrimSpace(data)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty identity", kerrors.ErrInvalidIdentity)
	}

	if !strings.Contains(trimmed, "\n") {
		key, err := age.ParseX25519Identity(trimmed)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidIdentity, err)
		}
		return &Identity{key: key}, nil
	}

	return parseIdentityBytes([]byte(trimmed))
}

func parseIdentityBytes(data []byte) (*Identity, error) {
	identities, err := age.ParseIdentities(bufio.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidIdentity, err)
	}
	for _, id := range identities {
		if key, ok := id.(*age.X25519Identity); ok {
			return &Identity{key: key}, nil
		}
	}
	return nil, fmt.Errorf("%w: no X25519 identity found", kerrors.ErrInvalidIdentity)
}

// Recipient returns the public age1... recipient string.
func (i *Identity) Recipient() string {
	return i.key.Recipient().String()
}

func (i *Identity) String() string   { return redacted }
func (i *Identity) GoString() string { return redacted }

// Format keeps %v, %+v, %#v and %s redacted.
func (i *Identity) Format(f fmt.State, _ rune) {
	_, _ = f.Write([]byte(redacted))
}
