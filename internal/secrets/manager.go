package secrets

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"filippo.io/age"

	kerrors "github.com/PolarWolf314/dotenvage/internal/errors"
)

const (
	// CiphertextPrefix and CiphertextSuffix delimit a wrapped age ciphertext.
	CiphertextPrefix = "ENC[AGE:b64:"
	CiphertextSuffix = "]"
)

// Manager encrypts and decrypts individual values with one age identity.
// It is safe for concurrent use.
type Manager struct {
	identity atomic.Pointer[Identity]
	origin   string
}

// New discovers an identity from the process environment and the current
// directory. See Discover.
func New() (*Manager, error) {
	return Discover(DiscoverOptions{})
}

// Generate creates a manager with a fresh random identity.
func Generate() (*Manager, error) {
	id, err := GenerateIdentity()
	if err != nil {
		return nil, err
	}
	return FromIdentity(id, "generated"), nil
}

// FromIdentity wraps an existing identity. origin describes where the
// identity came from and is shown by diagnostics.
func FromIdentity(id *Identity, origin string) *Manager {
	m := &Manager{origin: origin}
	m.identity.Store(id)
	return m
}

// FromIdentityString parses a bare or age-keygen formatted identity.
func FromIdentityString(data string) (*Manager, error) {
	id, err := ParseIdentity(data)
	if err != nil {
		return nil, err
	}
	return FromIdentity(id, "string"), nil
}

// Origin describes the discovery source, e.g. "env DOTENVAGE_AGE_KEY".
func (m *Manager) Origin() string {
	return m.origin
}

func (m *Manager) current() (*Identity, error) {
	id := m.identity.Load()
	if id == nil {
		return nil, kerrors.ErrManagerClosed
	}
	return id, nil
}

// PublicKey returns the age1... recipient string, or "" after Destroy.
func (m *Manager) PublicKey() string {
	id, err := m.current()
	if err != nil {
		return ""
	}
	return id.Recipient()
}

// Encrypt wraps plaintext as ENC[AGE:b64:...]. Output differs on every call.
func (m *Manager) Encrypt(plaintext string) (string, error) {
	id, err := m.current()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, id.key.Recipient())
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrEncryptFailed, err)
	}
	if _, err := io.WriteString(w, plaintext); err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrEncryptFailed, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrEncryptFailed, err)
	}

	return CiphertextPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()) + CiphertextSuffix, nil
}

// Decrypt unwraps a value produced by Encrypt. Values that are not wrapped
// ciphertexts are returned unchanged; a wrapped value that fails to decrypt
// is an error, never a silent passthrough.
func (m *Manager) Decrypt(value string) (string, error) {
	raw, ok := decodeCiphertext(value)
	if !ok {
		return value, nil
	}

	id, err := m.current()
	if err != nil {
		return "", err
	}

	r, err := age.Decrypt(bytes.NewReader(raw), id.key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrDecryptFailed, err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrDecryptFailed, err)
	}
	if !utf8.Valid(out) {
		return "", fmt.Errorf("%w: plaintext is not valid UTF-8", kerrors.ErrDecryptFailed)
	}
	return string(out), nil
}

// IsEncrypted reports whether value is exactly ENC[AGE:b64:<base64>]. It
// checks shape only and never attempts decryption.
func IsEncrypted(value string) bool {
	_, ok := decodeCiphertext(value)
	return ok
}

// IsEncrypted is the method form of the package-level IsEncrypted.
func (m *Manager) IsEncrypted(value string) bool {
	return IsEncrypted(value)
}

func decodeCiphertext(value string) ([]byte, bool) {
	if len(value) <= len(CiphertextPrefix)+len(CiphertextSuffix) {
		return nil, false
	}
	if !strings.HasPrefix(value, CiphertextPrefix) || !strings.HasSuffix(value, CiphertextSuffix) {
		return nil, false
	}
	payload := value[len(CiphertextPrefix) : len(value)-len(CiphertextSuffix)]
	raw, err := base64.StdEncoding.Strict().DecodeString(payload)
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	return raw, true
}

// SaveKey writes the identity in age-keygen layout. The file is created
// with mode 0600 and missing parent directories with mode 0700.
func (m *Manager) SaveKey(path string) error {
	id, err := m.current()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("%w: creating %s: %v", kerrors.ErrKeySaveFailed, filepath.Dir(path), err)
	}

	content := fmt.Sprintf("# created: %s\n# public key: %s\n%s\n",
		time.Now().UTC().Format(time.RFC3339), id.Recipient(), id.key.String())

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrKeySaveFailed, err)
	}
	defer f.Close()

	// OpenFile keeps the mode of an existing file.
	if err := f.Chmod(0600); err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrKeySaveFailed, err)
	}
	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrKeySaveFailed, err)
	}
	return nil
}

// SaveKeyToDefault writes the identity to the path discovery would read
// and returns that path.
func (m *Manager) SaveKeyToDefault() (string, error) {
	path := KeyPathFromEnvOrDefault(DiscoverOptions{})
	if err := m.SaveKey(path); err != nil {
		return "", err
	}
	return path, nil
}

// Destroy drops the identity. Later operations return ErrManagerClosed.
// The underlying age key is not zeroed in memory; only references to it
// are released.
func (m *Manager) Destroy() {
	m.identity.Store(nil)
}
