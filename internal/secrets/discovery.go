package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/dotenvage/internal/configs"
	"github.com/PolarWolf314/dotenvage/internal/envfile"
	kerrors "github.com/PolarWolf314/dotenvage/internal/errors"
)

// IdentityEnvVars hold an identity string directly, in priority order.
var IdentityEnvVars = []string{"DOTENVAGE_AGE_KEY", "AGE_KEY", "EKG_AGE_KEY"}

// KeyNameEnvVar names a logical key, resolved to a key file.
const KeyNameEnvVar = "AGE_KEY_NAME"

// keyNameFiles are scanned, in order, for a key name when the environment
// does not provide one.
var keyNameFiles = []string{".env.local", ".env"}

// DiscoverOptions controls where Discover looks. The zero value uses the
// process environment, the current directory and the user config file.
type DiscoverOptions struct {
	// Lookup reads environment variables. Nil means os.LookupEnv.
	Lookup configs.Lookup
	// Dir is scanned for AGE_KEY_NAME in .env.local and .env. Empty means ".".
	Dir string
	// Config supplies key name to path overrides. Nil loads config.toml.
	Config *configs.UserConfig
}

func (o DiscoverOptions) lookup() configs.Lookup {
	if o.Lookup != nil {
		return o.Lookup
	}
	return os.LookupEnv
}

func (o DiscoverOptions) dir() string {
	if o.Dir != "" {
		return o.Dir
	}
	return "."
}

func (o DiscoverOptions) config() *configs.UserConfig {
	if o.Config != nil {
		return o.Config
	}
	config, err := configs.LoadUserConfig()
	if err != nil {
		return nil
	}
	return config
}

// Discover finds an identity by trying, in order: DOTENVAGE_AGE_KEY, AGE_KEY,
// EKG_AGE_KEY, the key file named by AGE_KEY_NAME, and the default key file.
// Empty variables and missing key files are skipped. A present but malformed
// identity is an error.
func Discover(opts DiscoverOptions) (*Manager, error) {
	lookup := opts.lookup()

	for _, name := range IdentityEnvVars {
		value, ok := lookup(name)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		id, err := ParseIdentity(value)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		return FromIdentity(id, "env "+name), nil
	}

	var tried []string

	if keyName, ok := KeyName(opts); ok {
		path := keyPathForName(opts, keyName)
		m, err := loadKeyFile(path)
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		tried = append(tried, path)
	}

	path := configs.DefaultKeyPath(lookup)
	m, err := loadKeyFile(path)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	tried = append(tried, path)

	return nil, fmt.Errorf("%w: set %s or create a key file (tried %s)",
		kerrors.ErrKeyNotFound, strings.Join(IdentityEnvVars, ", "), strings.Join(tried, ", "))
}

// KeyName returns the logical key name from AGE_KEY_NAME, or from the first
// AGE_KEY_NAME / *_AGE_KEY_NAME entry of .env.local then .env in Dir.
// Blank names are ignored.
func KeyName(opts DiscoverOptions) (string, bool) {
	if value, ok := opts.lookup()(KeyNameEnvVar); ok {
		if name := strings.TrimSpace(value); name != "" {
			return name, true
		}
		return "", false
	}

	for _, file := range keyNameFiles {
		parsed, err := envfile.ReadFile(filepath.Join(opts.dir(), file))
		if err != nil {
			continue
		}
		for _, entry := range parsed.Entries {
			if !IsKeyNameVar(entry.Name) {
				continue
			}
			if name := strings.TrimSpace(entry.Value); name != "" {
				return name, true
			}
		}
	}
	return "", false
}

// IsKeyNameVar reports whether name is AGE_KEY_NAME or ends in _AGE_KEY_NAME.
func IsKeyNameVar(name string) bool {
	return name == KeyNameEnvVar || strings.HasSuffix(name, "_"+KeyNameEnvVar)
}

// IsKeyMaterialVar reports whether name carries an identity or names one.
// Such variables are never exported by dump.
func IsKeyMaterialVar(name string) bool {
	for _, v := range IdentityEnvVars {
		if name == v {
			return true
		}
	}
	return IsKeyNameVar(name)
}

// KeyPathFromEnvOrDefault returns the key file discovery would read: the
// file for the discovered key name, or the default key path.
func KeyPathFromEnvOrDefault(opts DiscoverOptions) string {
	if keyName, ok := KeyName(opts); ok {
		return keyPathForName(opts, keyName)
	}
	return configs.DefaultKeyPath(opts.lookup())
}

func keyPathForName(opts DiscoverOptions, name string) string {
	if path, ok := opts.config().KeyPath(name); ok {
		return path
	}
	return configs.KeyPathForName(opts.lookup(), name)
}

func loadKeyFile(path string) (*Manager, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("reading key file %s: %w", path, err)
	}
	defer clear(data)

	id, err := parseIdentityBytes(data)
	if err != nil {
		return nil, fmt.Errorf("key file %s: %w", path, err)
	}
	return FromIdentity(id, "file "+path), nil
}
