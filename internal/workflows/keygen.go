package workflows

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/dotenvage/internal/audit"
	"github.com/PolarWolf314/dotenvage/internal/configs"
	kerrors "github.com/PolarWolf314/dotenvage/internal/errors"
	"github.com/PolarWolf314/dotenvage/internal/secrets"
)

// KeygenOptions configures the keygen workflow.
type KeygenOptions struct {
	// Output is the key file to write. Empty means the path derived from
	// Name, or the default key path.
	Output string

	// Name is a logical key name, later selected with AGE_KEY_NAME. When
	// combined with Output, the mapping is recorded in config.toml.
	Name string

	// Force overwrites an existing key file.
	Force bool
}

// KeygenResult contains the outcome of a keygen operation.
type KeygenResult struct {
	Path      string
	PublicKey string
	Name      string

	// Registered is true when Name was added to config.toml.
	Registered bool
}

// Keygen generates a new age identity and saves it.
//
// Returns ErrKeyExists if the key file exists and Force is false.
// Returns ErrKeySaveFailed if the file cannot be written.
func Keygen(ctx context.Context, opts KeygenOptions) (*KeygenResult, error) {
	config, err := configs.LoadUserConfig()
	if err != nil {
		return nil, fmt.Errorf("loading user config: %w", err)
	}

	path, register := keygenPath(config, opts)

	if !opts.Force {
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrKeyExists, path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("checking %s: %w", path, err)
		}
	}

	manager, err := secrets.Generate()
	if err != nil {
		return nil, err
	}
	defer manager.Destroy()

	if err := manager.SaveKey(path); err != nil {
		return nil, err
	}

	result := &KeygenResult{
		Path:      path,
		PublicKey: manager.PublicKey(),
		Name:      opts.Name,
	}

	if register {
		config.SetKeyPath(opts.Name, path)
		if err := configs.SaveUserConfig(config); err != nil {
			return nil, err
		}
		result.Registered = true
	}

	auditEntry := audit.New("keygen")
	auditEntry.KeyPath = path
	auditEntry.PublicKey = result.PublicKey
	auditEntry.KeyName = opts.Name
	audit.Log(auditEntry)

	return result, nil
}

// keygenPath picks the key file location and reports whether the name
// mapping needs to be saved.
func keygenPath(config *configs.UserConfig, opts KeygenOptions) (string, bool) {
	if opts.Output != "" {
		path := opts.Output
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		return path, opts.Name != ""
	}
	if opts.Name != "" {
		if path, ok := config.KeyPath(opts.Name); ok {
			return path, false
		}
		return configs.KeyPathForName(os.LookupEnv, opts.Name), false
	}
	return configs.DefaultKeyPath(os.LookupEnv), false
}
