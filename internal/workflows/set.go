package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/dotenvage/internal/audit"
	"github.com/PolarWolf314/dotenvage/internal/envfile"
	"github.com/PolarWolf314/dotenvage/internal/secrets"
)

// SetOptions configures the set workflow.
type SetOptions struct {
	Dir string

	// File is the env file to write. Empty means the configured default
	// or .env.local.
	File string

	Name  string
	Value string

	// Plain stores the value unencrypted even if the name looks sensitive.
	Plain bool

	// Encrypt stores the value encrypted even if the name looks benign.
	Encrypt bool
}

// SetResult contains the outcome of a set operation.
type SetResult struct {
	Path      string
	Name      string
	Encrypted bool
}

// Set assigns one variable in an env file, encrypting the value when the
// name is sensitive. The file is created with mode 0600 if missing.
//
// Returns ErrKeyNotFound if encryption is needed and no identity exists.
func Set(ctx context.Context, opts SetOptions) (*SetResult, error) {
	if !envfile.ValidName(opts.Name) {
		return nil, fmt.Errorf("invalid variable name %q", opts.Name)
	}

	path, err := targetFile(opts.Dir, opts.File)
	if err != nil {
		return nil, err
	}

	value := opts.Value
	encrypt := opts.Encrypt || (!opts.Plain && secrets.ShouldEncrypt(opts.Name))
	if encrypt && !secrets.IsEncrypted(value) {
		manager, err := secrets.Discover(secrets.DiscoverOptions{Dir: opts.Dir})
		if err != nil {
			return nil, err
		}
		defer manager.Destroy()

		value, err = manager.Encrypt(value)
		if err != nil {
			return nil, fmt.Errorf("encrypting %s: %w", opts.Name, err)
		}
	}

	if err := envfile.UpsertFile(path, []envfile.Entry{{Name: opts.Name, Value: value}}); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}

	auditEntry := audit.New("set")
	auditEntry.Files = []string{path}
	auditEntry.Variables = []string{opts.Name}
	audit.Log(auditEntry)

	return &SetResult{Path: path, Name: opts.Name, Encrypted: secrets.IsEncrypted(value)}, nil
}
