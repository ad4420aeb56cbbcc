package workflows

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/PolarWolf314/dotenvage/internal/audit"
	"github.com/PolarWolf314/dotenvage/internal/envfile"
	kerrors "github.com/PolarWolf314/dotenvage/internal/errors"
	logger "github.com/PolarWolf314/dotenvage/internal/logging"
	"github.com/PolarWolf314/dotenvage/internal/secrets"
)

// EncryptOptions configures the encrypt workflow.
type EncryptOptions struct {
	// Dir is the base for relative patterns and key discovery.
	Dir string

	// FilePatterns selects files, directories or globs. If empty, the
	// default target file is encrypted.
	FilePatterns []string

	// Keys names variables to encrypt regardless of their name.
	Keys []string

	// Auto also encrypts every variable whose name looks sensitive. It is
	// implied when Keys is empty.
	Auto bool

	// DryRun reports what would be encrypted without writing files.
	DryRun bool

	Logger logger.Logger
}

// EncryptedFile lists the variables encrypted in one file.
type EncryptedFile struct {
	Path      string
	Variables []string
}

// EncryptResult contains the outcome of an encrypt operation.
type EncryptResult struct {
	// Files lists every file examined, including ones with nothing to do.
	Files []EncryptedFile

	// PublicKey is the recipient the values were encrypted to.
	PublicKey string

	DryRun bool
}

// Count returns the total number of variables encrypted.
func (r *EncryptResult) Count() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Variables)
	}
	return n
}

// Encrypt encrypts plaintext values in env files in place. Already
// encrypted values are left untouched, as are comments and ordering.
//
// Returns ErrNoFilesFound or ErrFileNotFound if no file matches.
// Returns ErrKeyNotFound if no identity is available.
func Encrypt(ctx context.Context, opts EncryptOptions) (*EncryptResult, error) {
	files, err := encryptTargets(opts)
	if err != nil {
		return nil, err
	}

	manager, err := secrets.Discover(secrets.DiscoverOptions{Dir: opts.Dir})
	if err != nil {
		return nil, err
	}
	defer manager.Destroy()
	opts.Logger.Debugf("Using age identity from %s", manager.Origin())

	selected := make(map[string]bool, len(opts.Keys))
	for _, k := range opts.Keys {
		selected[k] = true
	}
	auto := opts.Auto || len(opts.Keys) == 0

	result := &EncryptResult{PublicKey: manager.PublicKey(), DryRun: opts.DryRun}
	var touchedFiles, touchedVars []string

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		parsed, err := envfile.ReadFile(path)
		if err != nil {
			return nil, err
		}
		for _, w := range parsed.Warnings {
			opts.Logger.WarnfAlways("%s", w)
		}

		var updates []envfile.Entry
		var names []string
		for _, name := range parsed.Names() {
			if !selected[name] && !(auto && secrets.ShouldEncrypt(name)) {
				continue
			}
			value, _ := parsed.Get(name)
			if secrets.IsEncrypted(value) {
				opts.Logger.Debugf("%s in %s is already encrypted", name, path)
				continue
			}
			names = append(names, name)
			if opts.DryRun {
				continue
			}
			ciphertext, err := manager.Encrypt(value)
			if err != nil {
				return nil, fmt.Errorf("encrypting %s in %s: %w", name, path, err)
			}
			updates = append(updates, envfile.Entry{Name: name, Value: ciphertext})
		}

		result.Files = append(result.Files, EncryptedFile{Path: path, Variables: names})
		if len(updates) == 0 {
			continue
		}
		if err := envfile.UpsertFile(path, updates); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		opts.Logger.Infof("Encrypted %d variable(s) in %s", len(updates), path)
		touchedFiles = append(touchedFiles, path)
		touchedVars = append(touchedVars, names...)
	}

	if len(touchedFiles) > 0 {
		auditEntry := audit.New("encrypt")
		auditEntry.Files = touchedFiles
		auditEntry.Variables = touchedVars
		audit.Log(auditEntry)
	}

	return result, nil
}

func encryptTargets(opts EncryptOptions) ([]string, error) {
	if len(opts.FilePatterns) > 0 {
		return envfile.ResolveFiles(opts.FilePatterns, scopeDir(opts.Dir))
	}

	path, err := targetFile(opts.Dir, "")
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, path)
	}
	return []string{path}, nil
}

func scopeDir(dir string) string {
	return Scope{Dir: dir}.dir()
}
