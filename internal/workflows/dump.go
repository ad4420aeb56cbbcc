package workflows

import (
	"context"

	"github.com/PolarWolf314/dotenvage/internal/loader"
)

// DumpOptions configures the dump workflow.
type DumpOptions struct {
	Scope
}

// DumpResult holds the decrypted environment ready for loader.DumpTo.
type DumpResult struct {
	Vars  *loader.Env
	Files []string
}

// Dump resolves and decrypts every variable in scope.
//
// Returns a *loader.DecryptError if any value cannot be decrypted.
func Dump(ctx context.Context, opts DumpOptions) (*DumpResult, error) {
	env, files, err := opts.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return &DumpResult{Vars: env, Files: files}, nil
}
