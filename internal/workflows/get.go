package workflows

import (
	"context"
	"fmt"

	kerrors "github.com/PolarWolf314/dotenvage/internal/errors"
)

// GetOptions configures the get workflow.
type GetOptions struct {
	Scope
	Name string
}

// GetResult contains a single decrypted variable.
type GetResult struct {
	Name  string
	Value string
	// Source is the file that supplied the value.
	Source string
}

// Get returns one variable, decrypted.
//
// Returns ErrVarNotFound if the variable is not set in scope.
func Get(ctx context.Context, opts GetOptions) (*GetResult, error) {
	env, _, err := opts.resolve(ctx)
	if err != nil {
		return nil, err
	}

	value, ok := env.Get(opts.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrVarNotFound, opts.Name)
	}
	return &GetResult{Name: opts.Name, Value: value, Source: env.Source(opts.Name)}, nil
}
