package workflows

import "context"

// NamesOptions configures the names workflow.
type NamesOptions struct {
	Scope
}

// Names lists variable names in scope in merged order. No key is needed.
func Names(ctx context.Context, opts NamesOptions) ([]string, error) {
	env, _, err := opts.raw(ctx)
	if err != nil {
		return nil, err
	}
	return env.Names(), nil
}
