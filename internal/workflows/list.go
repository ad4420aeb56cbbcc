package workflows

import (
	"context"

	"github.com/PolarWolf314/dotenvage/internal/loader"
	"github.com/PolarWolf314/dotenvage/internal/secrets"
)

// ListOptions configures the list workflow.
type ListOptions struct {
	Scope

	// Reveal decrypts values and shows them in full. Otherwise nothing is
	// decrypted and plaintext values are masked.
	Reveal bool
}

// ListedVar is one row of list output.
type ListedVar struct {
	Name string
	// Value is masked unless Reveal was set. It is empty for encrypted
	// values that were not revealed.
	Value     string
	Encrypted bool
	Source    string
}

// ListResult contains the variables in scope, in merged order.
type ListResult struct {
	Vars  []ListedVar
	Files []string
}

// List describes the variables in scope. Without Reveal no key is needed.
func List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	raw, files, err := opts.raw(ctx)
	if err != nil {
		return nil, err
	}

	var plain *loader.Env
	if opts.Reveal {
		plain, _, err = opts.resolve(ctx)
		if err != nil {
			return nil, err
		}
	}

	result := &ListResult{Files: files}
	for _, v := range raw.Vars() {
		row := ListedVar{Name: v.Name, Source: v.Source, Encrypted: secrets.IsEncrypted(v.Value)}
		switch {
		case opts.Reveal:
			row.Value, _ = plain.Get(v.Name)
		case !row.Encrypted:
			row.Value = secrets.Mask(v.Value)
		}
		result.Vars = append(result.Vars, row)
	}
	return result, nil
}
