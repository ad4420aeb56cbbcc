package workflows

import (
	"context"

	"github.com/PolarWolf314/dotenvage/internal/loader"
	logger "github.com/PolarWolf314/dotenvage/internal/logging"
)

// PathsOptions configures the paths workflow.
type PathsOptions struct {
	Dir    string
	Logger logger.Logger
}

// Paths runs layered discovery for Dir without decrypting anything and
// reports the resolved dimensions, the candidate files and the files
// actually loaded.
func Paths(ctx context.Context, opts PathsOptions) (*loader.Result, error) {
	return loader.New(loader.Options{Logger: opts.Logger}).Inspect(ctx, opts.Dir)
}
