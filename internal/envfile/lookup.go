package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	kerrors "github.com/PolarWolf314/dotenvage/internal/errors"
)

// Index maps candidate file names to the names actually present in a
// directory. Exact matches win; otherwise matching ignores case, so a
// candidate .env.prod finds .ENV.PROD.
type Index struct {
	exact map[string]bool
	folds map[string]string
}

// NewIndex lists the top level of fsys. A missing directory yields an
// empty index.
func NewIndex(fsys fs.FS) (*Index, error) {
	ix := &Index{exact: map[string]bool{}, folds: map[string]string{}}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ix, nil
		}
		return nil, fmt.Errorf("%w: listing directory: %v", kerrors.ErrFileRead, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		ix.exact[name] = true
		lower := strings.ToLower(name)
		if _, ok := ix.folds[lower]; !ok {
			ix.folds[lower] = name
		}
	}
	return ix, nil
}

// Resolve returns the on-disk name for candidate.
func (ix *Index) Resolve(candidate string) (string, bool) {
	if ix.exact[candidate] {
		return candidate, true
	}
	name, ok := ix.folds[strings.ToLower(candidate)]
	return name, ok
}
