package loader

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/PolarWolf314/dotenvage/internal/envfile"
	"github.com/PolarWolf314/dotenvage/internal/layers"
	"github.com/PolarWolf314/dotenvage/internal/secrets"
)

// maxRounds bounds discovery: every round except the last makes at least
// one more dimension known.
const maxRounds = layers.NumDimensions + 1

// State is a snapshot of discovery after a round. Step never modifies the
// State it is given.
type State struct {
	Round      int
	Dimensions layers.Set
	PR         string

	// Candidates is the precedence order used to build Merged.
	Candidates []string
	// Files holds parsed files by candidate name. Absent candidates are
	// missing on disk.
	Files map[string]*envfile.File
	// Attempted records candidates already looked up.
	Attempted map[string]bool
	// Merged holds raw values; encrypted values are not yet decrypted.
	Merged *Env

	// Added lists the dimensions this round made known.
	Added []layers.Dimension
	// Done is set once a round made no new dimension known.
	Done bool
}

// NewState returns the state before the first round.
func NewState(dims layers.Set, pr string) *State {
	return &State{
		Dimensions: dims,
		PR:         pr,
		Files:      map[string]*envfile.File{},
		Attempted:  map[string]bool{},
		Merged:     NewEnv(),
	}
}

func (s *State) clone() *State {
	next := *s
	next.Files = make(map[string]*envfile.File, len(s.Files))
	for k, v := range s.Files {
		next.Files[k] = v
	}
	next.Attempted = make(map[string]bool, len(s.Attempted))
	for k, v := range s.Attempted {
		next.Attempted[k] = v
	}
	next.Added = nil
	return &next
}

// Loaded returns the names of loaded files in precedence order.
func (s *State) Loaded() []string {
	var names []string
	for _, name := range s.Candidates {
		if f, ok := s.Files[name]; ok {
			names = append(names, f.Path)
		}
	}
	return names
}

// Step runs one discovery round over fsys: it generates candidates from
// the current dimensions, reads the ones not yet attempted, rebuilds the
// merged environment in precedence order and derives any dimensions that
// are still unknown. When no dimension is added the Environment default is
// applied, and if that changes nothing the returned state is Done.
func Step(ctx context.Context, fsys fs.FS, ix *envfile.Index, s *State) (*State, error) {
	next := s.clone()
	next.Round = s.Round + 1
	next.Candidates = layers.Candidates(s.Dimensions, s.PR)

	var pending []string
	for _, name := range next.Candidates {
		if !next.Attempted[name] {
			pending = append(pending, name)
		}
	}

	files, err := readFiles(ctx, fsys, ix, pending)
	if err != nil {
		return nil, err
	}
	for i, name := range pending {
		next.Attempted[name] = true
		if files[i] != nil {
			next.Files[name] = files[i]
		}
	}

	next.Merged = merge(next.Candidates, next.Files)

	dims, added := layers.Derive(s.Dimensions, next.Merged.Lookup, secrets.IsEncrypted)
	if len(added) == 0 {
		var defaulted bool
		if dims, defaulted = layers.WithDefault(dims); defaulted {
			added = []layers.Dimension{layers.Environment}
		}
	}
	next.Dimensions = dims
	next.Added = added
	next.Done = len(added) == 0

	return next, nil
}

// readFiles reads candidates concurrently. Missing files yield nil; the
// result is indexed like names.
func readFiles(ctx context.Context, fsys fs.FS, ix *envfile.Index, names []string) ([]*envfile.File, error) {
	results := make([]*envfile.File, len(names))
	g, gctx := errgroup.WithContext(ctx)

	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			actual, ok := ix.Resolve(name)
			if !ok {
				return nil
			}
			f, err := envfile.ReadFS(fsys, actual)
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func merge(order []string, files map[string]*envfile.File) *Env {
	env := NewEnv()
	for _, name := range order {
		f, ok := files[name]
		if !ok {
			continue
		}
		for _, e := range f.Entries {
			env.Set(e.Name, e.Value, f.Path)
		}
	}
	return env
}

func joinDir(dir, name string) string {
	if dir == "" {
		return name
	}
	return filepath.Join(dir, filepath.FromSlash(name))
}
