package loader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/PolarWolf314/dotenvage/internal/configs"
	"github.com/PolarWolf314/dotenvage/internal/envfile"
	kerrors "github.com/PolarWolf314/dotenvage/internal/errors"
	"github.com/PolarWolf314/dotenvage/internal/layers"
	logger "github.com/PolarWolf314/dotenvage/internal/logging"
	"github.com/PolarWolf314/dotenvage/internal/secrets"
)

// Decrypter unwraps encrypted values. *secrets.Manager satisfies it.
type Decrypter interface {
	Decrypt(value string) (string, error)
}

// Options configures a Loader. The zero value reads the process
// environment, detects the host runtime and discovers a key only when an
// encrypted value needs one.
type Options struct {
	// Lookup reads environment variables. Nil means os.LookupEnv.
	Lookup configs.Lookup
	// Runtime overrides host detection. A pointer to the zero Runtime
	// disables runtime detection entirely.
	Runtime *layers.Runtime
	// Decrypter is used for encrypted values. Nil means secrets.Discover
	// runs on first use, scanning the resolved directory for AGE_KEY_NAME.
	Decrypter Decrypter
	Logger    logger.Logger
}

// Loader resolves layered env files into a merged environment.
type Loader struct {
	lookup  configs.Lookup
	runtime layers.Runtime
	logger  logger.Logger

	mu        sync.Mutex
	decrypter Decrypter
}

// New creates a Loader.
func New(opts Options) *Loader {
	l := &Loader{
		lookup:    opts.Lookup,
		runtime:   layers.HostRuntime(),
		logger:    opts.Logger,
		decrypter: opts.Decrypter,
	}
	if l.lookup == nil {
		l.lookup = os.LookupEnv
	}
	if opts.Runtime != nil {
		l.runtime = *opts.Runtime
	}
	return l
}

// Result is the outcome of a resolution.
type Result struct {
	// Vars is the merged environment, decrypted unless produced by Inspect.
	Vars *Env
	// Files lists the loaded files in precedence order, lowest first.
	Files []string
	// Candidates lists every file name considered, in precedence order.
	Candidates []string
	Dimensions layers.Set
	PR         string
	Rounds     int
	Warnings   []envfile.Warning
}

// DecryptError reports an encrypted value that could not be decrypted.
type DecryptError struct {
	Name string
	Path string
	Err  error
}

func (e *DecryptError) Error() string {
	return fmt.Sprintf("decrypting %s from %s: %v", e.Name, e.Path, e.Err)
}

func (e *DecryptError) Unwrap() error { return e.Err }

// Resolve computes the merged, decrypted environment for dir without
// touching the process environment.
func (l *Loader) Resolve(ctx context.Context, dir string) (*Result, error) {
	dir = orDot(dir)
	return l.ResolveFS(ctx, os.DirFS(dir), dir)
}

// ResolveFS is Resolve over fsys. dir labels paths in the result and is
// scanned for AGE_KEY_NAME when a key has to be discovered.
func (l *Loader) ResolveFS(ctx context.Context, fsys fs.FS, dir string) (*Result, error) {
	res, err := l.InspectFS(ctx, fsys, dir)
	if err != nil {
		return nil, err
	}

	decrypted, err := l.finalize(dir, res.Vars)
	if err != nil {
		return nil, err
	}
	res.Vars = decrypted
	return res, nil
}

// Inspect runs discovery for dir but leaves encrypted values as they are.
// It never needs a key.
func (l *Loader) Inspect(ctx context.Context, dir string) (*Result, error) {
	dir = orDot(dir)
	return l.InspectFS(ctx, os.DirFS(dir), dir)
}

func orDot(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

// InspectFS runs discovery over fsys. dir is only used to build the paths
// reported in the result.
func (l *Loader) InspectFS(ctx context.Context, fsys fs.FS, dir string) (*Result, error) {
	ix, err := envfile.NewIndex(fsys)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}

	dims := layers.Seed(l.lookup, l.runtime)
	pr := layers.DetectPR(l.lookup)
	l.logger.Debugf("Seeded dimensions: %s", dims)
	if pr != "" {
		l.logger.Debugf("Pull request: %s", pr)
	}

	state := NewState(dims, pr)
	for !state.Done {
		if state.Round >= maxRounds {
			return nil, fmt.Errorf("%w after %d rounds", kerrors.ErrNoFixedPoint, state.Round)
		}
		state, err = Step(ctx, fsys, ix, state)
		if err != nil {
			return nil, err
		}
		l.logger.Debugf("Round %d: %d candidates, %d loaded, dimensions %s", state.Round, len(state.Candidates), len(state.Files), state.Dimensions)
	}

	res := &Result{
		Candidates: state.Candidates,
		Dimensions: state.Dimensions,
		PR:         state.PR,
		Rounds:     state.Round,
		Vars:       NewEnv(),
	}
	for _, name := range state.Loaded() {
		res.Files = append(res.Files, joinDir(dir, name))
	}
	for _, name := range state.Candidates {
		f, ok := state.Files[name]
		if !ok {
			continue
		}
		for _, w := range f.Warnings {
			w.Path = joinDir(dir, w.Path)
			res.Warnings = append(res.Warnings, w)
		}
	}
	for _, v := range state.Merged.Vars() {
		res.Vars.Set(v.Name, v.Value, joinDir(dir, v.Source))
	}
	return res, nil
}

func (l *Loader) finalize(dir string, raw *Env) (*Env, error) {
	out := NewEnv()
	for _, v := range raw.Vars() {
		value := v.Value
		if secrets.IsEncrypted(value) {
			d, err := l.keys(dir)
			if err != nil {
				return nil, &DecryptError{Name: v.Name, Path: v.Source, Err: err}
			}
			value, err = d.Decrypt(value)
			if err != nil {
				return nil, &DecryptError{Name: v.Name, Path: v.Source, Err: err}
			}
		}
		out.Set(v.Name, value, v.Source)
	}
	return out, nil
}

func (l *Loader) keys(dir string) (Decrypter, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.decrypter != nil {
		return l.decrypter, nil
	}
	m, err := secrets.Discover(secrets.DiscoverOptions{Lookup: l.lookup, Dir: dir})
	if err != nil {
		return nil, err
	}
	l.logger.Debugf("Using age identity from %s", m.Origin())
	l.decrypter = m
	return m, nil
}

// Load resolves dir and exports every merged variable into the process
// environment, replacing existing values.
func (l *Loader) Load(ctx context.Context, dir string) (*Result, error) {
	res, err := l.Resolve(ctx, dir)
	if err != nil {
		return nil, err
	}
	for _, v := range res.Vars.Vars() {
		if err := os.Setenv(v.Name, v.Value); err != nil {
			return nil, fmt.Errorf("setting %s: %w", v.Name, err)
		}
	}
	return res, nil
}

// VariableNames lists the merged variable names for dir in order. Values
// are not decrypted, so no key is required.
func (l *Loader) VariableNames(ctx context.Context, dir string) ([]string, error) {
	res, err := l.Inspect(ctx, dir)
	if err != nil {
		return nil, err
	}
	return res.Vars.Names(), nil
}

// GetVar reads name from the loader's environment, decrypting it if needed.
func (l *Loader) GetVar(name string) (string, error) {
	value, ok := l.lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", kerrors.ErrVarNotFound, name)
	}
	if !secrets.IsEncrypted(value) {
		return value, nil
	}
	d, err := l.keys(".")
	if err != nil {
		return "", err
	}
	return d.Decrypt(value)
}

// GetVarOr is GetVar with a fallback for any failure.
func (l *Loader) GetVarOr(name, fallback string) string {
	value, err := l.GetVar(name)
	if err != nil {
		return fallback
	}
	return value
}
