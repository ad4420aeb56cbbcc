package workflows

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/PolarWolf314/dotenvage/internal/configs"
	"github.com/PolarWolf314/dotenvage/internal/envfile"
	kerrors "github.com/PolarWolf314/dotenvage/internal/errors"
	"github.com/PolarWolf314/dotenvage/internal/loader"
	logger "github.com/PolarWolf314/dotenvage/internal/logging"
	"github.com/PolarWolf314/dotenvage/internal/secrets"
)

// Scope selects the variables a read workflow works on: a single File, or
// the layered resolution of Dir when File is empty.
type Scope struct {
	// Dir is the directory holding the env files. Empty means ".".
	Dir string

	// File restricts the workflow to one env file. Relative paths are
	// taken relative to Dir.
	File string

	Logger logger.Logger
}

func (s Scope) dir() string {
	if s.Dir == "" {
		return "."
	}
	return s.Dir
}

func (s Scope) filePath() string {
	return joinDir(s.dir(), s.File)
}

func joinDir(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// raw returns the variables in scope with encrypted values left as they
// are, plus the files they came from.
func (s Scope) raw(ctx context.Context) (*loader.Env, []string, error) {
	if s.File != "" {
		env, err := s.readFile()
		if err != nil {
			return nil, nil, err
		}
		return env, []string{s.filePath()}, nil
	}

	res, err := loader.New(loader.Options{Logger: s.Logger}).Inspect(ctx, s.dir())
	if err != nil {
		return nil, nil, err
	}
	s.warn(res.Warnings)
	return res.Vars, res.Files, nil
}

// resolve is raw with every encrypted value decrypted.
func (s Scope) resolve(ctx context.Context) (*loader.Env, []string, error) {
	if s.File == "" {
		res, err := loader.New(loader.Options{Logger: s.Logger}).Resolve(ctx, s.dir())
		if err != nil {
			return nil, nil, err
		}
		s.warn(res.Warnings)
		return res.Vars, res.Files, nil
	}

	env, files, err := s.raw(ctx)
	if err != nil {
		return nil, nil, err
	}

	var manager *secrets.Manager
	out := loader.NewEnv()
	for _, v := range env.Vars() {
		value := v.Value
		if secrets.IsEncrypted(value) {
			if manager == nil {
				manager, err = s.manager()
				if err != nil {
					return nil, nil, &loader.DecryptError{Name: v.Name, Path: v.Source, Err: err}
				}
			}
			value, err = manager.Decrypt(value)
			if err != nil {
				return nil, nil, &loader.DecryptError{Name: v.Name, Path: v.Source, Err: err}
			}
		}
		out.Set(v.Name, value, v.Source)
	}
	return out, files, nil
}

func (s Scope) readFile() (*loader.Env, error) {
	path := s.filePath()
	f, err := envfile.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	s.warn(f.Warnings)

	env := loader.NewEnv()
	for _, e := range f.Entries {
		env.Set(e.Name, e.Value, path)
	}
	return env, nil
}

func (s Scope) warn(warnings []envfile.Warning) {
	for _, w := range warnings {
		s.Logger.WarnfAlways("%s", w)
	}
}

func (s Scope) manager() (*secrets.Manager, error) {
	m, err := secrets.Discover(secrets.DiscoverOptions{Dir: s.dir()})
	if err != nil {
		return nil, err
	}
	s.Logger.Debugf("Using age identity from %s", m.Origin())
	return m, nil
}

// targetFile resolves the file single-file writers modify: the flag, the
// configured default or .env.local, relative to dir.
func targetFile(dir, flagValue string) (string, error) {
	config, err := configs.LoadUserConfig()
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	return joinDir(dir, config.TargetFile(flagValue)), nil
}
