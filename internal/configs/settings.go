package configs

import (
	"os"
	"path/filepath"
)

// AppName names the state and config subdirectories owned by dotenvage.
const AppName = "dotenvage"

// Lookup reads an environment variable. os.LookupEnv satisfies it.
type Lookup func(key string) (string, bool)

// Settings holds the user-level directories dotenvage reads and writes.
type Settings struct {
	// StateDir holds the default key file and the audit log.
	StateDir string
	// ConfigDir holds config.toml.
	ConfigDir string
}

var UserSettings *Settings

func init() {
	// Independent of the working directory, so it is safe to compute here.
	UserSettings = NewSettings(os.LookupEnv)
}

// NewSettings computes the dotenvage directories from the given environment.
func NewSettings(lookup Lookup) *Settings {
	configDir := filepath.Join(".", AppName)
	if base := nonEmpty(lookup, "XDG_CONFIG_HOME"); base != "" {
		configDir = filepath.Join(base, AppName)
	} else if home := homeDir(lookup); home != "" {
		configDir = filepath.Join(home, ".config", AppName)
	}

	return &Settings{
		StateDir:  BaseDirFor(lookup, AppName),
		ConfigDir: configDir,
	}
}

// BaseDirFor returns the per-user directory for name. The first of
// $XDG_STATE_HOME/name, $XDG_CONFIG_HOME/name and ~/.local/state/name wins,
// except that an existing ~/.config/name is used when ~/.local/state/name
// does not exist. Without any home directory the result is relative to ".".
func BaseDirFor(lookup Lookup, name string) string {
	if base := nonEmpty(lookup, "XDG_STATE_HOME"); base != "" {
		return filepath.Join(base, name)
	}
	if base := nonEmpty(lookup, "XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, name)
	}

	home := homeDir(lookup)
	if home == "" {
		return filepath.Join(".", name)
	}

	stateDir := filepath.Join(home, ".local", "state", name)
	configDir := filepath.Join(home, ".config", name)
	if exists(stateDir) || !exists(configDir) {
		return stateDir
	}
	return configDir
}

// KeyPathForName maps a logical key name such as "myapp/production" to
// its key file, e.g. ~/.local/state/myapp/production.key.
func KeyPathForName(lookup Lookup, name string) string {
	return BaseDirFor(lookup, name) + ".key"
}

// DefaultKeyPath is the key file used when no other source names one.
func DefaultKeyPath(lookup Lookup) string {
	return filepath.Join(BaseDirFor(lookup, AppName), AppName+".key")
}

func homeDir(lookup Lookup) string {
	if home := nonEmpty(lookup, "HOME"); home != "" {
		return home
	}
	if home := nonEmpty(lookup, "USERPROFILE"); home != "" {
		return home
	}
	return ""
}

func nonEmpty(lookup Lookup, key string) string {
	if lookup == nil {
		return ""
	}
	v, ok := lookup(key)
	if !ok {
		return ""
	}
	return v
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
