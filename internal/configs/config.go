package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// UserConfig is the optional per-user config.toml.
type UserConfig struct {
	// Keys maps logical key names to key file paths. An entry here takes
	// precedence over the derived <state>/<name>.key location.
	Keys     map[string]string `toml:"keys"`
	Defaults Defaults          `toml:"defaults"`
}

type Defaults struct {
	// File is the target of single-file commands such as set and encrypt.
	File string `toml:"file,omitempty"`
}

// DefaultTargetFile is used when neither a flag nor config.toml names one.
const DefaultTargetFile = ".env.local"

// ConfigPath returns the location of config.toml.
func ConfigPath() string {
	return filepath.Join(UserSettings.ConfigDir, "config.toml")
}

// LoadUserConfig loads config.toml, returning an empty config when the file
// does not exist.
func LoadUserConfig() (*UserConfig, error) {
	configPath := ConfigPath()

	config := &UserConfig{
		Keys: make(map[string]string),
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	if config.Keys == nil {
		config.Keys = make(map[string]string)
	}

	return config, nil
}

// SaveUserConfig saves the user configuration to config.toml.
func SaveUserConfig(config *UserConfig) error {
	if err := SaveTOML(ConfigPath(), config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}
	return nil
}

// KeyPath returns the configured key file for name. A leading "~/" is
// expanded against the user's home directory.
func (c *UserConfig) KeyPath(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	path, ok := c.Keys[name]
	if !ok || strings.TrimSpace(path) == "" {
		return "", false
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return path, true
}

// SetKeyPath records the key file for name.
func (c *UserConfig) SetKeyPath(name, path string) {
	if c.Keys == nil {
		c.Keys = make(map[string]string)
	}
	c.Keys[name] = path
}

// KeyNames returns the configured logical key names in sorted order.
func (c *UserConfig) KeyNames() []string {
	names := make([]string, 0, len(c.Keys))
	for name := range c.Keys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TargetFile returns flagValue, the configured default, or .env.local.
func (c *UserConfig) TargetFile(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if c != nil && c.Defaults.File != "" {
		return c.Defaults.File
	}
	return DefaultTargetFile
}
