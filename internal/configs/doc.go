// Package configs locates dotenvage's per-user directories and reads the
// optional user configuration file.
//
// # Directories
//
// Key files and the audit log live in a state directory chosen by
// BaseDirFor: $XDG_STATE_HOME, then $XDG_CONFIG_HOME, then
// ~/.local/state. An existing ~/.config/<name> is honored when the
// ~/.local/state/<name> directory does not exist.
//
// # User Configuration
//
// config.toml lives in the config directory and is entirely optional:
//
//	[keys]
//	"myapp/production" = "~/secrets/prod.key"
//
//	[defaults]
//	file = ".env.local"
//
// The keys table lets a logical key name (the AGE_KEY_NAME value) point at
// a key file outside the derived <state>/<name>.key location.
//
// # Settings
//
// UserSettings is initialized at startup from the process environment.
// Tests replace it with a Settings built over a temporary directory.
package configs
