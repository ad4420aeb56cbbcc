package configs

import (
	"os"
	"path/filepath"
	"testing"
)

func mapLookup(env map[string]string) Lookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func withSettings(t *testing.T, s *Settings) {
	t.Helper()
	old := UserSettings
	UserSettings = s
	t.Cleanup(func() { UserSettings = old })
}

func TestBaseDirFor(t *testing.T) {
	home := t.TempDir()

	tests := []struct {
		name  string
		env   map[string]string
		setup func()
		want  string
	}{
		{
			name: "state home wins",
			env:  map[string]string{"XDG_STATE_HOME": "/xdg/state", "XDG_CONFIG_HOME": "/xdg/config", "HOME": home},
			want: filepath.Join("/xdg/state", "test"),
		},
		{
			name: "config home second",
			env:  map[string]string{"XDG_CONFIG_HOME": "/xdg/config", "HOME": home},
			want: filepath.Join("/xdg/config", "test"),
		},
		{
			name: "empty xdg ignored",
			env:  map[string]string{"XDG_STATE_HOME": "", "HOME": home},
			want: filepath.Join(home, ".local", "state", "test"),
		},
		{
			name: "legacy config dir honored",
			env:  map[string]string{"HOME": home},
			setup: func() {
				if err := os.MkdirAll(filepath.Join(home, ".config", "legacy"), 0700); err != nil {
					t.Fatalf("mkdir: %v", err)
				}
			},
			want: filepath.Join(home, ".config", "legacy"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := "test"
			if tt.setup != nil {
				tt.setup()
				name = "legacy"
			}
			got := BaseDirFor(mapLookup(tt.env), name)
			if got != tt.want {
				t.Errorf("BaseDirFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyPaths(t *testing.T) {
	lookup := mapLookup(map[string]string{"XDG_STATE_HOME": "/tmp/xdg-state"})

	if got, want := KeyPathForName(lookup, "myproject/myapp"), filepath.Join("/tmp/xdg-state", "myproject", "myapp.key"); got != want {
		t.Errorf("KeyPathForName() = %q, want %q", got, want)
	}
	if got, want := DefaultKeyPath(lookup), filepath.Join("/tmp/xdg-state", "dotenvage", "dotenvage.key"); got != want {
		t.Errorf("DefaultKeyPath() = %q, want %q", got, want)
	}
}

func TestSaveAndLoadUserConfig(t *testing.T) {
	withSettings(t, &Settings{StateDir: t.TempDir(), ConfigDir: t.TempDir()})

	config := &UserConfig{}
	config.SetKeyPath("b/key", "/keys/b.key")
	config.SetKeyPath("a/key", "/keys/a.key")

	if err := SaveUserConfig(config); err != nil {
		t.Fatalf("SaveUserConfig failed: %v", err)
	}

	loaded, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}

	names := loaded.KeyNames()
	if len(names) != 2 || names[0] != "a/key" || names[1] != "b/key" {
		t.Fatalf("unexpected key names: %v", names)
	}
	if path, ok := loaded.KeyPath("a/key"); !ok || path != "/keys/a.key" {
		t.Errorf("KeyPath(a/key) = %q, %v", path, ok)
	}
	if _, ok := loaded.KeyPath("missing"); ok {
		t.Error("expected missing key name to be absent")
	}
}

func TestLoadUserConfigMissingFile(t *testing.T) {
	withSettings(t, &Settings{StateDir: t.TempDir(), ConfigDir: t.TempDir()})

	config, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}
	if config.Keys == nil {
		t.Fatal("expected initialized keys map")
	}
	if got := config.TargetFile(""); got != DefaultTargetFile {
		t.Errorf("TargetFile() = %q, want %q", got, DefaultTargetFile)
	}
}

func TestTargetFile(t *testing.T) {
	config := &UserConfig{Defaults: Defaults{File: ".env.shared"}}

	if got := config.TargetFile(".env.flag"); got != ".env.flag" {
		t.Errorf("flag should win, got %q", got)
	}
	if got := config.TargetFile(""); got != ".env.shared" {
		t.Errorf("config default should win, got %q", got)
	}
	var nilConfig *UserConfig
	if got := nilConfig.TargetFile(""); got != DefaultTargetFile {
		t.Errorf("nil config should fall back, got %q", got)
	}
}
