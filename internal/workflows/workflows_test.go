package workflows

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/dotenvage/internal/audit"
	"github.com/PolarWolf314/dotenvage/internal/configs"
	"github.com/PolarWolf314/dotenvage/internal/envfile"
	kerrors "github.com/PolarWolf314/dotenvage/internal/errors"
	"github.com/PolarWolf314/dotenvage/internal/loader"
	"github.com/PolarWolf314/dotenvage/internal/secrets"
)

// setupWorkspace isolates the state and config directories, clears every
// key source and returns a project directory.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, "state"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	for _, name := range append([]string{secrets.KeyNameEnvVar}, secrets.IdentityEnvVars...) {
		t.Setenv(name, "")
	}
	t.Setenv("DOTENVAGE_ENV", "test")

	original := configs.UserSettings
	configs.UserSettings = configs.NewSettings(os.LookupEnv)
	t.Cleanup(func() { configs.UserSettings = original })

	return t.TempDir()
}

// setupKey generates the default key and returns it as a manager.
func setupKey(t *testing.T) *secrets.Manager {
	t.Helper()
	res, err := Keygen(context.Background(), KeygenOptions{})
	if err != nil {
		t.Fatalf("Keygen failed: %v", err)
	}
	m, err := secrets.Discover(secrets.DiscoverOptions{})
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if m.PublicKey() != res.PublicKey {
		t.Fatalf("Discovered key %s, want %s", m.PublicKey(), res.PublicKey)
	}
	return m
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestKeygen_WritesDefaultKey(t *testing.T) {
	setupWorkspace(t)

	res, err := Keygen(context.Background(), KeygenOptions{})
	if err != nil {
		t.Fatalf("Keygen failed: %v", err)
	}
	if res.Path != configs.DefaultKeyPath(os.LookupEnv) {
		t.Errorf("Expected default key path, got %s", res.Path)
	}
	if !strings.HasPrefix(res.PublicKey, "age1") {
		t.Errorf("Unexpected public key %q", res.PublicKey)
	}

	info, err := os.Stat(res.Path)
	if err != nil {
		t.Fatalf("Key file missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected key mode 0600, got %o", info.Mode().Perm())
	}

	entries, _ := audit.ReadEntries()
	if len(entries) != 1 || entries[0].Operation != "keygen" || entries[0].PublicKey != res.PublicKey {
		t.Errorf("Expected one keygen audit entry, got %+v", entries)
	}
}

func TestKeygen_RefusesOverwrite(t *testing.T) {
	setupWorkspace(t)

	first, err := Keygen(context.Background(), KeygenOptions{})
	if err != nil {
		t.Fatalf("Keygen failed: %v", err)
	}

	_, err = Keygen(context.Background(), KeygenOptions{})
	if !errors.Is(err, kerrors.ErrKeyExists) {
		t.Fatalf("Expected ErrKeyExists, got %v", err)
	}

	second, err := Keygen(context.Background(), KeygenOptions{Force: true})
	if err != nil {
		t.Fatalf("Keygen --force failed: %v", err)
	}
	if second.PublicKey == first.PublicKey {
		t.Error("Expected a new identity after --force")
	}
}

func TestKeygen_NamedOutputIsRegistered(t *testing.T) {
	setupWorkspace(t)
	output := filepath.Join(t.TempDir(), "keys", "team.key")

	res, err := Keygen(context.Background(), KeygenOptions{Output: output, Name: "team"})
	if err != nil {
		t.Fatalf("Keygen failed: %v", err)
	}
	if !res.Registered {
		t.Error("Expected name to be registered")
	}

	config, err := configs.LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}
	if path, ok := config.KeyPath("team"); !ok || path != output {
		t.Errorf("config key path = %q, %v; want %q", path, ok, output)
	}

	t.Setenv(secrets.KeyNameEnvVar, "team")
	pub, err := PublicKey(context.Background(), PublicKeyOptions{})
	if err != nil {
		t.Fatalf("PublicKey failed: %v", err)
	}
	if pub.PublicKey != res.PublicKey {
		t.Errorf("Named key not discovered: got %s, want %s", pub.PublicKey, res.PublicKey)
	}
}

func TestKeygen_NameWithoutOutput(t *testing.T) {
	setupWorkspace(t)

	res, err := Keygen(context.Background(), KeygenOptions{Name: "ci"})
	if err != nil {
		t.Fatalf("Keygen failed: %v", err)
	}
	if res.Path != configs.KeyPathForName(os.LookupEnv, "ci") || res.Registered {
		t.Errorf("Unexpected result %+v", res)
	}
}

func TestPublicKey_NoKey(t *testing.T) {
	setupWorkspace(t)

	_, err := PublicKey(context.Background(), PublicKeyOptions{})
	if !errors.Is(err, kerrors.ErrKeyNotFound) {
		t.Fatalf("Expected ErrKeyNotFound, got %v", err)
	}
}

func TestEncrypt_AutoDetectsSensitiveNames(t *testing.T) {
	dir := setupWorkspace(t)
	m := setupKey(t)
	path := writeFile(t, dir, ".env.local", "# comment\nPORT=8080\nAPI_KEY=abc123\nDB_PASSWORD=\"p w\"\n")

	res, err := Encrypt(context.Background(), EncryptOptions{Dir: dir})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if res.Count() != 2 {
		t.Fatalf("Expected 2 encrypted variables, got %+v", res.Files)
	}

	f, err := envfile.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if port, _ := f.Get("PORT"); port != "8080" {
		t.Errorf("PORT changed to %q", port)
	}
	for name, want := range map[string]string{"API_KEY": "abc123", "DB_PASSWORD": "p w"} {
		value, _ := f.Get(name)
		if !secrets.IsEncrypted(value) {
			t.Fatalf("%s not encrypted: %q", name, value)
		}
		plain, err := m.Decrypt(value)
		if err != nil || plain != want {
			t.Errorf("%s decrypted to %q, %v; want %q", name, plain, err, want)
		}
	}

	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "# comment\nPORT=8080\n") {
		t.Errorf("Comments or order not preserved:\n%s", data)
	}
}

func TestEncrypt_SkipsAlreadyEncrypted(t *testing.T) {
	dir := setupWorkspace(t)
	setupKey(t)
	writeFile(t, dir, ".env.local", "API_KEY=abc123\n")

	if _, err := Encrypt(context.Background(), EncryptOptions{Dir: dir}); err != nil {
		t.Fatalf("first Encrypt failed: %v", err)
	}
	before, _ := os.ReadFile(filepath.Join(dir, ".env.local"))

	res, err := Encrypt(context.Background(), EncryptOptions{Dir: dir})
	if err != nil {
		t.Fatalf("second Encrypt failed: %v", err)
	}
	if res.Count() != 0 {
		t.Errorf("Expected nothing to encrypt, got %+v", res.Files)
	}
	after, _ := os.ReadFile(filepath.Join(dir, ".env.local"))
	if string(before) != string(after) {
		t.Error("File changed on second encrypt")
	}
}

func TestEncrypt_ExplicitKeysAndPatterns(t *testing.T) {
	dir := setupWorkspace(t)
	setupKey(t)
	writeFile(t, dir, ".env.production", "HOSTNAME=example.com\nAPI_KEY=abc\n")

	res, err := Encrypt(context.Background(), EncryptOptions{
		Dir:          dir,
		FilePatterns: []string{".env.prod*"},
		Keys:         []string{"HOSTNAME"},
	})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if res.Count() != 1 || res.Files[0].Variables[0] != "HOSTNAME" {
		t.Errorf("Expected only HOSTNAME to be encrypted, got %+v", res.Files)
	}
}

func TestEncrypt_DryRun(t *testing.T) {
	dir := setupWorkspace(t)
	setupKey(t)
	path := writeFile(t, dir, ".env.local", "API_KEY=abc\n")

	res, err := Encrypt(context.Background(), EncryptOptions{Dir: dir, DryRun: true})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if res.Count() != 1 {
		t.Errorf("Expected 1 planned variable, got %+v", res.Files)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "API_KEY=abc\n" {
		t.Errorf("Dry run modified the file:\n%s", data)
	}
}

func TestEncrypt_MissingTarget(t *testing.T) {
	dir := setupWorkspace(t)
	setupKey(t)

	_, err := Encrypt(context.Background(), EncryptOptions{Dir: dir})
	if !errors.Is(err, kerrors.ErrFileNotFound) {
		t.Fatalf("Expected ErrFileNotFound, got %v", err)
	}
}

func TestSet_EncryptsSensitiveValue(t *testing.T) {
	dir := setupWorkspace(t)
	setupKey(t)

	res, err := Set(context.Background(), SetOptions{Dir: dir, Name: "STRIPE_SECRET", Value: "sk_live"})
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !res.Encrypted || res.Path != filepath.Join(dir, ".env.local") {
		t.Errorf("Unexpected result %+v", res)
	}

	info, err := os.Stat(res.Path)
	if err != nil {
		t.Fatalf("Target not created: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected mode 0600, got %o", info.Mode().Perm())
	}

	got, err := Get(context.Background(), GetOptions{Scope: Scope{Dir: dir}, Name: "STRIPE_SECRET"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Value != "sk_live" {
		t.Errorf("Get = %q, want sk_live", got.Value)
	}
}

func TestSet_PlainAndBenign(t *testing.T) {
	dir := setupWorkspace(t)

	// No key exists, so neither call may try to encrypt.
	if _, err := Set(context.Background(), SetOptions{Dir: dir, Name: "PORT", Value: "3000"}); err != nil {
		t.Fatalf("Set PORT failed: %v", err)
	}
	res, err := Set(context.Background(), SetOptions{Dir: dir, Name: "API_TOKEN", Value: "t", Plain: true})
	if err != nil {
		t.Fatalf("Set --plain failed: %v", err)
	}
	if res.Encrypted {
		t.Error("Expected --plain to store plaintext")
	}

	data, _ := os.ReadFile(filepath.Join(dir, ".env.local"))
	if string(data) != "PORT=3000\nAPI_TOKEN=\"t\"\n" {
		t.Errorf("Unexpected file content:\n%s", data)
	}

	entries, _ := audit.ReadEntries()
	if len(entries) != 2 || entries[1].Variables[0] != "API_TOKEN" {
		t.Errorf("Expected two set audit entries, got %+v", entries)
	}
	for _, e := range entries {
		for _, v := range e.Variables {
			if v == "3000" || v == "t" {
				t.Error("Audit log must not contain values")
			}
		}
	}
}

func TestSet_SensitiveWithoutKey(t *testing.T) {
	dir := setupWorkspace(t)

	_, err := Set(context.Background(), SetOptions{Dir: dir, Name: "API_KEY", Value: "x"})
	if !errors.Is(err, kerrors.ErrKeyNotFound) {
		t.Fatalf("Expected ErrKeyNotFound, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, ".env.local")); !os.IsNotExist(statErr) {
		t.Error("Target file should not be created when encryption fails")
	}
}

func TestSet_InvalidName(t *testing.T) {
	dir := setupWorkspace(t)

	if _, err := Set(context.Background(), SetOptions{Dir: dir, Name: "1BAD", Value: "x"}); err == nil {
		t.Fatal("Expected error for invalid name")
	}
}

func TestGet_LayeredAndSingleFile(t *testing.T) {
	dir := setupWorkspace(t)
	writeFile(t, dir, ".env", "GREETING=base\nONLY_BASE=1\n")
	writeFile(t, dir, ".env.test", "GREETING=test\n")

	got, err := Get(context.Background(), GetOptions{Scope: Scope{Dir: dir}, Name: "GREETING"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Value != "test" || got.Source != filepath.Join(dir, ".env.test") {
		t.Errorf("Get = %+v", got)
	}

	got, err = Get(context.Background(), GetOptions{Scope: Scope{Dir: dir, File: ".env"}, Name: "GREETING"})
	if err != nil {
		t.Fatalf("Get -f failed: %v", err)
	}
	if got.Value != "base" {
		t.Errorf("Get -f .env = %q, want base", got.Value)
	}

	_, err = Get(context.Background(), GetOptions{Scope: Scope{Dir: dir}, Name: "MISSING"})
	if !errors.Is(err, kerrors.ErrVarNotFound) {
		t.Errorf("Expected ErrVarNotFound, got %v", err)
	}

	_, err = Get(context.Background(), GetOptions{Scope: Scope{Dir: dir, File: ".env.nope"}, Name: "GREETING"})
	if !errors.Is(err, kerrors.ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}
}

func TestGet_SingleFileDecryptFailure(t *testing.T) {
	dir := setupWorkspace(t)
	setupKey(t)

	other, err := secrets.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	ciphertext, err := other.Encrypt("x")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	writeFile(t, dir, "custom.env", "API_KEY="+ciphertext+"\n")

	_, err = Get(context.Background(), GetOptions{Scope: Scope{Dir: dir, File: "custom.env"}, Name: "API_KEY"})
	var decryptErr *loader.DecryptError
	if !errors.As(err, &decryptErr) || decryptErr.Name != "API_KEY" {
		t.Fatalf("Expected DecryptError for API_KEY, got %v", err)
	}
	if !errors.Is(err, kerrors.ErrDecryptFailed) {
		t.Errorf("Expected ErrDecryptFailed, got %v", err)
	}
}

func TestList_MasksWithoutKey(t *testing.T) {
	dir := setupWorkspace(t)
	m, err := secrets.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	ciphertext, _ := m.Encrypt("secret")
	writeFile(t, dir, ".env", "HOST=example.com\nAPI_KEY="+ciphertext+"\n")

	res, err := List(context.Background(), ListOptions{Scope: Scope{Dir: dir}})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(res.Vars) != 2 {
		t.Fatalf("Expected 2 vars, got %+v", res.Vars)
	}
	if res.Vars[0].Value == "example.com" || res.Vars[0].Encrypted {
		t.Errorf("Expected masked plaintext HOST, got %+v", res.Vars[0])
	}
	if !res.Vars[1].Encrypted || res.Vars[1].Value != "" {
		t.Errorf("Expected hidden encrypted API_KEY, got %+v", res.Vars[1])
	}
}

func TestList_Reveal(t *testing.T) {
	dir := setupWorkspace(t)
	m := setupKey(t)
	ciphertext, _ := m.Encrypt("secret")
	writeFile(t, dir, ".env", "HOST=example.com\nAPI_KEY="+ciphertext+"\n")

	res, err := List(context.Background(), ListOptions{Scope: Scope{Dir: dir}, Reveal: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if res.Vars[0].Value != "example.com" || res.Vars[1].Value != "secret" || !res.Vars[1].Encrypted {
		t.Errorf("Unexpected reveal output %+v", res.Vars)
	}
}

func TestDumpAndNames(t *testing.T) {
	dir := setupWorkspace(t)
	m := setupKey(t)
	ciphertext, _ := m.Encrypt("s3cret value")
	writeFile(t, dir, ".env", "A=1\nAGE_KEY_NAME=\nTOKEN="+ciphertext+"\n")
	writeFile(t, dir, ".env.test", "B=two\nA=override\n")

	dump, err := Dump(context.Background(), DumpOptions{Scope: Scope{Dir: dir}})
	if err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	var out strings.Builder
	if err := loader.DumpTo(&out, dump.Vars); err != nil {
		t.Fatalf("DumpTo failed: %v", err)
	}
	want := "A=override\nTOKEN=\"s3cret value\"\nB=two\n"
	if out.String() != want {
		t.Errorf("dump =\n%s\nwant\n%s", out.String(), want)
	}

	names, err := Names(context.Background(), NamesOptions{Scope: Scope{Dir: dir}})
	if err != nil {
		t.Fatalf("Names failed: %v", err)
	}
	if strings.Join(names, ",") != "A,AGE_KEY_NAME,TOKEN,B" {
		t.Errorf("Names = %v", names)
	}
}

func TestPaths(t *testing.T) {
	dir := setupWorkspace(t)
	writeFile(t, dir, ".env", "X=1\n")
	writeFile(t, dir, ".env.test", "Y=2\n")

	res, err := Paths(context.Background(), PathsOptions{Dir: dir})
	if err != nil {
		t.Fatalf("Paths failed: %v", err)
	}
	if len(res.Files) != 2 || res.Files[1] != filepath.Join(dir, ".env.test") {
		t.Errorf("Files = %v", res.Files)
	}
	if res.Candidates[0] != ".env" {
		t.Errorf("Expected .env as first candidate, got %v", res.Candidates)
	}
}

func TestLog_FiltersAndLimits(t *testing.T) {
	setupWorkspace(t)
	for _, op := range []string{"keygen", "set", "encrypt", "set"} {
		audit.Log(audit.New(op))
	}

	res, err := Log(context.Background(), LogOptions{Operations: []string{"set"}})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if res.TotalEntriesBeforeFilter != 4 || len(res.Entries) != 2 {
		t.Errorf("Unexpected result: total %d, entries %d", res.TotalEntriesBeforeFilter, len(res.Entries))
	}

	res, err = Log(context.Background(), LogOptions{Limit: 2, Reverse: true})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if len(res.Entries) != 2 || res.Entries[0].Operation != "set" || res.Entries[1].Operation != "encrypt" {
		t.Errorf("Unexpected entries %+v", res.Entries)
	}
}

func TestLog_MissingLog(t *testing.T) {
	setupWorkspace(t)

	res, err := Log(context.Background(), LogOptions{})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if len(res.Entries) != 0 {
		t.Errorf("Expected no entries, got %+v", res.Entries)
	}
}
