package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// RenderAssignment renders NAME=value so that Parse reads back value.
func RenderAssignment(name, value string) (string, error) {
	if !ValidName(name) {
		return "", fmt.Errorf("invalid variable name %q", name)
	}

	line, err := godotenv.Marshal(map[string]string{name: value})
	if err == nil {
		if f := Parse([]byte(line)); len(f.Entries) == 1 && f.Entries[0].Value == value {
			return line, nil
		}
	}

	// godotenv renders integer-looking values bare and normalized ("007"
	// becomes 7), so fall back to explicit quoting.
	return name + `="` + escapeDoubleQuoted(value) + `"`, nil
}

func escapeDoubleQuoted(value string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		"\n", `\n`,
		"\r", `\r`,
		`"`, `\"`,
		`$`, `\$`,
		"`", "\\`",
	)
	return r.Replace(value)
}

// Upsert rewrites content so each entry in updates holds its new value.
// Existing assignments are replaced in place, keeping comments and order;
// names not present are appended. Duplicate assignments of an updated name
// are all rewritten.
func Upsert(content []byte, updates []Entry) ([]byte, error) {
	rendered := make(map[string]string, len(updates))
	var order []string
	for _, u := range updates {
		line, err := RenderAssignment(u.Name, u.Value)
		if err != nil {
			return nil, err
		}
		if _, ok := rendered[u.Name]; !ok {
			order = append(order, u.Name)
		}
		rendered[u.Name] = line
	}

	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	written := make(map[string]bool, len(rendered))
	for i, raw := range lines {
		name, exported, ok := assignmentName(raw)
		if !ok {
			continue
		}
		line, ok := rendered[name]
		if !ok {
			continue
		}
		if exported {
			line = "export " + line
		}
		lines[i] = line
		written[name] = true
	}

	for _, name := range order {
		if !written[name] {
			lines = append(lines, rendered[name])
		}
	}

	return []byte(strings.Join(lines, "\n") + "\n"), nil
}

func assignmentName(raw string) (string, bool, bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", false, false
	}
	exported := false
	if rest, ok := strings.CutPrefix(line, "export "); ok {
		line = strings.TrimSpace(rest)
		exported = true
	}
	name, _, ok := strings.Cut(line, "=")
	if !ok {
		return "", false, false
	}
	name = strings.TrimSpace(name)
	return name, exported, ValidName(name)
}

// UpsertFile applies Upsert to the file at path, creating it when missing.
// An existing file keeps its permissions; a new one is created with 0600.
func UpsertFile(path string, updates []Entry) error {
	mode := fs.FileMode(0600)
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode().Perm()
		}
	case errors.Is(err, fs.ErrNotExist):
		content = nil
	default:
		return readError(path, err)
	}

	updated, err := Upsert(content, updates)
	if err != nil {
		return err
	}
	return os.WriteFile(path, updated, mode)
}

// Quote renders a value for dump output: bare when safe, otherwise double
// quoted with backslashes and double quotes escaped.
func Quote(value string) string {
	if value != "" && !strings.ContainsAny(value, " \t\n\r=\"'") {
		return value
	}
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(value) + `"`
}
