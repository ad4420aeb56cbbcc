package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	kerrors "github.com/PolarWolf314/dotenvage/internal/errors"
)

// Entry is one NAME=value assignment.
type Entry struct {
	Name  string
	Value string
	Line  int
}

// Warning describes a line that was skipped because it could not be parsed.
type Warning struct {
	Path   string
	Line   int
	Reason string
}

func (w Warning) String() string {
	if w.Path == "" {
		return fmt.Sprintf("line %d: %s", w.Line, w.Reason)
	}
	return fmt.Sprintf("%s:%d: %s", w.Path, w.Line, w.Reason)
}

// Err returns the warning as an error wrapping ErrMalformedEntry.
func (w Warning) Err() error {
	return fmt.Errorf("%w: %s", kerrors.ErrMalformedEntry, w.String())
}

// File is the parsed content of one env file, entries in source order.
type File struct {
	Path     string
	Entries  []Entry
	Warnings []Warning
}

// Get returns the last value assigned to name.
func (f *File) Get(name string) (string, bool) {
	for i := len(f.Entries) - 1; i >= 0; i-- {
		if f.Entries[i].Name == name {
			return f.Entries[i].Value, true
		}
	}
	return "", false
}

// Names returns each assigned name once, in first-assignment order.
func (f *File) Names() []string {
	seen := make(map[string]bool, len(f.Entries))
	var names []string
	for _, e := range f.Entries {
		if !seen[e.Name] {
			seen[e.Name] = true
			names = append(names, e.Name)
		}
	}
	return names
}

// ReadFile parses the env file at path. A missing file yields an error
// satisfying errors.Is(err, fs.ErrNotExist); other read failures wrap
// ErrFileRead.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, readError(path, err)
	}
	f := Parse(data)
	f.setPath(path)
	return f, nil
}

// ReadFS is ReadFile over an fs.FS.
func ReadFS(fsys fs.FS, name string) (*File, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, readError(name, err)
	}
	f := Parse(data)
	f.setPath(name)
	return f, nil
}

func readError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", kerrors.ErrFileRead, path, err)
}

func (f *File) setPath(path string) {
	f.Path = path
	for i := range f.Warnings {
		f.Warnings[i].Path = path
	}
}

// Parse reads dotenv content. Blank lines and # comments are ignored, an
// optional "export " prefix is accepted, and values may be bare, single
// quoted (literal) or double quoted (with backslash escapes). Lines that
// cannot be parsed are recorded as warnings and skipped.
func Parse(data []byte) *File {
	content := strings.TrimPrefix(string(data), "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")

	f := &File{}
	for i, raw := range strings.Split(content, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if rest, ok := strings.CutPrefix(line, "export "); ok {
			line = strings.TrimSpace(rest)
		}

		name, rest, ok := strings.Cut(line, "=")
		if !ok {
			f.Warnings = append(f.Warnings, Warning{Line: lineNo, Reason: "missing '='"})
			continue
		}

		name = strings.TrimSpace(name)
		if !ValidName(name) {
			f.Warnings = append(f.Warnings, Warning{Line: lineNo, Reason: fmt.Sprintf("invalid variable name %q", name)})
			continue
		}

		value, err := parseValue(strings.TrimSpace(rest))
		if err != nil {
			f.Warnings = append(f.Warnings, Warning{Line: lineNo, Reason: fmt.Sprintf("%s: %v", name, err)})
			continue
		}

		f.Entries = append(f.Entries, Entry{Name: name, Value: value, Line: lineNo})
	}
	return f
}

// ValidName reports whether name is usable as an environment variable:
// a letter or underscore followed by letters, digits, underscores or dots.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z'):
		case i > 0 && ((r >= '0' && r <= '9') || r == '.'):
		default:
			return false
		}
	}
	return true
}

func parseValue(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}

	switch raw[0] {
	case '"':
		return parseDoubleQuoted(raw)
	case '\'':
		end := strings.IndexByte(raw[1:], '\'')
		if end < 0 {
			return "", errors.New("unterminated single quote")
		}
		return raw[1 : end+1], nil
	}

	if idx := strings.Index(raw, " #"); idx >= 0 {
		raw = raw[:idx]
	}
	return strings.TrimSpace(raw), nil
}

func parseDoubleQuoted(raw string) (string, error) {
	var b strings.Builder
	for i := 1; i < len(raw); i++ {
		c := raw[i]
		switch c {
		case '"':
			return b.String(), nil
		case '\\':
			if i+1 >= len(raw) {
				return "", errors.New("unterminated double quote")
			}
			i++
			switch raw[i] {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '\\', '"', '\'', '$', '!', '`':
				b.WriteByte(raw[i])
			default:
				b.WriteByte('\\')
				b.WriteByte(raw[i])
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", errors.New("unterminated double quote")
}
