package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/PolarWolf314/dotenvage/internal/configs"
)

// Entry is one line of the audit log. Variable values never appear here;
// only names.
type Entry struct {
	Timestamp string `json:"ts"` // RFC3339 with microseconds.
	ID        string `json:"id"`
	Operation string `json:"op"`

	Files     []string `json:"files,omitempty"`      // For encrypt/set.
	Variables []string `json:"variables,omitempty"`  // For encrypt/set.
	KeyPath   string   `json:"key_path,omitempty"`   // For keygen.
	PublicKey string   `json:"public_key,omitempty"` // For keygen.
	KeyName   string   `json:"key_name,omitempty"`   // For keygen --name.
}

// New returns an entry for op with a fresh ID.
func New(op string) Entry {
	return Entry{ID: uuid.NewString(), Operation: op}
}

// LogPath returns the audit log location, or "" when no state directory
// is configured.
func LogPath() string {
	if configs.UserSettings == nil || configs.UserSettings.StateDir == "" {
		return ""
	}
	return filepath.Join(configs.UserSettings.StateDir, "audit.jsonl")
}

// Log appends entry to the audit log. Failures are ignored so that an
// operation never fails because of auditing.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads the audit log. A missing log yields no entries.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data. Malformed lines, such as a partial
// final write, are skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, scanner.Err()
}

// Last returns at most n of the most recent entries, oldest first.
func Last(entries []Entry, n int) []Entry {
	if n <= 0 || len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}
