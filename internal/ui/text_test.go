package ui

import (
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withColor(t *testing.T, enabled bool) {
	t.Helper()
	original := color.NoColor
	color.NoColor = !enabled
	if enabled {
		// Registers restoration, then clears it for the test body.
		t.Setenv("NO_COLOR", "")
		os.Unsetenv("NO_COLOR")
	}
	t.Cleanup(func() { color.NoColor = original })
}

func TestFormatterWithColor(t *testing.T) {
	withColor(t, true)

	result := Code.Sprint("dotenvage keygen")
	if strings.Contains(result, "`") {
		t.Errorf("Code.Sprint should not contain backticks when color is enabled, got: %s", result)
	}
	if !strings.Contains(result, "\x1b[") {
		t.Errorf("Code.Sprint should contain ANSI escape codes when color is enabled, got: %s", result)
	}
}

func TestFormatterWithNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name      string
		formatter Formatter
		input     string
		want      string
	}{
		{"Code adds backticks", Code, "dotenvage dump", "`dotenvage dump`"},
		{"Path has no decoration", Path, ".env.local", ".env.local"},
		{"Name has no decoration", Name, "API_KEY", "API_KEY"},
		{"Value adds quotes", Value, "ab****yz", "'ab****yz'"},
		{"Dimension adds brackets", Dimension, "production", "[production]"},
		{"Success has no decoration", Success, "✓", "✓"},
		{"Error has no decoration", Error, "✗", "✗"},
		{"Warning has no decoration", Warning, "⚠", "⚠"},
		{"Info has no decoration", Info, "→", "→"},
		{"Muted adds parentheses", Muted, "encrypted", "(encrypted)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.formatter.Sprint(tt.input)
			if got != tt.want {
				t.Errorf("Sprint(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatterSprintf(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if got := Dimension.Sprintf("%s=%s", "os", "linux"); got != "[os=linux]" {
		t.Errorf("Dimension.Sprintf() = %q", got)
	}
}

func TestNoColorFunction(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if !noColor() {
		t.Error("noColor() should return true when NO_COLOR is set")
	}

	withColor(t, false)
	if !noColor() {
		t.Error("noColor() should return true when color.NoColor is true")
	}
}

func TestEnsureNewline(t *testing.T) {
	if EnsureNewline("a") != "a\n" || EnsureNewline("a\n") != "a\n" || EnsureNewline("") != "\n" {
		t.Error("EnsureNewline did not normalize trailing newline")
	}
}

func TestList(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	got := List(Path, []string{".env", ".env.local"})
	want := "    - .env\n    - .env.local\n"
	if got != want {
		t.Errorf("List() = %q, want %q", got, want)
	}
}

func TestColorEnabled(t *testing.T) {
	withColor(t, true)
	if !ColorEnabled() {
		t.Error("ColorEnabled() should be true when color is forced on")
	}

	t.Setenv("NO_COLOR", "1")
	if ColorEnabled() {
		t.Error("ColorEnabled() should be false when NO_COLOR is set")
	}
}
