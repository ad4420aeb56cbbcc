package utils

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitAssignment(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantName  string
		wantValue string
		wantOK    bool
		wantErr   bool
	}{
		{"WithValue", "API_KEY=abc", "API_KEY", "abc", true, false},
		{"EmptyValue", "EMPTY=", "EMPTY", "", true, false},
		{"ValueWithEquals", "URL=a=b", "URL", "a=b", true, false},
		{"NameOnly", "TOKEN", "TOKEN", "", false, false},
		{"InvalidName", "1BAD=x", "", "", false, true},
		{"EmptyName", "=x", "", "", false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			name, value, ok, err := SplitAssignment(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("SplitAssignment(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if name != tc.wantName || value != tc.wantValue || ok != tc.wantOK {
				t.Errorf("SplitAssignment(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tc.input, name, value, ok, tc.wantName, tc.wantValue, tc.wantOK)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList([]string{"A,B", " C ", "", "D,,"})
	want := []string{"A", "B", "C", "D"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitList() = %v, want %v", got, want)
	}
	if SplitList(nil) != nil {
		t.Error("SplitList(nil) should be nil")
	}
}

func TestReadValue(t *testing.T) {
	tests := map[string]string{
		"secret\n":   "secret",
		"secret\r\n": "secret",
		"secret":     "secret",
		"a\nb\n":     "a\nb",
		"":           "",
	}
	for input, want := range tests {
		got, err := ReadValue(strings.NewReader(input))
		if err != nil {
			t.Fatalf("ReadValue(%q) failed: %v", input, err)
		}
		if got != want {
			t.Errorf("ReadValue(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestFormatPaths(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	got := FormatPaths([]string{".env"})
	if got != "\n    - .env\n" {
		t.Errorf("FormatPaths() = %q", got)
	}
}
