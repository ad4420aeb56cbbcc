package envfile

import (
	"testing"
	"testing/fstest"
)

func TestIndexResolve(t *testing.T) {
	fsys := fstest.MapFS{
		".env":           {Data: []byte("A=1")},
		".ENV.PROD":      {Data: []byte("B=2")},
		".env.Staging":   {Data: []byte("C=3")},
		".env.staging":   {Data: []byte("D=4")},
		"dir/.env.local": {Data: []byte("E=5")},
	}

	ix, err := NewIndex(fsys)
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}

	tests := []struct {
		candidate string
		want      string
		ok        bool
	}{
		{".env", ".env", true},
		{".env.prod", ".ENV.PROD", true},
		{".env.staging", ".env.staging", true},
		{".env.local", "", false},
		{".env.missing", "", false},
	}
	for _, tt := range tests {
		got, ok := ix.Resolve(tt.candidate)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Resolve(%q) = %q, %v; want %q, %v", tt.candidate, got, ok, tt.want, tt.ok)
		}
	}
}
