package secrets

import "testing"

func TestShouldEncrypt(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"API_KEY", true},
		{"AUTH_SECRET", true},
		{"AUTH_TOKEN", true},
		{"DB_PASSWORD", true},
		{"PRIVATE_KEY", true},
		{"STRIPE_SECRET_KEY", true},
		{"GITHUBTOKEN", true},
		{"APIKEY", true},
		{"GOOGLE_CREDENTIALS", true},
		{"db_password", true},
		{"NEXTAUTH_SECRET", true},

		{"DATABASE_URL", false},
		{"APP_NAME", false},
		{"DEBUG", false},
		{"PORT", false},
		{"NODE_ENV", false},
		{"LOG_LEVEL", false},
		{"AGE_KEY_NAME", false},
		{"MYAPP_AGE_KEY_NAME", false},
		{"PUBLIC_KEY", false},
		{"SERVER_PUBLIC_KEY", false},
		{"NEXT_PUBLIC_API_KEY", false},
		{"PUBLIC_STRIPE_KEY", false},
		{"AUTHOR", false},
		{"KEYBOARD_LAYOUT", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldEncrypt(tt.name); got != tt.want {
				t.Errorf("ShouldEncrypt(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
