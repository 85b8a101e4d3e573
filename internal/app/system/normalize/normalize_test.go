package normalize_test

import (
	"testing"

	"github.com/dalemusser/taskhub/internal/app/system/normalize"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"User@Example.COM", "user@example.com"},
		{"  padded@example.com  ", "padded@example.com"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalize.Email(tt.in); got != tt.want {
			t.Errorf("Email(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Ada   Lovelace ", "Ada Lovelace"},
		{"Single", "Single"},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := normalize.Name(tt.in); got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUsername(t *testing.T) {
	if got := normalize.Username(" ada "); got != "ada" {
		t.Errorf("Username: got %q, want %q", got, "ada")
	}
}
