package utils

import (
	"testing"

	"github.com/google/uuid"
)

// TestNewRunID tests that run IDs are valid and unique
func TestNewRunID(t *testing.T) {
	a := NewRunID()
	b := NewRunID()

	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("NewRunID() = %q is not a UUID: %v", a, err)
	}
	if a == b {
		t.Errorf("NewRunID() returned duplicate IDs %q", a)
	}
}

// TestTruncateID tests short ID formatting
func TestTruncateID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{name: "uuid", id: "0b6f7c1e-8d7a-4c61-9f0e-3a5e2b1c4d5f", want: "0b6f7c1e"},
		{name: "exact length", id: "abcdefgh", want: "abcdefgh"},
		{name: "short", id: "abc", want: "abc"},
		{name: "empty", id: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateID(tt.id); got != tt.want {
				t.Errorf("TruncateID(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}
