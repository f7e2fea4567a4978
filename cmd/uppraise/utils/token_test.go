package utils

import (
	"errors"
	"testing"
)

func stubTerminal(t *testing.T, terminal bool, input string, err error) {
	t.Helper()
	origIsTerminal, origRead, origFd := isTerminal, readPassword, stdinFd
	t.Cleanup(func() { isTerminal, readPassword, stdinFd = origIsTerminal, origRead, origFd })

	stdinFd = func() int { return 0 }
	isTerminal = func(int) bool { return terminal }
	readPassword = func(int) ([]byte, error) { return []byte(input), err }
}

func TestResolveToken(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		terminal bool
		input    string
		readErr  error
		want     string
		wantErr  error
	}{
		{name: "flag value wins", token: " abc ", want: "abc"},
		{name: "prompted", terminal: true, input: "typed\n", want: "typed"},
		{name: "not a terminal", terminal: false, wantErr: ErrNoToken},
		{name: "empty input", terminal: true, input: "  ", wantErr: ErrNoToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubTerminal(t, tt.terminal, tt.input, tt.readErr)

			got, err := ResolveToken(tt.token)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ResolveToken() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ResolveToken() = %q, %v, want %q", got, err, tt.want)
			}
		})
	}
}

func TestResolveTokenReadError(t *testing.T) {
	stubTerminal(t, true, "", errors.New("tty gone"))

	if _, err := ResolveToken(""); err == nil {
		t.Error("ResolveToken() expected error")
	}
}
