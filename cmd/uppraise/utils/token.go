package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNoToken is returned when no token is configured and none can be prompted for
var ErrNoToken = errors.New("no access token - set --token or UPPRAISAL_TOKEN")

// Swapped in tests
var (
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
	stdinFd      = func() int { return int(os.Stdin.Fd()) }
)

// ResolveToken returns token when set, otherwise prompts for it on the
// terminal without echo.
func ResolveToken(token string) (string, error) {
	if token = strings.TrimSpace(token); token != "" {
		return token, nil
	}

	fd := stdinFd()
	if !isTerminal(fd) {
		return "", ErrNoToken
	}

	fmt.Fprint(os.Stderr, "LMS access token: ")
	b, err := readPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read access token: %w", err)
	}

	token = strings.TrimSpace(string(b))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}
