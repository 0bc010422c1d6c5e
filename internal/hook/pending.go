package hook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ksteinfeldt/gitid/internal/git"
)

// PendingFile is written to the git directory when pre-commit applies an
// identity and consumed by post-commit.
const PendingFile = "gitid-applied"

// WritePending records id as the identity chosen for the commit in progress.
func WritePending(gitDir string, id git.Identity) error {
	data := id.Name + "\n" + id.Email + "\n"
	if err := os.WriteFile(filepath.Join(gitDir, PendingFile), []byte(data), 0644); err != nil { //nolint:gosec // G306: not secret
		return fmt.Errorf("recording chosen identity: %w", err)
	}
	return nil
}

// TakePending reads and removes the recorded identity. ok is false when none
// was recorded.
func TakePending(gitDir string) (id git.Identity, ok bool, err error) {
	path := filepath.Join(gitDir, PendingFile)
	data, err := os.ReadFile(path) //nolint:gosec // G304: path inside the git directory
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return git.Identity{}, false, nil
		}
		return git.Identity{}, false, fmt.Errorf("reading chosen identity: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return git.Identity{}, false, fmt.Errorf("clearing chosen identity: %w", err)
	}

	name, email, found := strings.Cut(strings.TrimRight(string(data), "\r\n"), "\n")
	if !found || name == "" || email == "" {
		return git.Identity{}, false, nil
	}
	return git.Identity{Name: name, Email: strings.TrimSpace(email)}, true, nil
}

// ClearPending removes a recorded identity left by an aborted commit.
func ClearPending(gitDir string) error {
	err := os.Remove(filepath.Join(gitDir, PendingFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clearing chosen identity: %w", err)
	}
	return nil
}
