package hook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Hooks gitid manages. git resolves the author before any hook runs, so
// pre-commit shows the menu and records the choice, and post-commit amends
// the new commit's author when the choice differs.
const (
	PreCommit  = "pre-commit"
	PostCommit = "post-commit"
)

// Names lists the managed hooks in install order.
var Names = []string{PreCommit, PostCommit}

const shebang = "#!/bin/sh\n"

// Section returns the managed block for the named hook. The pre-commit block
// propagates a non-zero exit status so a missing store blocks the commit.
func Section(name, binary string) string {
	var body string
	switch name {
	case PreCommit:
		body = quote(binary) + " hook run\n" +
			"_gitid_exit=$?; if [ $_gitid_exit -ne 0 ]; then exit $_gitid_exit; fi\n"
	default:
		body = quote(binary) + " hook " + name + "\n"
	}
	return SectionBegin + "\n" +
		"# Managed by gitid. Do not remove these markers.\n" +
		body +
		SectionEnd + "\n"
}

// quote single-quotes s for sh, forward-slashing Windows paths so Git for
// Windows' sh can run them.
func quote(s string) string {
	s = filepath.ToSlash(s)
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Path returns the named hook's file path inside dir.
func Path(dir, name string) string {
	return filepath.Join(dir, name)
}

// DefaultDir returns the hooks directory gitid manages under appDir.
func DefaultDir(appDir string) string {
	return filepath.Join(appDir, "hooks")
}

// Install writes or merges the managed section into each hook file in dir and
// makes them executable. Reinstalling replaces the sections in place. Returns
// the hook paths written.
func Install(dir, binary string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating hooks directory: %w", err)
	}

	paths := make([]string, 0, len(Names))
	for _, name := range Names {
		path, err := installOne(dir, name, binary)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func installOne(dir, name, binary string) (string, error) {
	path := Path(dir, name)
	existing, err := os.ReadFile(path) //nolint:gosec // G304: path inside the hooks directory
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("reading %s hook: %w", name, err)
	}

	content := string(existing)
	if content == "" {
		content = shebang
	}
	content = InjectSection(content, Section(name, binary))

	if err := os.WriteFile(path, []byte(content), 0755); err != nil { //nolint:gosec // G306: hooks must be executable
		return "", fmt.Errorf("writing %s hook: %w", name, err)
	}
	if err := os.Chmod(path, 0755); err != nil { //nolint:gosec // G302: hooks must be executable
		return "", fmt.Errorf("making %s hook executable: %w", name, err)
	}
	return path, nil
}

// Uninstall removes the managed sections. A hook file left with nothing but
// the shebang is deleted. Returns false if no section was installed.
func Uninstall(dir string) (bool, error) {
	removed := false
	for _, name := range Names {
		ok, err := uninstallOne(dir, name)
		if ok {
			removed = true
		}
		if err != nil {
			return removed, err
		}
	}
	return removed, nil
}

func uninstallOne(dir, name string) (bool, error) {
	path := Path(dir, name)
	data, err := os.ReadFile(path) //nolint:gosec // G304: path inside the hooks directory
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s hook: %w", name, err)
	}

	content, found := RemoveSection(string(data))
	if !found {
		return false, nil
	}

	if strings.TrimSpace(strings.TrimPrefix(content, shebang)) == "" {
		if err := os.Remove(path); err != nil {
			return true, fmt.Errorf("removing %s hook: %w", name, err)
		}
		return true, nil
	}

	if err := os.WriteFile(path, []byte(content), 0755); err != nil { //nolint:gosec // G306: hooks must be executable
		return true, fmt.Errorf("writing %s hook: %w", name, err)
	}
	return true, nil
}

// IsInstalled reports whether the named hook file in dir carries the managed
// section.
func IsInstalled(dir, name string) bool {
	data, err := os.ReadFile(Path(dir, name)) //nolint:gosec // G304: path inside the hooks directory
	if err != nil {
		return false
	}
	return HasSection(string(data))
}

// Installed reports whether every managed hook is installed in dir.
func Installed(dir string) bool {
	for _, name := range Names {
		if !IsInstalled(dir, name) {
			return false
		}
	}
	return true
}
