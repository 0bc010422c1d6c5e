// Package gittest provides an in-memory git.CommandRunner for tests.
package gittest

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/ksteinfeldt/gitid/internal/git"
)

// Fake emulates the subset of `git config`, `git rev-parse`, `git log` and
// `git commit --amend` gitid uses.
// Local and global scopes are kept separately; --get resolves local first.
type Fake struct {
	mu sync.Mutex

	Local  map[string]string
	Global map[string]string

	// Root is returned by rev-parse --show-toplevel. Empty means "not a repo".
	Root string

	// GitDir is returned by rev-parse --absolute-git-dir. Empty means "not a repo".
	GitDir string

	// Head is the author of the HEAD commit. Empty means no commits yet.
	Head git.Identity

	// Amends counts commit --amend invocations.
	Amends int

	// Calls records every invocation's args.
	Calls [][]string

	// FailOn makes any invocation whose joined args contain the string fail.
	FailOn string
}

// New creates a Fake inside a repository rooted at root.
func New(root string) *Fake {
	return &Fake{
		Local:  map[string]string{},
		Global: map[string]string{},
		Root:   root,
	}
}

// Run implements git.CommandRunner.
func (f *Fake) Run(_ context.Context, _ string, args ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, append([]string(nil), args...))

	if f.FailOn != "" && strings.Contains(strings.Join(args, " "), f.FailOn) {
		return "", &git.GitError{Args: args, ExitCode: 128, Err: errors.New("exit status 128"), Stderr: "fatal: simulated"}
	}

	if len(args) == 2 && args[0] == "rev-parse" && args[1] == "--show-toplevel" {
		if f.Root == "" {
			return "", exitErr(args, 128)
		}
		return f.Root + "\n", nil
	}
	if len(args) == 2 && args[0] == "rev-parse" && args[1] == "--absolute-git-dir" {
		if f.GitDir == "" {
			return "", exitErr(args, 128)
		}
		return f.GitDir + "\n", nil
	}
	if len(args) > 0 && args[0] == "log" {
		if f.Head == (git.Identity{}) {
			return "", exitErr(args, 128)
		}
		return f.Head.Name + "\n" + f.Head.Email + "\n", nil
	}
	if len(args) > 1 && args[0] == "commit" && args[1] == "--amend" {
		if f.Head == (git.Identity{}) {
			return "", exitErr(args, 128)
		}
		for _, a := range args {
			if author, ok := strings.CutPrefix(a, "--author="); ok {
				name, email, _ := strings.Cut(author, " <")
				f.Head = git.Identity{Name: name, Email: strings.TrimSuffix(email, ">")}
			}
		}
		f.Amends++
		return "", nil
	}
	if len(args) == 0 || args[0] != "config" {
		return "", exitErr(args, 129)
	}

	rest := args[1:]
	scope := ""
	if len(rest) > 0 && (rest[0] == "--local" || rest[0] == "--global") {
		scope = rest[0]
		rest = rest[1:]
	}

	switch {
	case len(rest) == 2 && rest[0] == "--get":
		key := rest[1]
		var (
			v  string
			ok bool
		)
		switch scope {
		case "--local":
			v, ok = f.Local[key]
		case "--global":
			v, ok = f.Global[key]
		default:
			if v, ok = f.Local[key]; !ok {
				v, ok = f.Global[key]
			}
		}
		if !ok {
			return "", exitErr(args, 1)
		}
		return v + "\n", nil
	case len(rest) == 2 && rest[0] == "--unset":
		m := f.scopeMap(scope)
		if _, ok := m[rest[1]]; !ok {
			return "", exitErr(args, 5)
		}
		delete(m, rest[1])
		return "", nil
	case len(rest) == 2:
		f.scopeMap(scope)[rest[0]] = rest[1]
		return "", nil
	}
	return "", exitErr(args, 129)
}

func (f *Fake) scopeMap(scope string) map[string]string {
	if scope == "--global" {
		return f.Global
	}
	return f.Local
}

// Wrote reports whether any call wrote configuration.
func (f *Fake) Wrote() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range f.Calls {
		if len(c) < 2 || c[0] != "config" {
			continue
		}
		if c[1] == "--get" || (len(c) > 2 && c[2] == "--get") {
			continue
		}
		return true
	}
	return false
}

func exitErr(args []string, code int) error {
	return &git.GitError{Args: args, ExitCode: code, Err: errors.New("exit status")}
}
