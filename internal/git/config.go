package git

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Identity is the commit author identity git is configured with.
type Identity struct {
	Name  string
	Email string
}

// String formats the identity the way git prints authors.
func (id Identity) String() string {
	return fmt.Sprintf("%s <%s>", id.Name, id.Email)
}

// Client reads and writes git configuration for one working directory.
type Client struct {
	runner CommandRunner
	dir    string
}

// NewClient creates a Client running git in dir. An empty dir means the
// process working directory.
func NewClient(runner CommandRunner, dir string) *Client {
	if runner == nil {
		runner = NewExecRunner()
	}
	return &Client{runner: runner, dir: dir}
}

// get reads a config key. An unset key (exit status 1) yields "".
func (c *Client) get(ctx context.Context, args ...string) (string, error) {
	out, err := c.runner.Run(ctx, c.dir, append([]string{"config"}, args...)...)
	if err != nil {
		var gerr *GitError
		if errors.As(err, &gerr) && gerr.ExitCode == 1 {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// CurrentIdentity returns the effective user.name and user.email for the
// repository (local values falling back to global ones, as git resolves them).
func (c *Client) CurrentIdentity(ctx context.Context) (Identity, error) {
	name, err := c.get(ctx, "--get", "user.name")
	if err != nil {
		return Identity{}, fmt.Errorf("reading user.name: %w", err)
	}
	email, err := c.get(ctx, "--get", "user.email")
	if err != nil {
		return Identity{}, fmt.Errorf("reading user.email: %w", err)
	}
	return Identity{Name: name, Email: email}, nil
}

// SetLocalIdentity writes user.name and user.email to the repository-local
// configuration. Global configuration is never touched.
func (c *Client) SetLocalIdentity(ctx context.Context, id Identity) error {
	if _, err := c.runner.Run(ctx, c.dir, "config", "--local", "user.name", id.Name); err != nil {
		return fmt.Errorf("setting user.name: %w", err)
	}
	if _, err := c.runner.Run(ctx, c.dir, "config", "--local", "user.email", id.Email); err != nil {
		return fmt.Errorf("setting user.email: %w", err)
	}
	return nil
}

// RepoRoot returns the top-level directory of the enclosing repository.
func (c *Client) RepoRoot(ctx context.Context) (string, error) {
	out, err := c.runner.Run(ctx, c.dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// GitDir returns the absolute git directory of the enclosing repository.
func (c *Client) GitDir(ctx context.Context) (string, error) {
	out, err := c.runner.Run(ctx, c.dir, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// HeadAuthor returns the author recorded on the HEAD commit.
func (c *Client) HeadAuthor(ctx context.Context) (Identity, error) {
	out, err := c.runner.Run(ctx, c.dir, "log", "-1", "--format=%an%n%ae")
	if err != nil {
		return Identity{}, fmt.Errorf("reading HEAD author: %w", err)
	}
	name, email, ok := strings.Cut(strings.TrimRight(out, "\r\n"), "\n")
	if !ok {
		return Identity{}, fmt.Errorf("reading HEAD author: unexpected output %q", out)
	}
	return Identity{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email)}, nil
}

// AmendAuthor rewrites the HEAD commit's author to id, keeping its tree,
// message and author date. The committer is re-read from configuration.
// pre-commit and commit-msg hooks are skipped.
func (c *Client) AmendAuthor(ctx context.Context, id Identity) error {
	_, err := c.runner.Run(ctx, c.dir, "commit", "--amend", "--no-edit", "--no-verify", "--allow-empty", "--author="+id.String())
	if err != nil {
		return fmt.Errorf("amending HEAD author: %w", err)
	}
	return nil
}

// GlobalHooksPath returns the global core.hooksPath, or "" when unset.
func (c *Client) GlobalHooksPath(ctx context.Context) (string, error) {
	return c.get(ctx, "--global", "--get", "core.hooksPath")
}

// SetGlobalHooksPath points every repository of the user at path for hooks.
func (c *Client) SetGlobalHooksPath(ctx context.Context, path string) error {
	if _, err := c.runner.Run(ctx, c.dir, "config", "--global", "core.hooksPath", path); err != nil {
		return fmt.Errorf("setting core.hooksPath: %w", err)
	}
	return nil
}

// UnsetGlobalHooksPath removes the global core.hooksPath. An already unset
// key is not an error.
func (c *Client) UnsetGlobalHooksPath(ctx context.Context) error {
	_, err := c.runner.Run(ctx, c.dir, "config", "--global", "--unset", "core.hooksPath")
	if err != nil {
		var gerr *GitError
		if errors.As(err, &gerr) && gerr.ExitCode == 5 {
			return nil
		}
		return fmt.Errorf("unsetting core.hooksPath: %w", err)
	}
	return nil
}
