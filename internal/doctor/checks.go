package doctor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ksteinfeldt/gitid/internal/hook"
	"github.com/ksteinfeldt/gitid/internal/identity"
)

// StoreCheck verifies the identity store exists and holds usable records.
type StoreCheck struct {
	BaseCheck
}

// NewStoreCheck creates a new store check.
func NewStoreCheck() *StoreCheck {
	return &StoreCheck{
		BaseCheck: BaseCheck{
			CheckName:        "identity-store",
			CheckDescription: "Verify the identity store is provisioned",
		},
	}
}

// Run checks the store file.
func (c *StoreCheck) Run(ctx *CheckContext) *CheckResult {
	records, err := ctx.Store.Load()
	if err != nil {
		if errors.Is(err, identity.ErrStoreNotFound) {
			return &CheckResult{
				Name:    c.Name(),
				Status:  StatusError,
				Message: "No identity store at " + ctx.Store.Path(),
				Details: []string{"Every commit will be blocked until identities are added"},
				FixHint: "Run 'gitid setup'",
			}
		}
		return &CheckResult{Name: c.Name(), Status: StatusError, Message: err.Error()}
	}

	if len(records) == 0 {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusError,
			Message: "Identity store has no usable records",
			FixHint: "Run 'gitid setup --reset'",
		}
	}

	skipped, err := ctx.Store.Malformed()
	if err == nil && skipped > 0 {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: fmt.Sprintf("%d identities, %d malformed line(s) ignored", len(records), skipped),
			Details: []string{"Lines need four ':'-separated fields: ordinal:name:email:label"},
			FixHint: "Edit " + ctx.Store.Path(),
		}
	}

	return &CheckResult{
		Name:    c.Name(),
		Status:  StatusOK,
		Message: fmt.Sprintf("%d identities", len(records)),
	}
}

// HookCheck verifies the commit hooks carry the gitid section.
type HookCheck struct {
	BaseCheck
}

// NewHookCheck creates a new hook check.
func NewHookCheck() *HookCheck {
	return &HookCheck{
		BaseCheck: BaseCheck{
			CheckName:        "commit-hook",
			CheckDescription: "Verify the " + strings.Join(hook.Names, " and ") + " hooks run gitid",
		},
	}
}

// Run checks the hook files.
func (c *HookCheck) Run(ctx *CheckContext) *CheckResult {
	var missing []string
	for _, name := range hook.Names {
		if !hook.IsInstalled(ctx.HooksDir, name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		res := &CheckResult{
			Name:    c.Name(),
			Status:  StatusError,
			Message: "Not installed in " + ctx.HooksDir + ": " + strings.Join(missing, ", "),
			FixHint: "Run 'gitid hook install' or 'gitid doctor --fix'",
		}
		if len(missing) < len(hook.Names) {
			res.Details = []string{"Without post-commit the chosen identity only applies from the next commit"}
		}
		return res
	}
	return &CheckResult{Name: c.Name(), Status: StatusOK, Message: "Installed in " + ctx.HooksDir}
}

// Fix installs the hooks.
func (c *HookCheck) Fix(ctx *CheckContext) error {
	_, err := hook.Install(ctx.HooksDir, ctx.Binary)
	return err
}

// HooksPathCheck verifies git's global core.hooksPath points at the hooks
// directory, so the hook runs in every repository.
type HooksPathCheck struct {
	BaseCheck
}

// NewHooksPathCheck creates a new hooks path check.
func NewHooksPathCheck() *HooksPathCheck {
	return &HooksPathCheck{
		BaseCheck: BaseCheck{
			CheckName:        "hooks-path",
			CheckDescription: "Verify core.hooksPath points at the gitid hooks directory",
		},
	}
}

// Run checks the global git config.
func (c *HooksPathCheck) Run(ctx *CheckContext) *CheckResult {
	got, err := ctx.Git.GlobalHooksPath(ctx.Ctx)
	if err != nil {
		return &CheckResult{Name: c.Name(), Status: StatusError, Message: err.Error()}
	}
	if got == "" {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusError,
			Message: "core.hooksPath is not set",
			FixHint: "Run 'gitid hook install' or 'gitid doctor --fix'",
		}
	}
	if filepath.Clean(got) != filepath.Clean(ctx.HooksDir) {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: "core.hooksPath points elsewhere: " + got,
			Details: []string{"Expected " + ctx.HooksDir},
			FixHint: "Run 'gitid doctor --fix' to repoint it",
		}
	}
	return &CheckResult{Name: c.Name(), Status: StatusOK, Message: got}
}

// Fix points core.hooksPath at the hooks directory.
func (c *HooksPathCheck) Fix(ctx *CheckContext) error {
	return ctx.Git.SetGlobalHooksPath(ctx.Ctx, ctx.HooksDir)
}
