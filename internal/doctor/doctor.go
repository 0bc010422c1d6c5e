// Package doctor checks that gitid is provisioned and wired into git.
package doctor

import (
	"context"

	"github.com/ksteinfeldt/gitid/internal/git"
	"github.com/ksteinfeldt/gitid/internal/identity"
)

// Status is the outcome of a check.
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWarning:
		return "warning"
	default:
		return "error"
	}
}

// CheckContext carries what checks inspect.
type CheckContext struct {
	Ctx      context.Context
	Store    *identity.Store
	Git      *git.Client
	HooksDir string

	// Binary is the gitid executable the hook should run.
	Binary string
}

// CheckResult reports one check.
type CheckResult struct {
	Name    string
	Status  Status
	Message string
	Details []string
	FixHint string
}

// Check is a single health check.
type Check interface {
	Name() string
	Description() string
	Run(ctx *CheckContext) *CheckResult
}

// Fixer is a Check that can repair what it reports.
type Fixer interface {
	Check
	Fix(ctx *CheckContext) error
}

// BaseCheck provides Name and Description.
type BaseCheck struct {
	CheckName        string
	CheckDescription string
}

// Name returns the check name.
func (b BaseCheck) Name() string { return b.CheckName }

// Description returns the check description.
func (b BaseCheck) Description() string { return b.CheckDescription }

// DefaultChecks returns every check in display order.
func DefaultChecks() []Check {
	return []Check{
		NewStoreCheck(),
		NewHookCheck(),
		NewHooksPathCheck(),
	}
}

// Run runs checks in order. With fix set, failing Fixers are repaired and
// re-run.
func Run(ctx *CheckContext, checks []Check, fix bool) []*CheckResult {
	results := make([]*CheckResult, 0, len(checks))
	for _, c := range checks {
		res := c.Run(ctx)
		if fix && res.Status != StatusOK {
			if f, ok := c.(Fixer); ok {
				if err := f.Fix(ctx); err != nil {
					res.Details = append(res.Details, "fix failed: "+err.Error())
				} else {
					res = c.Run(ctx)
				}
			}
		}
		results = append(results, res)
	}
	return results
}
