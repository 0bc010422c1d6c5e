// Package selector implements the commit-time identity menu and the
// interactive form that adds identities to the store.
package selector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/ksteinfeldt/gitid/internal/git"
	"github.com/ksteinfeldt/gitid/internal/identity"
	"github.com/ksteinfeldt/gitid/internal/style"
)

// ChoicePrompt is printed before reading a menu choice.
const ChoicePrompt = "Choice: "

// State is a selector state.
type State int

const (
	// AwaitingChoice shows the menu and reads a choice.
	AwaitingChoice State = iota
	// Applied means a stored identity was written to the repository config.
	Applied
	// Deferred means the current identity was kept.
	Deferred
	// Adding runs the collection form for one new identity.
	Adding
)

func (s State) String() string {
	switch s {
	case AwaitingChoice:
		return "awaiting-choice"
	case Applied:
		return "applied"
	case Deferred:
		return "deferred"
	case Adding:
		return "adding"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Prompter reads operator input one line at a time.
type Prompter interface {
	ReadLine(prompt string) (string, error)
	Writer() io.Writer
}

// Outcome is the terminal state of a selector run.
type Outcome struct {
	State State

	// Record is the applied identity when State is Applied.
	Record identity.Record

	// Err is the failure that forced a Deferred outcome, if any.
	Err error
}

// Selector asks which stored identity the repository should commit as.
type Selector struct {
	store  *identity.Store
	git    *git.Client
	prompt Prompter
	log    *zap.Logger
}

// New creates a Selector. A nil logger disables logging.
func New(store *identity.Store, client *git.Client, prompt Prompter, log *zap.Logger) *Selector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Selector{store: store, git: client, prompt: prompt, log: log}
}

// Classify maps one line of input to the transition it triggers. The matched
// record is returned for Applied.
func Classify(input string, records []identity.Record) (State, identity.Record) {
	switch {
	case input == "":
		return Deferred, identity.Record{}
	case strings.EqualFold(input, "a"):
		return Adding, identity.Record{}
	}
	if rec, ok := identity.Find(records, input); ok {
		return Applied, rec
	}
	return AwaitingChoice, identity.Record{}
}

// Run drives the menu until an identity is applied or the operator keeps the
// current one. Returns identity.ErrStoreNotFound, without touching git, when
// the store has not been provisioned; that and context cancellation are the
// only errors returned. Any other failure keeps the current identity and is
// reported in Outcome.Err. End of input counts as keeping the current identity.
func (s *Selector) Run(ctx context.Context) (Outcome, error) {
	if !s.store.Exists() {
		return Outcome{}, fmt.Errorf("%w: %s", identity.ErrStoreNotFound, s.store.Path())
	}

	w := s.prompt.Writer()
	for {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}

		records, err := s.store.Load()
		if err != nil {
			if errors.Is(err, identity.ErrStoreNotFound) {
				return Outcome{}, err
			}
			return s.keep("reading identity store", err), nil
		}
		current, err := s.git.CurrentIdentity(ctx)
		if err != nil {
			return s.keep("reading current identity", err), nil
		}

		RenderMenu(w, current, records)
		input, err := s.prompt.ReadLine(ChoicePrompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debug("input closed, keeping current identity")
				return Outcome{State: Deferred}, nil
			}
			return s.keep("reading choice", err), nil
		}
		input = strings.TrimSpace(input)

		next, rec := Classify(input, records)
		s.log.Debug("selector transition", zap.String("input", input), zap.Stringer("state", next))

		switch next {
		case Deferred:
			fmt.Fprintf(w, "%s Keeping current identity\n", style.KeepPrefix)
			return Outcome{State: Deferred}, nil

		case Adding:
			added, err := NewCollector(s.store, s.prompt, s.log).CollectOne(ctx)
			if err != nil {
				switch {
				case errors.Is(err, io.EOF):
					return Outcome{State: Deferred}, nil
				case ctx.Err() != nil:
					return Outcome{}, ctx.Err()
				}
				return s.keep("adding identity", err), nil
			}
			s.log.Info("identity added", zap.String("ordinal", added.Ordinal), zap.String("label", added.Label))

		case Applied:
			if err := s.git.SetLocalIdentity(ctx, git.Identity{Name: rec.FullName, Email: rec.Email}); err != nil {
				return s.keep("applying identity", err), nil
			}
			fmt.Fprintf(w, "%s Using identity %s: %s <%s>\n", style.SuccessPrefix, style.Bold.Render(rec.Label), rec.FullName, rec.Email)
			s.log.Info("identity applied", zap.String("ordinal", rec.Ordinal), zap.String("email", rec.Email))
			return Outcome{State: Applied, Record: rec}, nil

		default:
			fmt.Fprintf(w, "%s invalid choice %q\n", style.WarningPrefix, input)
		}
	}
}

// keep reports a failure and ends the run with the current identity kept.
// Only a missing store may block the commit.
func (s *Selector) keep(step string, err error) Outcome {
	s.log.Warn("keeping current identity after failure", zap.String("step", step), zap.Error(err))
	w := s.prompt.Writer()
	fmt.Fprintf(w, "%s %s: %v\n", style.WarningPrefix, step, err)
	fmt.Fprintf(w, "%s Keeping current identity\n", style.KeepPrefix)
	return Outcome{State: Deferred, Err: err}
}
