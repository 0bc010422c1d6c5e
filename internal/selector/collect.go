package selector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/ksteinfeldt/gitid/internal/identity"
	"github.com/ksteinfeldt/gitid/internal/style"
)

// ErrNothingCollected indicates a collection run ended without adding a record.
var ErrNothingCollected = errors.New("no identities were added")

// Prompts used by the collection form.
const (
	LabelPrompt   = "Label (e.g. Work): "
	NamePrompt    = "Full name: "
	EmailPrompt   = "Email: "
	AnotherPrompt = "Add another identity? (a = add, Enter = done): "
)

// Collector adds identities to the store through a sequential form.
type Collector struct {
	store  *identity.Store
	prompt Prompter
	log    *zap.Logger
}

// NewCollector creates a Collector. A nil logger disables logging.
func NewCollector(store *identity.Store, prompt Prompter, log *zap.Logger) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{store: store, prompt: prompt, log: log}
}

// field re-prompts until validate accepts the input.
func (c *Collector) field(ctx context.Context, prompt string, validate func(string) error) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		line, err := c.prompt.ReadLine(prompt)
		if err != nil {
			return "", err
		}
		value := norm.NFC.String(strings.TrimSpace(line))
		if err := validate(value); err != nil {
			fmt.Fprintf(c.prompt.Writer(), "%s %v\n", style.WarningPrefix, err)
			c.log.Debug("field rejected", zap.String("prompt", prompt), zap.Error(err))
			continue
		}
		return value, nil
	}
}

// CollectOne reads label, full name and email, then appends the record.
func (c *Collector) CollectOne(ctx context.Context) (identity.Record, error) {
	label, err := c.field(ctx, LabelPrompt, identity.ValidateText)
	if err != nil {
		return identity.Record{}, err
	}
	name, err := c.field(ctx, NamePrompt, identity.ValidateText)
	if err != nil {
		return identity.Record{}, err
	}
	email, err := c.field(ctx, EmailPrompt, identity.ValidateEmail)
	if err != nil {
		return identity.Record{}, err
	}

	rec, err := c.store.Append(identity.Record{FullName: name, Email: email, Label: label})
	if err != nil {
		return identity.Record{}, err
	}
	fmt.Fprintf(c.prompt.Writer(), "%s Added %s\n", style.SuccessPrefix, rec)
	return rec, nil
}

// CollectAll adds identities until the operator declines another one.
// Input ending mid-form stops collection; ErrNothingCollected is returned
// when no record was added.
func (c *Collector) CollectAll(ctx context.Context) ([]identity.Record, error) {
	var added []identity.Record
	for {
		rec, err := c.CollectOne(ctx)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return added, err
			}
			c.log.Debug("input closed during collection")
			break
		}
		added = append(added, rec)

		again, err := c.prompt.ReadLine(AnotherPrompt)
		if err != nil || !strings.EqualFold(strings.TrimSpace(again), "a") {
			break
		}
	}

	if len(added) == 0 {
		return nil, ErrNothingCollected
	}
	return added, nil
}
