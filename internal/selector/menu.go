package selector

import (
	"fmt"
	"io"

	"github.com/ksteinfeldt/gitid/internal/git"
	"github.com/ksteinfeldt/gitid/internal/identity"
	"github.com/ksteinfeldt/gitid/internal/style"
)

// Fixed menu options.
const (
	OptionAdd  = "a) Add new identity"
	OptionKeep = "(Enter) Keep current"
)

// CurrentLine describes the active identity, annotated with the label of the
// first stored record sharing its email.
func CurrentLine(current git.Identity, records []identity.Record) string {
	if current.Name == "" && current.Email == "" {
		return "Current identity: (not set)"
	}
	line := fmt.Sprintf("Current identity: %s <%s>", current.Name, current.Email)
	if rec, ok := identity.FindByEmail(records, current.Email); ok {
		line += fmt.Sprintf(" [%s]", rec.Label)
	}
	return line
}

// MenuLines returns one line per record in store order, then the fixed options.
func MenuLines(records []identity.Record) []string {
	lines := make([]string, 0, len(records)+2)
	for _, r := range records {
		lines = append(lines, r.String())
	}
	return append(lines, OptionAdd, OptionKeep)
}

// RenderMenu writes the full menu shown before each prompt.
func RenderMenu(w io.Writer, current git.Identity, records []identity.Record) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, style.Bold.Render(CurrentLine(current, records)))
	for _, line := range MenuLines(records) {
		fmt.Fprintf(w, "  %s\n", line)
	}
}
