// Package style holds the lipgloss styles gitid prints with. Hook output
// shares the terminal with git's own messages, so prefixes stay short.
package style

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ANSI palette.
const (
	green  = lipgloss.Color("10")
	yellow = lipgloss.Color("11")
	red    = lipgloss.Color("9")
	blue   = lipgloss.Color("12")
	gray   = lipgloss.Color("8")
)

var (
	// Success marks an applied, added or installed item.
	Success = lipgloss.NewStyle().Foreground(green).Bold(true)

	// Warning marks rejected input and kept-after-failure notices.
	Warning = lipgloss.NewStyle().Foreground(yellow).Bold(true)

	// Error marks failures and missing setup.
	Error = lipgloss.NewStyle().Foreground(red).Bold(true)

	// Label renders identity labels.
	Label = lipgloss.NewStyle().Foreground(blue)

	// Dim renders secondary text such as emails and hints.
	Dim = lipgloss.NewStyle().Foreground(gray)

	// Bold renders the current-identity header.
	Bold = lipgloss.NewStyle().Bold(true)

	// Title is the picker header.
	Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("62")).
		Padding(0, 1)

	SuccessPrefix = Success.Render("✓")
	WarningPrefix = Warning.Render("⚠")
	ErrorPrefix   = Error.Render("✗")

	// KeepPrefix introduces "keeping current identity" lines.
	KeepPrefix = Dim.Render("→")

	// HookPrefix tags lines printed from inside a git hook, where output is
	// interleaved with git's.
	HookPrefix = Dim.Render("gitid:")

	// CurrentMarker flags the identity the repository currently uses.
	CurrentMarker = Success.Render("*")
)

// Identity renders "Name <email>" with the email dimmed.
func Identity(name, email string) string {
	return name + " " + Dim.Render(fmt.Sprintf("<%s>", email))
}
