// Package identity provides the per-user store of Git commit identities.
package identity

import (
	"fmt"
	"strings"
)

// FieldSeparator delimits the fields of a stored record.
const FieldSeparator = ":"

// fieldCount is the number of fields in a well-formed record line.
const fieldCount = 4

// Record is one commit identity the operator can switch a repository to.
type Record struct {
	// Ordinal is the menu key. It is kept verbatim from the store file so that
	// hand-edited ordinals are matched exactly as written.
	Ordinal string `json:"ordinal" yaml:"ordinal"`

	// FullName becomes user.name.
	FullName string `json:"full_name" yaml:"full_name"`

	// Email becomes user.email.
	Email string `json:"email" yaml:"email"`

	// Label is the display name shown in menus.
	Label string `json:"label" yaml:"label"`
}

// Line returns the record in store format: ordinal:fullName:email:label.
func (r Record) Line() string {
	return strings.Join([]string{r.Ordinal, r.FullName, r.Email, r.Label}, FieldSeparator)
}

// String renders the record the way menus list it.
func (r Record) String() string {
	return fmt.Sprintf("%s) %s (%s)", r.Ordinal, r.Label, r.Email)
}

// ParseLine parses one store line. The boolean is false for lines with fewer
// than four fields. Anything after the third separator belongs to the label.
func ParseLine(line string) (Record, bool) {
	line = strings.TrimRight(line, "\r\n")
	parts := strings.SplitN(line, FieldSeparator, fieldCount)
	if len(parts) < fieldCount {
		return Record{}, false
	}
	return Record{
		Ordinal:  parts[0],
		FullName: parts[1],
		Email:    parts[2],
		Label:    parts[3],
	}, true
}
