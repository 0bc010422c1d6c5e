package identity

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Export formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Export writes records to w. The json format emits one object per line.
func Export(w io.Writer, records []Record, format string) error {
	switch format {
	case FormatText, "":
		for _, r := range records {
			if _, err := fmt.Fprintln(w, r.Line()); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		for _, r := range records {
			if err := enc.Encode(r); err != nil {
				return fmt.Errorf("encoding record %s: %w", r.Ordinal, err)
			}
		}
		return nil
	case FormatYAML:
		if records == nil {
			records = []Record{}
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encoding identities: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format '%s': must be text, json, or yaml", format)
	}
}
