// Package hook installs the commit hooks that run the identity selector and
// carry its choice onto the commit being made.
package hook

import "strings"

// Section markers. Only content between them is managed by gitid; anything
// else in the hook file belongs to the user and is preserved.
const (
	SectionBegin = "# --- BEGIN GITID ---"
	SectionEnd   = "# --- END GITID ---"
)

// InjectSection merges section into existing content. If markers are present
// only the content between them is replaced, otherwise section is appended.
// Injecting the same section twice yields the same text.
func InjectSection(existing, section string) string {
	beginIdx := strings.Index(existing, SectionBegin)
	endIdx := strings.Index(existing, SectionEnd)

	if beginIdx != -1 && endIdx != -1 && beginIdx < endIdx {
		lineStart := lineStartOf(existing, beginIdx)
		return existing[:lineStart] + section + existing[endOfEndMarker(existing, endIdx):]
	}

	if existing == "" {
		return section
	}
	result := existing
	if !strings.HasSuffix(result, "\n") {
		result += "\n"
	}
	return result + "\n" + section
}

// RemoveSection removes the managed section. The boolean reports whether a
// section was found.
func RemoveSection(content string) (string, bool) {
	beginIdx := strings.Index(content, SectionBegin)
	endIdx := strings.Index(content, SectionEnd)

	if beginIdx == -1 || endIdx == -1 || beginIdx > endIdx {
		return content, false
	}

	lineStart := lineStartOf(content, beginIdx)
	end := endOfEndMarker(content, endIdx)

	// Also consume the blank line InjectSection put before the section.
	if lineStart >= 2 && content[lineStart-1] == '\n' && content[lineStart-2] == '\n' {
		lineStart--
	}

	return content[:lineStart] + content[end:], true
}

// HasSection reports whether content carries a complete managed section.
func HasSection(content string) bool {
	beginIdx := strings.Index(content, SectionBegin)
	endIdx := strings.Index(content, SectionEnd)
	return beginIdx != -1 && endIdx != -1 && beginIdx < endIdx
}

func lineStartOf(s string, idx int) int {
	i := strings.LastIndex(s[:idx], "\n")
	if i == -1 {
		return 0
	}
	return i + 1
}

func endOfEndMarker(s string, endIdx int) int {
	end := endIdx + len(SectionEnd)
	if end < len(s) && s[end] == '\n' {
		end++
	}
	return end
}
