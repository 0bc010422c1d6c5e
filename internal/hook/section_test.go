package hook

import (
	"strings"
	"testing"
)

func TestInjectSection_Append(t *testing.T) {
	existing := "#!/bin/sh\necho lint"
	section := Section(PreCommit, "/usr/local/bin/gitid")

	got := InjectSection(existing, section)
	want := "#!/bin/sh\necho lint\n\n" + section
	if got != want {
		t.Errorf("InjectSection =\n%q\nwant\n%q", got, want)
	}
}

func TestInjectSection_Idempotent(t *testing.T) {
	section := Section(PreCommit, "/usr/local/bin/gitid")
	once := InjectSection("#!/bin/sh\necho lint\n", section)
	twice := InjectSection(once, section)
	if once != twice {
		t.Errorf("second inject changed content:\n%q\n%q", once, twice)
	}
}

func TestInjectSection_ReplacesInPlace(t *testing.T) {
	before := "#!/bin/sh\necho before\n"
	after := "echo after\n"
	content := before + "\n" + Section(PreCommit, "/old/gitid") + after

	got := InjectSection(content, Section(PreCommit, "/new/gitid"))
	if strings.Contains(got, "/old/gitid") {
		t.Error("old section should be replaced")
	}
	if !strings.HasPrefix(got, before) || !strings.HasSuffix(got, after) {
		t.Errorf("user content not preserved:\n%s", got)
	}
	if strings.Count(got, SectionBegin) != 1 {
		t.Errorf("want exactly one section, got:\n%s", got)
	}
}

func TestRemoveSection(t *testing.T) {
	original := "#!/bin/sh\necho lint\n"
	injected := InjectSection(original, Section(PreCommit, "/usr/local/bin/gitid"))

	got, found := RemoveSection(injected)
	if !found {
		t.Fatal("section not found")
	}
	if got != original {
		t.Errorf("RemoveSection = %q, want %q", got, original)
	}

	_, found = RemoveSection(original)
	if found {
		t.Error("no section should be found in original content")
	}
}

func TestRemoveSection_MarkersOutOfOrder(t *testing.T) {
	content := SectionEnd + "\n" + SectionBegin + "\n"
	got, found := RemoveSection(content)
	if found || got != content {
		t.Errorf("out-of-order markers should be left alone, got %q, %v", got, found)
	}
}

func TestSection_QuotesBinary(t *testing.T) {
	s := Section(PreCommit, "/home/o'neil/bin/gitid")
	if !strings.Contains(s, `'/home/o'\''neil/bin/gitid' hook run`) {
		t.Errorf("binary not quoted:\n%s", s)
	}
}

func TestSection_PostCommit(t *testing.T) {
	s := Section(PostCommit, "/usr/local/bin/gitid")
	if !strings.Contains(s, "'/usr/local/bin/gitid' hook post-commit\n") {
		t.Errorf("post-commit command missing:\n%s", s)
	}
	if strings.Contains(s, "exit") {
		t.Errorf("post-commit section should not change the exit status:\n%s", s)
	}
}
