package hook

import (
	"os"
	"runtime"
	"strings"
	"testing"
)

func TestInstall_CreatesExecutableHooks(t *testing.T) {
	dir := t.TempDir()

	paths, err := Install(dir, "/usr/local/bin/gitid")
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if len(paths) != 2 || paths[0] != Path(dir, PreCommit) || paths[1] != Path(dir, PostCommit) {
		t.Fatalf("paths = %v", paths)
	}

	wantCmd := map[string]string{
		PreCommit:  "'/usr/local/bin/gitid' hook run",
		PostCommit: "'/usr/local/bin/gitid' hook post-commit",
	}
	for _, name := range Names {
		data, err := os.ReadFile(Path(dir, name))
		if err != nil {
			t.Fatalf("ReadFile %s: %v", name, err)
		}
		content := string(data)
		if !strings.HasPrefix(content, "#!/bin/sh\n") {
			t.Errorf("%s: missing shebang:\n%s", name, content)
		}
		if !strings.Contains(content, wantCmd[name]) {
			t.Errorf("%s: missing hook command:\n%s", name, content)
		}

		if runtime.GOOS != "windows" {
			info, err := os.Stat(Path(dir, name))
			if err != nil {
				t.Fatalf("Stat: %v", err)
			}
			if info.Mode().Perm()&0100 == 0 {
				t.Errorf("%s not executable: %v", name, info.Mode())
			}
		}
	}

	if !Installed(dir) {
		t.Error("Installed should be true")
	}
}

func TestInstalled_RequiresEveryHook(t *testing.T) {
	dir := t.TempDir()
	if _, err := Install(dir, "gitid"); err != nil {
		t.Fatalf("Install: %v", err)
	}
	if err := os.Remove(Path(dir, PostCommit)); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	if Installed(dir) {
		t.Error("Installed should be false without post-commit")
	}
	if !IsInstalled(dir, PreCommit) {
		t.Error("pre-commit should still be installed")
	}
}

func TestInstall_PreservesUserHook(t *testing.T) {
	dir := t.TempDir()
	userHook := "#!/bin/sh\nmake lint\n"
	if err := os.WriteFile(Path(dir, PreCommit), []byte(userHook), 0755); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Install(dir, "gitid"); err != nil {
		t.Fatalf("Install: %v", err)
	}
	if _, err := Install(dir, "gitid"); err != nil {
		t.Fatalf("second Install: %v", err)
	}

	data, _ := os.ReadFile(Path(dir, PreCommit))
	if !strings.HasPrefix(string(data), userHook) {
		t.Errorf("user content lost:\n%s", data)
	}
	if strings.Count(string(data), SectionBegin) != 1 {
		t.Errorf("want one section:\n%s", data)
	}

	removed, err := Uninstall(dir)
	if err != nil {
		t.Fatalf("Uninstall: %v", err)
	}
	if !removed {
		t.Error("Uninstall should report removal")
	}
	data, _ = os.ReadFile(Path(dir, PreCommit))
	if string(data) != userHook {
		t.Errorf("after uninstall = %q, want %q", data, userHook)
	}
	if _, err := os.Stat(Path(dir, PostCommit)); !os.IsNotExist(err) {
		t.Errorf("owned post-commit should be deleted, stat err: %v", err)
	}
}

func TestUninstall_DeletesOwnedFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := Install(dir, "gitid"); err != nil {
		t.Fatalf("Install: %v", err)
	}

	removed, err := Uninstall(dir)
	if err != nil {
		t.Fatalf("Uninstall: %v", err)
	}
	if !removed {
		t.Error("Uninstall should report removal")
	}
	for _, name := range Names {
		if _, err := os.Stat(Path(dir, name)); !os.IsNotExist(err) {
			t.Errorf("%s should be deleted, stat err: %v", name, err)
		}
	}
	if Installed(dir) {
		t.Error("Installed should be false")
	}
}

func TestUninstall_NothingInstalled(t *testing.T) {
	removed, err := Uninstall(t.TempDir())
	if err != nil {
		t.Fatalf("Uninstall: %v", err)
	}
	if removed {
		t.Error("nothing should be removed")
	}
}

func TestDefaultDir(t *testing.T) {
	if got := DefaultDir("/home/alice/.config/gitid"); got != Path("/home/alice/.config/gitid", "hooks") {
		t.Errorf("DefaultDir = %q", got)
	}
}
