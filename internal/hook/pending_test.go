package hook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ksteinfeldt/gitid/internal/git"
)

func TestPending_WriteTake(t *testing.T) {
	gitDir := t.TempDir()
	want := git.Identity{Name: "Alice C", Email: "alice@client.io"}

	if err := WritePending(gitDir, want); err != nil {
		t.Fatalf("WritePending: %v", err)
	}
	got, ok, err := TakePending(gitDir)
	if err != nil {
		t.Fatalf("TakePending: %v", err)
	}
	if !ok || got != want {
		t.Errorf("TakePending = %v, %v, want %v", got, ok, want)
	}

	if _, err := os.Stat(filepath.Join(gitDir, PendingFile)); !os.IsNotExist(err) {
		t.Errorf("pending file should be removed, stat err: %v", err)
	}
	if _, ok, err := TakePending(gitDir); ok || err != nil {
		t.Errorf("second TakePending = %v, %v", ok, err)
	}
}

func TestPending_Clear(t *testing.T) {
	gitDir := t.TempDir()
	if err := ClearPending(gitDir); err != nil {
		t.Fatalf("ClearPending without file: %v", err)
	}

	if err := WritePending(gitDir, git.Identity{Name: "A", Email: "a@b.co"}); err != nil {
		t.Fatalf("WritePending: %v", err)
	}
	if err := ClearPending(gitDir); err != nil {
		t.Fatalf("ClearPending: %v", err)
	}
	if _, ok, _ := TakePending(gitDir); ok {
		t.Error("nothing should be pending after ClearPending")
	}
}

func TestPending_Malformed(t *testing.T) {
	gitDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(gitDir, PendingFile), []byte("only-a-name"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, ok, err := TakePending(gitDir); ok || err != nil {
		t.Errorf("TakePending = %v, %v, want not ok", ok, err)
	}
}
