package doctor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ksteinfeldt/gitid/internal/git"
	"github.com/ksteinfeldt/gitid/internal/git/gittest"
	"github.com/ksteinfeldt/gitid/internal/hook"
	"github.com/ksteinfeldt/gitid/internal/identity"
)

func newCheckContext(t *testing.T, storeContent string) (*CheckContext, *gittest.Fake) {
	t.Helper()
	dir := t.TempDir()
	storePath := filepath.Join(dir, "identities")
	if storeContent != "" {
		if err := os.WriteFile(storePath, []byte(storeContent), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	fake := gittest.New("")
	return &CheckContext{
		Ctx:      context.Background(),
		Store:    identity.NewStore(storePath),
		Git:      git.NewClient(fake, ""),
		HooksDir: filepath.Join(dir, "hooks"),
		Binary:   "gitid",
	}, fake
}

func TestStoreCheck(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Status
	}{
		{"missing", "", StatusError},
		{"only malformed", "garbage\n", StatusError},
		{"malformed lines", "1:Alice:alice@work.com:Work\ngarbage\n", StatusWarning},
		{"healthy", "1:Alice:alice@work.com:Work\n", StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := newCheckContext(t, tt.content)
			res := NewStoreCheck().Run(ctx)
			if res.Status != tt.want {
				t.Errorf("status = %v, want %v (%s)", res.Status, tt.want, res.Message)
			}
		})
	}
}

func TestRun_FixesHookAndHooksPath(t *testing.T) {
	ctx, fake := newCheckContext(t, "1:Alice:alice@work.com:Work\n")

	results := Run(ctx, DefaultChecks(), false)
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	if results[1].Status != StatusError || results[2].Status != StatusError {
		t.Fatalf("hook checks should fail before fixing: %+v %+v", results[1], results[2])
	}

	results = Run(ctx, DefaultChecks(), true)
	for _, r := range results {
		if r.Status != StatusOK {
			t.Errorf("%s: status = %v after fix (%s)", r.Name, r.Status, r.Message)
		}
	}
	if fake.Global["core.hooksPath"] != ctx.HooksDir {
		t.Errorf("core.hooksPath = %q, want %q", fake.Global["core.hooksPath"], ctx.HooksDir)
	}
}

func TestHooksPathCheck_PointsElsewhere(t *testing.T) {
	ctx, fake := newCheckContext(t, "")
	fake.Global["core.hooksPath"] = "/somewhere/else"

	res := NewHooksPathCheck().Run(ctx)
	if res.Status != StatusWarning {
		t.Errorf("status = %v, want warning", res.Status)
	}
}

func TestHookCheck_PartialInstall(t *testing.T) {
	ctx, _ := newCheckContext(t, "")
	if _, err := hook.Install(ctx.HooksDir, "gitid"); err != nil {
		t.Fatalf("Install: %v", err)
	}
	if res := NewHookCheck().Run(ctx); res.Status != StatusOK {
		t.Fatalf("status = %v after install (%s)", res.Status, res.Message)
	}

	if err := os.Remove(hook.Path(ctx.HooksDir, hook.PostCommit)); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	res := NewHookCheck().Run(ctx)
	if res.Status != StatusError {
		t.Errorf("status = %v, want error", res.Status)
	}
	if !strings.Contains(res.Message, hook.PostCommit) {
		t.Errorf("message should name the missing hook: %s", res.Message)
	}
}
