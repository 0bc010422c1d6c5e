package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ksteinfeldt/gitid/internal/git"
	"github.com/ksteinfeldt/gitid/internal/hook"
	"github.com/ksteinfeldt/gitid/internal/identity"
	"github.com/ksteinfeldt/gitid/internal/selector"
	"github.com/ksteinfeldt/gitid/internal/style"
)

var hookCmd = &cobra.Command{
	Use:     "hook",
	GroupID: GroupSetup,
	Short:   "Manage the commit hooks that run the identity menu",
	Long: `Manage the hooks that ask which identity to commit as.

git settles a commit's author before any hook runs, so gitid installs two:
pre-commit shows the menu and writes the choice to the repository's local
config, and post-commit rewrites the new commit's author when it differs.

The hooks live in gitid's own hooks directory, and git's global core.hooksPath
is pointed at it so the menu appears in every repository.

Examples:
  gitid hook install        # Install the hook and set core.hooksPath
  gitid hook status         # Show whether the hook is installed
  gitid hook uninstall      # Remove the hook and unset core.hooksPath`,
	RunE: requireSubcommand,
}

var hookRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Show the identity menu (invoked by the pre-commit hook)",
	Long: `Show the identity menu on the controlling terminal and apply the choice
to the current repository. The commit being made is given the chosen author
by the post-commit hook.

  <number>   apply that identity to this repository (git config --local)
  a          add a new identity, then show the menu again
  Enter      keep the current identity

Exits non-zero, blocking the commit, only when no identity store exists.
Without a terminal, or when git cannot be read or written, the current
identity is kept.`,
	Args: cobra.NoArgs,
	RunE: runHookRun,
}

var hookPostCommitCmd = &cobra.Command{
	Use:   hook.PostCommit,
	Short: "Give the new commit the identity chosen by 'hook run'",
	Long: `Rewrite the author of the commit just made to the identity chosen in the
pre-commit menu, when it differs. Does nothing when no identity was chosen.
Never fails the commit.`,
	Args: cobra.NoArgs,
	RunE: runHookPostCommit,
}

var hookInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the commit hook",
	Args:  cobra.NoArgs,
	RunE:  runHookInstall,
}

var hookUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the commit hook",
	Args:  cobra.NoArgs,
	RunE:  runHookUninstall,
}

var hookStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the commit hook is installed",
	Args:  cobra.NoArgs,
	RunE:  runHookStatus,
}

var (
	hookNoGlobal bool
)

func init() {
	rootCmd.AddCommand(hookCmd)
	hookCmd.AddCommand(hookRunCmd)
	hookCmd.AddCommand(hookPostCommitCmd)
	hookCmd.AddCommand(hookInstallCmd)
	hookCmd.AddCommand(hookUninstallCmd)
	hookCmd.AddCommand(hookStatusCmd)

	hookInstallCmd.Flags().BoolVar(&hookNoGlobal, "no-global", false, "Do not set the global core.hooksPath")
	hookUninstallCmd.Flags().BoolVar(&hookNoGlobal, "no-global", false, "Leave the global core.hooksPath alone")
}

func missingStore(w io.Writer, path string) error {
	fmt.Fprintf(w, "%s No identity store at %s\n", style.ErrorPrefix, path)
	fmt.Fprintln(w, "Run 'gitid setup' to add your identities, then commit again.")
	return NewSilentExit(1)
}

func runHookRun(cmd *cobra.Command, args []string) error {
	store := env.store()
	if !store.Exists() {
		env.log.Warn("identity store missing", zap.String("path", store.Path()))
		return missingStore(cmd.ErrOrStderr(), store.Path())
	}

	client := env.git()
	gitDir, err := client.GitDir(cmd.Context())
	if err != nil {
		env.log.Debug("no git directory, choice will not be carried to post-commit", zap.Error(err))
	} else if err := hook.ClearPending(gitDir); err != nil {
		env.log.Warn("clearing stale choice", zap.Error(err))
	}

	tty, err := openTerminal()
	if err != nil {
		env.log.Info("no terminal, keeping current identity", zap.Error(err))
		fmt.Fprintf(cmd.ErrOrStderr(), "%s No terminal available, keeping current identity\n", style.HookPrefix)
		return nil
	}
	defer tty.Close()

	outcome, err := selector.New(store, client, tty, env.log).Run(cmd.Context())
	if err != nil {
		if errors.Is(err, identity.ErrStoreNotFound) {
			return missingStore(cmd.ErrOrStderr(), store.Path())
		}
		return err
	}
	if outcome.Err != nil {
		env.log.Warn("selector kept current identity after failure", zap.Error(outcome.Err))
	}
	env.log.Debug("selector finished", zap.Stringer("state", outcome.State))

	if outcome.State == selector.Applied && gitDir != "" {
		chosen := git.Identity{Name: outcome.Record.FullName, Email: outcome.Record.Email}
		if err := hook.WritePending(gitDir, chosen); err != nil {
			env.log.Warn("recording choice for post-commit", zap.Error(err))
			fmt.Fprintf(tty.Writer(), "%s %v; the identity applies from the next commit\n", style.WarningPrefix, err)
		}
	}
	return nil
}

func runHookPostCommit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	w := cmd.ErrOrStderr()
	client := env.git()

	gitDir, err := client.GitDir(ctx)
	if err != nil {
		env.log.Debug("post-commit outside a repository", zap.Error(err))
		return nil
	}
	chosen, ok, err := hook.TakePending(gitDir)
	if err != nil {
		env.log.Warn("reading choice", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	author, err := client.HeadAuthor(ctx)
	if err != nil {
		env.log.Warn("reading HEAD author", zap.Error(err))
		return nil
	}
	if author == chosen {
		return nil
	}

	if err := client.AmendAuthor(ctx, chosen); err != nil {
		env.log.Warn("amending HEAD author", zap.Error(err))
		fmt.Fprintf(w, "%s %s Could not set commit author to %s: %v\n", style.HookPrefix, style.WarningPrefix, chosen, err)
		fmt.Fprintln(w, "  Fix it with: git commit --amend --no-edit --reset-author")
		return nil
	}
	fmt.Fprintf(w, "%s %s Commit author set to %s\n", style.HookPrefix, style.SuccessPrefix, chosen)
	env.log.Info("commit author amended", zap.String("from", author.Email), zap.String("to", chosen.Email))
	return nil
}

func hookBinary() (string, error) {
	bin, err := executable()
	if err != nil {
		return "", fmt.Errorf("locating gitid executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(bin); err == nil {
		bin = resolved
	}
	return bin, nil
}

// installHook installs the hook and, unless noGlobal, points core.hooksPath at it.
func installHook(cmd *cobra.Command, noGlobal bool) error {
	out := cmd.OutOrStdout()
	bin, err := hookBinary()
	if err != nil {
		return err
	}

	paths, err := hook.Install(env.cfg.HooksDir, bin)
	if err != nil {
		return err
	}
	for _, path := range paths {
		fmt.Fprintf(out, "%s Installed %s\n", style.SuccessPrefix, path)
	}

	if noGlobal {
		return nil
	}

	client := env.git()
	previous, err := client.GlobalHooksPath(cmd.Context())
	if err != nil {
		return err
	}
	if previous == env.cfg.HooksDir {
		return nil
	}
	if previous != "" {
		fmt.Fprintf(out, "%s Replacing core.hooksPath %s\n", style.WarningPrefix, previous)
	}
	if err := client.SetGlobalHooksPath(cmd.Context(), env.cfg.HooksDir); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s Set core.hooksPath to %s\n", style.SuccessPrefix, env.cfg.HooksDir)
	env.log.Info("hook installed", zap.String("dir", env.cfg.HooksDir), zap.String("previous", previous))
	return nil
}

func runHookInstall(cmd *cobra.Command, args []string) error {
	return installHook(cmd, hookNoGlobal)
}

func runHookUninstall(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	removed, err := hook.Uninstall(env.cfg.HooksDir)
	if err != nil {
		return err
	}
	if removed {
		fmt.Fprintf(out, "%s Removed hooks from %s\n", style.SuccessPrefix, env.cfg.HooksDir)
	} else {
		fmt.Fprintln(out, "Hooks were not installed.")
	}

	if hookNoGlobal {
		return nil
	}

	client := env.git()
	current, err := client.GlobalHooksPath(cmd.Context())
	if err != nil {
		return err
	}
	if current != env.cfg.HooksDir {
		return nil
	}
	if err := client.UnsetGlobalHooksPath(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s Unset core.hooksPath\n", style.SuccessPrefix)
	return nil
}

func runHookStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	for _, name := range hook.Names {
		if hook.IsInstalled(env.cfg.HooksDir, name) {
			fmt.Fprintf(out, "%s %-16s %s\n", style.SuccessPrefix, name+":", hook.Path(env.cfg.HooksDir, name))
		} else {
			fmt.Fprintf(out, "%s %-16s not installed\n", style.ErrorPrefix, name+":")
		}
	}

	current, err := env.git().GlobalHooksPath(cmd.Context())
	if err != nil {
		return err
	}
	switch current {
	case env.cfg.HooksDir:
		fmt.Fprintf(out, "%s %-16s %s\n", style.SuccessPrefix, "core.hooksPath:", current)
	case "":
		fmt.Fprintf(out, "%s %-16s not set\n", style.ErrorPrefix, "core.hooksPath:")
	default:
		fmt.Fprintf(out, "%s %-16s %s (expected %s)\n", style.WarningPrefix, "core.hooksPath:", current, env.cfg.HooksDir)
	}
	return nil
}
