// Package cmd implements the gitid command line.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ksteinfeldt/gitid/internal/config"
	"github.com/ksteinfeldt/gitid/internal/git"
	"github.com/ksteinfeldt/gitid/internal/identity"
	"github.com/ksteinfeldt/gitid/internal/logging"
	"github.com/ksteinfeldt/gitid/internal/style"
	"github.com/ksteinfeldt/gitid/internal/terminal"
)

// Command groups.
const (
	GroupIdentity = "identity"
	GroupSetup    = "setup"
)

var rootCmd = &cobra.Command{
	Use:   "gitid",
	Short: "Choose which Git identity each repository commits as",
	Long: `gitid keeps a small per-user list of Git commit identities (name, email,
label) and asks which one to use every time you commit.

Get started:
  gitid setup               # Add identities and install the commit hook
  gitid list                # Show stored identities
  gitid switch              # Pick an identity for this repository

The commit hook runs 'gitid hook run', which shows a menu on your terminal:
choose a number to apply that identity to the repository, 'a' to add a new
one, or Enter to keep the current identity.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadEnvironment,
}

// Seams replaced in tests.
var (
	openTerminal = terminal.Open
	newGitRunner = func() git.CommandRunner { return git.NewExecRunner() }
	executable   = os.Executable
)

// environment is the per-invocation state commands share.
type environment struct {
	appDir string
	cfg    *config.Config
	log    *zap.Logger
}

var env *environment

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupIdentity, Title: "Identity Commands:"},
		&cobra.Group{ID: GroupSetup, Title: "Setup Commands:"},
	)
}

func loadEnvironment(cmd *cobra.Command, args []string) error {
	appDir, err := identity.AppDir()
	if err != nil {
		return err
	}
	cfg, err := config.Load(appDir)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}

	env = &environment{appDir: appDir, cfg: cfg, log: logger.With(zap.String("command", cmd.CommandPath()))}
	return nil
}

func (e *environment) store() *identity.Store {
	return identity.NewStore(e.cfg.StorePath)
}

func (e *environment) git() *git.Client {
	return git.NewClient(newGitRunner(), "")
}

// requireSubcommand is the RunE of parent commands that do nothing alone.
func requireSubcommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	return execute(os.Args[1:], os.Stdout, os.Stderr)
}

func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if env != nil {
		_ = env.log.Sync()
	}
	if err == nil {
		return 0
	}

	var silent *SilentExitError
	if errors.As(err, &silent) {
		return silent.Code
	}
	fmt.Fprintf(stderr, "%s Error: %v\n", style.ErrorPrefix, err)
	return 1
}
