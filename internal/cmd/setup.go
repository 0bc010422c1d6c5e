package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ksteinfeldt/gitid/internal/config"
	"github.com/ksteinfeldt/gitid/internal/selector"
	"github.com/ksteinfeldt/gitid/internal/style"
)

var setupCmd = &cobra.Command{
	Use:     "setup",
	GroupID: GroupSetup,
	Short:   "Add your identities and install the commit hook",
	Long: `Provision gitid for this user account.

Prompts for one or more identities (label, full name, email), writes them to
the identity store, then installs the commit hook and points git's global
core.hooksPath at it.

An existing store is left alone unless --reset is given, which deletes it
and starts over.

Examples:
  gitid setup               # First-time setup
  gitid setup --reset       # Replace every stored identity
  gitid setup --no-hook     # Only collect identities`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

var (
	setupReset  bool
	setupNoHook bool
)

func init() {
	rootCmd.AddCommand(setupCmd)

	setupCmd.Flags().BoolVar(&setupReset, "reset", false, "Delete the existing identity store first")
	setupCmd.Flags().BoolVar(&setupNoHook, "no-hook", false, "Do not install the commit hook")
}

func runSetup(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	store := env.store()

	if store.Exists() {
		if !setupReset {
			return fmt.Errorf("identity store already exists at %s: use 'gitid add' to add identities or --reset to start over", store.Path())
		}
		if err := store.Reset(); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s Removed %s\n", style.WarningPrefix, store.Path())
		env.log.Info("identity store reset", zap.String("path", store.Path()))
	}

	tty, err := openTerminal()
	if err != nil {
		return err
	}
	defer tty.Close()

	tty.Println(style.Bold.Render("Add the identities you commit as."))
	added, err := selector.NewCollector(store, tty, env.log).CollectAll(cmd.Context())
	if err != nil {
		if errors.Is(err, selector.ErrNothingCollected) {
			return fmt.Errorf("setup incomplete: %w", err)
		}
		return err
	}
	fmt.Fprintf(out, "%s Stored %d identities in %s\n", style.SuccessPrefix, len(added), store.Path())

	if path, wrote, err := config.EnsureFile(env.appDir); err != nil {
		env.log.Warn("writing default config", zap.Error(err))
	} else if wrote {
		fmt.Fprintf(out, "%s Wrote settings to %s\n", style.SuccessPrefix, path)
	}

	if setupNoHook {
		return nil
	}
	return installHook(cmd, false)
}
