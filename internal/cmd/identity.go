package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ksteinfeldt/gitid/internal/git"
	"github.com/ksteinfeldt/gitid/internal/identity"
	"github.com/ksteinfeldt/gitid/internal/selector"
	"github.com/ksteinfeldt/gitid/internal/style"
	"github.com/ksteinfeldt/gitid/internal/tui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	GroupID: GroupIdentity,
	Short:   "Show stored identities",
	Long: `List every stored identity in store order.

The identity the current repository commits as is marked with an asterisk (*).`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	GroupID: GroupIdentity,
	Short:   "Show the identity this repository commits as",
	Args:    cobra.NoArgs,
	RunE:    runWhoami,
}

var addCmd = &cobra.Command{
	Use:     "add",
	GroupID: GroupIdentity,
	Short:   "Add an identity to the store",
	Long: `Add one identity to the store, prompting for its label, full name and
email. The store is created if it does not exist yet.`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var switchCmd = &cobra.Command{
	Use:     "switch [ordinal]",
	GroupID: GroupIdentity,
	Short:   "Apply a stored identity to this repository",
	Long: `Apply a stored identity to the current repository's local git config.

With an ordinal the identity is applied directly; without one an interactive
picker is shown.

Examples:
  gitid switch              # Pick from a list
  gitid switch 2            # Use identity 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSwitch,
}

var exportCmd = &cobra.Command{
	Use:     "export",
	GroupID: GroupIdentity,
	Short:   "Print the identity store",
	Long: `Print every stored identity.

Formats:
  text   the store's own ordinal:name:email:label lines
  json   one JSON object per line
  yaml   a YAML list`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFormat string
)

// pickIdentity runs the interactive picker; replaced in tests.
var pickIdentity = tui.Pick

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(switchCmd)
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", identity.FormatText, "Output format: text, json, yaml")
}

// loadRecords loads the store, reporting a missing store the way every
// command does.
func loadRecords(cmd *cobra.Command) ([]identity.Record, error) {
	store := env.store()
	records, err := store.Load()
	if err != nil {
		if errors.Is(err, identity.ErrStoreNotFound) {
			return nil, missingStore(cmd.ErrOrStderr(), store.Path())
		}
		return nil, err
	}
	return records, nil
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	records, err := loadRecords(cmd)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No identities stored. Run 'gitid add' to add one.")
		return nil
	}

	// Outside a repository there is still a global identity to compare with.
	current, _ := env.git().CurrentIdentity(cmd.Context())
	marked, _ := identity.FindByEmail(records, current.Email)

	fmt.Fprintf(out, "Identities in %s:\n", env.store().Path())
	for _, r := range records {
		marker := "  "
		if marked.Ordinal != "" && r == marked {
			marker = style.CurrentMarker + " "
		}
		fmt.Fprintf(out, "  %s%s) %s %s\n", marker, r.Ordinal, style.Label.Render(r.Label), style.Identity(r.FullName, r.Email))
	}
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	current, err := env.git().CurrentIdentity(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading git identity: %w", err)
	}

	if current.Name == "" && current.Email == "" {
		fmt.Fprintln(out, style.Dim.Render("No identity set."))
		fmt.Fprintln(out, "Run 'gitid switch' to choose one.")
		return nil
	}

	fmt.Fprintf(out, "%s %s\n", style.Bold.Render("Current identity:"), style.Identity(current.Name, current.Email))
	records, err := env.store().Load()
	if err != nil {
		if errors.Is(err, identity.ErrStoreNotFound) {
			fmt.Fprintf(out, "  %s\n", style.Dim.Render("No identity store; run 'gitid setup'"))
			return nil
		}
		return err
	}
	if rec, ok := identity.FindByEmail(records, current.Email); ok {
		fmt.Fprintf(out, "  Label:   %s\n", rec.Label)
		fmt.Fprintf(out, "  Ordinal: %s\n", rec.Ordinal)
	} else {
		fmt.Fprintf(out, "  %s\n", style.Dim.Render("Not in the identity store"))
	}
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	tty, err := openTerminal()
	if err != nil {
		return err
	}
	defer tty.Close()

	rec, err := selector.NewCollector(env.store(), tty, env.log).CollectOne(cmd.Context())
	if err != nil {
		return fmt.Errorf("adding identity: %w", err)
	}
	env.log.Info("identity added", zap.String("ordinal", rec.Ordinal), zap.String("label", rec.Label))
	return nil
}

func runSwitch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	records, err := loadRecords(cmd)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no identities stored: run 'gitid add'")
	}

	client := env.git()
	if _, err := client.RepoRoot(cmd.Context()); err != nil {
		return err
	}

	var rec identity.Record
	if len(args) == 1 {
		ordinal := strings.TrimSpace(args[0])
		found, ok := identity.Find(records, ordinal)
		if !ok {
			return fmt.Errorf("identity '%s' not found. Run 'gitid list' to see stored identities", ordinal)
		}
		rec = found
	} else {
		current, _ := client.CurrentIdentity(cmd.Context())
		chosen, ok, err := pickIdentity(records, current.Email)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Keeping current identity.")
			return nil
		}
		rec = chosen
	}

	if err := client.SetLocalIdentity(cmd.Context(), git.Identity{Name: rec.FullName, Email: rec.Email}); err != nil {
		return fmt.Errorf("switching identity: %w", err)
	}
	fmt.Fprintf(out, "%s Using identity %s: %s <%s>\n", style.SuccessPrefix, rec.Label, rec.FullName, rec.Email)
	env.log.Info("identity applied", zap.String("ordinal", rec.Ordinal), zap.String("email", rec.Email))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	records, err := loadRecords(cmd)
	if err != nil {
		return err
	}
	return identity.Export(cmd.OutOrStdout(), records, strings.ToLower(exportFormat))
}
