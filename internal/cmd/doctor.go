package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ksteinfeldt/gitid/internal/doctor"
	"github.com/ksteinfeldt/gitid/internal/style"
)

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	GroupID: GroupSetup,
	Short:   "Check that gitid is set up correctly",
	Long: `Check the identity store, the commit hook and git's core.hooksPath.

With --fix, the hook is installed and core.hooksPath is repointed where
needed. A missing store can only be fixed with 'gitid setup'.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

var (
	doctorFix bool
)

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Repair what can be repaired")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	bin, err := hookBinary()
	if err != nil {
		return err
	}

	ctx := &doctor.CheckContext{
		Ctx:      cmd.Context(),
		Store:    env.store(),
		Git:      env.git(),
		HooksDir: env.cfg.HooksDir,
		Binary:   bin,
	}

	failed := 0
	for _, res := range doctor.Run(ctx, doctor.DefaultChecks(), doctorFix) {
		prefix := style.SuccessPrefix
		switch res.Status {
		case doctor.StatusWarning:
			prefix = style.WarningPrefix
		case doctor.StatusError:
			prefix = style.ErrorPrefix
			failed++
		}
		fmt.Fprintf(out, "%s %-15s %s\n", prefix, res.Name, res.Message)
		for _, d := range res.Details {
			fmt.Fprintf(out, "    %s\n", style.Dim.Render(d))
		}
		if res.Status != doctor.StatusOK && res.FixHint != "" {
			fmt.Fprintf(out, "    %s %s\n", style.Dim.Render("→"), res.FixHint)
		}
	}

	if failed > 0 {
		return NewSilentExit(1)
	}
	return nil
}
