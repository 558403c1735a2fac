package cmd

import (
	"context"
	"fmt"
	"time"

	"InfraDash/internal/dashboard"
	"InfraDash/internal/startup"

	"github.com/spf13/cobra"
)

var probeTimeout time.Duration

// probeCmd runs a single probe and prints what its response area would show
var probeCmd = &cobra.Command{
	Use:   "probe <endpoint|control-id>",
	Short: "Probe a backend endpoint once",
	Long: `Probe a backend endpoint once and print the result the dashboard would
show. The argument is either a configured probe's control id or a path on
the backend. Exits non-zero when the probe fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := startup.LoadConfig(configPath)
		if err != nil {
			return err
		}
		controller, err := startup.NewOneShotController(cfg)
		if err != nil {
			return err
		}
		defer controller.Shutdown()

		ctx, cancel := context.WithTimeout(cmd.Context(), probeTimeout)
		defer cancel()

		target := args[0]
		configured := false
		for _, p := range controller.Probes() {
			if p.ControlID == target && target != startup.AdHocControlID {
				configured = true
				break
			}
		}

		var outcome *dashboard.Outcome
		if configured {
			outcome, err = controller.InvokeProbe(ctx, target)
		} else {
			outcome, err = controller.Invoke(ctx, target, startup.AdHocControlID, startup.AdHocDisplayID)
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), outcome.Content)
		if outcome.Err != nil {
			return fmt.Errorf("probe failed with a %s error", outcome.Kind())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().DurationVar(&probeTimeout, "timeout", 30*time.Second, "Give up on the backend after this long")
}
