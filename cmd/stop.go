package cmd

import (
	"fmt"

	"InfraDash/internal/utils/daemon"

	"github.com/spf13/cobra"
)

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the dashboard service",
	Long:  `Stop the running dashboard service.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := daemon.StopProcess(pidFile)
		if err != nil {
			return fmt.Errorf("failed to stop dashboard service: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Dashboard service (PID: %d) has been stopped\n", pid)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
