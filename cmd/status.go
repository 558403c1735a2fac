package cmd

import (
	"fmt"

	"InfraDash/internal/utils/daemon"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the status of the dashboard service",
	Run: func(cmd *cobra.Command, args []string) {
		if running, pid := daemon.GetStatus(pidFile); running {
			fmt.Fprintf(cmd.OutOrStdout(), "Dashboard service is running (PID: %d)\n", pid)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Dashboard service is not running")
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
