package cmd

import (
	"fmt"

	"InfraDash/internal/startup"
	"InfraDash/internal/utils/daemon"
	"InfraDash/internal/utils/signal"

	"github.com/spf13/cobra"
)

var foreground bool

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the dashboard service",
	Long:  `Start the dashboard service in foreground or as a daemon.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if running, pid := daemon.GetStatus(pidFile); running {
			return fmt.Errorf("dashboard service is already running (PID %d, PID file %s)", pid, pidFile)
		}

		isChild := daemon.IsChild()

		// If not in foreground mode and not already a child process, daemonize
		if !foreground && !isChild {
			pid, err := daemon.Daemonize(configPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dashboard service started in background (PID: %d)\n", pid)
			return nil
		}

		application := startup.InitializeApplication(configPath)
		builder := startup.StartServer(application)

		if isChild {
			if err := daemon.WritePIDFile(pidFile); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			} else {
				signal.RegisterCleanupFunc(func() {
					daemon.RemovePIDFile(pidFile)
				})
			}
		}

		// Blocks until SIGINT or SIGTERM
		signal.HandleSignals(application, builder)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().BoolVarP(&foreground, "foreground", "f", false, "Run in foreground (not as daemon)")
}
