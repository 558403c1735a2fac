package cmd

import (
	"fmt"
	"os"

	"InfraDash/internal/startup"

	"github.com/spf13/cobra"
)

var (
	configPath string
	pidFile    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "infradash",
	Short: "An infrastructure dashboard for the status API",
	Long: `InfraDash serves a live dashboard for an infrastructure status API. It
polls the status snapshot, renders the server, Redis, database and
application cards and runs one-off test probes against the backend.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Initialize default logger for early startup
	startup.SetupDefaultLogger()

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "conf/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&pidFile, "pid-file", "/var/run/infradash.pid", "Path to the PID file")
}
