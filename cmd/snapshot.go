package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"InfraDash/internal/dashboard"
	"InfraDash/internal/startup"

	"github.com/spf13/cobra"
)

var (
	snapshotJSON    bool
	snapshotTimeout time.Duration
)

// snapshotCmd refreshes the status snapshot once and prints the regions
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Fetch and render the status snapshot once",
	Args:  cobra.NoArgs,
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

		ctx, cancel := context.WithTimeout(cmd.Context(), snapshotTimeout)
		defer cancel()

		if err := controller.RefreshSnapshot(ctx); err != nil {
			return fmt.Errorf("failed to load stats: %w", err)
		}

		regions := make(map[string]string)
		ids := []string{
			dashboard.ServerRegionID,
			dashboard.RedisRegionID,
			dashboard.DatabaseRegionID,
			dashboard.ApplicationRegionID,
		}
		for _, id := range ids {
			r, _ := controller.Page().Region(id)
			regions[id] = r.Content
		}

		w := cmd.OutOrStdout()
		if snapshotJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(regions)
		}
		for _, id := range ids {
			fmt.Fprintf(w, "== %s ==\n%s\n", id, regions[id])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.Flags().BoolVar(&snapshotJSON, "json", false, "Print regions as a JSON object")
	snapshotCmd.Flags().DurationVar(&snapshotTimeout, "timeout", 30*time.Second, "Give up on the backend after this long")
}
