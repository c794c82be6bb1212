package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/licenseguard/licenseguard/packages/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the license cache",
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report cached record counts per app",
	Long: `Report the number of cached dependency records per app, flagging
records that are stale (disabled source, ignored dependency, or an
out-of-date record format).

Examples:
  licenseguard cache status`,
	RunE: cacheStatusCommand,
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete stale records from each app's cache",
	RunE:  cachePruneCommand,
}

func init() {
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cachePruneCmd)
}

func cacheStatusCommand(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfiguration()
	if err != nil {
		return err
	}

	con := console(cmd)
	con.Printf("run %s\n", uuid.NewString())

	staleTotal := 0
	for _, app := range cfg.Apps() {
		records, err := cache.ListRecords(app.CachePath())
		if err != nil {
			return err
		}
		stale, err := cache.StaleRecords(app)
		if err != nil {
			return err
		}
		staleTotal += len(stale)

		con.Heading("%s", app.Name())
		con.Field("cache_path", app.CachePath())
		con.Field("records", len(records))
		con.Field("stale", len(stale))
		for _, rec := range stale {
			con.Warnf("  stale: %s/%s", rec.SourceType, rec.Name)
		}
	}

	if staleTotal > 0 {
		return fmt.Errorf("%d stale record(s), run 'licenseguard cache prune'", staleTotal)
	}
	return nil
}

func cachePruneCommand(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfiguration()
	if err != nil {
		return err
	}

	con := console(cmd)
	for _, app := range cfg.Apps() {
		stale, err := cache.StaleRecords(app)
		if err != nil {
			return err
		}
		removed, err := cache.Prune(stale)
		if err != nil {
			return fmt.Errorf("pruning %s after %d record(s): %w", app.Name(), removed, err)
		}
		con.Successf("%s: pruned %d record(s)", app.Name(), removed)
	}
	return nil
}
