package cmd

import (
	"github.com/spf13/cobra"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List the apps described by the configuration",
	Long: `List the app configurations composed from the configuration file.
A configuration without an apps entry describes a single app.

Examples:
  licenseguard apps
  licenseguard apps --config ./project/.licenseguard.yml`,
	RunE: appsCommand,
}

func appsCommand(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfiguration()
	if err != nil {
		return err
	}

	con := console(cmd)
	for _, app := range cfg.Apps() {
		con.Printf("%s\n", app.Name())
		con.Field("source_path", app.SourcePath())
		con.Field("cache_path", app.CachePath())
	}
	return nil
}
