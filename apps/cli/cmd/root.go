package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/licenseguard/licenseguard/packages/core/config"
	"github.com/licenseguard/licenseguard/packages/output"
	"github.com/licenseguard/licenseguard/packages/sources"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	configFlag  string
	noColorFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "licenseguard",
	Short: "Track the licenses of your dependencies.",
	Long: `licenseguard caches license metadata for your project's
dependencies and checks it against the licenses you allow. Configuration
lives in a .licenseguard.yml file; one file can describe multiple apps.`,
	SilenceUsage: true,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		var loadErr *config.LoadError
		if errors.As(err, &loadErr) {
			os.Exit(ExitConfigError)
		}
		os.Exit(ExitFailure)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to a configuration file or directory")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(appsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfiguration loads the configuration named by --config (or found
// in the working directory) with the default source registry injected.
func loadConfiguration() (*config.Configuration, *sources.Registry, error) {
	registry := sources.Default()
	cfg, err := config.Load(configFlag, config.WithSourceRegistry(registry))
	if err != nil {
		return nil, nil, err
	}
	return cfg, registry, nil
}

func console(cmd *cobra.Command) *output.Console {
	return output.New(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithNoColor(noColorFlag),
	)
}
