package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/licenseguard/licenseguard/packages/core/config"
	"github.com/licenseguard/licenseguard/packages/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file against the expected shape",
	Long: `Validate the configuration file's reserved keys without loading it.

Examples:
  licenseguard validate
  licenseguard validate --config ./project/.licenseguard.yml`,
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	file, err := config.ResolvePath(configFlag)
	if err != nil {
		return err
	}
	con := console(cmd)
	if file == "" {
		con.Warnf("no configuration file found, nothing to validate")
		return nil
	}

	issues, err := schema.ValidateFile(file)
	if err != nil {
		return err
	}
	if len(issues) > 0 {
		for _, issue := range issues {
			con.Errorf("%s: %s", file, issue)
		}
		return fmt.Errorf("validation failed")
	}

	con.Successf("Valid: %s", file)
	return nil
}
