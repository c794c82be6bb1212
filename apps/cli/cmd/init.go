package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/licenseguard/licenseguard/packages/core/config"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long: `Write a commented .licenseguard.yml into the current directory.

Examples:
  licenseguard init
  licenseguard init --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing configuration file")
}

const starterConfig = `# licenseguard configuration
# All relative paths resolve against the repository root.

# Where cached license records are stored. Defaults to .licenses.
# cache_path: .licenses

# The directory to scan. Defaults to the working directory.
# source_path: .

# Licenses that are always acceptable.
allowed:
  - mit
  - apache-2.0
  - bsd-2-clause
  - bsd-3-clause

# Enable or disable dependency sources. Listing any source as true
# switches to allow-list mode: only sources marked true run.
# sources:
#   npm: true
#   go: true

# Scan several sub-projects from one file.
# apps:
#   - name: frontend
#     source_path: web
#   - name: backend
#     source_path: server
`

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, config.ConfigFilenames[0])
	if !forceInit {
		if _, err := os.Stat(configFile); err == nil {
			return fmt.Errorf("file already exists: %s (use --force to overwrite)", configFile)
		}
	}

	if err := os.WriteFile(configFile, []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'licenseguard env' to inspect the resolved configuration.\n")
	return nil
}
