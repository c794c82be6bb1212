package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/licenseguard/licenseguard/packages/core/config"
	"github.com/licenseguard/licenseguard/packages/sources"
)

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	envJSONFlag  bool
	envWatchFlag bool
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show the resolved configuration for each app",
	Long: `Show the fully resolved configuration: each app's name, source path,
cache path, root, allowed licenses and enabled sources.

Examples:
  licenseguard env
  licenseguard env --config ./project
  licenseguard env --json
  licenseguard env --watch`,
	RunE: envCommand,
}

func init() {
	envCmd.Flags().BoolVar(&envJSONFlag, "json", false, "Print machine-readable JSON")
	envCmd.Flags().BoolVar(&envWatchFlag, "watch", false, "Re-print whenever the configuration file changes")
}

type appSummary struct {
	Name       string          `json:"name"`
	SourcePath string          `json:"source_path"`
	CachePath  string          `json:"cache_path"`
	Root       string          `json:"root"`
	Allowed    []string        `json:"allowed,omitempty"`
	Sources    map[string]bool `json:"sources"`
}

func envCommand(cmd *cobra.Command, args []string) error {
	if envWatchFlag {
		return watchEnv(cmd)
	}
	return printEnv(cmd)
}

func printEnv(cmd *cobra.Command) error {
	cfg, registry, err := loadConfiguration()
	if err != nil {
		return err
	}

	if envJSONFlag {
		summaries := make([]appSummary, 0, len(cfg.Apps()))
		for _, app := range cfg.Apps() {
			summaries = append(summaries, summarize(app, registry))
		}
		data, err := json.MarshalIndent(summaries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	con := console(cmd)
	if cfg.Path() == "" {
		con.Warnf("no configuration file found, showing defaults")
	}
	for i, app := range cfg.Apps() {
		if i > 0 {
			con.Printf("\n")
		}
		con.App(app, registry.Types())
	}
	return nil
}

func summarize(app *config.Configuration, registry *sources.Registry) appSummary {
	enablement := make(map[string]bool, len(registry.Types()))
	for _, name := range registry.Types() {
		enablement[name] = app.Enabled(name)
	}
	return appSummary{
		Name:       app.Name(),
		SourcePath: app.SourcePath(),
		CachePath:  app.CachePath(),
		Root:       app.Root(),
		Allowed:    app.AllowedLicenses(),
		Sources:    enablement,
	}
}

// watchEnv re-prints the resolved configuration whenever the
// configuration file (or the directory it would appear in) changes.
func watchEnv(cmd *cobra.Command) error {
	if err := printEnv(cmd); err != nil {
		return err
	}

	file, err := config.ResolvePath(configFlag)
	if err != nil {
		return err
	}
	watchDir := file
	if watchDir == "" {
		if watchDir, err = os.Getwd(); err != nil {
			return err
		}
	} else {
		// watch the directory: editors replace files on save
		watchDir = filepath.Dir(file)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(watchDir); err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	con := console(cmd)
	con.Printf("\nwatching %s for changes (ctrl-c to stop)\n", watchDir)

	var debounce *time.Timer
	reload := make(chan struct{}, 1)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isConfigFile(event.Name) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(WatchDebounceDelay, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
		case <-reload:
			con.Printf("\n")
			if err := printEnv(cmd); err != nil {
				con.Errorf("%v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			con.Errorf("watch error: %v", err)
		case <-sig:
			return nil
		}
	}
}

func isConfigFile(path string) bool {
	base := filepath.Base(path)
	for _, name := range config.ConfigFilenames {
		if base == name {
			return true
		}
	}
	return false
}
