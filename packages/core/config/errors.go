package config

import "fmt"

// LoadError reports a fatal problem while loading a configuration: an
// unrecognized file extension, a decode failure, or an app entry whose
// source_path cannot be resolved. Load errors abort the entire load.
type LoadError struct {
	Path string // configuration file, when known
	App  string // app name, when the failure is scoped to one app entry
	Err  error
}

func (e *LoadError) Error() string {
	switch {
	case e.App != "" && e.Path != "":
		return fmt.Sprintf("%s: app %q: %v", e.Path, e.App, e.Err)
	case e.App != "":
		return fmt.Sprintf("app %q: %v", e.App, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
