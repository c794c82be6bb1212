package config

import (
	"os"
	"path/filepath"
)

// ConfigFilenames contains the configuration files searched for in a
// directory, in precedence order.
var ConfigFilenames = []string{
	".licenseguard.yml",
	".licenseguard.yaml",
	".licenseguard.json",
}

// ResolvePath maps a path argument to the configuration file to load.
// A file argument is returned as-is after validating its extension; a
// directory argument is searched using ConfigFilenames; an empty
// argument means the current working directory. A directory without a
// configuration file resolves to "" with no error: running on an
// all-defaults configuration is legal.
func ResolvePath(arg string) (string, error) {
	if arg == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		arg = cwd
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", &LoadError{Path: abs, Err: err}
	}
	if info.IsDir() {
		for _, name := range ConfigFilenames {
			candidate := filepath.Join(abs, name)
			if fi, err := os.Stat(candidate); err == nil && fi.Mode().IsRegular() {
				return candidate, nil
			}
		}
		return "", nil
	}
	if _, err := FormatForPath(abs); err != nil {
		return "", &LoadError{Path: abs, Err: err}
	}
	return abs, nil
}

// absJoin resolves path against base unless path is already absolute.
func absJoin(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
