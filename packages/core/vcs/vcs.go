// Package vcs answers version-control questions for the configuration
// core. It shells out to git once per query and fails soft: callers
// fall back to their own root-determination rules when no repository
// encloses the directory.
package vcs

import (
	"os/exec"
	"strings"
)

// RepositoryRoot returns the top-level working directory of the git
// repository containing dir, or "" when dir is not inside a repository
// or git is unavailable.
func RepositoryRoot(dir string) string {
	if dir == "" {
		dir = "."
	}
	out, err := exec.Command("git", "-C", dir, "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
