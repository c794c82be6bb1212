package vcs

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func TestRepositoryRoot(t *testing.T) {
	requireGit(t)

	repo := t.TempDir()
	out, err := exec.Command("git", "-C", repo, "init", "-q").CombinedOutput()
	require.NoError(t, err, string(out))

	nested := filepath.Join(repo, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	root := RepositoryRoot(nested)
	require.NotEmpty(t, root)
	// git may report a resolved path; compare by evaluating both sides
	wantResolved, err := filepath.EvalSymlinks(repo)
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, wantResolved, gotResolved)
}

func TestRepositoryRootOutsideRepository(t *testing.T) {
	requireGit(t)

	dir := t.TempDir()
	// GIT_CEILING cannot be assumed; a fresh temp dir outside any repo
	// is the common case and must fail soft
	root := RepositoryRoot(dir)
	if root != "" {
		t.Skipf("temp dir unexpectedly inside a repository: %s", root)
	}
	assert.Equal(t, "", root)
}
