package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/licenseguard/licenseguard/packages/core/config"
)

func TestValidateValidYAML(t *testing.T) {
	issues, err := Validate([]byte(`
name: project
root: true
cache_path: .licenses
sources:
  npm: true
  bundler: false
allowed:
  - mit
ignored:
  npm:
    - left-pad
    - name: right-pad
      version: 1.0.0
apps:
  - name: app1
    source_path: web
`), config.FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestValidateValidJSON(t *testing.T) {
	issues, err := Validate([]byte(`{"name": "project", "sources": {"npm": true}}`), config.FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestValidateEmptyYAML(t *testing.T) {
	issues, err := Validate(nil, config.FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestValidateReportsIssues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "non-boolean source flag", yaml: "sources:\n  npm: sometimes\n"},
		{name: "non-string allowed entry", yaml: "allowed:\n  - 42\n"},
		{name: "apps not a list", yaml: "apps: web\n"},
		{name: "record without name", yaml: "ignored:\n  npm:\n    - version: 1.0.0\n"},
		{name: "root as number", yaml: "root: 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues, err := Validate([]byte(tt.yaml), config.FormatYAML)
			require.NoError(t, err)
			assert.NotEmpty(t, issues)
		})
	}
}

func TestValidateMalformedYAML(t *testing.T) {
	_, err := Validate([]byte("name: [unclosed\n"), config.FormatYAML)
	assert.Error(t, err)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".licenseguard.yml")
	require.NoError(t, os.WriteFile(file, []byte("name: project\n"), 0o644))

	issues, err := ValidateFile(file)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestValidateFileUnrecognizedExtension(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(file, []byte(""), 0o644))

	_, err := ValidateFile(file)
	assert.Error(t, err)
}
