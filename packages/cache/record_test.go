package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("/cache", "npm", "left-pad.dep.yml"),
		RecordPath("/cache", "npm", "left-pad"))
	assert.Equal(t,
		filepath.Join("/cache", "npm", "@scope", "pkg.dep.yml"),
		RecordPath("/cache", "npm", "@scope/pkg"),
		"scoped names map to nested directories")
}

func TestRecordRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := RecordPath(dir, "npm", "left-pad")

	rec := &Record{
		RecordVersion: RecordVersion,
		Name:          "left-pad",
		Version:       "1.3.0",
		License:       "wtfpl",
		Metadata:      map[string]string{"homepage": "https://example.com"},
	}
	require.NoError(t, rec.Write(path))

	got, err := ReadRecord(path)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := RecordPath(dir, "go", "example.com/pkg")

	rec := &Record{RecordVersion: RecordVersion, Name: "example.com/pkg", Version: "v1.0.0"}
	require.NoError(t, rec.Write(path))
	require.NoError(t, rec.Write(path), "overwriting an existing record")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "pkg.dep.yml", entries[0].Name())
}

func TestReadRecordMissing(t *testing.T) {
	_, err := ReadRecord(filepath.Join(t.TempDir(), "nope.dep.yml"))
	assert.Error(t, err)
}

func TestReadRecordMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.dep.yml")
	require.NoError(t, os.WriteFile(path, []byte("name: [unclosed\n"), 0o644))

	_, err := ReadRecord(path)
	assert.Error(t, err)
}

func TestListRecords(t *testing.T) {
	dir := t.TempDir()

	for _, rec := range []struct {
		source, name, version string
	}{
		{"npm", "left-pad", "1.3.0"},
		{"npm", "@scope/pkg", "2.0.0"},
		{"go", "example.com/pkg", "v1.0.0"},
	} {
		r := &Record{RecordVersion: RecordVersion, Name: rec.name, Version: rec.version}
		require.NoError(t, r.Write(RecordPath(dir, rec.source, rec.name)))
	}

	// files outside a source-type directory are not records
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stray.dep.yml"), []byte("name: stray\n"), 0o644))
	// unrelated files are skipped
	require.NoError(t, os.WriteFile(filepath.Join(dir, "npm", "notes.txt"), []byte("x"), 0o644))

	records, err := ListRecords(dir)
	require.NoError(t, err)
	require.Len(t, records, 3)

	byName := map[string]StoredRecord{}
	for _, rec := range records {
		byName[rec.SourceType+"/"+rec.Name] = rec
	}
	assert.Contains(t, byName, "npm/left-pad")
	assert.Contains(t, byName, "npm/@scope/pkg")
	assert.Contains(t, byName, "go/example.com/pkg")
	assert.Equal(t, "1.3.0", byName["npm/left-pad"].Record.Version)
}

func TestListRecordsMissingCacheDir(t *testing.T) {
	records, err := ListRecords(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, records)
}
