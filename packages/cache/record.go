// Package cache reads and writes the per-dependency metadata records
// stored under a configuration's cache path. Records are plain YAML
// files, one per dependency, grouped by source type:
//
//	<cache_path>/<source-type>/<name>.dep.yml
//
// Names may contain path separators (scoped npm packages), which map to
// nested directories.
package cache

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// RecordSuffix is the filename suffix for cached dependency records.
const RecordSuffix = ".dep.yml"

// RecordVersion is the current record format version. Records with a
// different version are reported as stale.
const RecordVersion = 1

// Record is the cached metadata for one dependency.
type Record struct {
	RecordVersion int               `yaml:"record_version"`
	Name          string            `yaml:"name"`
	Version       string            `yaml:"version"`
	License       string            `yaml:"license,omitempty"`
	Metadata      map[string]string `yaml:"metadata,omitempty"`
}

// RecordPath returns the file a dependency's record is stored at.
func RecordPath(cachePath, sourceType, name string) string {
	return filepath.Join(cachePath, sourceType, filepath.FromSlash(name)+RecordSuffix)
}

// ReadRecord loads one record from path.
func ReadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &rec, nil
}

// Write stores the record at path, creating parent directories. The
// write is atomic: a temp file in the same directory is renamed over
// the destination.
func (r *Record) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// StoredRecord is a record found on disk, with its derived identity.
type StoredRecord struct {
	Path       string
	SourceType string
	Name       string
	Record     *Record
}

// ListRecords walks cachePath and loads every dependency record. A
// missing cache directory yields an empty list.
func ListRecords(cachePath string) ([]StoredRecord, error) {
	var out []StoredRecord
	err := filepath.WalkDir(cachePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == cachePath && os.IsNotExist(err) {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), RecordSuffix) {
			return nil
		}
		rel, err := filepath.Rel(cachePath, path)
		if err != nil {
			return err
		}
		parts := strings.SplitN(filepath.ToSlash(rel), "/", 2)
		if len(parts) != 2 {
			// records live under a source-type directory
			return nil
		}
		rec, err := ReadRecord(path)
		if err != nil {
			return err
		}
		out = append(out, StoredRecord{
			Path:       path,
			SourceType: parts[0],
			Name:       strings.TrimSuffix(parts[1], RecordSuffix),
			Record:     rec,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
