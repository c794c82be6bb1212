package cache

import (
	"os"

	"github.com/licenseguard/licenseguard/packages/core/config"
)

// StaleRecords returns the records under cfg's cache path that no
// longer belong there: their source type is disabled, their dependency
// is ignored, or their format version is out of date.
func StaleRecords(cfg *config.Configuration) ([]StoredRecord, error) {
	records, err := ListRecords(cfg.CachePath())
	if err != nil {
		return nil, err
	}
	var stale []StoredRecord
	for _, rec := range records {
		dep := config.Dependency{
			Source:  rec.SourceType,
			Name:    rec.Name,
			Version: rec.Record.Version,
		}
		switch {
		case !cfg.Enabled(rec.SourceType),
			cfg.Ignored(dep),
			rec.Record.RecordVersion != RecordVersion:
			stale = append(stale, rec)
		}
	}
	return stale, nil
}

// Prune deletes the given records from disk. It stops at the first
// failure and reports how many records were removed.
func Prune(records []StoredRecord) (int, error) {
	for i, rec := range records {
		if err := os.Remove(rec.Path); err != nil {
			return i, err
		}
	}
	return len(records), nil
}
