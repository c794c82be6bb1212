// Package config resolves, merges, and exposes the hierarchical
// configuration for a license scan.
//
// It provides functionality for:
//   - Locating .licenseguard.yml, .licenseguard.yaml or .licenseguard.json files
//   - An ordered document type with gap-filling merge semantics
//   - Expanding a root configuration into per-app configurations
//   - Ignore/review/allow records and source enablement policy
package config
