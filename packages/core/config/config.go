package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/licenseguard/licenseguard/packages/core/vcs"
)

// Reserved top-level configuration keys.
const (
	KeyName       = "name"
	KeyRoot       = "root"
	KeySourcePath = "source_path"
	KeyCachePath  = "cache_path"
	KeyApps       = "apps"
	KeySources    = "sources"
	KeyIgnored    = "ignored"
	KeyReviewed   = "reviewed"
	KeyAllowed    = "allowed"
)

// DefaultCacheDir is the cache directory used when cache_path is not
// configured, relative to the configuration root.
const DefaultCacheDir = ".licenses"

// defaultAppName names an app entry that has no name of its own.
const defaultAppName = "app"

// Dependency identifies one discovered dependency. An empty Version in
// an ignore or review record matches any version of that name.
type Dependency struct {
	Source  string
	Name    string
	Version string
}

// SourceRegistry answers whether a source-type identifier is known.
// The concrete registry lives in packages/sources.
type SourceRegistry interface {
	Known(name string) bool
}

// Configuration describes how one project ("app") is scanned: where its
// manifests live, where license data is cached, which dependencies and
// licenses are pre-approved, and which sources are active. A root
// configuration may additionally expand into per-app configurations.
//
// Paths and name are resolved once at construction; after composition a
// configuration shares no mutable state with its parent or siblings, so
// separate apps can be scanned concurrently.
type Configuration struct {
	doc  *Document
	path string // configuration file, "" when running on defaults

	name       string
	root       string
	sourcePath string
	cachePath  string

	registry SourceRegistry
	apps     []*Configuration
}

// Name returns the configured or derived app name.
func (c *Configuration) Name() string { return c.name }

// Root returns the absolute directory all relative paths resolve
// against.
func (c *Configuration) Root() string { return c.root }

// SourcePath returns the absolute directory being scanned.
func (c *Configuration) SourcePath() string { return c.sourcePath }

// CachePath returns the absolute directory license data is cached in.
func (c *Configuration) CachePath() string { return c.cachePath }

// Path returns the configuration file this configuration was loaded
// from, or "" when no file was found.
func (c *Configuration) Path() string { return c.path }

// Apps returns the expanded app configurations, or a single-element
// list holding the configuration itself when no apps are configured.
// Callers treat "one app" and "N apps" uniformly.
func (c *Configuration) Apps() []*Configuration {
	if len(c.apps) > 0 {
		return c.apps
	}
	return []*Configuration{c}
}

// Ignore records a dependency as ignored under its source-type bucket.
func (c *Configuration) Ignore(dep Dependency) {
	c.appendRecord(KeyIgnored, dep)
}

// Ignored reports whether a matching ignore record exists. A record
// without a version matches any version of that name.
func (c *Configuration) Ignored(dep Dependency) bool {
	return c.matchRecord(KeyIgnored, dep)
}

// Review records a dependency as reviewed under its source-type bucket.
func (c *Configuration) Review(dep Dependency) {
	c.appendRecord(KeyReviewed, dep)
}

// Reviewed reports whether a matching review record exists.
func (c *Configuration) Reviewed(dep Dependency) bool {
	return c.matchRecord(KeyReviewed, dep)
}

// Allow records a license identifier as allowed.
func (c *Configuration) Allow(license string) {
	list := c.doc.GetList(KeyAllowed)
	c.doc.Set(KeyAllowed, append(list, license))
}

// Allowed reports whether a license identifier has been allowed.
func (c *Configuration) Allowed(license string) bool {
	for _, raw := range c.doc.GetList(KeyAllowed) {
		if s, ok := raw.(string); ok && s == license {
			return true
		}
	}
	return false
}

// AllowedLicenses returns the allowed license identifiers in
// configuration order.
func (c *Configuration) AllowedLicenses() []string {
	raw := c.doc.GetList(KeyAllowed)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Enabled reports whether a source type participates in scanning.
//
// With no sources configured every known type is enabled. As soon as
// any entry is true the mapping becomes an allow list: only types
// explicitly marked true are enabled. Otherwise entries act as a deny
// list and a type is enabled unless its entry is false. A single true
// entry flips the whole mapping into allow-list mode, so
// {npm: true, bundler: false} enables npm and nothing else.
func (c *Configuration) Enabled(sourceType string) bool {
	if c.registry != nil && !c.registry.Known(sourceType) {
		return false
	}
	srcs := c.doc.GetMap(KeySources)
	if srcs.Len() == 0 {
		return true
	}
	for _, key := range srcs.Keys() {
		if srcs.GetBool(key) {
			// allow-list mode
			return srcs.GetBool(sourceType)
		}
	}
	return !srcs.Has(sourceType) || srcs.GetBool(sourceType)
}

func (c *Configuration) appendRecord(key string, dep Dependency) {
	entry := NewDocument()
	entry.Set("name", dep.Name)
	if dep.Version != "" {
		entry.Set("version", dep.Version)
	}
	bucket := c.doc.ensureMap(key)
	bucket.Set(dep.Source, append(bucket.GetList(dep.Source), entry))
}

func (c *Configuration) matchRecord(key string, dep Dependency) bool {
	for _, raw := range c.doc.GetMap(key).GetList(dep.Source) {
		switch rec := raw.(type) {
		case *Document:
			if rec.GetString("name") != dep.Name {
				continue
			}
			if v := rec.GetString("version"); v == "" || v == dep.Version {
				return true
			}
		case string:
			// bare name entries match any version
			if rec == dep.Name {
				return true
			}
		}
	}
	return false
}

// Option adjusts how configurations are loaded.
type Option func(*loader)

// WithRepositoryRoot replaces the version-control root query used as a
// fallback when resolving the configuration root.
func WithRepositoryRoot(fn func(dir string) string) Option {
	return func(ld *loader) { ld.repoRoot = fn }
}

// WithSourceRegistry injects the set of known source types consulted by
// Enabled.
func WithSourceRegistry(r SourceRegistry) Option {
	return func(ld *loader) { ld.registry = r }
}

type loader struct {
	repoRoot func(dir string) string
	registry SourceRegistry
}

func newLoader(opts ...Option) *loader {
	ld := &loader{repoRoot: vcs.RepositoryRoot}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load resolves path to a configuration file, decodes it, and composes
// the root configuration plus any app configurations. A directory
// without a configuration file loads an all-defaults configuration.
func Load(path string, opts ...Option) (*Configuration, error) {
	ld := newLoader(opts...)
	file, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}
	doc := NewDocument()
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, &LoadError{Path: file, Err: err}
		}
		format, err := FormatForPath(file)
		if err != nil {
			return nil, &LoadError{Path: file, Err: err}
		}
		if doc, err = Decode(data, format); err != nil {
			return nil, &LoadError{Path: file, Err: fmt.Errorf("decoding configuration: %w", err)}
		}
	}
	return ld.build(doc, file)
}

// FromDocument composes a configuration from an already-decoded
// document, as if it had been read from file (which may be "").
func FromDocument(doc *Document, file string, opts ...Option) (*Configuration, error) {
	return newLoader(opts...).build(doc, file)
}

func (ld *loader) build(doc *Document, file string) (*Configuration, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	cfg := &Configuration{doc: doc, path: file, registry: ld.registry}
	cfg.root = ld.resolveRoot(doc, file, cwd)

	if sp := doc.GetString(KeySourcePath); sp != "" {
		cfg.sourcePath = absJoin(cfg.root, sp)
	} else {
		cfg.sourcePath = cwd
	}

	if cp := doc.GetString(KeyCachePath); cp != "" {
		cfg.cachePath = absJoin(cfg.root, cp)
	} else {
		cfg.cachePath = filepath.Join(cfg.root, DefaultCacheDir)
	}

	if name := doc.GetString(KeyName); name != "" {
		cfg.name = name
	} else {
		cfg.name = filepath.Base(cwd)
	}

	if entries := doc.GetList(KeyApps); len(entries) > 0 {
		// The defaults cascade: every top-level key except apps fills
		// gaps in each entry, and the entry's own values always win.
		defaults := doc.Clone()
		defaults.Delete(KeyApps)
		for _, raw := range entries {
			entry, ok := raw.(*Document)
			if !ok {
				return nil, &LoadError{Path: file, Err: errors.New("apps entries must be mappings")}
			}
			app, err := ld.buildApp(entry, defaults, cfg, file)
			if err != nil {
				return nil, err
			}
			cfg.apps = append(cfg.apps, app)
		}
	}
	return cfg, nil
}

// resolveRoot applies the root precedence: an explicit path key
// (relative to the configuration file's directory), the `root: true`
// sentinel meaning that directory itself, the version-control
// repository root, and finally the working directory.
func (ld *loader) resolveRoot(doc *Document, file, cwd string) string {
	base := cwd
	if file != "" {
		base = filepath.Dir(file)
	}
	if v, ok := doc.Get(KeyRoot); ok {
		switch root := v.(type) {
		case string:
			if root != "" {
				return absJoin(base, root)
			}
		case bool:
			if root {
				return base
			}
		}
	}
	if repo := ld.repoRoot(cwd); repo != "" {
		return repo
	}
	return cwd
}

func (ld *loader) buildApp(entry, defaults *Document, parent *Configuration, file string) (*Configuration, error) {
	doc := entry.Clone()
	hadCachePath := doc.Has(KeyCachePath)
	doc.Merge(defaults)

	app := &Configuration{doc: doc, path: file, registry: parent.registry}

	if name := doc.GetString(KeyName); name != "" {
		app.name = name
	} else {
		app.name = defaultAppName
	}

	sp := doc.GetString(KeySourcePath)
	if sp == "" {
		return nil, &LoadError{Path: file, App: app.name, Err: errors.New("source_path is required")}
	}

	// Relative paths an entry doesn't override resolve against the
	// root configuration's resolved root.
	app.root = parent.root
	if v, ok := doc.Get(KeyRoot); ok {
		base := parent.root
		if file != "" {
			base = filepath.Dir(file)
		}
		switch root := v.(type) {
		case string:
			if root != "" {
				app.root = absJoin(base, root)
			}
		case bool:
			if root {
				app.root = base
			}
		}
	}

	app.sourcePath = absJoin(app.root, sp)

	if hadCachePath {
		app.cachePath = absJoin(app.root, entry.GetString(KeyCachePath))
	} else {
		// Sibling apps sharing an inherited cache_path each get their
		// name appended so they do not collide on one cache directory.
		app.cachePath = filepath.Join(parent.cachePath, app.name)
	}
	return app, nil
}
