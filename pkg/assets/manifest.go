// Package assets maps client bundle names to the fingerprinted files the
// bundler wrote.
//
// `hatch build` writes a manifest.json next to its output:
//
//	{
//	  "index.js":   "index.5QIGZ5EU.js",
//	  "index.css":  "index.W2QKX7AB.css",
//	  "blog-id.js": "blog-id.HM3DS4YV.js"
//	}
//
// Keys are entry stems (see EntryName) plus the output extension. The
// server-render composer loads the manifest at startup and resolves the
// bundle for each hydrated route through a Resolver:
//
//	manifest, _ := assets.Load("dist/manifest.json")
//	resolver := assets.NewResolver(manifest, "/assets/")
//	resolver.Asset("index.js") // "/assets/index.5QIGZ5EU.js"
package assets

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// ManifestFile is the file name the build writes into its output directory.
const ManifestFile = "manifest.json"

// Manifest maps logical asset names to fingerprinted file names.
// It is safe for concurrent use.
type Manifest struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{entries: make(map[string]string)}
}

// Load reads a manifest file written by Write.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]string)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return &Manifest{entries: entries}, nil
}

// Lookup returns the fingerprinted name for source and whether it exists.
func (m *Manifest) Lookup(source string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	resolved, ok := m.entries[source]
	return resolved, ok
}

// Resolve returns the fingerprinted name for source, or source itself when
// the manifest has no entry for it.
func (m *Manifest) Resolve(source string) string {
	if resolved, ok := m.Lookup(source); ok {
		return resolved
	}
	return source
}

// Has reports whether the manifest contains source.
func (m *Manifest) Has(source string) bool {
	_, ok := m.Lookup(source)
	return ok
}

// Set adds or replaces an entry.
func (m *Manifest) Set(source, resolved string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[source] = resolved
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

// All returns a copy of all entries.
func (m *Manifest) All() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out
}

// Sources returns the entry names in sorted order.
func (m *Manifest) Sources() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.entries))
	for k := range m.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Write stores the manifest as indented JSON at path, creating parent
// directories as needed.
func (m *Manifest) Write(path string) error {
	data, err := json.MarshalIndent(m.All(), "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
