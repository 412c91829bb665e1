package assets

import "strings"

// Resolver turns logical asset names into URL paths.
type Resolver interface {
	// Asset returns the URL path for source, fingerprinted when known.
	Asset(source string) string

	// Lookup is like Asset but reports whether source is a known asset.
	Lookup(source string) (string, bool)
}

type manifestResolver struct {
	manifest *Manifest
	prefix   string
}

// NewResolver resolves names through m and prepends prefix. A non-empty
// prefix is normalized to end with a slash.
func NewResolver(m *Manifest, prefix string) Resolver {
	return &manifestResolver{manifest: m, prefix: normalizePrefix(prefix)}
}

func (r *manifestResolver) Asset(source string) string {
	return r.prefix + r.manifest.Resolve(source)
}

func (r *manifestResolver) Lookup(source string) (string, bool) {
	resolved, ok := r.manifest.Lookup(source)
	if !ok {
		return "", false
	}
	return r.prefix + resolved, true
}

type passthrough struct {
	prefix string
}

// NewPassthroughResolver returns names unchanged apart from the prefix.
// Lookup always succeeds. Used when serving an unfingerprinted build.
func NewPassthroughResolver(prefix string) Resolver {
	return &passthrough{prefix: normalizePrefix(prefix)}
}

func (p *passthrough) Asset(source string) string {
	return p.prefix + source
}

func (p *passthrough) Lookup(source string) (string, bool) {
	return p.prefix + source, true
}

func normalizePrefix(prefix string) string {
	if prefix == "" || strings.HasSuffix(prefix, "/") {
		return prefix
	}
	return prefix + "/"
}
