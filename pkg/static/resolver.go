package static

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// DefaultIndex is the index file served for directory-like paths.
const DefaultIndex = "index.html"

var (
	// ErrNotHandled reports that a path is outside the resolver's prefix.
	ErrNotHandled = errors.New("static: path outside prefix")

	// ErrNotFound reports that no file exists for a path.
	ErrNotFound = errors.New("static: file not found")
)

// Resolver maps URL paths to files under Root.
type Resolver struct {
	root   string
	prefix string
	index  string
}

// NewResolver creates a resolver for root. The root is made absolute and
// fixed for the resolver's lifetime. An empty prefix means "/", an empty
// index means DefaultIndex.
func NewResolver(root, prefix, index string) (*Resolver, error) {
	if root == "" {
		return nil, fmt.Errorf("static: empty root directory")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("static: resolve root %q: %w", root, err)
	}
	if index == "" {
		index = DefaultIndex
	}
	return &Resolver{
		root:   filepath.Clean(abs),
		prefix: normalizePrefix(prefix),
		index:  index,
	}, nil
}

// Root returns the absolute root directory.
func (r *Resolver) Root() string { return r.root }

// Prefix returns the normalized URL prefix (always ending in "/").
func (r *Resolver) Prefix() string { return r.prefix }

// Resolve returns the on-disk path for a raw (still percent-encoded) URL
// path. A directory-like path resolves to its index file.
func (r *Resolver) Resolve(rawPath string) (string, error) {
	rel, ok := r.stripPrefix(rawPath)
	if !ok {
		return "", ErrNotHandled
	}

	decoded, err := url.PathUnescape(rel)
	if err != nil {
		return "", ErrNotFound
	}
	if strings.IndexByte(decoded, 0) != -1 {
		return "", ErrNotFound
	}

	candidate := filepath.Join(r.root, filepath.FromSlash(strings.Join(segments(decoded), "/")))
	if !Contains(r.root, candidate) {
		return "", ErrNotFound
	}

	if isFile(candidate) {
		return candidate, nil
	}

	indexed := filepath.Join(candidate, r.index)
	if Contains(r.root, indexed) && isFile(indexed) {
		return indexed, nil
	}

	return "", ErrNotFound
}

// stripPrefix removes the prefix from a URL path. The bare prefix without
// its trailing slash ("/static" for "/static/") also matches.
func (r *Resolver) stripPrefix(urlPath string) (string, bool) {
	if r.prefix == "/" {
		return strings.TrimPrefix(urlPath, "/"), true
	}
	if urlPath == strings.TrimSuffix(r.prefix, "/") {
		return "", true
	}
	if !strings.HasPrefix(urlPath, r.prefix) {
		return "", false
	}
	return strings.TrimPrefix(urlPath, r.prefix), true
}

// segments walks the path left to right: empty and "." segments are
// dropped, ".." pops the last kept segment and never goes below empty.
// Both "/" and "\" separate segments.
func segments(p string) []string {
	parts := strings.FieldsFunc(p, func(c rune) bool { return c == '/' || c == '\\' })

	out := make([]string, 0, len(parts))
	for _, seg := range parts {
		switch seg {
		case ".":
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, seg)
		}
	}
	return out
}

// Contains reports whether candidate is root itself or lexically inside it.
func Contains(root, candidate string) bool {
	root = filepath.Clean(root)
	candidate = filepath.Clean(candidate)
	if candidate == root {
		return true
	}
	sep := string(filepath.Separator)
	if strings.HasSuffix(root, sep) {
		return strings.HasPrefix(candidate, root)
	}
	return strings.HasPrefix(candidate, root+sep)
}

func normalizePrefix(prefix string) string {
	if prefix == "" {
		return "/"
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
