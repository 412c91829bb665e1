package assets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestManifestResolve(t *testing.T) {
	m := NewManifest()
	m.Set("index.js", "index.5QIGZ5EU.js")
	m.Set("index.css", "index.W2QKX7AB.css")

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"found entry", "index.js", "index.5QIGZ5EU.js"},
		{"found stylesheet", "index.css", "index.W2QKX7AB.css"},
		{"missing entry returns original", "about.js", "about.js"},
		{"empty string returns empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Resolve(tt.source); got != tt.want {
				t.Fatalf("Resolve(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestManifestAllIsCopy(t *testing.T) {
	m := NewManifest()
	m.Set("a.js", "a.123.js")

	all := m.All()
	all["b.js"] = "b.456.js"
	if m.Has("b.js") {
		t.Fatalf("All() returned the live map")
	}
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
}

func TestManifestWriteLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dist", ManifestFile)

	m := NewManifest()
	m.Set("index.js", "index.5QIGZ5EU.js")
	m.Set("blog-id.js", "blog-id.HM3DS4YV.js")
	if err := m.Write(path); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := loaded.Sources(); len(got) != 2 || got[0] != "blog-id.js" || got[1] != "index.js" {
		t.Fatalf("Sources() = %v, want [blog-id.js index.js]", got)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("/nonexistent/manifest.json"); err == nil {
		t.Fatalf("Load(missing) error = nil")
	}

	path := filepath.Join(t.TempDir(), ManifestFile)
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load(invalid) error = nil")
	}
}

func TestResolver(t *testing.T) {
	m := NewManifest()
	m.Set("index.js", "index.5QIGZ5EU.js")

	tests := []struct {
		prefix string
		source string
		want   string
	}{
		{"/assets/", "index.js", "/assets/index.5QIGZ5EU.js"},
		{"/assets", "index.js", "/assets/index.5QIGZ5EU.js"},
		{"", "index.js", "index.5QIGZ5EU.js"},
		{"/assets/", "about.js", "/assets/about.js"},
	}
	for _, tt := range tests {
		r := NewResolver(m, tt.prefix)
		if got := r.Asset(tt.source); got != tt.want {
			t.Fatalf("Asset(%q) with prefix %q = %q, want %q", tt.source, tt.prefix, got, tt.want)
		}
	}

	r := NewResolver(m, "/assets/")
	if _, ok := r.Lookup("about.js"); ok {
		t.Fatalf("Lookup(about.js) ok = true, want false")
	}
	if got, ok := r.Lookup("index.js"); !ok || got != "/assets/index.5QIGZ5EU.js" {
		t.Fatalf("Lookup(index.js) = %q, %v", got, ok)
	}
}

func TestPassthroughResolver(t *testing.T) {
	r := NewPassthroughResolver("/assets")
	if got := r.Asset("index.js"); got != "/assets/index.js" {
		t.Fatalf("Asset(index.js) = %q, want /assets/index.js", got)
	}
	if got, ok := r.Lookup("index.css"); !ok || got != "/assets/index.css" {
		t.Fatalf("Lookup(index.css) = %q, %v", got, ok)
	}
}
