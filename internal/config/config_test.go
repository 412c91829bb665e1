package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vango-dev/hatch/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"name": "shop"}`)
	if err := os.Mkdir(filepath.Join(dir, DefaultStaticDir), 0755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Name != "shop" {
		t.Fatalf("Name = %q, want shop", cfg.Name)
	}
	if cfg.Server.Port != DefaultPort || cfg.Server.Host != DefaultHost {
		t.Fatalf("Server = %+v, want defaults", cfg.Server)
	}
	if cfg.Build.Output != DefaultOutput || !cfg.Build.Minify || cfg.Build.Target != DefaultTarget {
		t.Fatalf("Build = %+v, want defaults", cfg.Build)
	}
	if len(cfg.Static) != 1 || cfg.Static[0].Dir != DefaultStaticDir || cfg.Static[0].Prefix != "/" {
		t.Fatalf("Static = %+v, want [public at /]", cfg.Static)
	}
	if cfg.Dir() != dir {
		t.Fatalf("Dir() = %q, want %q", cfg.Dir(), dir)
	}
	if cfg.OutputPath() != filepath.Join(dir, DefaultOutput) {
		t.Fatalf("OutputPath() = %q", cfg.OutputPath())
	}
}

func TestLoadFileValues(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{
		"static": [{"dir": "assets", "maxAge": 60}, {"dir": "dist", "prefix": "/assets/"}],
		"headers": {"X-Frame-Options": "DENY"},
		"pages": {
			"/": {"module": "./src/Home.jsx", "hydrate": true},
			"/about": {"module": "./src/About.jsx", "export": "About"}
		},
		"build": {"minify": false, "output": "/tmp/out", "globalImports": ["./src/app.css"]},
		"server": {"port": 8080}
	}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Static) != 2 || cfg.Static[0].Prefix != "/" || cfg.Static[1].Prefix != "/assets/" {
		t.Fatalf("Static = %+v", cfg.Static)
	}
	if cfg.Build.Minify {
		t.Fatalf("Build.Minify = true, want false from file")
	}
	if cfg.OutputPath() != "/tmp/out" {
		t.Fatalf("OutputPath() = %q, want /tmp/out", cfg.OutputPath())
	}
	if cfg.Server.Port != 8080 || cfg.Server.Host != DefaultHost {
		t.Fatalf("Server = %+v", cfg.Server)
	}
	if cfg.Address() != "localhost:8080" {
		t.Fatalf("Address() = %q", cfg.Address())
	}
	if routes := cfg.HydratedRoutes(); len(routes) != 1 || routes[0] != "/" {
		t.Fatalf("HydratedRoutes() = %v, want [/]", routes)
	}
	if cfg.Pages["/about"].Export != "About" {
		t.Fatalf("Pages[/about] = %+v", cfg.Pages["/about"])
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"server": {"port": 8080, "host": "0.0.0.0"}, "build": {"output": "dist"}}`)

	t.Setenv("HATCH_PORT", "9090")
	t.Setenv("HATCH_OUTPUT", "build")
	t.Setenv("HATCH_PUBLISH_BUCKET", "assets-bucket")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Fatalf("Server.Host = %q, want file value", cfg.Server.Host)
	}
	if cfg.Build.Output != "build" {
		t.Fatalf("Build.Output = %q, want build", cfg.Build.Output)
	}
	if cfg.Publish.Bucket != "assets-bucket" {
		t.Fatalf("Publish.Bucket = %q", cfg.Publish.Bucket)
	}
}

func TestEnvOverrideInvalid(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{}`)
	t.Setenv("HATCH_PORT", "not-a-number")

	_, err := Load(dir)
	if errors.Code(err) != "E102" {
		t.Fatalf("Load() error = %v, want E102", err)
	}
}

func TestLoadDefaultStatic(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		publicDir bool
		want      []StaticConfig
	}{
		{"no public dir", `{}`, false, nil},
		{"public dir", `{}`, true, []StaticConfig{{Dir: "public", Prefix: "/"}}},
		{"declared empty", `{"static": []}`, true, []StaticConfig{}},
		{"declared entry", `{"static": [{"dir": "assets", "prefix": "/x"}]}`, true, []StaticConfig{{Dir: "assets", Prefix: "/x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)
			if tt.publicDir {
				if err := os.Mkdir(filepath.Join(dir, DefaultStaticDir), 0755); err != nil {
					t.Fatal(err)
				}
			}
			cfg, err := Load(dir)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !reflect.DeepEqual(cfg.Static, tt.want) {
				t.Fatalf("Static = %#v, want %#v", cfg.Static, tt.want)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    string
	}{
		{"invalid json", `{`, "E102"},
		{"bad port", `{"server": {"port": 70000}}`, "E103"},
		{"static without dir", `{"static": [{"prefix": "/x"}]}`, "E102"},
		{"page without module", `{"pages": {"/": {"title": "x"}}}`, "E102"},
		{"page route without slash", `{"pages": {"home": {"module": "./Home.jsx"}}}`, "E102"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)
			_, err := Load(dir)
			if got := errors.Code(err); got != tt.code {
				t.Fatalf("Load() code = %q (err %v), want %q", got, err, tt.code)
			}
		})
	}

	if _, err := Load(t.TempDir()); errors.Code(err) != "E101" {
		t.Fatalf("Load(empty dir) error = %v, want E101", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Defaults()
	cfg.Name = "saved"
	cfg.Pages = map[string]PageConfig{"/": {Module: "./src/Home.jsx", Hydrate: true}}

	path := filepath.Join(dir, ConfigFileName)
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}
	if cfg.Path() != path {
		t.Fatalf("Path() = %q, want %q", cfg.Path(), path)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Name != "saved" || !loaded.Pages["/"].Hydrate {
		t.Fatalf("loaded = %+v", loaded)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{}`)
	nested := filepath.Join(root, "src", "pages")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot() error = %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Fatalf("FindProjectRoot() = %q, want %q", got, want)
	}

	if !Exists(root) || Exists(nested) {
		t.Fatalf("Exists() mismatch")
	}
}
