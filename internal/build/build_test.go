package build

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/hatch/internal/config"
	"github.com/vango-dev/hatch/internal/errors"
	"github.com/vango-dev/hatch/pkg/assets"
	"github.com/vango-dev/hatch/pkg/render"
)

func loadConfig(t *testing.T, body string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	return cfg
}

const projectConfig = `{
	"pages": {
		"/": {"module": "./src/Home.jsx", "hydrate": true},
		"/blog/{id}": {"module": "./src/Post.jsx", "export": "Post", "hydrate": true},
		"/about": {"module": "./src/About.jsx"}
	},
	"build": {"globalImports": ["./src/app.css", "normalize.css"]}
}`

func TestEntryName(t *testing.T) {
	tests := map[string]string{
		"/":          "index",
		"/blog/{id}": "blog-id",
	}
	for route, want := range tests {
		if got := EntryName(route); got != want {
			t.Errorf("EntryName(%q) = %q, want %q", route, got, want)
		}
	}
}

func TestEntriesFromConfig(t *testing.T) {
	cfg := loadConfig(t, projectConfig)
	entries := EntriesFromConfig(cfg)

	if len(entries) != 2 {
		t.Fatalf("EntriesFromConfig() = %+v, want 2 entries", entries)
	}
	if entries[0].Route != "/" || entries[1].Route != "/blog/{id}" {
		t.Fatalf("EntriesFromConfig() order = %+v", entries)
	}
	if entries[1].Export != "Post" || entries[1].Module != "./src/Post.jsx" {
		t.Fatalf("entries[1] = %+v", entries[1])
	}
}

func TestEntriesFromComposer(t *testing.T) {
	entries := EntriesFromComposer([]render.HydrationEntry{
		{Route: "/", Ref: render.ComponentRef{Module: "./Home.jsx", Export: "Home"}},
	})
	want := Entry{Route: "/", Module: "./Home.jsx", Export: "Home"}
	if len(entries) != 1 || entries[0] != want {
		t.Fatalf("EntriesFromComposer() = %+v, want [%+v]", entries, want)
	}
}

func TestImportPath(t *testing.T) {
	project := filepath.FromSlash("/proj")
	dir := filepath.FromSlash("/proj/.hatch/entries")

	tests := []struct {
		specifier string
		want      string
	}{
		{"./src/Home.jsx", "../../src/Home.jsx"},
		{"src/../src/app.css", "src/../src/app.css"},
		{"react-day-picker/style.css", "react-day-picker/style.css"},
		{"../shared/Nav.jsx", "../../../shared/Nav.jsx"},
	}
	for _, tt := range tests {
		if got := importPath(tt.specifier, dir, project); got != tt.want {
			t.Errorf("importPath(%q) = %q, want %q", tt.specifier, got, tt.want)
		}
	}
}

func TestEntrySource(t *testing.T) {
	project := filepath.FromSlash("/proj")
	dir := filepath.FromSlash("/proj/.hatch/entries")

	src := entrySource(Entry{Route: "/", Module: "./src/Home.jsx"}, dir, project, "react-dom/client", []string{"./src/app.css"})
	for _, want := range []string{
		`import { createRoot, hydrateRoot } from "react-dom/client";`,
		`import "../../src/app.css";`,
		`import Component from "../../src/Home.jsx";`,
		`document.getElementById("__HATCH_PROPS__")`,
		`const root = document.getElementById("root");`,
		`hydrateRoot(root, app);`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("entry source missing %q:\n%s", want, src)
		}
	}

	named := entrySource(Entry{Route: "/blog/{id}", Module: "./src/Post.jsx", Export: "Post"}, dir, project, "react-dom/client", nil)
	if !strings.Contains(named, `import { Post as Component } from "../../src/Post.jsx";`) {
		t.Fatalf("named export import missing:\n%s", named)
	}
	if strings.Contains(named, "Home") {
		t.Fatalf("entry imports another page's component:\n%s", named)
	}
}

func TestWriteEntries_NameCollision(t *testing.T) {
	entries := []Entry{
		{Route: "/a/b", Module: "./A.jsx"},
		{Route: "/a-b", Module: "./B.jsx"},
	}
	_, err := writeEntries(entries, t.TempDir(), "/proj", "react-dom/client", nil)
	if err == nil || !strings.Contains(err.Error(), "same entry name") {
		t.Fatalf("writeEntries() error = %v, want name collision", err)
	}
}

func TestParseTarget(t *testing.T) {
	if _, err := parseTarget("ES2020"); err != nil {
		t.Fatalf("parseTarget(ES2020) error = %v", err)
	}
	if _, err := parseTarget(""); err != nil {
		t.Fatalf("parseTarget(\"\") error = %v", err)
	}
	if _, err := parseTarget("chrome58"); err == nil {
		t.Fatal("parseTarget(chrome58) error = nil, want error")
	}
}

func TestOutputsFromMetafile(t *testing.T) {
	work := filepath.FromSlash("/proj")
	out := filepath.FromSlash("/proj/dist/assets")
	meta := `{"outputs": {
		"dist/assets/index.5QIGZ5EU.js": {"entryPoint": ".hatch/entries/index.jsx", "cssBundle": "dist/assets/index.W2QKX7AB.css"},
		"dist/assets/index.5QIGZ5EU.js.map": {},
		"dist/assets/index.W2QKX7AB.css": {"entryPoint": ".hatch/entries/index.jsx"},
		"dist/assets/chunks/chunk-ABCDEFGH.js": {},
		"dist/assets/blog-id.HM3DS4YV.js": {"entryPoint": ".hatch/entries/blog-id.jsx"}
	}}`

	got, err := outputsFromMetafile(meta, work, out)
	if err != nil {
		t.Fatalf("outputsFromMetafile() error = %v", err)
	}
	want := map[string]string{
		"index.js":   "index.5QIGZ5EU.js",
		"index.css":  "index.W2QKX7AB.css",
		"blog-id.js": "blog-id.HM3DS4YV.js",
	}
	if len(got) != len(want) {
		t.Fatalf("outputs = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("outputs[%q] = %q, want %q", k, got[k], v)
		}
	}
}

type fakeBundler struct {
	calls int
	opts  BundleOptions
	err   error
}

func (f *fakeBundler) Bundle(ctx context.Context, opts BundleOptions) (*BundleResult, error) {
	f.calls++
	f.opts = opts
	if f.err != nil {
		return nil, f.err
	}
	outputs := make(map[string]string)
	for stem := range opts.Entries {
		outputs[stem+".js"] = stem + ".ABCDEFGH.js"
	}
	return &BundleResult{Outputs: outputs}, nil
}

func TestBuilder_Build(t *testing.T) {
	cfg := loadConfig(t, projectConfig)
	bundler := &fakeBundler{}

	var steps []string
	b := New(cfg, Options{Minify: true, OnProgress: func(s string) { steps = append(steps, s) }})
	b.Bundler = bundler

	result, err := b.Build(context.Background(), EntriesFromConfig(cfg))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if bundler.calls != 1 {
		t.Fatalf("bundler calls = %d, want 1", bundler.calls)
	}
	if !bundler.opts.Minify || bundler.opts.Target != config.DefaultTarget {
		t.Fatalf("bundle options = %+v", bundler.opts)
	}
	if bundler.opts.Outdir != filepath.Join(cfg.OutputPath(), AssetsDir) {
		t.Fatalf("Outdir = %q", bundler.opts.Outdir)
	}
	for _, stem := range []string{"index", "blog-id"} {
		path, ok := bundler.opts.Entries[stem]
		if !ok {
			t.Fatalf("entry %q not passed to bundler: %v", stem, bundler.opts.Entries)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("entry file %q: %v", path, err)
		}
	}
	if _, ok := bundler.opts.Entries["about"]; ok {
		t.Fatal("non-hydrated page was bundled")
	}

	m, err := assets.Load(result.ManifestPath)
	if err != nil {
		t.Fatalf("assets.Load() error = %v", err)
	}
	if got := m.Resolve("blog-id.js"); got != "blog-id.ABCDEFGH.js" {
		t.Fatalf("manifest blog-id.js = %q", got)
	}
	if result.Entries != 2 || len(steps) == 0 {
		t.Fatalf("result = %+v, steps = %v", result, steps)
	}
}

func TestBuilder_BuildNoEntries(t *testing.T) {
	cfg := loadConfig(t, `{}`)
	bundler := &fakeBundler{}
	b := New(cfg, Options{})
	b.Bundler = bundler

	result, err := b.Build(context.Background(), nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if bundler.calls != 0 {
		t.Fatalf("bundler calls = %d, want 0", bundler.calls)
	}
	m, err := assets.Load(result.ManifestPath)
	if err != nil || m.Len() != 0 {
		t.Fatalf("manifest = %v, %v, want empty", m, err)
	}
}

func TestBuilder_BundleError(t *testing.T) {
	cfg := loadConfig(t, projectConfig)
	b := New(cfg, Options{})
	b.Bundler = &fakeBundler{err: stderrors.New("boom")}

	_, err := b.Build(context.Background(), EntriesFromConfig(cfg))
	if errors.Code(err) != "E201" {
		t.Fatalf("Build() error = %v, want E201", err)
	}
}

func TestNew_TailwindResolver(t *testing.T) {
	cfg := loadConfig(t, `{"tailwind": {"enabled": true, "binary": "bin/tailwindcss"}}`)
	if New(cfg, Options{}).Tailwind == nil {
		t.Fatal("Tailwind resolver = nil with tailwind enabled")
	}
	if New(loadConfig(t, `{}`), Options{}).Tailwind != nil {
		t.Fatal("Tailwind resolver set with tailwind disabled")
	}
}

func TestEsbuildBundler(t *testing.T) {
	dir := t.TempDir()
	entries := filepath.Join(dir, "entries")
	if err := os.MkdirAll(entries, 0755); err != nil {
		t.Fatal(err)
	}
	write := func(path, body string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write(filepath.Join(dir, "app.css"), "body { margin: 0; }\n")
	write(filepath.Join(entries, "index.jsx"), "import \"../app.css\";\nconsole.log(\"index\");\n")

	outdir := filepath.Join(dir, "dist", AssetsDir)
	result, err := EsbuildBundler{}.Bundle(context.Background(), BundleOptions{
		Entries: map[string]string{"index": filepath.Join(entries, "index.jsx")},
		Outdir:  outdir,
		WorkDir: dir,
		Minify:  true,
	})
	if err != nil {
		t.Fatalf("Bundle() error = %v", err)
	}

	for _, key := range []string{"index.js", "index.css"} {
		file, ok := result.Outputs[key]
		if !ok {
			t.Fatalf("outputs = %v, missing %q", result.Outputs, key)
		}
		if !assets.IsFingerprinted(file) {
			t.Errorf("output %q is not fingerprinted", file)
		}
		if _, err := os.Stat(filepath.Join(outdir, file)); err != nil {
			t.Errorf("output %q not written: %v", file, err)
		}
	}
}

func TestEsbuildBundler_Error(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "index.jsx")
	if err := os.WriteFile(entry, []byte("import \"./missing.js\";\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := EsbuildBundler{}.Bundle(context.Background(), BundleOptions{
		Entries: map[string]string{"index": entry},
		Outdir:  filepath.Join(dir, "out"),
		WorkDir: dir,
	})
	if errors.Code(err) != "E201" {
		t.Fatalf("Bundle() error = %v, want E201", err)
	}
	if !strings.Contains(err.Error(), "missing.js") {
		t.Fatalf("Bundle() error = %v, want diagnostic naming the import", err)
	}
}
