package templates

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/hatch/internal/config"
	"github.com/vango-dev/hatch/internal/errors"
)

func testConfig(tailwind bool) Config {
	return Config{
		ProjectName:    "my-app",
		ModulePath:     "example.com/my-app",
		Description:    "A test app",
		HasTailwind:    tailwind,
		PackageManager: "pnpm",
		HatchVersion:   "v0.1.0",
	}
}

func TestGet(t *testing.T) {
	for _, name := range []string{"minimal", "full", "api"} {
		tmpl, err := Get(name)
		if err != nil {
			t.Fatalf("Get(%q) error = %v", name, err)
		}
		if tmpl.Name != name {
			t.Errorf("Get(%q).Name = %q", name, tmpl.Name)
		}
	}

	_, err := Get("nonexistent")
	if errors.Code(err) != "E221" {
		t.Fatalf("Get(nonexistent) error = %v, want E221", err)
	}
}

func TestList(t *testing.T) {
	got := strings.Join(List(), ",")
	if got != "api,full,minimal" {
		t.Fatalf("List() = %q, want %q", got, "api,full,minimal")
	}
}

func TestCreate_ConfigLoads(t *testing.T) {
	for _, name := range List() {
		for _, tailwind := range []bool{false, true} {
			tmpl, _ := Get(name)
			dir := t.TempDir()
			if err := tmpl.Create(dir, testConfig(tailwind)); err != nil {
				t.Fatalf("%s: Create() error = %v", name, err)
			}

			cfg, err := config.Load(dir)
			if err != nil {
				t.Fatalf("%s (tailwind=%v): generated hatch.json does not load: %v", name, tailwind, err)
			}
			if cfg.Name != "my-app" {
				t.Errorf("%s: config name = %q", name, cfg.Name)
			}
			for route, page := range cfg.Pages {
				if _, err := os.Stat(cfg.Abs(page.Module)); err != nil {
					t.Errorf("%s: page %s module %s missing: %v", name, route, page.Module, err)
				}
			}
		}
	}
}

func TestCreate_Substitution(t *testing.T) {
	tmpl, _ := Get("full")
	dir := t.TempDir()
	if err := tmpl.Create(dir, testConfig(true)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	gomod, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(gomod), "module example.com/my-app") ||
		!strings.Contains(string(gomod), "github.com/vango-dev/hatch v0.1.0") {
		t.Fatalf("go.mod = %q", gomod)
	}

	var pkg map[string]any
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		t.Fatalf("package.json is not valid JSON: %v", err)
	}
	if pkg["name"] != "my-app" {
		t.Fatalf("package.json name = %v", pkg["name"])
	}

	// Runtime template actions survive create-time substitution.
	post, err := os.ReadFile(filepath.Join(dir, "src", "Post.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(post), `{{define "Post"}}`) {
		t.Fatalf("Post.html = %q, want html/template actions intact", post)
	}

	mainGo, err := os.ReadFile(filepath.Join(dir, "main.go"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(mainGo), `"pnpm run build"`) {
		t.Fatalf("main.go does not mention the package manager:\n%s", mainGo)
	}
}

func TestCreate_Tailwind(t *testing.T) {
	tmpl, _ := Get("full")

	with := t.TempDir()
	if err := tmpl.Create(with, testConfig(true)); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(with)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Tailwind.Enabled || len(cfg.Build.GlobalImports) != 1 {
		t.Fatalf("tailwind config = %+v, globalImports = %v", cfg.Tailwind, cfg.Build.GlobalImports)
	}
	if _, err := os.Stat(filepath.Join(with, "src", "app.css")); err != nil {
		t.Fatalf("app.css missing: %v", err)
	}

	without := t.TempDir()
	if err := tmpl.Create(without, testConfig(false)); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(without, "src", "app.css")); !os.IsNotExist(err) {
		t.Fatalf("app.css written without tailwind: %v", err)
	}
}

func TestHasClient(t *testing.T) {
	tests := map[string]bool{"minimal": true, "full": true, "api": false}
	for name, want := range tests {
		tmpl, _ := Get(name)
		if got := tmpl.HasClient(); got != want {
			t.Errorf("%s.HasClient() = %v, want %v", name, got, want)
		}
	}
}
