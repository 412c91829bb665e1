package static

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeStaticFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile %s: %v", name, err)
	}
	return path
}

func newTestResolver(t *testing.T, prefix string) (*Resolver, string) {
	t.Helper()

	tmpDir := t.TempDir()
	publicDir := filepath.Join(tmpDir, "public")
	writeStaticFile(t, publicDir, "index.html", "<h1>home</h1>")
	writeStaticFile(t, publicDir, "app.js", "ok")
	writeStaticFile(t, publicDir, "docs/index.html", "docs")
	writeStaticFile(t, publicDir, "docs/guide.txt", "guide")
	writeStaticFile(t, tmpDir, "secret.txt", "secret")

	r, err := NewResolver(publicDir, prefix, "")
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	return r, publicDir
}

func TestResolve_Files(t *testing.T) {
	r, publicDir := newTestResolver(t, "/")

	cases := []struct {
		path string
		want string
	}{
		{path: "/", want: "index.html"},
		{path: "/app.js", want: "app.js"},
		{path: "/docs", want: "docs/index.html"},
		{path: "/docs/", want: "docs/index.html"},
		{path: "/docs/guide.txt", want: "docs/guide.txt"},
		{path: "//docs//./guide.txt", want: "docs/guide.txt"},
		{path: "/docs/../app.js", want: "app.js"},
		{path: "/%61pp.js", want: "app.js"},
	}

	for _, tc := range cases {
		got, err := r.Resolve(tc.path)
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", tc.path, err)
		}
		if want := filepath.Join(publicDir, filepath.FromSlash(tc.want)); got != want {
			t.Fatalf("Resolve(%q) = %q, want %q", tc.path, got, want)
		}
	}
}

func TestResolve_NeverEscapesRoot(t *testing.T) {
	r, publicDir := newTestResolver(t, "/")

	cases := []string{
		"../../etc/passwd",
		"/../secret.txt",
		"/%2e%2e/secret.txt",
		"/..//secret.txt",
		"/docs/../../secret.txt",
		"/..%2fsecret.txt",
		"/..%5csecret.txt",
		"/..\\secret.txt",
		"/\x00",
		"/%00",
		"/%zz",
	}

	for _, p := range cases {
		got, err := r.Resolve(p)
		if err == nil {
			if !Contains(publicDir, got) {
				t.Fatalf("Resolve(%q) = %q escapes root %q", p, got, publicDir)
			}
			if strings.HasSuffix(got, "secret.txt") {
				t.Fatalf("Resolve(%q) resolved the secret file", p)
			}
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("Resolve(%q) error = %v, want ErrNotFound", p, err)
		}
	}
}

func TestResolve_Prefix(t *testing.T) {
	r, publicDir := newTestResolver(t, "/static")

	if got, err := r.Resolve("/static/app.js"); err != nil || got != filepath.Join(publicDir, "app.js") {
		t.Fatalf("Resolve(/static/app.js) = %q, %v", got, err)
	}
	if got, err := r.Resolve("/static"); err != nil || got != filepath.Join(publicDir, "index.html") {
		t.Fatalf("Resolve(/static) = %q, %v", got, err)
	}
	if _, err := r.Resolve("/app.js"); !errors.Is(err, ErrNotHandled) {
		t.Fatalf("Resolve(/app.js) error = %v, want ErrNotHandled", err)
	}
	if _, err := r.Resolve("/staticfile"); !errors.Is(err, ErrNotHandled) {
		t.Fatalf("Resolve(/staticfile) error = %v, want ErrNotHandled", err)
	}
	if _, err := r.Resolve("/static/missing.css"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Resolve(/static/missing.css) error = %v, want ErrNotFound", err)
	}
}

func TestResolve_DirectoryWithoutIndex(t *testing.T) {
	tmpDir := t.TempDir()
	writeStaticFile(t, tmpDir, "empty/.keep", "")

	r, err := NewResolver(tmpDir, "/", "")
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	if _, err := r.Resolve("/empty/"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Resolve(/empty/) error = %v, want ErrNotFound", err)
	}
}

func TestSegments(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "a/b/c", want: "a/b/c"},
		{in: "a/./b", want: "a/b"},
		{in: "../../a", want: "a"},
		{in: "a/b/../../..", want: ""},
		{in: "a\\..\\b", want: "b"},
	}

	for _, tc := range cases {
		if got := strings.Join(segments(tc.in), "/"); got != tc.want {
			t.Fatalf("segments(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestContains(t *testing.T) {
	root := filepath.FromSlash("/srv/public")
	cases := []struct {
		candidate string
		want      bool
	}{
		{candidate: "/srv/public", want: true},
		{candidate: "/srv/public/a.txt", want: true},
		{candidate: "/srv/public-other/a.txt", want: false},
		{candidate: "/srv/secret.txt", want: false},
		{candidate: "/srv/public/../secret.txt", want: false},
	}

	for _, tc := range cases {
		if got := Contains(root, filepath.FromSlash(tc.candidate)); got != tc.want {
			t.Fatalf("Contains(%q, %q) = %v, want %v", root, tc.candidate, got, tc.want)
		}
	}
}

func TestNormalizePrefix(t *testing.T) {
	cases := map[string]string{
		"":         "/",
		"/":        "/",
		"static":   "/static/",
		"/static":  "/static/",
		"/static/": "/static/",
	}
	for in, want := range cases {
		if got := normalizePrefix(in); got != want {
			t.Fatalf("normalizePrefix(%q) = %q, want %q", in, got, want)
		}
	}
}
