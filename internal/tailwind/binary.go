// Package tailwind manages the Tailwind CSS standalone binary.
// It handles downloading and caching the binary, compiling stylesheets
// with it, and exposing it to the client bundler as an esbuild plugin.
package tailwind

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/vango-dev/hatch/internal/errors"
)

const (
	// Version is the Tailwind CSS version to use.
	// Note: v4.0.0-v4.0.5 had a bug where --watch exited immediately.
	Version = "v4.1.18"

	// GitHubReleaseURL is the base URL for downloading Tailwind binaries.
	GitHubReleaseURL = "https://github.com/tailwindlabs/tailwindcss/releases/download"

	// DefaultBinDir is the default directory for storing the binary.
	DefaultBinDir = ".hatch/bin"

	downloadTimeout = 5 * time.Minute
)

// Binary represents the Tailwind CSS standalone binary.
type Binary struct {
	// Version is the Tailwind version.
	Version string

	// BinDir is the directory where the binary is stored.
	BinDir string

	// DownloadBaseURL is the base URL for downloading Tailwind binaries.
	// If empty, GitHubReleaseURL is used.
	DownloadBaseURL string

	// Client is used for downloads. If nil, a resty client with a
	// generous timeout is used.
	Client *resty.Client

	// path is the cached path to the binary.
	path string
	mu   sync.Mutex
}

// NewBinary creates a new Binary with default settings.
func NewBinary() *Binary {
	return NewBinaryWithVersion(Version)
}

// NewBinaryWithVersion creates a new Binary with a specific version.
// An empty version selects the default.
func NewBinaryWithVersion(version string) *Binary {
	if version == "" {
		version = Version
	}
	return &Binary{
		Version:         version,
		BinDir:          defaultBinDir(),
		DownloadBaseURL: GitHubReleaseURL,
	}
}

// defaultBinDir returns the default binary directory (~/.hatch/bin).
func defaultBinDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", DefaultBinDir)
	}
	return filepath.Join(home, DefaultBinDir)
}

// Path returns the path to an installed Tailwind binary.
func (b *Binary) Path() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.path != "" {
		return b.path, nil
	}

	path := b.binaryPath()
	if _, err := os.Stat(path); err != nil {
		return "", errors.New("E202").
			WithDetailf("No binary at %s.", path).
			WithSuggestion("Run 'hatch build' with tailwind.enabled to download it")
	}
	b.path = path
	return path, nil
}

// EnsureInstalled downloads the binary if it doesn't exist.
// Returns the path to the binary.
func (b *Binary) EnsureInstalled(ctx context.Context, progress func(msg string)) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	path := b.binaryPath()
	if _, err := os.Stat(path); err == nil {
		b.path = path
		return path, nil
	}

	if err := b.download(ctx, progress); err != nil {
		return "", errors.FromError(err, "E202")
	}

	b.path = path
	return path, nil
}

// IsInstalled checks if the binary is installed.
func (b *Binary) IsInstalled() bool {
	_, err := os.Stat(b.binaryPath())
	return err == nil
}

// binaryPath returns the path where the binary should be stored.
// Binaries are kept per version so upgrades never reuse an older one.
func (b *Binary) binaryPath() string {
	return filepath.Join(b.BinDir, b.Version, binaryName())
}

// downloadURL returns the URL to download the binary.
func (b *Binary) downloadURL() string {
	base := b.DownloadBaseURL
	if base == "" {
		base = GitHubReleaseURL
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), b.Version, binaryName())
}

func (b *Binary) client() *resty.Client {
	if b.Client != nil {
		return b.Client
	}
	return resty.New().SetTimeout(downloadTimeout)
}

// download fetches the binary from the release server.
func (b *Binary) download(ctx context.Context, progress func(msg string)) error {
	url := b.downloadURL()

	if progress != nil {
		progress(fmt.Sprintf("Downloading Tailwind CSS %s...", b.Version))
	}

	if err := os.MkdirAll(filepath.Dir(b.binaryPath()), 0755); err != nil {
		return fmt.Errorf("create bin directory: %w", err)
	}

	resp, err := b.client().R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		return errors.New("E202").
			WithDetailf("Download failed with status %d (URL: %s).", resp.StatusCode(), url)
	}

	// Write to a temp file first, then rename.
	tmpPath := b.binaryPath() + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	written, err := io.Copy(f, body)
	f.Close()
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write file: %w", err)
	}

	if progress != nil {
		progress(fmt.Sprintf("Downloaded %.1f MB", float64(written)/1024/1024))
	}

	if err := os.Chmod(tmpPath, 0755); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("make executable: %w", err)
	}

	if err := os.Rename(tmpPath, b.binaryPath()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("install binary: %w", err)
	}

	if progress != nil {
		progress(fmt.Sprintf("Installed to %s", b.binaryPath()))
	}
	return nil
}
