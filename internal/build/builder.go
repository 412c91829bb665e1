package build

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/vango-dev/hatch/internal/config"
	"github.com/vango-dev/hatch/internal/errors"
	"github.com/vango-dev/hatch/internal/tailwind"
	"github.com/vango-dev/hatch/pkg/assets"
)

// AssetsDir is the directory under the build output holding bundles.
const AssetsDir = "assets"

// Result contains the build output.
type Result struct {
	// Duration is how long the build took.
	Duration time.Duration

	// Assets is the directory the bundles were written to.
	Assets string

	// Manifest maps entry stems to bundle files.
	Manifest *assets.Manifest

	// ManifestPath is where the manifest was written.
	ManifestPath string

	// Entries is the number of entries bundled.
	Entries int

	// Warnings are bundler warnings.
	Warnings []string
}

// Options configures the builder.
type Options struct {
	// Minify enables minification.
	Minify bool

	// SourceMaps enables source map generation.
	SourceMaps bool

	// OnProgress is called with progress updates.
	OnProgress func(step string)
}

// Builder handles client builds.
type Builder struct {
	// Bundler defaults to EsbuildBundler.
	Bundler Bundler

	// Plugins are passed to the bundler in addition to Tailwind's.
	Plugins []api.Plugin

	// Tailwind is set when the project enables Tailwind.
	Tailwind *tailwind.PluginResolver

	config  *config.Config
	options Options
}

// New creates a new builder.
func New(cfg *config.Config, options Options) *Builder {
	// Apply config defaults to options
	if !options.Minify && cfg.Build.Minify {
		options.Minify = true
	}
	if !options.SourceMaps && cfg.Build.SourceMaps {
		options.SourceMaps = true
	}

	b := &Builder{
		Bundler: EsbuildBundler{},
		config:  cfg,
		options: options,
	}
	if cfg.Tailwind.Enabled {
		opts := tailwind.PluginOptions{
			Binary:     tailwind.NewBinaryWithVersion(cfg.Tailwind.Version),
			ProjectDir: cfg.Dir(),
			Minify:     options.Minify,
			Progress:   b.progress,
		}
		if cfg.Tailwind.Binary != "" {
			opts.BinaryPath = cfg.Abs(cfg.Tailwind.Binary)
		}
		if cfg.Tailwind.Config != "" {
			opts.ConfigPath = cfg.Abs(cfg.Tailwind.Config)
		}
		b.Tailwind = tailwind.NewPluginResolver(opts)
	}
	return b
}

// Build bundles entries and writes the manifest.
func (b *Builder) Build(ctx context.Context, entries []Entry) (*Result, error) {
	start := time.Now()

	outputDir := b.config.OutputPath()
	assetsDir := filepath.Join(outputDir, AssetsDir)
	result := &Result{
		Assets:       assetsDir,
		Manifest:     assets.NewManifest(),
		ManifestPath: filepath.Join(outputDir, assets.ManifestFile),
		Entries:      len(entries),
	}

	b.progress("Cleaning " + filepath.ToSlash(filepath.Join(b.config.Build.Output, AssetsDir)) + "...")
	if err := os.RemoveAll(assetsDir); err != nil {
		return nil, errors.New("E201").Wrap(err)
	}
	if err := os.MkdirAll(assetsDir, 0755); err != nil {
		return nil, errors.New("E201").Wrap(err)
	}

	if len(entries) > 0 {
		b.progress("Generating entries...")
		entriesDir := filepath.Join(b.config.WorkPath(), "entries")
		if err := os.RemoveAll(entriesDir); err != nil {
			return nil, errors.New("E201").Wrap(err)
		}
		files, err := writeEntries(entries, entriesDir, b.config.Dir(), b.config.Build.HydrateImport, b.config.Build.GlobalImports)
		if err != nil {
			return nil, errors.New("E201").Wrap(err)
		}

		plugins := append([]api.Plugin(nil), b.Plugins...)
		if b.Tailwind != nil {
			b.progress("Resolving Tailwind CSS...")
			p, err := b.Tailwind.Resolve(ctx)
			if err != nil {
				return nil, err
			}
			plugins = append(plugins, p)
		}

		b.progress("Bundling client entries...")
		bundled, err := b.Bundler.Bundle(ctx, BundleOptions{
			Entries:    files,
			Outdir:     assetsDir,
			WorkDir:    b.config.Dir(),
			Minify:     b.options.Minify,
			SourceMaps: b.options.SourceMaps,
			Target:     b.config.Build.Target,
			Plugins:    plugins,
		})
		if err != nil {
			return nil, errors.FromError(err, "E201")
		}
		for source, file := range bundled.Outputs {
			result.Manifest.Set(source, file)
		}
		result.Warnings = bundled.Warnings
	}

	b.progress("Writing manifest...")
	if err := result.Manifest.Write(result.ManifestPath); err != nil {
		return nil, errors.New("E201").Wrap(err)
	}

	result.Duration = time.Since(start)
	return result, nil
}

// Clean removes the build output directory.
func (b *Builder) Clean() error {
	return os.RemoveAll(b.config.OutputPath())
}

// progress reports build progress.
func (b *Builder) progress(step string) {
	if b.options.OnProgress != nil {
		b.options.OnProgress(step)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
