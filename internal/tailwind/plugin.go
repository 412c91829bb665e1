package tailwind

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
)

// PluginName is the esbuild plugin name reported in diagnostics.
const PluginName = "hatch-tailwind"

// PluginOptions configures a PluginResolver.
type PluginOptions struct {
	// Binary locates or downloads the CLI. Ignored when BinaryPath is set.
	Binary *Binary

	// BinaryPath is an explicit Tailwind executable.
	BinaryPath string

	ProjectDir string
	ConfigPath string
	Minify     bool

	// Progress receives download status messages.
	Progress func(msg string)
}

// PluginResolver resolves the Tailwind binary once and hands out an
// esbuild plugin that compiles .css imports through it. It is owned by
// the caller, typically one per build command.
type PluginResolver struct {
	opts PluginOptions

	mu     sync.Mutex
	plugin *api.Plugin
}

// NewPluginResolver creates a resolver.
func NewPluginResolver(opts PluginOptions) *PluginResolver {
	return &PluginResolver{opts: opts}
}

// Resolve returns the plugin, installing the binary on first use.
// A successful result is memoized. Failures are not, so a later call
// may retry the download.
func (r *PluginResolver) Resolve(ctx context.Context) (api.Plugin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.plugin != nil {
		return *r.plugin, nil
	}

	path, err := r.binaryPath(ctx)
	if err != nil {
		return api.Plugin{}, err
	}

	compiler := &Compiler{
		BinaryPath: path,
		ProjectDir: r.opts.ProjectDir,
		ConfigPath: r.opts.ConfigPath,
		Minify:     r.opts.Minify,
	}
	p := NewPlugin(ctx, compiler)
	r.plugin = &p
	return p, nil
}

func (r *PluginResolver) binaryPath(ctx context.Context) (string, error) {
	if r.opts.BinaryPath != "" {
		return r.opts.BinaryPath, nil
	}
	b := r.opts.Binary
	if b == nil {
		b = NewBinary()
	}
	return b.EnsureInstalled(ctx, r.opts.Progress)
}

// NewPlugin returns an esbuild plugin that loads every .css file on disk
// through compiler.
func NewPlugin(ctx context.Context, compiler *Compiler) api.Plugin {
	return api.Plugin{
		Name: PluginName,
		Setup: func(build api.PluginBuild) {
			build.OnLoad(api.OnLoadOptions{Filter: `\.css$`, Namespace: "file"},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					css, err := compiler.Compile(ctx, args.Path)
					if err != nil {
						return api.OnLoadResult{}, err
					}
					contents := string(css)
					return api.OnLoadResult{
						Contents:   &contents,
						ResolveDir: filepath.Dir(args.Path),
						Loader:     api.LoaderCSS,
					}, nil
				})
		},
	}
}
