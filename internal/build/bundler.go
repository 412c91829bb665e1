package build

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/vango-dev/hatch/internal/errors"
)

// BundleOptions describes one bundler run.
type BundleOptions struct {
	// Entries maps entry stems to generated entry files.
	Entries map[string]string

	// Outdir receives the bundles.
	Outdir string

	// WorkDir is the project directory imports resolve from.
	WorkDir string

	Minify     bool
	SourceMaps bool

	// Target is the browser target, e.g. "es2020".
	Target string

	Plugins []api.Plugin
}

// BundleResult reports the files a bundler wrote.
type BundleResult struct {
	// Outputs maps "stem.js" and "stem.css" to file names relative to
	// the output directory.
	Outputs map[string]string

	// Warnings are formatted bundler warnings.
	Warnings []string
}

// Bundler turns generated entries into browser bundles.
type Bundler interface {
	Bundle(ctx context.Context, opts BundleOptions) (*BundleResult, error)
}

// EsbuildBundler bundles with the esbuild Go API.
type EsbuildBundler struct{}

// Bundle runs esbuild once. Cancelling ctx cancels the build.
func (EsbuildBundler) Bundle(ctx context.Context, opts BundleOptions) (*BundleResult, error) {
	target, err := parseTarget(opts.Target)
	if err != nil {
		return nil, errors.New("E201").Wrap(err).WithSuggestion("Set build.target to a value like \"es2020\" or \"esnext\"")
	}

	// Entry files are named after their stem, so [name] is the stem.
	entryPoints := make([]string, 0, len(opts.Entries))
	for _, stem := range sortedKeys(opts.Entries) {
		entryPoints = append(entryPoints, opts.Entries[stem])
	}

	sourcemap := api.SourceMapNone
	if opts.SourceMaps {
		sourcemap = api.SourceMapLinked
	}

	bctx, cerr := api.Context(api.BuildOptions{
		EntryPoints:       entryPoints,
		AbsWorkingDir:     opts.WorkDir,
		Outdir:            opts.Outdir,
		EntryNames:        "[name].[hash]",
		ChunkNames:        "chunks/[name].[hash]",
		AssetNames:        "media/[name].[hash]",
		Bundle:            true,
		Splitting:         true,
		Format:            api.FormatESModule,
		Platform:          api.PlatformBrowser,
		Target:            target,
		JSX:               api.JSXAutomatic,
		Loader:            map[string]api.Loader{".js": api.LoaderJSX},
		MinifyWhitespace:  opts.Minify,
		MinifyIdentifiers: opts.Minify,
		MinifySyntax:      opts.Minify,
		Sourcemap:         sourcemap,
		Metafile:          true,
		Write:             true,
		Plugins:           opts.Plugins,
		LogLevel:          api.LogLevelSilent,
	})
	if cerr != nil {
		return nil, bundleError(cerr.Errors)
	}
	defer bctx.Dispose()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			bctx.Cancel()
		case <-done:
		}
	}()

	result := bctx.Rebuild()
	if err := ctx.Err(); err != nil {
		return nil, errors.New("E201").Wrap(err)
	}
	if len(result.Errors) > 0 {
		return nil, bundleError(result.Errors)
	}

	outputs, err := outputsFromMetafile(result.Metafile, opts.WorkDir, opts.Outdir)
	if err != nil {
		return nil, errors.New("E201").Wrap(err)
	}
	return &BundleResult{
		Outputs: outputs,
		Warnings: api.FormatMessages(result.Warnings, api.FormatMessagesOptions{
			Kind: api.WarningMessage,
		}),
	}, nil
}

func bundleError(msgs []api.Message) error {
	formatted := api.FormatMessages(msgs, api.FormatMessagesOptions{Kind: api.ErrorMessage})
	return errors.New("E201").
		WithDetail(strings.TrimSpace(strings.Join(formatted, ""))).
		WithSuggestion("Check the page modules listed in hatch.json")
}

var targets = map[string]api.Target{
	"es2015": api.ES2015,
	"es2016": api.ES2016,
	"es2017": api.ES2017,
	"es2018": api.ES2018,
	"es2019": api.ES2019,
	"es2020": api.ES2020,
	"es2021": api.ES2021,
	"es2022": api.ES2022,
	"esnext": api.ESNext,
}

func parseTarget(s string) (api.Target, error) {
	if s == "" {
		return api.ES2020, nil
	}
	t, ok := targets[strings.ToLower(s)]
	if !ok {
		return api.DefaultTarget, fmt.Errorf("unknown build target %q", s)
	}
	return t, nil
}

type metafile struct {
	Outputs map[string]struct {
		EntryPoint string `json:"entryPoint"`
		CSSBundle  string `json:"cssBundle"`
	} `json:"outputs"`
}

// outputsFromMetafile maps entry stems to the bundles esbuild wrote.
// Metafile paths are relative to workDir and use forward slashes.
func outputsFromMetafile(data, workDir, outdir string) (map[string]string, error) {
	var meta metafile
	if err := json.Unmarshal([]byte(data), &meta); err != nil {
		return nil, fmt.Errorf("parse metafile: %w", err)
	}

	rel, err := filepath.Rel(workDir, outdir)
	if err != nil {
		return nil, err
	}
	prefix := filepath.ToSlash(rel) + "/"

	outputs := make(map[string]string)
	for out, info := range meta.Outputs {
		if info.EntryPoint == "" || strings.HasSuffix(out, ".map") {
			continue
		}
		stem := strings.TrimSuffix(path.Base(info.EntryPoint), path.Ext(info.EntryPoint))
		outputs[stem+path.Ext(out)] = strings.TrimPrefix(out, prefix)
		if info.CSSBundle != "" {
			outputs[stem+".css"] = strings.TrimPrefix(info.CSSBundle, prefix)
		}
	}
	return outputs, nil
}
