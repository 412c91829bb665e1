package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hatch/internal/build"
	"github.com/vango-dev/hatch/internal/config"
	"github.com/vango-dev/hatch/internal/errors"
	"github.com/vango-dev/hatch/internal/publish"
	"github.com/vango-dev/hatch/internal/watch"
)

type buildOptions struct {
	output     string
	minify     bool
	sourceMaps bool
	publish    bool
	clean      bool
	watch      bool
}

func buildCmd() *cobra.Command {
	opts := buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build client bundles",
		Long: `Build the client bundles for every hydrated page in hatch.json.

This command:
  • Generates one entry per hydrated page
  • Bundles the entries with esbuild
  • Compiles CSS imports through Tailwind (if enabled)
  • Writes manifest.json for the server
  • Uploads the output to S3 (with --publish)

Examples:
  hatch build
  hatch build --output=dist --sourcemaps
  hatch build --publish
  hatch build --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromWorkingDir()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				cfg.Build.Output = opts.output
			}
			if cmd.Flags().Changed("minify") {
				cfg.Build.Minify = opts.minify
			}
			if cmd.Flags().Changed("sourcemaps") {
				cfg.Build.SourceMaps = opts.sourceMaps
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if opts.watch {
				return runWatch(ctx, cfg, opts)
			}
			return runBuild(ctx, cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory (default from hatch.json)")
	cmd.Flags().BoolVar(&opts.minify, "minify", true, "Minify output (default from hatch.json)")
	cmd.Flags().BoolVar(&opts.sourceMaps, "sourcemaps", false, "Generate source maps")
	cmd.Flags().BoolVar(&opts.publish, "publish", false, "Upload the output to the configured S3 bucket")
	cmd.Flags().BoolVar(&opts.clean, "clean", false, "Remove the whole output directory before building")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Rebuild when project files change")

	return cmd
}

func runBuild(ctx context.Context, cfg *config.Config, opts buildOptions) error {
	fmt.Println("  Building client bundles...")
	fmt.Println()

	builder := build.New(cfg, build.Options{
		OnProgress: func(step string) {
			info("%s", step)
		},
	})

	if opts.clean {
		info("Removing %s...", cfg.Build.Output)
		if err := builder.Clean(); err != nil {
			return err
		}
	}

	result, err := builder.Build(ctx, build.EntriesFromConfig(cfg))
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		warn("%s", w)
	}

	fmt.Println()
	success("Built %d entries in %s", result.Entries, result.Duration.Round(1000000))
	fmt.Println()
	fmt.Println("  Output:")
	fmt.Printf("    %s/\n", cfg.Build.Output)
	fmt.Printf("    ├── %s/\n", build.AssetsDir)
	for _, source := range result.Manifest.Sources() {
		fmt.Printf("    │   ├── %s\n", result.Manifest.Resolve(source))
	}
	fmt.Printf("    └── manifest.json\n")
	fmt.Println()

	if !opts.publish {
		return nil
	}

	client, err := publish.NewS3Client(cfg.Publish.Region)
	if err != nil {
		return err
	}
	p := &publish.S3Publisher{
		Client: client,
		Bucket: cfg.Publish.Bucket,
		Prefix: cfg.Publish.Prefix,
		OnUpload: func(key string) {
			info("uploaded %s", key)
		},
	}

	info("Publishing to s3://%s/%s...", cfg.Publish.Bucket, cfg.Publish.Prefix)
	published, err := p.Publish(ctx, cfg.OutputPath())
	if err != nil {
		return err
	}
	success("Published %d files (%s)", len(published.Keys), formatBytes(published.Bytes))
	return nil
}

// runWatch builds once, then rebuilds whenever a project file changes.
// Failed rebuilds are reported and the watch continues.
func runWatch(ctx context.Context, cfg *config.Config, opts buildOptions) error {
	if opts.publish {
		warn("--publish is ignored in watch mode")
		opts.publish = false
	}
	if err := runBuild(ctx, cfg, opts); err != nil {
		errors.Print(os.Stderr, err)
	}

	opts.clean = false
	info("Watching %s for changes (Ctrl+C to stop)", cfg.Dir())
	err := watch.ForProject(cfg).Run(ctx, func(changed []string) {
		info("%d file(s) changed, rebuilding...", len(changed))
		if err := runBuild(ctx, cfg, opts); err != nil {
			errors.Print(os.Stderr, err)
		}
	})
	if err == context.Canceled {
		return nil
	}
	return err
}

// formatBytes formats bytes as a human-readable string.
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
