package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hatch/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦ ╦┌─┐┌┬┐┌─┐┬ ┬
  ╠═╣├─┤ │ │  ├─┤
  ╩ ╩┴ ┴ ┴ └─┘┴ ┴
`

func main() {
	if err := rootCmd().Execute(); err != nil {
		errors.Print(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hatch",
		Short: "Server-rendered pages and route tables on net/http",
		Long: `Hatch serves object-style route tables, static directories and
server-rendered pages that hydrate on the client.

  • Route tables with per-method handlers
  • Static directories with cache headers
  • Per-page client bundles built with esbuild
  • Optional Tailwind CSS without Node.js
  • Publishing bundles to S3`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		createCmd(),
		buildCmd(),
		serveCmd(),
		versionCmd(),
	)
	return root
}

// printBanner prints the Hatch ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
