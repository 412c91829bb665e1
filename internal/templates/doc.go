// Package templates provides project scaffolding templates.
//
// This package contains the templates `hatch create` copies into a new
// project directory.
//
// # Available Templates
//
//   - minimal: One hydrated page and a static directory
//   - full: Go server with API routes, two pages, and Tailwind CSS
//   - api: Route table only, no client bundles
//
// # Usage
//
//	tmpl, err := templates.Get("full")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := tmpl.Create(projectDir, cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// # Template Variables
//
// Files are text/template sources with [[ ]] delimiters, so JSX and
// html/template markup pass through untouched:
//
//	[[.ProjectName]]     - Name of the project
//	[[.ModulePath]]      - Go module path
//	[[.Description]]     - Project description
//	[[.HasTailwind]]     - Whether Tailwind is enabled
//	[[.PackageManager]]  - npm, pnpm, yarn or bun
//	[[.HatchVersion]]    - Version of github.com/vango-dev/hatch to require
package templates
