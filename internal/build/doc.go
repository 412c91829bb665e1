// Package build produces the client bundles for hydrated pages.
//
// For every page with hydration enabled the builder generates a small
// entry module that imports only that page's component, the project's
// global imports and the hydrate runtime. The entries are bundled with
// esbuild and the resulting file names are recorded in a manifest that
// the server-side composer loads at startup.
//
// # Usage
//
//	builder := build.New(cfg, build.Options{})
//	result, err := builder.Build(ctx, build.EntriesFromConfig(cfg))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Built %d entries in %s\n", result.Entries, result.Duration)
//
// # Output Structure
//
//	dist/
//	├── assets/
//	│   ├── index.5QIGZ5EU.js
//	│   ├── index.W2QKX7AB.css
//	│   └── chunks/        # Code shared between entries
//	└── manifest.json      # Entry stem -> bundle file
//
// # Manifest
//
// The manifest maps entry stems to their hashed bundles:
//
//	{
//	  "index.js": "index.5QIGZ5EU.js",
//	  "index.css": "index.W2QKX7AB.css",
//	  "blog-id.js": "blog-id.HM3DS4YV.js"
//	}
package build
