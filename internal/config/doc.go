// Package config loads hatch.json, the project file read by the hatch CLI.
//
// # Configuration File Structure
//
//	{
//	  "name": "shop",
//	  "static": [
//	    {"dir": "public", "prefix": "/", "maxAge": 3600},
//	    {"dir": "dist", "prefix": "/assets/", "maxAge": 31536000}
//	  ],
//	  "headers": {"X-Frame-Options": "DENY"},
//	  "pages": {
//	    "/": {"module": "./src/pages/Home.jsx", "title": "Home", "hydrate": true},
//	    "/blog/{id}": {"module": "./src/pages/Blog.jsx", "export": "Post", "hydrate": true}
//	  },
//	  "build": {
//	    "output": "dist",
//	    "minify": true,
//	    "sourceMaps": false,
//	    "target": "es2020",
//	    "globalImports": ["./src/styles.css"],
//	    "hydrateImport": "react-dom/client"
//	  },
//	  "tailwind": {"enabled": true, "version": "v4.1.11"},
//	  "publish": {"bucket": "shop-assets", "prefix": "assets/", "region": "eu-west-1"},
//	  "server": {"port": 3000, "host": "localhost"}
//	}
//
// Missing fields take the defaults from Defaults. Environment variables
// (HATCH_PORT, HATCH_HOST, HATCH_OUTPUT, HATCH_MINIFY, HATCH_PUBLISH_BUCKET,
// ...) override both.
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    errors.Print(os.Stderr, err)
//	    os.Exit(1)
//	}
//	fmt.Println("Output:", cfg.OutputPath())
package config
