package templates

const gitignore = `node_modules/
dist/
.hatch/
`

const packageJSON = `{
  "name": "[[.ProjectName]]",
  "private": true,
  "description": "[[.Description]]",
  "scripts": {
    "build": "hatch build",
    "serve": "hatch serve"
  },
  "dependencies": {
    "react": "^19.0.0",
    "react-dom": "^19.0.0"
  }
}
`

const robotsTxt = `User-agent: *
Allow: /
`

const homeJSX = `import { useState } from "react";

export default function Home({ greeting = "Hello" }) {
  const [count, setCount] = useState(0);

  return (
    <main>
      <h1>{greeting} from [[.ProjectName]]</h1>
      <p>[[.Description]]</p>
      <button onClick={() => setCount(count + 1)}>Clicked {count} times</button>
    </main>
  );
}
`

// homeHTML is the server markup for Home. It must match what Home
// renders on first paint.
const homeHTML = `<main>
  <h1>{{with .greeting}}{{.}}{{else}}Hello{{end}} from [[.ProjectName]]</h1>
  <p>[[.Description]]</p>
  <button>Clicked 0 times</button>
</main>
`

// minimalTemplate returns the minimal template.
func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "One hydrated page and a static directory",
		Files: map[string]string{
			".gitignore":        gitignore,
			"package.json":      packageJSON,
			"public/robots.txt": robotsTxt,
			"src/Home.jsx":      homeJSX,
			"src/Home.html":     homeHTML,
			"hatch.json": `{
  "name": "[[.ProjectName]]",
  "static": [{"dir": "public"}],
  "pages": {
    "/": {"module": "./src/Home.jsx", "title": "[[.ProjectName]]", "hydrate": true}
  },
  "build": {"output": "dist", "minify": true},
  "server": {"port": 3000}
}
`,
		},
	}
}

// fullTemplate returns the full template with examples.
func fullTemplate() *Template {
	return &Template{
		Name:        "full",
		Description: "Go server with API routes, two pages, and Tailwind CSS",
		Files: map[string]string{
			".gitignore":        gitignore,
			"package.json":      packageJSON,
			"public/robots.txt": robotsTxt,
			"src/Home.jsx":      homeJSX,
			"src/Home.html":     homeHTML,
			"src/Post.jsx": `export function Post({ id, title }) {
  return (
    <article>
      <a href="/">Back</a>
      <h1>{title}</h1>
      <p>Post #{id}</p>
    </article>
  );
}
`,
			"src/Post.html": `{{define "Post"}}<article>
  <a href="/">Back</a>
  <h1>{{.title}}</h1>
  <p>Post #{{.id}}</p>
</article>{{end}}
`,
			"hatch.json": `{
  "name": "[[.ProjectName]]",
  "static": [{"dir": "public"}],
  "headers": {"X-Content-Type-Options": "nosniff"},
  "pages": {
    "/": {"module": "./src/Home.jsx", "title": "[[.ProjectName]]", "hydrate": true},
    "/blog/{id}": {"module": "./src/Post.jsx", "export": "Post", "hydrate": true}
  },
  "build": {
    "output": "dist",
    "minify": true[[if .HasTailwind]],
    "globalImports": ["./src/app.css"][[end]]
  },
  "tailwind": {"enabled": [[.HasTailwind]]},
  "server": {"port": 3000}
}
`,
			"go.mod": `module [[.ModulePath]]

go 1.23

require github.com/vango-dev/hatch [[.HatchVersion]]
`,
			"main.go": `package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"

	"github.com/vango-dev/hatch"
	"github.com/vango-dev/hatch/pkg/assets"
	"github.com/vango-dev/hatch/pkg/render"
)

func main() {
	static := []hatch.StaticConfig{{Dir: "public"}}

	// Bundles exist once "[[.PackageManager]] run build" has run.
	manifest, err := assets.Load("dist/manifest.json")
	if err != nil {
		log.Printf("no client build found: %v", err)
	} else {
		static = append(static, hatch.StaticConfig{Dir: "dist/assets", Prefix: "/assets/", MaxAge: 31536000})
	}

	app, err := hatch.New(hatch.Config{
		Static: static,
		Routes: hatch.Routes{
			"/api/posts/{id}": hatch.Methods(
				hatch.Get(func(ctx *hatch.Ctx) (any, error) {
					return post(ctx.Param("id")), nil
				}),
			),
		},
		Pages: map[string]hatch.Page{
			"/": {
				Ref:     &render.ComponentRef{Module: "./src/Home.jsx"},
				Title:   "[[.ProjectName]]",
				Hydrate: true,
			},
			"/blog/{id}": {
				Ref:     &render.ComponentRef{Module: "./src/Post.jsx", Export: "Post"},
				Hydrate: true,
				Props: func(ctx context.Context, r *http.Request) (any, error) {
					return post(r.PathValue("id")), nil
				},
			},
		},
		Render: hatch.RenderConfig{
			Provider: render.TemplateFiles("."),
			Manifest: manifest,
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Println("Server running at http://localhost:3000")
	if err := app.ListenAndServe(ctx, ":3000"); err != nil {
		log.Fatal(err)
	}
}

func post(id string) map[string]string {
	return map[string]string{"id": id, "title": fmt.Sprintf("Post %s", id)}
}
`,
		},
		TailwindFiles: map[string]string{
			"src/app.css": `@import "tailwindcss";
`,
		},
	}
}

// apiTemplate returns the API-only template.
func apiTemplate() *Template {
	return &Template{
		Name:        "api",
		Description: "Route table only, no client bundles",
		Files: map[string]string{
			".gitignore": gitignore,
			"hatch.json": `{
  "name": "[[.ProjectName]]",
  "server": {"port": 3000}
}
`,
			"go.mod": `module [[.ModulePath]]

go 1.23

require github.com/vango-dev/hatch [[.HatchVersion]]
`,
			"main.go": `package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"

	"github.com/vango-dev/hatch"
)

var errNotFound = errors.New("not found")

func main() {
	app, err := hatch.New(hatch.Config{
		Routes: hatch.Routes{
			"/health": hatch.Respond(hatch.Text("ok")),
			"/api/items/{id}": hatch.Methods(
				hatch.Get(func(ctx *hatch.Ctx) (any, error) {
					if ctx.Param("id") == "0" {
						return nil, errNotFound
					}
					return map[string]string{"id": ctx.Param("id")}, nil
				}),
				hatch.Delete(func(ctx *hatch.Ctx) (any, error) {
					return nil, nil
				}),
			),
		},
		OnError: func(ctx *hatch.Ctx, err error) (any, error) {
			if !errors.Is(err, errNotFound) {
				return nil, err
			}
			res, err := hatch.JSON(map[string]string{"error": err.Error()})
			if err != nil {
				return nil, err
			}
			return res.WithStatus(404), nil
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Println("[[.ProjectName]] listening on http://localhost:3000")
	if err := app.ListenAndServe(ctx, ":3000"); err != nil {
		log.Fatal(err)
	}
}
`,
		},
	}
}
