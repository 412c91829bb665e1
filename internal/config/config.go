package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"

	"github.com/vango-dev/hatch/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "hatch.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultStaticDir is served at "/" when hatch.json declares no static
	// directories and the directory exists.
	DefaultStaticDir = "public"

	// DefaultOutput is the default build output directory.
	DefaultOutput = "dist"

	// DefaultAssetPrefix is the URL prefix built bundles are served under.
	DefaultAssetPrefix = "/assets/"

	// DefaultTarget is the default browser target for client bundles.
	DefaultTarget = "es2020"

	// DefaultHydrateImport is the module providing hydrateRoot.
	DefaultHydrateImport = "react-dom/client"
)

// Config represents hatch.json.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Static lists the directories served before the route table.
	Static []StaticConfig `json:"static,omitempty"`

	// Headers are added to every response.
	Headers map[string]string `json:"headers,omitempty"`

	// Pages maps route patterns to server-rendered pages.
	Pages map[string]PageConfig `json:"pages,omitempty"`

	// Build contains client build configuration.
	Build BuildConfig `json:"build"`

	// Tailwind contains Tailwind CSS configuration.
	Tailwind TailwindConfig `json:"tailwind"`

	// Publish contains S3 publishing configuration.
	Publish PublishConfig `json:"publish"`

	// Server contains `hatch serve` configuration.
	Server ServerConfig `json:"server"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// StaticConfig is one static directory.
type StaticConfig struct {
	Dir    string `json:"dir"`
	Prefix string `json:"prefix,omitempty"`
	Index  string `json:"index,omitempty"`
	MaxAge int    `json:"maxAge,omitempty"`
}

// PageConfig declares a server-rendered page.
type PageConfig struct {
	// Module is the component module path, relative to the project root.
	Module string `json:"module"`

	// Export is the component's export name (default "default").
	Export string `json:"export,omitempty"`

	// Title is the document title.
	Title string `json:"title,omitempty"`

	// Hydrate builds a client bundle for the page.
	Hydrate bool `json:"hydrate,omitempty"`
}

// BuildConfig contains client build settings.
type BuildConfig struct {
	// Output is the output directory for bundles and the manifest.
	Output string `json:"output,omitempty" env:"HATCH_OUTPUT"`

	// Minify enables minification.
	Minify bool `json:"minify,omitempty" env:"HATCH_MINIFY"`

	// SourceMaps enables source map generation.
	SourceMaps bool `json:"sourceMaps,omitempty" env:"HATCH_SOURCEMAPS"`

	// Target is the esbuild browser target (e.g., "es2020").
	Target string `json:"target,omitempty" env:"HATCH_TARGET"`

	// GlobalImports are imported by every client entry (styles, polyfills).
	GlobalImports []string `json:"globalImports,omitempty"`

	// HydrateImport is the module providing hydrateRoot and createRoot.
	HydrateImport string `json:"hydrateImport,omitempty"`

	// AssetPrefix is the URL prefix bundles are served under.
	AssetPrefix string `json:"assetPrefix,omitempty" env:"HATCH_ASSET_PREFIX"`
}

// TailwindConfig contains Tailwind CSS settings.
type TailwindConfig struct {
	// Enabled compiles CSS imports through the Tailwind standalone CLI.
	Enabled bool `json:"enabled,omitempty" env:"HATCH_TAILWIND"`

	// Version pins the Tailwind release to download.
	Version string `json:"version,omitempty"`

	// Config is the path to tailwind.config.js.
	Config string `json:"config,omitempty"`

	// Binary is an existing tailwindcss executable to use instead of
	// downloading one.
	Binary string `json:"binary,omitempty" env:"HATCH_TAILWIND_BINARY"`
}

// PublishConfig contains S3 publishing settings.
type PublishConfig struct {
	Bucket string `json:"bucket,omitempty" env:"HATCH_PUBLISH_BUCKET"`
	Prefix string `json:"prefix,omitempty" env:"HATCH_PUBLISH_PREFIX"`
	Region string `json:"region,omitempty" env:"HATCH_PUBLISH_REGION"`
}

// ServerConfig contains `hatch serve` settings.
type ServerConfig struct {
	Port int    `json:"port,omitempty" env:"HATCH_PORT"`
	Host string `json:"host,omitempty" env:"HATCH_HOST"`
}

// Defaults returns a Config holding every default value.
func Defaults() *Config {
	return &Config{
		Build: BuildConfig{
			Output:        DefaultOutput,
			Minify:        true,
			Target:        DefaultTarget,
			HydrateImport: DefaultHydrateImport,
			AssetPrefix:   DefaultAssetPrefix,
		},
		Server: ServerConfig{
			Port: DefaultPort,
			Host: DefaultHost,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for hatch.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from path, fills defaults and applies
// environment overrides.
func LoadFile(path string) (*Config, error) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E101").
				WithDetail("No hatch.json found in " + filepath.Dir(path)).
				WithSuggestion("Run 'hatch create' to create a new project or create hatch.json manually")
		}
		return nil, errors.New("E102").Wrap(err)
	}

	cfg := Defaults()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E102").
			WithDetail("Failed to parse hatch.json: " + err.Error()).
			WithSuggestion("Check that hatch.json is valid JSON")
	}

	// A declared "static" key, even an empty list, replaces the default.
	if cfg.Static == nil {
		if info, err := os.Stat(filepath.Join(filepath.Dir(path), DefaultStaticDir)); err == nil && info.IsDir() {
			cfg.Static = []StaticConfig{{Dir: DefaultStaticDir}}
		}
	}

	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	cfg.configPath = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolve applies environment overrides and per-entry defaults.
func (c *Config) resolve() error {
	overrides := &Config{}
	if err := env.Parse(overrides); err != nil {
		return errors.New("E102").
			WithDetail("Invalid environment override: " + err.Error())
	}
	if err := mergo.Merge(c, overrides, mergo.WithOverride); err != nil {
		return errors.New("E102").Wrap(err)
	}

	for i := range c.Static {
		if c.Static[i].Prefix == "" {
			c.Static[i].Prefix = "/"
		}
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E103").
			WithDetailf("port %d is outside 0-65535", c.Server.Port)
	}
	for i, s := range c.Static {
		if strings.TrimSpace(s.Dir) == "" {
			return errors.New("E102").
				WithDetailf("static[%d] has no dir", i).
				WithSuggestion(`Give every static entry a "dir"`)
		}
		if s.MaxAge < 0 {
			return errors.New("E102").WithDetailf("static[%d] maxAge is negative", i)
		}
	}
	for route, p := range c.Pages {
		if !strings.HasPrefix(route, "/") {
			return errors.New("E102").WithDetailf("page route %q must start with /", route)
		}
		if strings.TrimSpace(p.Module) == "" {
			return errors.New("E102").
				WithDetailf("page %s has no module", route).
				WithSuggestion(`Set "module" to the component file, e.g. "./src/pages/Home.jsx"`)
		}
	}
	return nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E102").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E102").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// Address returns host:port for `hatch serve`.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// URL returns the server URL.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// Abs resolves path against the project directory.
func (c *Config) Abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// OutputPath returns the absolute build output directory.
func (c *Config) OutputPath() string {
	return c.Abs(c.Build.Output)
}

// WorkPath returns the directory generated entry files are written to.
func (c *Config) WorkPath() string {
	return filepath.Join(c.Dir(), ".hatch")
}

// HydratedRoutes returns the routes of pages with hydration enabled.
func (c *Config) HydratedRoutes() []string {
	var routes []string
	for route, p := range c.Pages {
		if p.Hydrate {
			routes = append(routes, route)
		}
	}
	return routes
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing hatch.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E101").
				WithDetail("No hatch.json found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'hatch create' to create a new project")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}
	return Load(root)
}
