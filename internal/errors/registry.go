package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://hatch.vango.dev/docs/errors/"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (E100-E129)
	// ============================================

	"E101": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "hatch.json was not found in the project directory.",
		DocURL:   docBase + "E101",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "hatch.json could not be parsed.",
		DocURL:   docBase + "E102",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid port",
		DocURL:   docBase + "E103",
	},
	"E110": {
		Category: CategoryConfig,
		Message:  "Invalid method table",
		DocURL:   docBase + "E110",
	},
	"E111": {
		Category: CategoryConfig,
		Message:  "Invalid route entry",
		DocURL:   docBase + "E111",
	},
	"E112": {
		Category: CategoryConfig,
		Message:  "Static directory not found",
		DocURL:   docBase + "E112",
	},
	"E120": {
		Category: CategoryConfig,
		Message:  "Page has no component",
		Detail:   "A page needs either an in-process component or a component reference.",
		DocURL:   docBase + "E120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Hydration requires a component reference",
		Detail:   "The client bundle imports the component by module path and export name, so hydrated pages must declare one.",
		DocURL:   docBase + "E121",
	},

	// ============================================
	// Render Errors (E130-E149)
	// ============================================

	"E130": {
		Category: CategoryRender,
		Message:  "Component not registered",
		DocURL:   docBase + "E130",
	},
	"E131": {
		Category: CategoryRender,
		Message:  "Component suspended without a fallback",
		Detail:   "A component suspended while rendering on the server and no boundary above it declared a fallback.",
		DocURL:   docBase + "E131",
	},

	// ============================================
	// Build Errors (E200-E219)
	// ============================================

	"E201": {
		Category: CategoryBuild,
		Message:  "Client bundle failed",
		DocURL:   docBase + "E201",
	},
	"E202": {
		Category: CategoryBuild,
		Message:  "Tailwind CSS unavailable",
		DocURL:   docBase + "E202",
	},
	"E203": {
		Category: CategoryBuild,
		Message:  "Publish failed",
		DocURL:   docBase + "E203",
	},

	// ============================================
	// CLI Errors (E220-E239)
	// ============================================

	"E220": {
		Category: CategoryCLI,
		Message:  "Directory already exists",
		DocURL:   docBase + "E220",
	},
	"E221": {
		Category: CategoryCLI,
		Message:  "Invalid template",
		Detail:   "The specified project template doesn't exist.",
		DocURL:   docBase + "E221",
	},
	"E222": {
		Category: CategoryCLI,
		Message:  "Invalid project name",
		Detail:   "Project names must be valid Go module names.",
		DocURL:   docBase + "E222",
	},
	"E223": {
		Category: CategoryCLI,
		Message:  "Unknown package manager",
		DocURL:   docBase + "E223",
	},
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
