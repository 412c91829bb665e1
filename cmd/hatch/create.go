package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hatch/internal/errors"
	"github.com/vango-dev/hatch/internal/templates"
)

// hatchModuleVersion is required by generated go.mod files.
const hatchModuleVersion = "v0.1.0"

const defaultDescription = "A Hatch web application"

var packageManagers = []string{"npm", "pnpm", "yarn", "bun"}

var projectNameRE = regexp.MustCompile(`^[a-z][a-z0-9._-]*$`)

type createOptions struct {
	name           string
	template       string
	description    string
	packageManager string
	tailwind       bool
	git            bool
	force          bool
	yes            bool
}

// runCommand runs an external tool in dir. Replaced in tests.
var runCommand = func(dir, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func createCmd() *cobra.Command {
	opts := createOptions{}

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new Hatch project",
		Long: `Create a new Hatch project with the specified name.

Templates:
  minimal   One hydrated page and a static directory (default)
  full      Go server with API routes, two pages, and Tailwind CSS
  api       Route table only, no client bundles

Examples:
  hatch create my-app
  hatch create my-app --template=full --pm=pnpm --git
  hatch create my-api --template=api`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.name = args[0]
			return runCreate(opts, cmd.InOrStdin())
		},
	}

	cmd.Flags().StringVarP(&opts.template, "template", "t", "minimal", "Project template (minimal, full, api)")
	cmd.Flags().StringVarP(&opts.description, "description", "d", "", "Project description")
	cmd.Flags().StringVar(&opts.packageManager, "pm", "npm", "Package manager (npm, pnpm, yarn, bun)")
	cmd.Flags().BoolVar(&opts.tailwind, "tailwind", true, "Include Tailwind CSS")
	cmd.Flags().BoolVar(&opts.git, "git", false, "Initialize a git repository")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Create the project in a non-empty directory")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Skip prompts and use defaults")

	return cmd
}

func runCreate(opts createOptions, in io.Reader) error {
	printBanner()
	fmt.Println("  Creating a new Hatch project...")
	fmt.Println()

	if !isValidProjectName(opts.name) {
		return errors.New("E222").
			WithDetail("'" + opts.name + "' is not a valid project name").
			WithSuggestion("Use lowercase letters, numbers, dots, hyphens and underscores")
	}
	if !isKnownPackageManager(opts.packageManager) {
		return errors.New("E223").
			WithDetail("'" + opts.packageManager + "' is not supported").
			WithSuggestion("Use one of: " + strings.Join(packageManagers, ", "))
	}

	tmpl, err := templates.Get(opts.template)
	if err != nil {
		return err
	}

	projectDir, err := filepath.Abs(opts.name)
	if err != nil {
		return err
	}
	created, err := prepareDir(projectDir, opts.force)
	if err != nil {
		return err
	}

	if !opts.yes {
		opts.description, opts.tailwind, err = promptForConfig(in, opts.description, opts.tailwind)
		if err != nil {
			return err
		}
	}
	if opts.description == "" {
		opts.description = defaultDescription
	}

	cfg := templates.Config{
		ProjectName:    opts.name,
		ModulePath:     opts.name,
		Description:    opts.description,
		HasTailwind:    opts.tailwind && tmpl.HasClient(),
		PackageManager: opts.packageManager,
		HatchVersion:   hatchModuleVersion,
	}

	info("Creating project from '%s' template...", tmpl.Name)
	if err := tmpl.Create(projectDir, cfg); err != nil {
		if created {
			os.RemoveAll(projectDir)
		}
		return err
	}

	if tmpl.HasClient() {
		info("Installing dependencies with %s...", opts.packageManager)
		if err := runCommand(projectDir, opts.packageManager, "install"); err != nil {
			warn("Could not run '%s install': %v", opts.packageManager, err)
		}
	}

	if _, err := os.Stat(filepath.Join(projectDir, "go.mod")); err == nil {
		info("Resolving Go modules...")
		if err := runCommand(projectDir, "go", "mod", "tidy"); err != nil {
			warn("Could not run 'go mod tidy': %v", err)
		}
	}

	if opts.git {
		info("Initializing git repository...")
		if err := runCommand(projectDir, "git", "init", "--quiet"); err != nil {
			warn("Could not initialize git: %v", err)
		}
	}

	fmt.Println()
	success("Created %s/", opts.name)
	fmt.Println()
	fmt.Println("  To get started:")
	fmt.Println()
	fmt.Printf("    cd %s\n", opts.name)
	if tmpl.HasClient() {
		fmt.Printf("    %s run build\n", opts.packageManager)
	}
	if _, err := os.Stat(filepath.Join(projectDir, "main.go")); err == nil {
		fmt.Println("    go run .")
	} else {
		fmt.Println("    hatch serve")
	}
	fmt.Println()
	fmt.Printf("  Your app will be running at http://localhost:3000\n")
	fmt.Println()

	return nil
}

// prepareDir creates dir, or checks that an existing one may be used.
// It reports whether the directory was created.
func prepareDir(dir string, force bool) (bool, error) {
	entries, err := os.ReadDir(dir)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, err
		}
		return true, nil
	case err != nil:
		return false, err
	case len(entries) > 0 && !force:
		return false, errors.New("E220").
			WithDetail("Directory '" + filepath.Base(dir) + "' is not empty").
			WithSuggestion("Choose a different name or pass --force to write into it")
	}
	return false, nil
}

func promptForConfig(in io.Reader, description string, tailwind bool) (string, bool, error) {
	reader := bufio.NewReader(in)

	if description == "" {
		fmt.Printf("? Description: ")
		desc, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", false, err
		}
		description = strings.TrimSpace(desc)
	}

	fmt.Printf("? Include Tailwind CSS? [Y/n] ")
	answer, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", false, err
	}
	switch strings.TrimSpace(strings.ToLower(answer)) {
	case "n", "no":
		tailwind = false
	case "y", "yes":
		tailwind = true
	}

	return description, tailwind, nil
}

func isValidProjectName(name string) bool {
	return projectNameRE.MatchString(name)
}

func isKnownPackageManager(pm string) bool {
	return slices.Contains(packageManagers, pm)
}
