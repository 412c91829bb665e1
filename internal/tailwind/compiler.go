package tailwind

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/vango-dev/hatch/internal/errors"
)

// Compiler runs the Tailwind CLI over a single stylesheet.
type Compiler struct {
	// BinaryPath is the Tailwind executable.
	BinaryPath string

	// ProjectDir is the working directory for the CLI, which is where
	// Tailwind scans for class names.
	ProjectDir string

	// ConfigPath is the tailwind.config.js path. Empty uses Tailwind's
	// default resolution.
	ConfigPath string

	// Minify enables CSS minification.
	Minify bool
}

// Args returns the CLI arguments used to compile input to stdout.
func (c *Compiler) Args(input string) []string {
	args := []string{"-i", input}
	if c.ConfigPath != "" {
		args = append(args, "-c", c.ConfigPath)
	}
	if c.Minify {
		args = append(args, "--minify")
	}
	return args
}

// Compile returns the compiled CSS for input.
func (c *Compiler) Compile(ctx context.Context, input string) ([]byte, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, c.BinaryPath, c.Args(input)...)
	cmd.Dir = c.ProjectDir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		he := errors.New("E202").Wrap(err)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, he.WithDetailf("Compiling %s failed:\n%s", input, msg)
		}
		return nil, he.WithDetailf("Compiling %s failed.", input)
	}
	return stdout.Bytes(), nil
}
