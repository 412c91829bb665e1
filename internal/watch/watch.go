// Package watch polls project files and reports batches of changes.
//
// Polling keeps the watcher portable across file systems where native
// notifications are unreliable (network mounts, containers).
package watch

import (
	"context"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vango-dev/hatch/internal/config"
)

// DefaultInterval is the polling interval used when none is set.
const DefaultInterval = 250 * time.Millisecond

// DefaultIgnore lists names skipped during every scan.
var DefaultIgnore = []string{
	".git",
	".hatch",
	"node_modules",
	"*.tmp",
	"*.swp",
	"*~",
}

// Watcher reports files that were created, modified or removed under Paths.
type Watcher struct {
	// Paths are files or directories to scan.
	Paths []string

	// Ignore holds base names, globs or slash-separated segment runs.
	Ignore []string

	// Interval is the delay between scans.
	Interval time.Duration

	state map[string]stamp
}

type stamp struct {
	mod  time.Time
	size int64
}

// New creates a Watcher with DefaultIgnore plus the given patterns.
func New(paths []string, ignore ...string) *Watcher {
	return &Watcher{
		Paths:    paths,
		Ignore:   append(append([]string{}, DefaultIgnore...), ignore...),
		Interval: DefaultInterval,
	}
}

// ForProject watches the project directory, skipping the build output.
func ForProject(cfg *config.Config) *Watcher {
	output := filepath.ToSlash(filepath.Clean(cfg.Build.Output))
	if rel, err := filepath.Rel(cfg.Dir(), cfg.OutputPath()); err == nil && !strings.HasPrefix(rel, "..") {
		output = filepath.ToSlash(rel)
	}
	return New([]string{cfg.Dir()}, output)
}

// Run scans until ctx is done, calling fn with the sorted paths that
// changed since the previous scan. The first scan only records state.
func (w *Watcher) Run(ctx context.Context, fn func(changed []string)) error {
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	w.state = w.scan()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if changed := w.Poll(); len(changed) > 0 {
				fn(changed)
			}
		}
	}
}

// Poll scans once and returns what changed since the last scan.
func (w *Watcher) Poll() []string {
	next := w.scan()
	if w.state == nil {
		w.state = next
		return nil
	}

	var changed []string
	for p, s := range next {
		if old, ok := w.state[p]; !ok || !old.mod.Equal(s.mod) || old.size != s.size {
			changed = append(changed, p)
		}
	}
	for p := range w.state {
		if _, ok := next[p]; !ok {
			changed = append(changed, p)
		}
	}
	w.state = next

	sort.Strings(changed)
	return changed
}

func (w *Watcher) scan() map[string]stamp {
	state := make(map[string]stamp)
	for _, root := range w.Paths {
		filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			rel, relErr := filepath.Rel(root, p)
			if relErr != nil {
				rel = p
			}
			if rel != "." && w.ignored(filepath.ToSlash(rel)) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			state[p] = stamp{mod: info.ModTime(), size: info.Size()}
			return nil
		})
	}
	return state
}

// ignored matches rel, a slash path relative to its watch root.
func (w *Watcher) ignored(rel string) bool {
	name := path.Base(rel)
	segments := splitSegments(rel)

	for _, pattern := range w.Ignore {
		pattern = strings.Trim(strings.TrimSpace(filepath.ToSlash(pattern)), "/")
		if pattern == "" || pattern == "." {
			continue
		}
		if strings.ContainsAny(pattern, "*?[") {
			target := name
			if strings.Contains(pattern, "/") {
				target = rel
			}
			if ok, _ := path.Match(pattern, target); ok {
				return true
			}
			continue
		}
		if containsRun(segments, splitSegments(pattern)) {
			return true
		}
	}
	return false
}

func containsRun(segments, run []string) bool {
	if len(run) == 0 || len(run) > len(segments) {
		return false
	}
	for i := 0; i+len(run) <= len(segments); i++ {
		match := true
		for j := range run {
			if segments[i+j] != run[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func splitSegments(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" && s != "." {
			out = append(out, s)
		}
	}
	return out
}
