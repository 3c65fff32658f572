// Package pip collects the set of installed Python packages by invoking
// `pip list` and parsing its tabular output.
//
// The listing is scoped to a project virtual environment when one is
// available, falling back to the globally installed packages otherwise:
//
//	lister := pip.NewLister(nil, logger)
//	installed, err := lister.Installed(ctx, "/path/to/project", ".venv")
//
// Package names are normalized to lowercase with hyphens replaced by
// underscores, matching how the scanner normalizes import names.
package pip

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/larajo/reqgen/pkg/errors"
)

// headerLines is the number of header rows in `pip list` output
// (column names plus the dashed separator).
const headerLines = 2

// Lister collects installed packages from a virtual environment or the
// global interpreter environment.
type Lister struct {
	runner Runner
	logger *log.Logger
}

// NewLister creates a Lister. A nil runner defaults to ExecRunner and a nil
// logger defaults to log.Default().
func NewLister(r Runner, l *log.Logger) *Lister {
	if r == nil {
		r = ExecRunner{}
	}
	if l == nil {
		l = log.Default()
	}
	return &Lister{runner: r, logger: l}
}

// Installed returns a map from normalized package name to version string.
//
// When venvFolder is non-empty and projectPath/venvFolder exists as a
// directory, the listing is taken from that environment's pip executable.
// A failed venv listing is logged and execution falls back to the global
// `pip list`. A failed global listing is fatal and propagates to the caller.
//
// An environment with no packages beyond the header yields an empty map,
// not an error.
func (l *Lister) Installed(ctx context.Context, projectPath, venvFolder string) (map[string]string, error) {
	if venvFolder == "" {
		l.logger.Info("No virtual environment folder provided, reading global packages")
		return l.global(ctx)
	}

	venv := filepath.Join(projectPath, venvFolder)
	info, err := os.Stat(venv)
	if err != nil || !info.IsDir() {
		l.logger.Info("Virtual environment not found, reading global packages", "venv", venv)
		return l.global(ctx)
	}

	pipExe := filepath.Join(venv, "bin", "pip")
	stdout, stderr, err := l.runner.Run(ctx, pipExe, "list")
	if err != nil {
		l.logger.Warn("Failed to activate the virtual environment, reading global packages",
			"err", err, "stderr", strings.TrimSpace(string(stderr)))
		return l.global(ctx)
	}

	l.logger.Info("Reading packages from the virtual environment", "venv", venvFolder)
	return parseList(stdout), nil
}

// global lists globally installed packages. There is no recovery path here:
// a missing or broken global pip terminates the run.
func (l *Lister) global(ctx context.Context) (map[string]string, error) {
	stdout, _, err := l.runner.Run(ctx, "pip", "list")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodePipList, err, "global pip list failed")
	}
	return parseList(stdout), nil
}

// parseList parses `pip list` tabular output. The first two header lines are
// skipped; each remaining non-empty line is whitespace-split into name and
// version. Names are lowercased with hyphens replaced by underscores.
// If a name appears more than once the last occurrence wins.
func parseList(out []byte) map[string]string {
	installed := make(map[string]string)

	lines := strings.Split(string(out), "\n")
	if len(lines) <= headerLines {
		return installed
	}

	for _, line := range lines[headerLines:] {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		name := strings.ReplaceAll(strings.ToLower(fields[0]), "-", "_")
		installed[name] = fields[1]
	}

	return installed
}
