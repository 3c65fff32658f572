package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/larajo/reqgen/pkg/config"
	"github.com/larajo/reqgen/pkg/errors"
	"github.com/larajo/reqgen/pkg/manifest"
	"github.com/larajo/reqgen/pkg/pip"
	"github.com/larajo/reqgen/pkg/scan"
)

// generateOpts holds the command-line flags for the root command.
type generateOpts struct {
	venvFolder string // virtual environment folder under the project path
	output     string // manifest filename written into the project path
}

// runGenerate executes the full pipeline: collect installed packages, scan
// the project for imports, and write the pinned manifest.
//
// The pipeline is sequential and synchronous. A failed venv listing falls
// back to the global environment inside the Lister; a failed global listing
// or an unreadable source file aborts the run. An empty match set is not an
// error: the manifest file is still written and success is reported.
func (c *CLI) runGenerate(ctx context.Context, projectPath string, opts generateOpts) error {
	if err := ensureProjectDir(projectPath); err != nil {
		return err
	}

	cfg, err := config.Load(projectPath)
	if err != nil {
		return err
	}

	pr := newProgress(c.Logger)

	installed, err := pip.NewLister(c.Runner, c.Logger).Installed(ctx, projectPath, opts.venvFolder)
	if err != nil {
		return err
	}
	c.Logger.Debug("Collected installed packages", "count", len(installed))

	spinner := newSpinner(ctx, "Scanning imports...")
	spinner.Start()
	imported, err := scan.New(cfg.Aliases, cfg.Ignore).Imports(projectPath)
	spinner.Stop()
	if err != nil {
		return err
	}
	c.Logger.Debug("Discovered imported modules", "count", len(imported))

	outPath := filepath.Join(projectPath, opts.output)
	matched, err := manifest.WriteFile(outPath, installed, imported)
	if err != nil {
		return err
	}

	pr.done(fmt.Sprintf("Matched %d of %d imported modules", matched, len(imported)))
	printSuccess("%s generated with the packages used in the project", opts.output)
	printFile(outPath)

	return nil
}

// ensureProjectDir validates that path exists and is a directory.
func ensureProjectDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "project path %s", path)
	}
	if !info.IsDir() {
		return errors.New(errors.ErrCodeInvalidPath, "project path is not a directory: %s", path)
	}
	return nil
}
