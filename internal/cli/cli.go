// Package cli implements the reqgen command-line interface.
//
// The root command scans a project, collects installed packages from its
// virtual environment (or globally), and writes a pinned requirements.txt.
// The scan and list subcommands expose the two pipeline stages individually
// for inspection and debugging.
//
// All commands support --verbose (-v) for debug-level logging via the
// charmbracelet/log logger held on the CLI struct.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/larajo/reqgen/pkg/buildinfo"
	"github.com/larajo/reqgen/pkg/errors"
	"github.com/larajo/reqgen/pkg/manifest"
	"github.com/larajo/reqgen/pkg/pip"
)

// appName is the application name used in help text and completion scripts.
const appName = "reqgen"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Runner executes the pip subprocess. Nil selects the os/exec-backed
	// runner; tests inject fakes.
	Runner pip.Runner
}

// New creates a new CLI instance with a default logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself performs the full generate pipeline.
func (c *CLI) RootCommand() *cobra.Command {
	opts := generateOpts{output: manifest.DefaultFilename}

	root := &cobra.Command{
		Use:   appName + " <project-path>",
		Short: "reqgen writes a pinned requirements.txt from a project's imports",
		Long: `reqgen scans a Python project for import statements, cross-references
them against the packages installed in its virtual environment (or globally),
and writes a pinned requirements.txt into the project directory.

Only locally installed packages are considered; no package index is consulted.

Examples:
  reqgen .                          # scan current directory, global packages
  reqgen ~/proj --venv_folder .venv # prefer the project's virtual environment
  reqgen ~/proj -o requirements-dev.txt`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateVenvFolder(opts.venvFolder); err != nil {
				return err
			}
			if err := errors.ValidateOutputName(opts.output); err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), args[0], opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.Flags().StringVar(&opts.venvFolder, "venv_folder", "", "virtual environment folder under the project path")
	root.Flags().StringVarP(&opts.output, "output", "o", opts.output, "manifest filename written into the project path")

	root.AddCommand(c.scanCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.completionCommand())

	return root
}
