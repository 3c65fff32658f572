package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/larajo/reqgen/pkg/config"
	"github.com/larajo/reqgen/pkg/scan"
)

// scanCommand creates the scan command, which prints the imported modules
// discovered in a project without touching pip or writing any file.
func (c *CLI) scanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <project-path>",
		Short: "List the top-level modules imported by a project",
		Long: `List the normalized top-level module names imported by a project's
Python files, after alias mapping. Useful for checking what the root
command would try to match against installed packages.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScan(args[0])
		},
	}
}

func (c *CLI) runScan(projectPath string) error {
	if err := ensureProjectDir(projectPath); err != nil {
		return err
	}

	cfg, err := config.Load(projectPath)
	if err != nil {
		return err
	}

	imported, err := scan.New(cfg.Aliases, cfg.Ignore).Imports(projectPath)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(imported))
	for name := range imported {
		names = append(names, name)
	}
	sort.Strings(names)

	printInfo("%d imported modules", len(names))
	for _, name := range names {
		printDetail(name)
	}

	return nil
}
