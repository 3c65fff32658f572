package cli

import (
	"context"
	"sort"

	"github.com/spf13/cobra"

	"github.com/larajo/reqgen/pkg/errors"
	"github.com/larajo/reqgen/pkg/pip"
)

// listCommand creates the list command, which prints the installed packages
// visible to a project without scanning its sources.
func (c *CLI) listCommand() *cobra.Command {
	var venvFolder string

	cmd := &cobra.Command{
		Use:   "list <project-path>",
		Short: "List the installed packages visible to a project",
		Long: `List the installed packages (normalized name and version) that the root
command would match imports against, taken from the project's virtual
environment when available or from the global environment otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateVenvFolder(venvFolder); err != nil {
				return err
			}
			return c.runList(cmd.Context(), args[0], venvFolder)
		},
	}

	cmd.Flags().StringVar(&venvFolder, "venv_folder", "", "virtual environment folder under the project path")

	return cmd
}

func (c *CLI) runList(ctx context.Context, projectPath, venvFolder string) error {
	if err := ensureProjectDir(projectPath); err != nil {
		return err
	}

	installed, err := pip.NewLister(c.Runner, c.Logger).Installed(ctx, projectPath, venvFolder)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(installed))
	for name := range installed {
		names = append(names, name)
	}
	sort.Strings(names)

	printInfo("%d installed packages", len(names))
	for _, name := range names {
		printKeyValue(name, installed[name])
	}

	return nil
}
