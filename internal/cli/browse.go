package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lmgraph/pkg/pipeline"
)

// browseCommand creates the interactive browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var reduce reduceFlags

	cmd := &cobra.Command{
		Use:   "browse <description>",
		Short: "Browse landmarks and their orderings interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := reduce.options(args[0])
			if err != nil {
				return err
			}
			opts.Formats = []string{pipeline.FormatDOT}
			opts.Logger = c.Logger

			runner, err := c.newRunner(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			result, err := runner.Execute(cmd.Context(), opts)
			if err != nil {
				return err
			}
			prog.done("loaded graph", "landmarks", result.Stats.Landmarks, "sccs", result.Stats.SCCs)

			items := browseItems(result.Loaded.Graph, result.Loaded.Variables)
			p := tea.NewProgram(NewLandmarkListModel(items), tea.WithContext(cmd.Context()), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	reduce.register(cmd)
	return cmd
}
