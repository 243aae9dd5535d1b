package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lmgraph/pkg/landmarks"
	"github.com/matzehuels/lmgraph/pkg/pipeline"
)

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		reduce  reduceFlags
		asJSON  bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "stats <description>",
		Short: "Print landmark, ordering and SCC counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := reduce.options(args[0])
			if err != nil {
				return err
			}
			opts.Formats = []string{pipeline.FormatDOT}
			opts.Logger = c.Logger

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			result, err := runner.Execute(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result.Stats)
			}

			fmt.Fprintln(stdout, StyleTitle.Render(args[0]))
			fmt.Fprintln(stdout, statsTable(result.Stats))
			if result.Stats.CyclicSCCs > 0 {
				printWarning("%d cyclic SCCs; use --acyclic to break them", result.Stats.CyclicSCCs)
			}
			return nil
		},
	}

	reduce.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print statistics as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}

// statsTable renders s as a two column table.
func statsTable(s pipeline.Stats) string {
	rows := [][]string{
		{"landmarks", strconv.Itoa(s.Landmarks)},
		{"  simple", strconv.Itoa(s.Simple)},
		{"  disjunctive", strconv.Itoa(s.Disjunctive)},
		{"  conjunctive", strconv.Itoa(s.Conjunctive)},
		{"  true in goal", strconv.Itoa(s.Goal)},
		{"orderings", strconv.Itoa(s.Orderings)},
	}
	for _, t := range []landmarks.EdgeType{landmarks.EdgeNecessary, landmarks.EdgeGreedyNecessary, landmarks.EdgeNatural, landmarks.EdgeReasonable} {
		rows = append(rows, []string{"  " + t.String(), strconv.Itoa(s.ByType[t.String()])})
	}
	rows = append(rows,
		[]string{"sccs", strconv.Itoa(s.SCCs)},
		[]string{"  cyclic", strconv.Itoa(s.CyclicSCCs)},
		[]string{"  largest", strconv.Itoa(s.LargestSCC)},
	)
	if s.RemovedLandmarks > 0 || s.RemovedOrderings > 0 {
		rows = append(rows,
			[]string{"removed landmarks", strconv.Itoa(s.RemovedLandmarks)},
			[]string{"removed orderings", strconv.Itoa(s.RemovedOrderings)},
		)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Metric", "Count").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 1:
				return StyleNumber.Align(lipgloss.Right)
			}
			return StyleValue
		})
	return t.Render()
}
