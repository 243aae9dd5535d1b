package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	lmio "github.com/matzehuels/lmgraph/pkg/io"
	"github.com/matzehuels/lmgraph/pkg/pipeline"
)

// reduceFlags are the graph reductions shared by export, stats and browse.
type reduceFlags struct {
	discardDisjunctive bool
	discardConjunctive bool
	minOrdering        string
	acyclic            bool
	inputFormat        string
}

func (f *reduceFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.discardDisjunctive, "discard-disjunctive", false, "remove disjunctive landmarks")
	cmd.Flags().BoolVar(&f.discardConjunctive, "discard-conjunctive", false, "remove conjunctive landmarks")
	cmd.Flags().StringVar(&f.minOrdering, "min-ordering", "", "drop orderings weaker than this type (reasonable, natural, greedy-necessary, necessary)")
	cmd.Flags().BoolVar(&f.acyclic, "acyclic", false, "break cycles by removing the weakest ordering on each")
	cmd.Flags().StringVar(&f.inputFormat, "input-format", "", "description format: toml or json (default: from file extension)")
}

// options builds pipeline options for the description at input.
func (f *reduceFlags) options(input string) (pipeline.Options, error) {
	opts := pipeline.Options{
		Input:              input,
		DiscardDisjunctive: f.discardDisjunctive,
		DiscardConjunctive: f.discardConjunctive,
		MinOrdering:        f.minOrdering,
		Acyclic:            f.acyclic,
	}
	if f.inputFormat != "" {
		format, err := lmio.ParseFormat(f.inputFormat)
		if err != nil {
			return opts, err
		}
		opts.Format = format
	}
	return opts, nil
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		reduce   reduceFlags
		output   string
		formats  string
		detailed bool
		scale    float64
		noCache  bool
		refresh  bool
	)

	cmd := &cobra.Command{
		Use:   "export <description>",
		Short: "Export a landmark graph as JSON, DOT or a rendered diagram",
		Long: `Export loads a landmark graph description, applies the requested
reductions and writes landmark_graph.json (and any other requested formats)
to the output directory.`,
		Example: `  lmgraph export landmarks.toml
  lmgraph export landmarks.toml -o out -f json,svg --min-ordering natural`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := reduce.options(args[0])
			if err != nil {
				return err
			}
			opts.OutputDir = c.Config.OutputDir
			if cmd.Flags().Changed("output") {
				opts.OutputDir = output
			}
			opts.Formats = c.Config.Formats
			if cmd.Flags().Changed("formats") {
				opts.Formats = pipeline.ParseFormats(formats)
			}
			opts.Detailed = detailed
			opts.Scale = scale
			opts.Refresh = refresh
			opts.Logger = c.Logger
			return c.runExport(cmd.Context(), opts, noCache)
		},
	}

	reduce.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default from config, else .)")
	cmd.Flags().StringVarP(&formats, "formats", "f", "", "comma separated output formats: json, dot, svg, png, pdf")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label diagram nodes with their facts and ids")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even when a cached diagram exists")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	if err := opts.Validate(); err != nil {
		return err
	}

	var spinner *Spinner
	if opts.NeedsRender() {
		spinner = newSpinner(ctx, os.Stderr, "Rendering landmark graph...")
		spinner.Start()
	}
	result, err := runner.Execute(ctx, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	printSuccess("Exported %s", opts.Input)
	for _, format := range opts.Formats {
		if path, ok := result.Files[format]; ok {
			printFile(path)
		}
	}
	printStats(result.Stats.Landmarks, result.Stats.Orderings, result.Stats.SCCs, result.CacheInfo.RenderHit && opts.NeedsRender())
	if result.Stats.RemovedLandmarks > 0 || result.Stats.RemovedOrderings > 0 {
		printDetail("reduced: -%d landmarks, -%d orderings",
			result.Stats.RemovedLandmarks, result.Stats.RemovedOrderings)
	}
	return nil
}
