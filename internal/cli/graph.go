package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tame/pkg/config"
	"github.com/matzehuels/tame/pkg/errors"
	"github.com/matzehuels/tame/pkg/report"
)

// graphCommand creates the graph command for exporting the catalog dependency graph.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		ws     workspaceOpts
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the package to catalog dependency graph",
		Long: `Export the package to catalog dependency graph.

Each package points at the catalog dependencies it declares. Declarations
pinned to a literal version are drawn in red and labeled with the version.

The graph is written as Graphviz DOT by default, or rendered to SVG with
--format svg.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseGraphFormat(format)
			if err != nil {
				return err
			}
			cfg, err := ws.loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runGraph(cmd.Context(), ws.path, cfg, f, output)
		},
	}

	ws.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: dot (default), svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// runGraph scans the workspace and writes its graph.
func (c *CLI) runGraph(ctx context.Context, root string, cfg config.Config, format, output string) error {
	res, err := c.scanWorkspace(ctx, root, cfg)
	if err != nil {
		return err
	}

	data, err := report.Graph(ctx, res, format)
	if err != nil {
		return err
	}

	if output == "" {
		if _, err := c.Out.Write(data); err != nil {
			return errors.Wrap(errors.ErrCodeWrite, err, "failed to write graph")
		}
		return nil
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "failed to write %s", output)
	}
	printSuccess(c.Out, "Wrote %s graph", format)
	printFile(c.Out, output)
	return nil
}
