package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tame/pkg/config"
	"github.com/matzehuels/tame/pkg/errors"
	"github.com/matzehuels/tame/pkg/report"
)

// checkCommand creates the check command for auditing catalog dependencies.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		ws     workspaceOpts
		strict bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report catalog dependencies pinned to literal versions",
		Long: `Report catalog dependencies pinned to literal versions.

Every package matched by the "packages" patterns of pnpm-workspace.yaml is
checked. A dependency listed in the workspace catalog must use a
"workspace:" reference; any other version is reported.

By default check only reports. With --strict it exits non-zero when anything
is found, which makes it suitable as a CI gate.

Settings can also be given in tame.toml at the workspace root; flags win.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ws.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("strict") {
				cfg.Strict = strict
			}
			if cmd.Flags().Changed("format") {
				cfg.Format = format
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runCheck(cmd.Context(), ws.path, cfg)
		},
	}

	ws.register(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any finding is reported")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text (default), json")

	return cmd
}

// runCheck scans the workspace and reports its findings.
func (c *CLI) runCheck(ctx context.Context, root string, cfg config.Config) error {
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	res, err := c.scanWorkspace(ctx, root, cfg)
	if err != nil {
		return err
	}
	if err := report.Check(c.Out, res, format); err != nil {
		return err
	}

	if n := len(res.Findings()); cfg.Strict && n > 0 {
		return &errors.FindingsError{Count: n}
	}
	return nil
}
