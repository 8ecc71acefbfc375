package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tame/pkg/config"
	"github.com/matzehuels/tame/pkg/errors"
	"github.com/matzehuels/tame/pkg/fix"
	"github.com/matzehuels/tame/pkg/report"
	"github.com/matzehuels/tame/pkg/scan"
)

// fixOpts holds the command-line flags for the fix command.
type fixOpts struct {
	dryRun      bool   // compute changes without writing
	diff        bool   // print a unified diff per package
	reference   string // replacement token
	interactive bool   // choose packages before writing
	format      string // report format
}

// fixCommand creates the fix command for rewriting catalog dependencies.
func (c *CLI) fixCommand() *cobra.Command {
	var (
		ws   workspaceOpts
		opts fixOpts
	)

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Rewrite catalog dependencies to workspace references",
		Long: `Rewrite catalog dependencies to workspace references.

Every dependency that check would report is replaced with the reference
token (workspace:* unless --reference or tame.toml says otherwise). Only the
version strings change; formatting, key order and all other fields of each
package.json are left as they are.

Use --dry-run to see what would change without writing, and --diff to print
a unified diff of every package. --interactive lets you pick the packages.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ws.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("reference") {
				cfg.Reference = opts.reference
			}
			if cmd.Flags().Changed("format") {
				cfg.Format = opts.format
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if opts.interactive && !isTerminal(c.In) {
				return errors.New(errors.ErrCodeInvalidInput, "--interactive requires a TTY")
			}
			return c.runFix(cmd.Context(), ws.path, cfg, opts)
		},
	}

	ws.register(cmd)
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "show what would change without writing")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "print a unified diff per package")
	cmd.Flags().StringVar(&opts.reference, "reference", "", "replacement version (default workspace:*)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "choose which packages to fix")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: text (default), json")

	return cmd
}

// runFix scans the workspace and rewrites the selected packages.
func (c *CLI) runFix(ctx context.Context, root string, cfg config.Config, opts fixOpts) error {
	logger := loggerFromContext(ctx)

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	res, err := c.scanWorkspace(ctx, root, cfg)
	if err != nil {
		return err
	}

	var selectFn func(scan.Package) bool
	if opts.interactive && len(res.Pending()) > 0 {
		selected, err := c.selectPackages(ctx, res.Pending())
		if err != nil {
			return err
		}
		if len(selected) == 0 {
			printInfo(c.Out, "No packages selected")
			return nil
		}
		selectFn = func(p scan.Package) bool { return selected[p.Dir] }
	}

	fixer, err := fix.New(fix.Options{
		Reference: cfg.Reference,
		DryRun:    opts.dryRun,
		Diff:      opts.diff,
		Select:    selectFn,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	out, err := fixer.Apply(ctx, res)
	if err != nil {
		return err
	}
	prog.done("Applied workspace references")

	out.Warnings = append(append([]scan.Warning(nil), res.Warnings...), out.Warnings...)
	return report.Fix(c.Out, out, format)
}

// selectPackages runs the interactive picker and returns the chosen package directories.
// Quitting without confirming selects nothing.
func (c *CLI) selectPackages(ctx context.Context, pkgs []scan.Package) (map[string]bool, error) {
	p := tea.NewProgram(NewPackageSelectModel(pkgs),
		tea.WithContext(ctx),
		tea.WithInput(c.In),
		tea.WithOutput(c.Out),
	)
	final, err := p.Run()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "package selection failed")
	}
	m, ok := final.(PackageSelectModel)
	if !ok {
		return nil, nil
	}
	return m.Selected(), nil
}
