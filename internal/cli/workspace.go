package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tame/pkg/config"
	"github.com/matzehuels/tame/pkg/scan"
)

// workspaceOpts holds the flags shared by every command that scans a workspace.
type workspaceOpts struct {
	path           string   // workspace root
	fields         []string // dependency fields to reconcile
	excludeDirs    []string // directory names never searched
	strictPatterns bool     // invalid packages patterns are fatal
}

func (o *workspaceOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.path, "path", "p", defaultPath, "workspace root containing pnpm-workspace.yaml")
	cmd.Flags().StringSliceVar(&o.fields, "field", nil, "dependency field to check (repeatable): dependencies, devDependencies, peerDependencies, optionalDependencies")
	cmd.Flags().StringSliceVar(&o.excludeDirs, "exclude-dir", nil, "directory name never searched for packages (repeatable)")
	cmd.Flags().BoolVar(&o.strictPatterns, "strict-patterns", false, "fail on invalid packages patterns instead of warning")
}

// loadConfig reads tame.toml from the workspace root and applies the
// workspace flags the user set explicitly.
func (o *workspaceOpts) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("field") {
		cfg.Fields = o.fields
	}
	if flags.Changed("exclude-dir") {
		cfg.ExcludeDirs = o.excludeDirs
	}
	if flags.Changed("strict-patterns") {
		cfg.StrictPatterns = o.strictPatterns
	}
	return cfg, nil
}

// scanWorkspace runs the scanner with a spinner on interactive terminals.
func (c *CLI) scanWorkspace(ctx context.Context, root string, cfg config.Config) (*scan.Result, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	scanner := scan.New(scan.Options{
		Fields:         cfg.Fields,
		StrictPatterns: cfg.StrictPatterns,
		ExcludeDirs:    cfg.ExcludeDirs,
		Logger:         logger,
	})

	spinner := newSpinnerWithContext(ctx, os.Stderr, fmt.Sprintf("Scanning %s...", displayRoot(root)))
	spinner.Start()
	res, err := scanner.Scan(ctx, root)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			logger.Warn("Scan interrupted", "root", root)
			return nil, err
		}
		spinner.StopWithError("Scan failed")
		return nil, err
	}
	spinner.Stop()

	prog.done(fmt.Sprintf("Scanned %d packages", len(res.Packages)))
	return res, nil
}

func displayRoot(root string) string {
	if abs, err := filepath.Abs(root); err == nil {
		return abs
	}
	return root
}
