package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tame/pkg/observability"
)

// debugHooks logs scan and fix events with their timings at debug level.
type debugHooks struct {
	logger *log.Logger
}

var (
	_ observability.ScanHooks = debugHooks{}
	_ observability.FixHooks  = debugHooks{}
)

func newDebugHooks(l *log.Logger) debugHooks {
	return debugHooks{logger: l}
}

func (h debugHooks) OnScanStart(_ context.Context, root string) {
	h.logger.Debug("scan started", "root", root)
}

func (h debugHooks) OnPattern(_ context.Context, pattern string, matches int, err error) {
	if err != nil {
		h.logger.Debug("pattern failed", "pattern", pattern, "err", err)
		return
	}
	h.logger.Debug("pattern resolved", "pattern", pattern, "matches", matches)
}

func (h debugHooks) OnPackage(_ context.Context, manifest string, findings int, d time.Duration, err error) {
	if err != nil {
		return
	}
	h.logger.Debug("package inspected", "path", manifest, "findings", findings, "took", d.Round(time.Microsecond))
}

func (h debugHooks) OnScanComplete(_ context.Context, root string, packages, findings int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("scan failed", "root", root, "took", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("scan complete", "root", root, "packages", packages, "findings", findings, "took", d.Round(time.Millisecond))
}

func (h debugHooks) OnFixPackage(_ context.Context, manifest string, changes int, dryRun bool, err error) {
	if err != nil {
		return
	}
	h.logger.Debug("package fixed", "path", manifest, "changes", changes, "dry_run", dryRun)
}
