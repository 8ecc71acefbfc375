package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestDebugHooks(t *testing.T) {
	var buf bytes.Buffer
	h := newDebugHooks(newLogger(&buf, log.DebugLevel))
	ctx := context.Background()

	h.OnScanStart(ctx, "/ws")
	h.OnPattern(ctx, "packages/*", 2, nil)
	h.OnPackage(ctx, "/ws/packages/a/package.json", 1, time.Millisecond, nil)
	h.OnScanComplete(ctx, "/ws", 2, 1, 5*time.Millisecond, nil)
	h.OnFixPackage(ctx, "/ws/packages/a/package.json", 1, true, nil)

	out := buf.String()
	for _, want := range []string{"scan started", "pattern resolved", "package inspected", "scan complete", "package fixed"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestDebugHooksFailures(t *testing.T) {
	var buf bytes.Buffer
	h := newDebugHooks(newLogger(&buf, log.DebugLevel))
	ctx := context.Background()

	h.OnPackage(ctx, "/ws/packages/a/package.json", 0, 0, fmt.Errorf("boom"))
	if buf.Len() != 0 {
		t.Errorf("failed package should be left to the warning log, got %q", buf.String())
	}

	h.OnScanComplete(ctx, "/ws", 0, 0, time.Millisecond, fmt.Errorf("boom"))
	if !strings.Contains(buf.String(), "scan failed") {
		t.Errorf("log = %q, want scan failed", buf.String())
	}
}

func TestDebugHooksSilentAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := newDebugHooks(newLogger(&buf, log.InfoLevel))
	h.OnScanStart(context.Background(), "/ws")

	if buf.Len() != 0 {
		t.Errorf("debug hooks wrote at info level: %q", buf.String())
	}
}
