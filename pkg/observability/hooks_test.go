package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopScanHooks{}
	s.OnScanStart(ctx, "/repo")
	s.OnPattern(ctx, "packages/*", 3, nil)
	s.OnPackage(ctx, "/repo/packages/a/package.json", 1, time.Millisecond, nil)
	s.OnScanComplete(ctx, "/repo", 3, 1, time.Second, nil)

	f := NoopFixHooks{}
	f.OnFixPackage(ctx, "/repo/packages/a/package.json", 1, true, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Scan().(NoopScanHooks); !ok {
		t.Error("Scan() should return NoopScanHooks by default")
	}
	if _, ok := Fix().(NoopFixHooks); !ok {
		t.Error("Fix() should return NoopFixHooks by default")
	}

	customScan := &testScanHooks{}
	SetScanHooks(customScan)
	if Scan() != customScan {
		t.Error("SetScanHooks should set custom hooks")
	}

	customFix := &testFixHooks{}
	SetFixHooks(customFix)
	if Fix() != customFix {
		t.Error("SetFixHooks should set custom hooks")
	}

	Reset()
	if _, ok := Scan().(NoopScanHooks); !ok {
		t.Error("Reset() should restore NoopScanHooks")
	}
	if _, ok := Fix().(NoopFixHooks); !ok {
		t.Error("Reset() should restore NoopFixHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testScanHooks{}
	SetScanHooks(custom)

	// Setting nil should be ignored
	SetScanHooks(nil)

	if Scan() != custom {
		t.Error("SetScanHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testScanHooks struct{ NoopScanHooks }
type testFixHooks struct{ NoopFixHooks }
