// Package engine implements the Sandbox Launcher: it spawns one command
// under the full execution envelope (network unshare, wall-clock timeout,
// peak-RSS measurement, resource limits) and reports a raw RunResult.
package engine

import (
	"context"

	"judgecore/internal/sandbox/result"
	"judgecore/internal/sandbox/security"
	"judgecore/internal/sandbox/spec"
)

// Engine runs one sandboxed command to completion or to its wall-clock
// ceiling, whichever comes first.
type Engine interface {
	Run(ctx context.Context, runSpec spec.RunSpec, isolation security.IsolationProfile) (result.RunResult, error)
}

// Config tunes an Engine instance.
type Config struct {
	// HelperPath is the path to the sandbox-init helper binary. Defaults to
	// "sandbox-init" resolved via PATH.
	HelperPath string
	// EnableNamespaces gates namespace isolation (mount/pid/uts/ipc/net);
	// disabled by default so the engine also runs unprivileged in dev/test.
	EnableNamespaces bool
	// EnableSeccomp gates syscall filtering in the helper.
	EnableSeccomp bool
}
