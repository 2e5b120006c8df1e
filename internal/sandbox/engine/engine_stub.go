//go:build !linux

package engine

import (
	"context"
	"fmt"

	"judgecore/internal/sandbox/result"
	"judgecore/internal/sandbox/security"
	"judgecore/internal/sandbox/spec"
)

type stubEngine struct{}

// NewEngine on non-Linux platforms returns an engine that always fails:
// namespace isolation, seccomp and the sandbox-init helper are Linux-only.
func NewEngine(cfg Config) (Engine, error) {
	return stubEngine{}, nil
}

func (stubEngine) Run(ctx context.Context, runSpec spec.RunSpec, isolation security.IsolationProfile) (result.RunResult, error) {
	return result.RunResult{}, fmt.Errorf("sandbox engine: unsupported on this platform")
}
