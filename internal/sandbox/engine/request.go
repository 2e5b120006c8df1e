//go:build linux

package engine

import (
	"judgecore/internal/sandbox/security"
	"judgecore/internal/sandbox/spec"
)

// initRequest is the JSON payload written to the sandbox-init helper's
// stdin. Both ends of this contract live in this module, so the shape is
// free to evolve with it.
type initRequest struct {
	RunSpec       spec.RunSpec
	Isolation     security.IsolationProfile
	EnableSeccomp bool
	EnableNs      bool
}
