//go:build linux

// Package limiter applies the Resource Limiter ceilings (spec §4.1) to the
// calling process. It is meant to run in the child immediately before exec,
// inside the sandbox-init helper — never in the parent harness process.
package limiter

import (
	"golang.org/x/sys/unix"

	"judgecore/internal/sandbox/spec"
)

const (
	maxProcesses = 50
	maxOpenFiles = 64
)

// Failure is a limit that the running kernel rejected. Applying a limit is
// best-effort: the caller logs Failures but never aborts on them.
type Failure struct {
	Limit string
	Err   error
}

// Apply binds CPU-time, address-space, process-count, open-file and
// core-dump ceilings to the current process. It never returns an error for
// an individual limit the kernel rejects; instead it reports every rejected
// limit so the caller can log it.
func Apply(limits spec.ResourceLimit) []Failure {
	var failures []Failure

	if limits.CPUTimeMs > 0 {
		timeoutSec := uint64((limits.CPUTimeMs + 999) / 1000)
		if err := unix.Setrlimit(unix.RLIMIT_CPU, &unix.Rlimit{Cur: timeoutSec, Max: timeoutSec + 1}); err != nil {
			failures = append(failures, Failure{Limit: "RLIMIT_CPU", Err: err})
		}
	}

	if limits.MemoryKB > 0 {
		bytes := uint64(limits.MemoryKB) * 1024
		if err := unix.Setrlimit(unix.RLIMIT_AS, &unix.Rlimit{Cur: bytes, Max: bytes}); err != nil {
			failures = append(failures, Failure{Limit: "RLIMIT_AS", Err: err})
		}
	}

	if limits.StackKB > 0 {
		bytes := uint64(limits.StackKB) * 1024
		if err := unix.Setrlimit(unix.RLIMIT_STACK, &unix.Rlimit{Cur: bytes, Max: bytes}); err != nil {
			failures = append(failures, Failure{Limit: "RLIMIT_STACK", Err: err})
		}
	}

	procs := uint64(maxProcesses)
	if limits.PIDs > 0 {
		procs = uint64(limits.PIDs)
	}
	if err := unix.Setrlimit(unix.RLIMIT_NPROC, &unix.Rlimit{Cur: procs, Max: procs}); err != nil {
		failures = append(failures, Failure{Limit: "RLIMIT_NPROC", Err: err})
	}

	files := uint64(maxOpenFiles)
	if limits.Files > 0 {
		files = uint64(limits.Files)
	}
	if err := unix.Setrlimit(unix.RLIMIT_NOFILE, &unix.Rlimit{Cur: files, Max: files}); err != nil {
		failures = append(failures, Failure{Limit: "RLIMIT_NOFILE", Err: err})
	}

	if err := unix.Setrlimit(unix.RLIMIT_CORE, &unix.Rlimit{Cur: 0, Max: 0}); err != nil {
		failures = append(failures, Failure{Limit: "RLIMIT_CORE", Err: err})
	}

	return failures
}
