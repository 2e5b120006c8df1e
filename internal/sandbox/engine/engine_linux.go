//go:build linux

package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"

	applog "judgecore/pkg/utils/logger"

	"judgecore/internal/sandbox/result"
	"judgecore/internal/sandbox/security"
	"judgecore/internal/sandbox/spec"
)

const defaultHelperPath = "sandbox-init"

// netnsSupported caches whether CLONE_NEWNET succeeds on this host. It is
// probed lazily on first use and never rechecked — the engine is re-entrant
// across submissions, but kernel capability does not change mid-process.
var netnsSupported atomic.Bool

func init() {
	netnsSupported.Store(true)
}

type linuxEngine struct {
	cfg Config
}

// NewEngine creates the Linux sandbox engine.
func NewEngine(cfg Config) (Engine, error) {
	if cfg.HelperPath == "" {
		cfg.HelperPath = defaultHelperPath
	}
	return &linuxEngine{cfg: cfg}, nil
}

func (e *linuxEngine) Run(ctx context.Context, runSpec spec.RunSpec, isolation security.IsolationProfile) (result.RunResult, error) {
	if err := validateRunSpec(runSpec); err != nil {
		return result.RunResult{}, err
	}

	req := initRequest{
		RunSpec:       runSpec,
		Isolation:     isolation,
		EnableSeccomp: e.cfg.EnableSeccomp && isolation.SeccompProfile != "",
		EnableNs:      e.cfg.EnableNamespaces,
	}

	stdinPipe, err := jsonToPipe(req)
	if err != nil {
		return result.RunResult{}, fmt.Errorf("encode init request: %w", err)
	}
	defer stdinPipe.Close()

	cmd := exec.Command(e.cfg.HelperPath)
	cmd.Stdin = stdinPipe
	wantNetns := e.cfg.EnableNamespaces && runSpec.DisableNet && netnsSupported.Load()
	cmd.SysProcAttr = buildSysProcAttr(e.cfg.EnableNamespaces, wantNetns)

	var helperStderr bytes.Buffer
	cmd.Stderr = &helperStderr

	start := time.Now()
	if err := cmd.Start(); err != nil {
		if wantNetns {
			// Network-namespace creation is the one flag that commonly fails
			// under a restricted kernel/capability set. Retry once without it
			// and remember the result for subsequent runs.
			netnsSupported.Store(false)
			cmd = exec.Command(e.cfg.HelperPath)
			stdinPipe2, encErr := jsonToPipe(req)
			if encErr != nil {
				return result.RunResult{}, fmt.Errorf("encode init request: %w", encErr)
			}
			defer stdinPipe2.Close()
			cmd.Stdin = stdinPipe2
			cmd.SysProcAttr = buildSysProcAttr(e.cfg.EnableNamespaces, false)
			cmd.Stderr = &helperStderr
			start = time.Now()
			if err := cmd.Start(); err != nil {
				return result.RunResult{}, fmt.Errorf("start sandbox-init: %w", err)
			}
		} else {
			return result.RunResult{}, fmt.Errorf("start sandbox-init: %w", err)
		}
	}

	var timedOut atomic.Bool
	var vmhwmPeak atomic.Int64
	done := make(chan struct{})
	go func() {
		wallLimit := durationFromMs(runSpec.Limits.WallTimeMs)
		var timer <-chan time.Time
		if wallLimit > 0 {
			timer = time.After(wallLimit)
		}
		select {
		case <-ctx.Done():
			killProcessGroup(cmd.Process.Pid)
		case <-timer:
			timedOut.Store(true)
			killProcessGroup(cmd.Process.Pid)
		case <-done:
		}
	}()

	// Poll /proc/<pid>/status as a VmHWM fallback: rusage.Maxrss is the
	// primary source and is always available after Wait(), but on kernels
	// where it reads zero (e.g. inside some container runtimes) this is the
	// only signal available while the process is still alive.
	pollDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-pollDone:
				return
			case <-ticker.C:
				if v := vmHWMFallback(cmd.Process.Pid); v > vmhwmPeak.Load() {
					vmhwmPeak.Store(v)
				}
			}
		}
	}()

	waitErr := cmd.Wait()
	close(done)
	close(pollDone)
	wallTimeMs := time.Since(start).Milliseconds()

	if waitErr != nil && helperStderr.Len() > 0 {
		applog.Warn("sandbox-init reported an error", zap.String("stderr", helperStderr.String()))
	}

	memKB := memoryPeakKB(cmd.ProcessState)
	if memKB <= 0 {
		memKB = vmhwmPeak.Load()
	}

	runResult := result.RunResult{
		ExitCode:   exitCodeFromErr(waitErr, cmd.ProcessState),
		WallTimeMs: wallTimeMs,
		CPUTimeMs:  cpuTimeMs(cmd.ProcessState),
		MemoryKB:   memKB,
		Stdout:     readLimitedFile(runSpec.StdoutPath, result.MaxStdoutBytes()),
		Stderr:     readLimitedFile(runSpec.StderrPath, result.MaxStderrBytes()),
	}

	if timedOut.Load() {
		runResult.TimedOut = true
		if runResult.ExitCode == 0 {
			runResult.ExitCode = 137
		}
	}

	return runResult, nil
}

func validateRunSpec(runSpec spec.RunSpec) error {
	if runSpec.WorkDir == "" {
		return fmt.Errorf("work dir is required")
	}
	if len(runSpec.Cmd) == 0 {
		return fmt.Errorf("command is required")
	}
	return nil
}

func jsonToPipe(req initRequest) (io.ReadCloser, error) {
	reader, writer := io.Pipe()
	go func() {
		enc := json.NewEncoder(writer)
		err := enc.Encode(req)
		_ = writer.CloseWithError(err)
	}()
	return reader, nil
}

func buildSysProcAttr(enableNamespaces, enableNetns bool) *syscall.SysProcAttr {
	attr := &syscall.SysProcAttr{
		Setpgid:   true,
		Pdeathsig: syscall.SIGKILL,
	}
	if !enableNamespaces {
		return attr
	}
	cloneFlags := uintptr(syscall.CLONE_NEWNS | syscall.CLONE_NEWPID | syscall.CLONE_NEWUTS | syscall.CLONE_NEWIPC)
	if enableNetns {
		cloneFlags |= syscall.CLONE_NEWNET
	}
	attr.Cloneflags = cloneFlags
	return attr
}

func killProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}

func exitCodeFromErr(err error, state *os.ProcessState) int {
	if state != nil {
		if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return 128 + int(ws.Signal())
		}
		return state.ExitCode()
	}
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
