// Package runner implements the Test Runner: it drives the Sandbox Launcher
// across a sequence of test cases and produces per-case TestRecords without
// comparing any output (spec §4.3).
package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"judgecore/internal/document"
	"judgecore/internal/sandbox/engine"
	"judgecore/internal/sandbox/result"
	"judgecore/internal/sandbox/security"
	"judgecore/internal/sandbox/spec"
)

const previewLimit = 1000
const hiddenPlaceholder = "[hidden]"

// Request describes one submission's worth of work: a command to run per
// test case, with the runner staging each case's input into a scratch file.
type Request struct {
	Cmd                 []string
	Env                 []string
	WorkDir             string
	ScratchDir          string
	GlobalTimeLimitMs   int64
	GlobalMemoryLimitKB int64
	Isolation           security.IsolationProfile
}

// Summary is the Test Runner's execution summary, folded into the harness
// output document alongside the per-case records.
type Summary struct {
	Records        []result.TestRecord
	TotalElapsedMs int64
	MaxMemoryKB    int64
	StoppedEarly   bool
}

// Runner drives an engine.Engine across a test-case sequence.
type Runner struct {
	Engine engine.Engine
}

// New returns a Runner backed by eng.
func New(eng engine.Engine) *Runner {
	return &Runner{Engine: eng}
}

// Run executes req.Cmd against every case in cases, in order, honoring
// per-case stop_on_failure. It never compares output; that is the
// Comparator Suite's job downstream. Every scratch file it creates is
// removed before Run returns, on every exit path.
func (r *Runner) Run(ctx context.Context, req Request, cases []document.TestCase) (Summary, error) {
	summary := Summary{Records: make([]result.TestRecord, 0, len(cases))}

	for _, tc := range cases {
		runSpec, cleanup, err := r.prepareRunSpec(req, tc)
		if err != nil {
			return summary, err
		}

		runRes, runErr := r.Engine.Run(ctx, runSpec, req.Isolation)
		cleanup()
		if runErr != nil {
			return summary, runErr
		}

		memoryLimitKB := effectiveMemoryLimit(req.GlobalMemoryLimitKB, tc.MemoryLimitKB)
		status := result.Classify(runRes, memoryLimitKB)

		rec := result.TestRecord{
			TestID:          tc.ID,
			Status:          status,
			ExitCode:        runRes.ExitCode,
			ActualOutput:    runRes.Stdout,
			Stderr:          runRes.Stderr,
			ExecutionTimeMs: runRes.WallTimeMs,
			MemoryUsedKB:    runRes.MemoryKB,
		}
		if status == result.StatusRuntimeErr {
			rec.Error = runtimeErrorMessage(runRes)
		}
		applyPreviews(&rec, tc)

		summary.Records = append(summary.Records, rec)
		summary.TotalElapsedMs += runRes.WallTimeMs
		if runRes.MemoryKB > summary.MaxMemoryKB {
			summary.MaxMemoryKB = runRes.MemoryKB
		}

		if tc.StopOnFailure && status != result.StatusSuccess {
			summary.StoppedEarly = true
			break
		}
	}

	return summary, nil
}

// prepareRunSpec stages the case's stdin under a uniquely-named scratch file
// so concurrent invocations sharing ScratchDir never collide (spec §5), and
// returns a cleanup func that removes it regardless of run outcome.
func (r *Runner) prepareRunSpec(req Request, tc document.TestCase) (spec.RunSpec, func(), error) {
	runID := uuid.NewString()
	stdinPath := filepath.Join(req.ScratchDir, fmt.Sprintf("%s.in", runID))
	stdoutPath := filepath.Join(req.ScratchDir, fmt.Sprintf("%s.out", runID))
	stderrPath := filepath.Join(req.ScratchDir, fmt.Sprintf("%s.err", runID))

	if err := os.WriteFile(stdinPath, []byte(tc.Input), 0644); err != nil {
		return spec.RunSpec{}, func() {}, fmt.Errorf("stage stdin for %s: %w", tc.ID, err)
	}

	cleanup := func() {
		os.Remove(stdinPath)
		os.Remove(stdoutPath)
		os.Remove(stderrPath)
	}

	runSpec := spec.RunSpec{
		TestID:     tc.ID,
		WorkDir:    req.WorkDir,
		Cmd:        req.Cmd,
		Env:        req.Env,
		StdinPath:  stdinPath,
		StdoutPath: stdoutPath,
		StderrPath: stderrPath,
		DisableNet: true,
		Limits: spec.ResourceLimit{
			CPUTimeMs:  effectiveTimeLimit(req.GlobalTimeLimitMs, tc.TimeLimitMs),
			WallTimeMs: effectiveTimeLimit(req.GlobalTimeLimitMs, tc.TimeLimitMs),
			MemoryKB:   effectiveMemoryLimit(req.GlobalMemoryLimitKB, tc.MemoryLimitKB),
		},
	}
	return runSpec, cleanup, nil
}

func effectiveTimeLimit(global, override int64) int64 {
	if override > 0 {
		return override
	}
	return global
}

func effectiveMemoryLimit(global, override int64) int64 {
	if override > 0 {
		return override
	}
	return global
}

func applyPreviews(rec *result.TestRecord, tc document.TestCase) {
	if tc.Hidden {
		rec.InputPreview = hiddenPlaceholder
		rec.ExpectedPreview = hiddenPlaceholder
		rec.ActualOutput = hiddenPlaceholder
		return
	}
	rec.InputPreview = truncate(tc.Input, previewLimit)
	rec.ExpectedPreview = truncate(tc.ExpectedOutput, previewLimit)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

func runtimeErrorMessage(r result.RunResult) string {
	stderr := r.Stderr
	if len(stderr) > 500 {
		stderr = stderr[:500]
	}
	return "exit code " + strconv.Itoa(r.ExitCode) + ": " + stderr
}
