// Package verdict implements the Verdict Engine: per-case classification,
// weighted scoring, and final-verdict reduction (spec §4.6).
package verdict

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"judgecore/internal/comparator"
	"judgecore/internal/config"
	"judgecore/internal/sandbox/result"
	"judgecore/internal/specialjudge"
)

// Code is a judge verdict code.
type Code string

const (
	AC Code = "AC" // Accepted
	WA Code = "WA" // Wrong Answer
	TLE Code = "TLE" // Time Limit Exceeded
	MLE Code = "MLE" // Memory Limit Exceeded
	RE Code = "RE" // Runtime Error
	CE Code = "CE" // Compilation Error
	IE Code = "IE" // Internal Error
	PE Code = "PE" // Presentation Error, reserved
	SK Code = "SK" // Skipped, reserved
)

const previewLimit = 500
const inputPreviewLimit = 100

// TestCaseVerdict is the judge's per-case output (spec §3).
type TestCaseVerdict struct {
	TestID          string  `json:"test_id"`
	Verdict         Code    `json:"verdict"`
	Score           float64 `json:"score"`
	MaxScore        float64 `json:"max_score"`
	ExecutionTimeMs int64   `json:"execution_time_ms"`
	MemoryUsedKB    int64   `json:"memory_used_kb"`
	Message         string  `json:"message,omitempty"`
	ExpectedOutput  string  `json:"expected_output,omitempty"`
	ActualOutput    string  `json:"actual_output,omitempty"`
	InputPreview    string  `json:"input_preview,omitempty"`
}

// CompileResult is the submission-level compilation precondition (spec
// §4.6): a compile step present, not skipped, and not successful yields CE
// with no test cases executed.
type CompileResult struct {
	Present bool
	Skipped bool
	Success bool
	Stderr  string
}

// JudgeResult is the submission-level verdict (spec §3).
type JudgeResult struct {
	FinalVerdict       Code              `json:"final_verdict"`
	TotalScore         float64           `json:"total_score"`
	MaxScore           float64           `json:"max_score"`
	ScorePercentage    float64           `json:"score_percentage"`
	PassedCount        int               `json:"passed_count"`
	FailedCount        int               `json:"failed_count"`
	TotalCount         int               `json:"total_count"`
	TotalTimeMs        int64             `json:"total_time_ms"`
	MaxMemoryKB        int64             `json:"max_memory_kb"`
	TestVerdicts       []TestCaseVerdict `json:"test_verdicts"`
	CompilationStatus  string            `json:"compilation_status,omitempty"`
	CompilationMessage string            `json:"compilation_message,omitempty"`
	JudgeMessage       string            `json:"judge_message,omitempty"`
}

// Judge evaluates harness output against expected outputs and a problem
// configuration.
type Judge struct {
	Config  config.ProblemConfig
	Invoker *specialjudge.Invoker // nil unless ComparisonMode == special
	// ScratchDir is used to stage special-judge input/expected/actual files.
	// Required when Invoker is non-nil.
	ScratchDir string
}

// New constructs a Judge, wiring a special judge invoker when the
// configuration requires one.
func New(cfg config.ProblemConfig, scratchDir string) (*Judge, error) {
	j := &Judge{Config: cfg, ScratchDir: scratchDir}
	if cfg.ComparisonMode == config.ComparisonSpecial {
		inv, err := specialjudge.New(cfg.SpecialJudgePath)
		if err != nil {
			return nil, err
		}
		j.Invoker = inv
	}
	return j, nil
}

// JudgeSubmission evaluates a full harness-output sequence, honoring the
// submission-level compilation precondition before touching any test case.
func (j *Judge) JudgeSubmission(ctx context.Context, compile CompileResult, records []result.TestRecord, expected map[string]string) (JudgeResult, error) {
	if compile.Present && !compile.Skipped && !compile.Success {
		return JudgeResult{
			FinalVerdict:       CE,
			CompilationStatus:  "failed",
			CompilationMessage: compile.Stderr,
		}, nil
	}

	verdicts := make([]TestCaseVerdict, 0, len(records))
	for _, rec := range records {
		tcv, err := j.judgeTestCase(ctx, rec, expected[rec.TestID])
		if err != nil {
			return JudgeResult{}, err
		}
		verdicts = append(verdicts, tcv)
	}

	return aggregate(verdicts, compile), nil
}

func (j *Judge) judgeTestCase(ctx context.Context, rec result.TestRecord, expectedOutput string) (TestCaseVerdict, error) {
	weight := j.Config.Weight(rec.TestID)
	if expectedOutput == "" {
		expectedOutput = rec.ExpectedPreview
	}

	switch rec.Status {
	case result.StatusTimedOut:
		return TestCaseVerdict{
			TestID: rec.TestID, Verdict: TLE, Score: 0, MaxScore: weight,
			ExecutionTimeMs: rec.ExecutionTimeMs, MemoryUsedKB: rec.MemoryUsedKB,
			Message:      messagef("time limit exceeded (%dms)", rec.ExecutionTimeMs),
			InputPreview: truncate(rec.InputPreview, inputPreviewLimit),
		}, nil
	case result.StatusMemoryLimit:
		return TestCaseVerdict{
			TestID: rec.TestID, Verdict: MLE, Score: 0, MaxScore: weight,
			ExecutionTimeMs: rec.ExecutionTimeMs, MemoryUsedKB: rec.MemoryUsedKB,
			Message:      messagef("memory limit exceeded (%dKB)", rec.MemoryUsedKB),
			InputPreview: truncate(rec.InputPreview, inputPreviewLimit),
		}, nil
	case result.StatusRuntimeErr:
		msg := rec.Error
		if msg == "" {
			msg = "unknown runtime error"
		}
		return TestCaseVerdict{
			TestID: rec.TestID, Verdict: RE, Score: 0, MaxScore: weight,
			ExecutionTimeMs: rec.ExecutionTimeMs, MemoryUsedKB: rec.MemoryUsedKB,
			Message:      msg,
			InputPreview: truncate(rec.InputPreview, inputPreviewLimit),
		}, nil
	}

	var passed bool
	var score float64
	var message string

	if j.Config.ComparisonMode == config.ComparisonSpecial && j.Invoker != nil {
		dir, err := caseScratchDir(j.ScratchDir, rec.TestID)
		if err != nil {
			return TestCaseVerdict{}, err
		}
		v, err := j.Invoker.Run(ctx, dir, rec.InputPreview, expectedOutput, rec.ActualOutput, rec.TestID)
		if err != nil {
			return TestCaseVerdict{}, err
		}
		passed, score, message = v.Passed, v.Score*weight, v.Message
	} else {
		var err error
		passed, message, err = comparator.Compare(expectedOutput, rec.ActualOutput, j.Config)
		if err != nil {
			return TestCaseVerdict{}, err
		}
		if passed {
			score = weight
		}
	}

	verdict := WA
	if passed {
		verdict = AC
	}

	return TestCaseVerdict{
		TestID: rec.TestID, Verdict: verdict, Score: score, MaxScore: weight,
		ExecutionTimeMs: rec.ExecutionTimeMs, MemoryUsedKB: rec.MemoryUsedKB,
		Message:        message,
		ExpectedOutput: truncate(expectedOutput, previewLimit),
		ActualOutput:   truncate(rec.ActualOutput, previewLimit),
		InputPreview:   truncate(rec.InputPreview, inputPreviewLimit),
	}, nil
}

// aggregate reduces per-case verdicts to a submission-level JudgeResult per
// spec §4.6's fixed precedence: AC only if every case is AC, else the first
// matching rule in TLE, MLE, RE, WA order (scanning the case list).
func aggregate(verdicts []TestCaseVerdict, compile CompileResult) JudgeResult {
	var totalScore, maxScore float64
	var totalTime, maxMemory int64
	passed := 0

	allAC := true
	anyTLE, anyMLE, anyRE := false, false, false

	for _, v := range verdicts {
		totalScore += v.Score
		maxScore += v.MaxScore
		totalTime += v.ExecutionTimeMs
		if v.MemoryUsedKB > maxMemory {
			maxMemory = v.MemoryUsedKB
		}
		if v.Verdict == AC {
			passed++
		} else {
			allAC = false
		}
		switch v.Verdict {
		case TLE:
			anyTLE = true
		case MLE:
			anyMLE = true
		case RE:
			anyRE = true
		}
	}

	final := WA
	switch {
	case allAC && len(verdicts) > 0:
		final = AC
	case anyTLE:
		final = TLE
	case anyMLE:
		final = MLE
	case anyRE:
		final = RE
	}

	percentage := 0.0
	if maxScore > 0 {
		percentage = round2(totalScore / maxScore * 100)
	}

	compilationStatus := ""
	if compile.Present {
		compilationStatus = "success"
	}

	return JudgeResult{
		FinalVerdict:      final,
		TotalScore:        round2(totalScore),
		MaxScore:          round2(maxScore),
		ScorePercentage:   percentage,
		PassedCount:       passed,
		FailedCount:       len(verdicts) - passed,
		TotalCount:        len(verdicts),
		TotalTimeMs:       totalTime,
		MaxMemoryKB:       maxMemory,
		TestVerdicts:      verdicts,
		CompilationStatus: compilationStatus,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

func messagef(format string, a ...any) string {
	return fmt.Sprintf(format, a...)
}

// caseScratchDir returns a per-case subdirectory under root for staging
// special judge input/expected/actual files, creating it if absent.
func caseScratchDir(root, testID string) (string, error) {
	dir := filepath.Join(root, testID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create scratch dir for %s: %w", testID, err)
	}
	return dir, nil
}
