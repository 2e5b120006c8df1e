// Package specialjudge invokes an external special judge executable under
// the file-based contract of spec §4.5: the judge receives
// (input_path, expected_path, actual_path, test_id) as arguments and reports
// its verdict as a JSON object on stdout.
package specialjudge

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	appErr "judgecore/pkg/errors"
)

// WallLimit is the fixed wall-clock budget for a special judge invocation,
// independent of the submission's own time limit (spec §4.5).
const WallLimit = 30 * time.Second

// Verdict is the outcome of one special judge invocation.
type Verdict struct {
	Passed  bool
	Score   float64
	Message string
}

// Invoker runs a special judge binary against a prepared scratch triple.
type Invoker struct {
	JudgePath string
}

// New validates the judge path is an executable file and returns an Invoker.
func New(judgePath string) (*Invoker, error) {
	info, err := os.Stat(judgePath)
	if err != nil {
		return nil, appErr.Wrapf(err, appErr.SpecialJudgeFailed, "special judge not found: %s", judgePath)
	}
	if info.IsDir() || info.Mode()&0111 == 0 {
		return nil, appErr.Newf(appErr.SpecialJudgeFailed, "special judge not executable: %s", judgePath)
	}
	return &Invoker{JudgePath: judgePath}, nil
}

// Run writes input/expected/actual to scratch files under dir, invokes the
// judge with a fixed wall-clock timeout, and parses its verdict. A special
// judge failure (crash, timeout, unparseable output) never escalates to an
// error it is reported as a failing Verdict with a diagnostic message, per
// spec §4.5's "local failure, does not abort the run" rule.
func (inv *Invoker) Run(ctx context.Context, dir, input, expected, actual, testID string) (Verdict, error) {
	inputPath, err := writeScratchFile(dir, "input", input)
	if err != nil {
		return Verdict{}, err
	}
	expectedPath, err := writeScratchFile(dir, "expected", expected)
	if err != nil {
		return Verdict{}, err
	}
	actualPath, err := writeScratchFile(dir, "actual", actual)
	if err != nil {
		return Verdict{}, err
	}

	runCtx, cancel := context.WithTimeout(ctx, WallLimit)
	defer cancel()

	cmd := exec.CommandContext(runCtx, inv.JudgePath, inputPath, expectedPath, actualPath, testID)
	stdout, err := cmd.Output()
	if runCtx.Err() == context.DeadlineExceeded {
		return Verdict{Passed: false, Score: 0, Message: "special judge timeout"}, nil
	}
	if err != nil {
		stderr := ""
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = strings.TrimSpace(string(exitErr.Stderr))
		}
		msg := "special judge error"
		if stderr != "" {
			msg = "special judge error: " + stderr
		}
		return Verdict{Passed: false, Score: 0, Message: msg}, nil
	}

	return parseVerdict(stdout), nil
}

// parseVerdict implements the three-tier stdout contract of spec §4.5:
// structured JSON, then a loose pass/fail string, then a bare numeric score.
func parseVerdict(stdout []byte) Verdict {
	trimmed := strings.TrimSpace(string(stdout))

	// A bare number ("0.85") or a quoted string is also valid JSON, so check
	// the value decodes into an object before treating it as tier one —
	// otherwise a numeric score would silently match here with every field
	// at its zero value instead of falling through to the numeric tier.
	if strings.HasPrefix(trimmed, "{") {
		var structured struct {
			Verdict string  `json:"verdict"`
			Passed  *bool   `json:"passed"`
			Score   float64 `json:"score"`
			Message string  `json:"message"`
		}
		if err := json.Unmarshal([]byte(trimmed), &structured); err == nil {
			passed := structured.Verdict == "AC"
			if structured.Passed != nil {
				passed = passed || *structured.Passed
			}
			score := structured.Score
			if score == 0 && passed {
				score = 1.0
			}
			return Verdict{Passed: passed, Score: score, Message: structured.Message}
		}
	}

	switch strings.ToUpper(trimmed) {
	case "1", "AC", "ACCEPTED", "TRUE":
		return Verdict{Passed: true, Score: 1.0, Message: "accepted by special judge"}
	case "0", "WA", "WRONG", "FALSE":
		return Verdict{Passed: false, Score: 0.0, Message: "rejected by special judge"}
	}

	if score, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Verdict{Passed: score > 0, Score: score, Message: "score: " + trimmed}
	}

	return Verdict{Passed: false, Score: 0.0, Message: "unknown special judge output: " + trimmed}
}

func writeScratchFile(dir, name, content string) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", appErr.Wrapf(err, appErr.SpecialJudgeFailed, "write scratch file %s", name)
	}
	return path, nil
}
