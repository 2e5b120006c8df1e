package verdict_test

import (
	"context"
	"testing"

	"judgecore/internal/config"
	"judgecore/internal/sandbox/result"
	"judgecore/internal/verdict"
)

func rec(id string, status result.Status, actual string) result.TestRecord {
	return result.TestRecord{
		TestID:       id,
		Status:       status,
		ActualOutput: actual,
	}
}

func TestJudgeSubmissionAllAC(t *testing.T) {
	cfg := config.Default()
	j, err := verdict.New(cfg, t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	records := []result.TestRecord{
		rec("test-1", result.StatusSuccess, "42"),
		rec("test-2", result.StatusSuccess, "7"),
	}
	expected := map[string]string{"test-1": "42", "test-2": "7"}

	res, err := j.JudgeSubmission(context.Background(), verdict.CompileResult{}, records, expected)
	if err != nil {
		t.Fatalf("JudgeSubmission: %v", err)
	}
	if res.FinalVerdict != verdict.AC {
		t.Errorf("FinalVerdict = %s, want AC", res.FinalVerdict)
	}
	if res.TotalScore != 2 || res.MaxScore != 2 {
		t.Errorf("scores = %v/%v, want 2/2", res.TotalScore, res.MaxScore)
	}
	if res.ScorePercentage != 100 {
		t.Errorf("ScorePercentage = %v, want 100", res.ScorePercentage)
	}
}

func TestJudgeSubmissionWeightedPartial(t *testing.T) {
	cfg := config.Default()
	cfg.TestWeights = map[string]float64{"a": 2, "b": 1, "c": 1}
	j, err := verdict.New(cfg, t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	records := []result.TestRecord{
		rec("a", result.StatusSuccess, "x"),
		rec("b", result.StatusSuccess, "wrong"),
		rec("c", result.StatusSuccess, "y"),
	}
	expected := map[string]string{"a": "x", "b": "right", "c": "y"}

	res, err := j.JudgeSubmission(context.Background(), verdict.CompileResult{}, records, expected)
	if err != nil {
		t.Fatalf("JudgeSubmission: %v", err)
	}
	if res.FinalVerdict != verdict.WA {
		t.Errorf("FinalVerdict = %s, want WA", res.FinalVerdict)
	}
	if res.TotalScore != 3 || res.MaxScore != 4 {
		t.Errorf("scores = %v/%v, want 3/4", res.TotalScore, res.MaxScore)
	}
	if res.ScorePercentage != 75 {
		t.Errorf("ScorePercentage = %v, want 75", res.ScorePercentage)
	}
}

func TestFinalVerdictPrecedenceTLEBeforeMLEBeforeRE(t *testing.T) {
	cfg := config.Default()
	j, err := verdict.New(cfg, t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	records := []result.TestRecord{
		rec("1", result.StatusRuntimeErr, ""),
		rec("2", result.StatusMemoryLimit, ""),
		rec("3", result.StatusTimedOut, ""),
	}
	res, err := j.JudgeSubmission(context.Background(), verdict.CompileResult{}, records, nil)
	if err != nil {
		t.Fatalf("JudgeSubmission: %v", err)
	}
	if res.FinalVerdict != verdict.TLE {
		t.Errorf("FinalVerdict = %s, want TLE (highest precedence present)", res.FinalVerdict)
	}
}

func TestFinalVerdictMLEWithoutTLE(t *testing.T) {
	cfg := config.Default()
	j, err := verdict.New(cfg, t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	records := []result.TestRecord{
		rec("1", result.StatusRuntimeErr, ""),
		rec("2", result.StatusMemoryLimit, ""),
	}
	res, err := j.JudgeSubmission(context.Background(), verdict.CompileResult{}, records, nil)
	if err != nil {
		t.Fatalf("JudgeSubmission: %v", err)
	}
	if res.FinalVerdict != verdict.MLE {
		t.Errorf("FinalVerdict = %s, want MLE", res.FinalVerdict)
	}
}

func TestCompilationFailureYieldsCEWithNoTestCases(t *testing.T) {
	cfg := config.Default()
	j, err := verdict.New(cfg, t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	compile := verdict.CompileResult{Present: true, Success: false, Stderr: "syntax error"}
	res, err := j.JudgeSubmission(context.Background(), compile, []result.TestRecord{rec("1", result.StatusSuccess, "x")}, nil)
	if err != nil {
		t.Fatalf("JudgeSubmission: %v", err)
	}
	if res.FinalVerdict != verdict.CE {
		t.Errorf("FinalVerdict = %s, want CE", res.FinalVerdict)
	}
	if len(res.TestVerdicts) != 0 {
		t.Errorf("expected no test cases executed on CE, got %d", len(res.TestVerdicts))
	}
	if res.CompilationMessage != "syntax error" {
		t.Errorf("CompilationMessage = %q, want %q", res.CompilationMessage, "syntax error")
	}
}

func TestCompilationSkippedProceedsToTestCases(t *testing.T) {
	cfg := config.Default()
	j, err := verdict.New(cfg, t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	compile := verdict.CompileResult{Present: true, Skipped: true, Success: false}
	res, err := j.JudgeSubmission(context.Background(), compile, []result.TestRecord{rec("1", result.StatusSuccess, "x")}, map[string]string{"1": "x"})
	if err != nil {
		t.Fatalf("JudgeSubmission: %v", err)
	}
	if res.FinalVerdict != verdict.AC {
		t.Errorf("FinalVerdict = %s, want AC (compile skipped should not block)", res.FinalVerdict)
	}
}

func TestCompilationSuccessSetsStatus(t *testing.T) {
	cfg := config.Default()
	j, err := verdict.New(cfg, t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	compile := verdict.CompileResult{Present: true, Success: true}
	res, err := j.JudgeSubmission(context.Background(), compile, []result.TestRecord{rec("1", result.StatusSuccess, "x")}, map[string]string{"1": "x"})
	if err != nil {
		t.Fatalf("JudgeSubmission: %v", err)
	}
	if res.CompilationStatus != "success" {
		t.Errorf("CompilationStatus = %q, want success", res.CompilationStatus)
	}
}
