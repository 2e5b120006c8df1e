// Command judge evaluates a harness-output document against expected
// outputs and a problem configuration, producing a JudgeResult document
// (spec §4.6, §6).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"judgecore/internal/config"
	"judgecore/internal/document"
	"judgecore/internal/verdict"
	applog "judgecore/pkg/utils/logger"
)

func main() {
	expectedPath := flag.String("expected", "", "path to the expected-outputs document (required)")
	specialJudgePath := flag.String("special-judge", "", "path to a special-judge executable (implies comparison=special)")
	problemConfigPath := flag.String("problem-config", "", "path to a problem-config document (overrides the other flags when set)")
	outputPath := flag.String("output", "", "output file path (default: stdout)")
	comparisonMode := flag.String("comparison", "exact", "comparison policy: exact|token|float|special")
	tolerance := flag.Float64("tolerance", 1e-6, "float comparison tolerance")
	caseInsensitive := flag.Bool("case-insensitive", false, "fold case before comparing (exact/token modes)")
	flag.Parse()

	if err := applog.Init(applog.Config{Service: "judge"}); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	defer applog.Sync()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: judge [flags] <harness-output-path>")
		os.Exit(1)
	}

	result, err := run(runConfig{
		harnessOutputPath: flag.Arg(0),
		expectedPath:      *expectedPath,
		specialJudgePath:  *specialJudgePath,
		problemConfigPath: *problemConfigPath,
		outputPath:        *outputPath,
		comparisonMode:    *comparisonMode,
		tolerance:         *tolerance,
		caseInsensitive:   *caseInsensitive,
	})
	if err != nil {
		applog.Error("judge failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if result.FinalVerdict != verdict.AC {
		os.Exit(1)
	}
}

type runConfig struct {
	harnessOutputPath string
	expectedPath      string
	specialJudgePath  string
	problemConfigPath string
	outputPath        string
	comparisonMode    string
	tolerance         float64
	caseInsensitive   bool
}

func run(rc runConfig) (verdict.JudgeResult, error) {
	if rc.expectedPath == "" {
		return verdict.JudgeResult{}, fmt.Errorf("--expected is required")
	}

	records, err := document.LoadHarnessOutput(rc.harnessOutputPath)
	if err != nil {
		return verdict.JudgeResult{}, fmt.Errorf("load harness output: %w", err)
	}

	expected, err := document.LoadExpectedOutputs(rc.expectedPath)
	if err != nil {
		return verdict.JudgeResult{}, fmt.Errorf("load expected outputs: %w", err)
	}

	cfg, err := resolveConfig(rc)
	if err != nil {
		return verdict.JudgeResult{}, err
	}

	scratchDir, err := os.MkdirTemp("", "judge-*")
	if err != nil {
		return verdict.JudgeResult{}, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratchDir)

	j, err := verdict.New(cfg, scratchDir)
	if err != nil {
		return verdict.JudgeResult{}, fmt.Errorf("construct judge: %w", err)
	}

	res, err := j.JudgeSubmission(context.Background(), verdict.CompileResult{}, records, expected)
	if err != nil {
		return verdict.JudgeResult{}, fmt.Errorf("judge submission: %w", err)
	}

	if err := writeOutput(rc.outputPath, res); err != nil {
		return verdict.JudgeResult{}, err
	}
	return res, nil
}

// resolveConfig builds a ProblemConfig from --problem-config when given,
// otherwise from the individual CLI flags, mirroring the reference judge's
// fallback construction when no problem-config document is supplied.
func resolveConfig(rc runConfig) (config.ProblemConfig, error) {
	if rc.problemConfigPath != "" {
		cfg, err := config.Load(rc.problemConfigPath)
		if err != nil {
			return config.ProblemConfig{}, fmt.Errorf("load problem config: %w", err)
		}
		return cfg, nil
	}

	cfg := config.Default()
	cfg.ComparisonMode = config.ComparisonMode(rc.comparisonMode)
	cfg.FloatTolerance = rc.tolerance
	cfg.CaseSensitive = !rc.caseInsensitive
	cfg.SpecialJudgePath = rc.specialJudgePath
	if rc.specialJudgePath != "" {
		cfg.ComparisonMode = config.ComparisonSpecial
	}

	if err := cfg.Validate(); err != nil {
		return config.ProblemConfig{}, err
	}
	return cfg, nil
}

func writeOutput(path string, res verdict.JudgeResult) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	if path == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, data, 0644)
}
