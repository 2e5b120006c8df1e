// Command harness runs a prepared workspace's executable against a suite of
// test cases under bounded resources and emits a harness-output document
// (spec §4.2, §4.3).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/shlex"
	"go.uber.org/zap"

	"judgecore/internal/config"
	"judgecore/internal/document"
	"judgecore/internal/sandbox/engine"
	"judgecore/internal/sandbox/runner"
	"judgecore/internal/sandbox/security"
	applog "judgecore/pkg/utils/logger"
)

type harnessOutput struct {
	TestResults  []any `json:"test_results"`
	TotalTimeMs  int64 `json:"total_time_ms"`
	MaxMemoryKB  int64 `json:"max_memory_kb"`
	StoppedEarly bool  `json:"stopped_early"`
}

func main() {
	testCasesPath := flag.String("test-cases", "", "path to the test-case document (required)")
	problemConfigPath := flag.String("problem-config", "", "path to a problem-config document (optional, supplies default time/memory limits)")
	timeLimitMs := flag.Int64("time-limit-ms", 5000, "global per-case wall-clock limit in milliseconds")
	memoryLimitKB := flag.Int64("memory-limit-kb", 262144, "global per-case memory ceiling in kilobytes")
	workDir := flag.String("workdir", ".", "working directory the command runs in")
	scratchDir := flag.String("scratch-dir", os.TempDir(), "directory for per-case stdin/stdout/stderr scratch files")
	outputPath := flag.String("output", "", "output file path (default: stdout)")
	sandboxInitPath := flag.String("sandbox-init", "sandbox-init", "path to the sandbox-init helper binary")
	enableNamespaces := flag.Bool("enable-namespaces", false, "enable mount/pid/uts/ipc/net namespace isolation")
	enableSeccomp := flag.Bool("enable-seccomp", false, "enable seccomp syscall filtering")
	seccompProfile := flag.String("seccomp-profile", "", "path to a JSON seccomp profile file passed to sandbox-init")
	cmdTemplate := flag.String("cmd", "", "shell-syntax command to run, as an alternative to passing it positionally")
	flag.Parse()

	if err := applog.Init(applog.Config{Service: "harness"}); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	defer applog.Sync()

	cmd, err := resolveCmd(*cmdTemplate, flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if err := run(runConfig{
		testCasesPath:     *testCasesPath,
		problemConfigPath: *problemConfigPath,
		timeLimitMs:       *timeLimitMs,
		memoryLimitKB:     *memoryLimitKB,
		workDir:           *workDir,
		scratchDir:        *scratchDir,
		outputPath:        *outputPath,
		sandboxInitPath:   *sandboxInitPath,
		enableNamespaces:  *enableNamespaces,
		enableSeccomp:     *enableSeccomp,
		seccompProfile:    *seccompProfile,
		cmd:               cmd,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// resolveCmd prefers a positional command vector; when none is given it
// falls back to splitting a shell-syntax --cmd string, the same way the
// reference sandbox expands a language's command template before exec
// (github.com/google/shlex).
func resolveCmd(cmdTemplate string, positional []string) ([]string, error) {
	if len(positional) > 0 {
		return positional, nil
	}
	if cmdTemplate == "" {
		return nil, fmt.Errorf("a command to run is required: pass it after the flags, or via --cmd")
	}
	fields, err := shlex.Split(cmdTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse --cmd: %w", err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("--cmd is empty after parsing")
	}
	return fields, nil
}

type runConfig struct {
	testCasesPath     string
	problemConfigPath string
	timeLimitMs       int64
	memoryLimitKB     int64
	workDir           string
	scratchDir        string
	outputPath        string
	sandboxInitPath   string
	enableNamespaces  bool
	enableSeccomp     bool
	seccompProfile    string
	cmd               []string
}

func run(rc runConfig) error {
	if rc.testCasesPath == "" {
		return fmt.Errorf("--test-cases is required")
	}
	if len(rc.cmd) == 0 {
		return fmt.Errorf("a command to run is required (pass it after the flags)")
	}

	cases, err := document.LoadTestCases(rc.testCasesPath)
	if err != nil {
		return fmt.Errorf("load test cases: %w", err)
	}

	timeLimitMs, memoryLimitKB := rc.timeLimitMs, rc.memoryLimitKB
	if rc.problemConfigPath != "" {
		cfg, err := config.Load(rc.problemConfigPath)
		if err != nil {
			return fmt.Errorf("load problem config: %w", err)
		}
		timeLimitMs, memoryLimitKB = cfg.TimeLimitMs, cfg.MemoryLimitKB
	}

	if err := os.MkdirAll(rc.scratchDir, 0755); err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}

	eng, err := engine.NewEngine(engine.Config{
		HelperPath:       rc.sandboxInitPath,
		EnableNamespaces: rc.enableNamespaces,
		EnableSeccomp:    rc.enableSeccomp,
	})
	if err != nil {
		return fmt.Errorf("init sandbox engine: %w", err)
	}

	r := runner.New(eng)
	req := runner.Request{
		Cmd:                 rc.cmd,
		WorkDir:             rc.workDir,
		ScratchDir:          rc.scratchDir,
		GlobalTimeLimitMs:   timeLimitMs,
		GlobalMemoryLimitKB: memoryLimitKB,
		Isolation: security.IsolationProfile{
			SeccompProfile: rc.seccompProfile,
			DisableNetwork: true,
			EnableNS:       rc.enableNamespaces,
		},
	}

	summary, err := r.Run(context.Background(), req, cases)
	if err != nil {
		applog.Error("test run failed", zap.Error(err))
		return fmt.Errorf("run test cases: %w", err)
	}

	results := make([]any, len(summary.Records))
	for i, rec := range summary.Records {
		results[i] = rec
	}
	output := harnessOutput{
		TestResults:  results,
		TotalTimeMs:  summary.TotalElapsedMs,
		MaxMemoryKB:  summary.MaxMemoryKB,
		StoppedEarly: summary.StoppedEarly,
	}

	return writeOutput(rc.outputPath, output)
}

func writeOutput(path string, output harnessOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	if path == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, data, 0644)
}
