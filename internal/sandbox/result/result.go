// Package result defines the Sandbox Launcher's raw execution output and
// its classification into harness statuses.
package result

// Status is the harness-level classification of one sandboxed run,
// assigned before any output comparison happens.
type Status string

const (
	StatusSuccess     Status = "success"
	StatusTimedOut    Status = "timed_out"
	StatusMemoryLimit Status = "memory_limit"
	StatusRuntimeErr  Status = "runtime_error"
)

const (
	maxStdoutBytes = 100_000
	maxStderrBytes = 10_000
)

// MaxStdoutBytes and MaxStderrBytes bound captured output, per §5.
func MaxStdoutBytes() int { return maxStdoutBytes }
func MaxStderrBytes() int { return maxStderrBytes }

// RunResult is the raw outcome of one sandboxed execution, before harness
// status classification.
type RunResult struct {
	ExitCode   int
	TimedOut   bool
	Signaled   bool
	Signal     int
	WallTimeMs int64
	CPUTimeMs  int64
	MemoryKB   int64
	Stdout     string
	Stderr     string
}

// TestRecord is the harness's per-case output: the unit the judge consumes.
type TestRecord struct {
	TestID           string `json:"test_id"`
	Status           Status `json:"status"`
	ExitCode         int    `json:"exit_code"`
	ActualOutput     string `json:"actual_output"`
	Stderr           string `json:"stderr,omitempty"`
	ExecutionTimeMs  int64  `json:"execution_time_ms"`
	MemoryUsedKB     int64  `json:"memory_used_kb"`
	Error            string `json:"error,omitempty"`
	InputPreview     string `json:"input,omitempty"`
	ExpectedPreview  string `json:"expected_output,omitempty"`
}

// Classify maps a raw run result to a harness Status per spec §4.2.
func Classify(r RunResult, memoryLimitKB int64) Status {
	switch {
	case r.TimedOut || r.ExitCode == 124 || r.ExitCode == 137:
		return StatusTimedOut
	case r.ExitCode == 139, memoryLimitKB > 0 && r.MemoryKB > memoryLimitKB:
		return StatusMemoryLimit
	case r.ExitCode == 0:
		return StatusSuccess
	default:
		return StatusRuntimeErr
	}
}
