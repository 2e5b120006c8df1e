// Package spec defines the execution specification and resource limits
// passed from the Test Runner down to the Sandbox Launcher.
package spec

// ResourceLimit describes hard limits enforced on one run.
type ResourceLimit struct {
	CPUTimeMs  int64
	WallTimeMs int64
	MemoryKB   int64
	StackKB    int64
	OutputKB   int64
	PIDs       int64
	Files      int64
}

// MountSpec describes a bind mount inside the sandbox, used to expose the
// test's input/workspace files to the isolated child without copying them.
type MountSpec struct {
	Source   string
	Target   string
	ReadOnly bool
}

// RunSpec is the execution specification for one sandboxed invocation of
// the user program against one test case.
type RunSpec struct {
	TestID      string
	WorkDir     string
	Cmd         []string
	Env         []string
	StdinPath   string
	StdoutPath  string
	StderrPath  string
	BindMounts  []MountSpec
	Limits      ResourceLimit
	DisableNet  bool
}
