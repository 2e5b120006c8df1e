package main

import (
	"reflect"
	"testing"
)

func TestResolveCmdPrefersPositional(t *testing.T) {
	cmd, err := resolveCmd("ignored --flag", []string{"/bin/echo", "hi"})
	if err != nil {
		t.Fatalf("resolveCmd: %v", err)
	}
	if !reflect.DeepEqual(cmd, []string{"/bin/echo", "hi"}) {
		t.Errorf("cmd = %v, want positional args", cmd)
	}
}

func TestResolveCmdFallsBackToTemplate(t *testing.T) {
	cmd, err := resolveCmd(`python3 "/tmp/solution.py" --fast`, nil)
	if err != nil {
		t.Fatalf("resolveCmd: %v", err)
	}
	want := []string{"python3", "/tmp/solution.py", "--fast"}
	if !reflect.DeepEqual(cmd, want) {
		t.Errorf("cmd = %v, want %v", cmd, want)
	}
}

func TestResolveCmdRequiresSomething(t *testing.T) {
	if _, err := resolveCmd("", nil); err == nil {
		t.Errorf("expected an error when neither positional args nor --cmd are given")
	}
}
