package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadNonEmptyLinesSkipsBlanks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(path, []byte("a\n\n b \n\nc"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines, err := readNonEmptyLines(path)
	if err != nil {
		t.Fatalf("readNonEmptyLines: %v", err)
	}
	want := []string{"a", "b", "c"}
	if len(lines) != len(want) {
		t.Fatalf("got %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRound4(t *testing.T) {
	if got := round4(0.333333333); got != 0.3333 {
		t.Errorf("round4() = %v, want 0.3333", got)
	}
}
