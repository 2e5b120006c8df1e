package specialjudge

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFakeJudge(t *testing.T, dir, script string) string {
	t.Helper()
	path := filepath.Join(dir, "judge.sh")
	body := "#!/bin/sh\n" + script
	if err := os.WriteFile(path, []byte(body), 0755); err != nil {
		t.Fatalf("write fake judge: %v", err)
	}
	return path
}

func TestParseVerdictStructuredJSON(t *testing.T) {
	v := parseVerdict([]byte(`{"verdict":"AC","score":1.0,"message":"ok"}`))
	if !v.Passed || v.Score != 1.0 || v.Message != "ok" {
		t.Errorf("unexpected verdict: %+v", v)
	}
}

func TestParseVerdictStructuredPassedFlag(t *testing.T) {
	v := parseVerdict([]byte(`{"passed":true,"score":0.5,"message":"partial"}`))
	if !v.Passed || v.Score != 0.5 {
		t.Errorf("unexpected verdict: %+v", v)
	}
}

func TestParseVerdictLooseString(t *testing.T) {
	cases := map[string]bool{"AC": true, "1": true, "true": true, "WA": false, "0": false, "false": false}
	for input, want := range cases {
		v := parseVerdict([]byte(input))
		if v.Passed != want {
			t.Errorf("parseVerdict(%q).Passed = %v, want %v", input, v.Passed, want)
		}
	}
}

func TestParseVerdictNumericScore(t *testing.T) {
	v := parseVerdict([]byte("0.75"))
	if !v.Passed || v.Score != 0.75 {
		t.Errorf("unexpected verdict: %+v", v)
	}
	v = parseVerdict([]byte("0"))
	if v.Passed || v.Score != 0 {
		t.Errorf("unexpected verdict: %+v", v)
	}
}

func TestParseVerdictUnknownOutputRejected(t *testing.T) {
	v := parseVerdict([]byte("garbage"))
	if v.Passed {
		t.Errorf("expected rejection of unparseable output, got %+v", v)
	}
}

func TestInvokerRunWritesScratchFilesAndPasses(t *testing.T) {
	dir := t.TempDir()
	judgePath := writeFakeJudge(t, dir, `
in="$1"; exp="$2"; act="$3"
if [ "$(cat "$exp")" = "$(cat "$act")" ]; then
  echo '{"verdict":"AC","score":1.0,"message":"match"}'
else
  echo '{"verdict":"WA","score":0.0,"message":"mismatch"}'
fi
`)
	inv, err := New(judgePath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	v, err := inv.Run(context.Background(), t.TempDir(), "1 2", "3", "3", "test-1")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !v.Passed {
		t.Errorf("expected pass, got %+v", v)
	}
}

func TestInvokerRunNonZeroExitDoesNotError(t *testing.T) {
	dir := t.TempDir()
	judgePath := writeFakeJudge(t, dir, "echo 'boom' 1>&2\nexit 1\n")
	inv, err := New(judgePath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	v, err := inv.Run(context.Background(), t.TempDir(), "", "", "", "test-1")
	if err != nil {
		t.Fatalf("Run should not error on judge failure: %v", err)
	}
	if v.Passed {
		t.Errorf("expected failing verdict, got %+v", v)
	}
}

func TestNewRejectsMissingJudge(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected error for missing judge")
	}
}

func TestNewRejectsNonExecutable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "judge")
	if err := os.WriteFile(path, []byte("not a script"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := New(path); err == nil {
		t.Fatalf("expected error for non-executable judge")
	}
}
