// Command specialjudge-exact implements the exact-match special judge
// contract of spec §4.5: it receives (input, expected, actual, test_id) as
// file-path arguments and reports its verdict as JSON on stdout.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type verdictOutput struct {
	Verdict string  `json:"verdict"`
	Passed  bool    `json:"passed"`
	Score   float64 `json:"score"`
	Message string  `json:"message"`
}

func main() {
	if len(os.Args) < 4 {
		emit(verdictOutput{Verdict: "IE", Score: 0, Message: "usage: specialjudge-exact <input> <expected> <actual> [test_id]"})
		os.Exit(1)
	}

	expectedPath, actualPath := os.Args[2], os.Args[3]

	expectedRaw, err := os.ReadFile(expectedPath)
	if err != nil {
		emit(verdictOutput{Verdict: "IE", Message: fmt.Sprintf("judge error: %v", err)})
		os.Exit(1)
	}
	actualRaw, err := os.ReadFile(actualPath)
	if err != nil {
		emit(verdictOutput{Verdict: "IE", Message: fmt.Sprintf("judge error: %v", err)})
		os.Exit(1)
	}

	expected := normalize(string(expectedRaw))
	actual := normalize(string(actualRaw))

	if expected == actual {
		emit(verdictOutput{Verdict: "AC", Passed: true, Score: 1.0, Message: "output matches expected"})
		return
	}

	expLines := strings.Split(expected, "\n")
	actLines := strings.Split(actual, "\n")
	message := "output differs"
	if len(expLines) != len(actLines) {
		message = fmt.Sprintf("line count mismatch: expected %d, got %d", len(expLines), len(actLines))
	} else {
		for i := range expLines {
			if expLines[i] != actLines[i] {
				message = fmt.Sprintf("difference at line %d", i+1)
				break
			}
		}
	}
	emit(verdictOutput{Verdict: "WA", Passed: false, Score: 0.0, Message: message})
}

// normalize strips trailing whitespace per line and trailing blank lines.
func normalize(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func emit(v verdictOutput) {
	enc := json.NewEncoder(os.Stdout)
	_ = enc.Encode(v)
}
