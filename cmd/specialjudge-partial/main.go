// Command specialjudge-partial awards partial credit based on the fraction
// of expected lines the contestant's output matches exactly, penalizing
// extra lines (spec §4.5).
package main

import (
	"bufio"
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
		emit(verdictOutput{Verdict: "IE", Message: "usage: specialjudge-partial <input> <expected> <actual> [test_id]"})
		os.Exit(1)
	}

	expectedLines, err := readNonEmptyLines(os.Args[2])
	if err != nil {
		emit(verdictOutput{Verdict: "IE", Message: fmt.Sprintf("judge error: %v", err)})
		os.Exit(1)
	}
	actualLines, err := readNonEmptyLines(os.Args[3])
	if err != nil {
		emit(verdictOutput{Verdict: "IE", Message: fmt.Sprintf("judge error: %v", err)})
		os.Exit(1)
	}

	if len(expectedLines) == 0 {
		if len(actualLines) == 0 {
			emit(verdictOutput{Verdict: "AC", Passed: true, Score: 1.0, Message: "both empty (correct)"})
		} else {
			emit(verdictOutput{Verdict: "WA", Message: fmt.Sprintf("expected empty output, got %d lines", len(actualLines))})
		}
		return
	}

	for len(actualLines) < len(expectedLines) {
		actualLines = append(actualLines, "")
	}

	correct := 0
	var wrongIndices []int
	for i := range expectedLines {
		if expectedLines[i] == actualLines[i] {
			correct++
		} else {
			wrongIndices = append(wrongIndices, i+1)
		}
	}

	total := len(expectedLines)
	score := float64(correct) / float64(total)

	extra := len(actualLines) - total
	if extra > 0 {
		score -= 0.1 * float64(extra)
		if score < 0 {
			score = 0
		}
	}

	var verdict, message string
	switch {
	case correct == total && extra == 0:
		verdict = "AC"
		message = fmt.Sprintf("all %d answers correct", total)
	case score > 0:
		verdict = "WA"
		if len(wrongIndices) <= 5 {
			message = fmt.Sprintf("%d/%d correct. wrong at: %v", correct, total, wrongIndices)
		} else {
			message = fmt.Sprintf("%d/%d correct (%.1f%%)", correct, total, score*100)
		}
	default:
		verdict = "WA"
		message = "no correct answers"
	}

	emit(verdictOutput{Verdict: verdict, Passed: verdict == "AC", Score: round4(score), Message: message})
}

func readNonEmptyLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func round4(v float64) float64 {
	return float64(int(v*10000+0.5)) / 10000
}

func emit(v verdictOutput) {
	enc := json.NewEncoder(os.Stdout)
	_ = enc.Encode(v)
}
