package generator

import (
	"strings"
	"testing"
)

func TestQuizSystemPrompt(t *testing.T) {
	prompt := QuizSystemPrompt()

	for _, want := range []string{"JSON array", "4 options", "A through D"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}

func TestBuildQuizPrompt(t *testing.T) {
	prompt := BuildQuizPrompt("water conservation", 7)

	if !strings.Contains(prompt, "water conservation") {
		t.Error("prompt missing topic")
	}
	if !strings.Contains(prompt, "Number of questions: 7") {
		t.Error("prompt missing question count")
	}
	if !strings.Contains(prompt, "A, B, C, D") {
		t.Error("prompt missing option labels")
	}
}
