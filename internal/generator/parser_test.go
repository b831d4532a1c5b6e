package generator

import (
	"encoding/json"
	"strings"
	"testing"
)

func validQuizJSON(count int) string {
	generated := make([]GeneratedQuestion, count)
	answers := []string{"A", "B", "C", "D"}

	for i := 0; i < count; i++ {
		generated[i] = GeneratedQuestion{
			Question: "Which of these helps reduce plastic waste?",
			Options: map[string]string{
				"A": "Reusable bags",
				"B": "Single-use bottles",
				"C": "Extra packaging",
				"D": "Burning trash",
			},
			Answer: answers[i%4],
		}
	}

	data, _ := json.Marshal(generated)
	return string(data)
}

func TestParseQuiz_ValidJSON(t *testing.T) {
	questions, err := ParseQuiz(validQuizJSON(5))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(questions))
	}
	for i, q := range questions {
		if len(q.Options) != 4 {
			t.Errorf("question %d: expected 4 options, got %d", i+1, len(q.Options))
		}
		if q.Answer < 0 || q.Answer > 3 {
			t.Errorf("question %d: answer index %d out of range", i+1, q.Answer)
		}
	}
}

func TestParseQuiz_OptionOrderAndAnswerIndex(t *testing.T) {
	input := `[{
		"question": "Which gas do plants absorb?",
		"options": {"D": "Helium", "B": "Carbon dioxide", "A": "Oxygen", "C": "Nitrogen"},
		"answer": "B"
	}]`

	questions, err := ParseQuiz(input)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	want := []string{"Oxygen", "Carbon dioxide", "Nitrogen", "Helium"}
	for i, opt := range questions[0].Options {
		if opt != want[i] {
			t.Errorf("option %d = %q, want %q", i, opt, want[i])
		}
	}
	if questions[0].Answer != 1 {
		t.Errorf("expected answer index 1 for letter B, got %d", questions[0].Answer)
	}
}

func TestParseQuiz_MarkdownFences(t *testing.T) {
	input := "```json\n" + validQuizJSON(3) + "\n```"

	questions, err := ParseQuiz(input)
	if err != nil {
		t.Fatalf("expected no error with markdown fences, got: %v", err)
	}
	if len(questions) != 3 {
		t.Errorf("expected 3 questions, got %d", len(questions))
	}
}

func TestParseQuiz_LowercaseAnswer(t *testing.T) {
	input := `[{
		"question": "Which is a renewable energy source?",
		"options": {"A": "Coal", "B": "Oil", "C": "Wind", "D": "Gas"},
		"answer": "c"
	}]`

	questions, err := ParseQuiz(input)
	if err != nil {
		t.Fatalf("expected case-insensitive answer to parse, got: %v", err)
	}
	if questions[0].Answer != 2 {
		t.Errorf("expected answer index 2, got %d", questions[0].Answer)
	}
}

func TestParseQuiz_InvalidAnswerLetter(t *testing.T) {
	input := `[{
		"question": "Which is a renewable energy source?",
		"options": {"A": "Coal", "B": "Oil", "C": "Wind", "D": "Gas"},
		"answer": "E"
	}]`

	_, err := ParseQuiz(input)
	if err == nil {
		t.Fatal("expected validation error for invalid answer letter")
	}

	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got: %T", err)
	}
	found := false
	for _, e := range ve.Errors {
		if strings.Contains(e, "invalid answer") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected error about invalid answer, got: %v", ve.Errors)
	}
}

func TestParseQuiz_MissingOption(t *testing.T) {
	input := `[{
		"question": "Which is a renewable energy source?",
		"options": {"A": "Coal", "B": "Oil", "C": "Wind"},
		"answer": "C"
	}]`

	_, err := ParseQuiz(input)
	if err == nil {
		t.Fatal("expected validation error for missing option")
	}

	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got: %T", err)
	}
	found := false
	for _, e := range ve.Errors {
		if strings.Contains(e, "missing option D") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected error about missing option D, got: %v", ve.Errors)
	}
}

func TestParseQuiz_EmptyArray(t *testing.T) {
	_, err := ParseQuiz("[]")
	if err == nil {
		t.Fatal("expected validation error for empty question list")
	}
}

func TestParseQuiz_MalformedJSON(t *testing.T) {
	_, err := ParseQuiz("not json at all")
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}

	// Should be a parse error, not a ValidationError.
	if _, ok := err.(*ValidationError); ok {
		t.Fatal("expected parse error, not ValidationError")
	}
}
