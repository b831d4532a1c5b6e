package generator

import "fmt"

// QuizSystemPrompt frames the model as an environmental-education quiz
// writer and pins down the output contract.
func QuizSystemPrompt() string {
	return `You are a quiz writer for an environmental-education platform for students.

Write clear, factual multiple-choice questions. Every question has exactly 4 options labeled A through D and exactly one correct answer.

Return ONLY a JSON array, no prose, in this format:
[
  {
    "question": "...",
    "options": {"A": "...", "B": "...", "C": "...", "D": "..."},
    "answer": "A"
  }
]`
}

// BuildQuizPrompt is the per-request prompt: topic and question count.
func BuildQuizPrompt(topic string, numQuestions int) string {
	return fmt.Sprintf(`Create a multiple-choice quiz on the topic: %s.
For each question, provide:
- The question text
- Four options (A, B, C, D)
- The correct answer (A/B/C/D)
Number of questions: %d`, topic, numQuestions)
}
