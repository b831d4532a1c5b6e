package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ecolearn/backend/internal/models"
)

// GeneratedQuestion mirrors the JSON shape the model is asked to emit.
type GeneratedQuestion struct {
	Question string            `json:"question"`
	Options  map[string]string `json:"options"`
	Answer   string            `json:"answer"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

var optionOrder = []string{"A", "B", "C", "D"}

// ParseQuiz decodes a model response into stored question form: options
// become an ordered slice and the answer letter becomes an index.
func ParseQuiz(responseBody string) ([]models.Question, error) {
	cleaned := stripCodeFences(responseBody)

	var generated []GeneratedQuestion
	if err := json.Unmarshal([]byte(cleaned), &generated); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateQuestions(generated); err != nil {
		return nil, err
	}

	questions := make([]models.Question, 0, len(generated))
	for _, g := range generated {
		options := make([]string, 0, len(optionOrder))
		for _, id := range optionOrder {
			options = append(options, g.Options[id])
		}
		questions = append(questions, models.Question{
			Question: g.Question,
			Options:  options,
			Answer:   answerIndex(g.Answer),
		})
	}
	return questions, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

func validateQuestions(questions []GeneratedQuestion) error {
	var errs []string

	if len(questions) == 0 {
		errs = append(errs, "no questions in response")
	}

	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty question text", i+1))
		}
		if len(q.Options) != len(optionOrder) {
			errs = append(errs, fmt.Sprintf("question %d: expected %d options, got %d", i+1, len(optionOrder), len(q.Options)))
		}
		for _, id := range optionOrder {
			if strings.TrimSpace(q.Options[id]) == "" {
				errs = append(errs, fmt.Sprintf("question %d: missing option %s", i+1, id))
			}
		}
		if answerIndex(q.Answer) < 0 {
			errs = append(errs, fmt.Sprintf("question %d: invalid answer %q", i+1, q.Answer))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func answerIndex(letter string) int {
	for i, id := range optionOrder {
		if strings.EqualFold(letter, id) {
			return i
		}
	}
	return -1
}
