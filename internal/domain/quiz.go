package domain

import (
	"strings"
	"time"
)

// OptionCount is the number of options every multiple-choice question carries.
const OptionCount = 4

// Difficulty levels accepted from callers.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question represents one multiple-choice question. CorrectIndex is the
// zero-based index into Options; letter answers from the completion service
// are normalized to it before a Question is constructed.
type Question struct {
	Text         string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctAnswer"`
	Explanation  string   `json:"explanation,omitempty"`
}

// Validate validates the question
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return NewInvalidInputError("question text is required")
	}
	if len(q.Options) != OptionCount {
		return NewInvalidInputError("question must have exactly 4 options")
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= OptionCount {
		return NewInvalidInputError("correct answer index out of range")
	}
	return nil
}

// Quiz represents a generated quiz. Quizzes are value objects: a new Quiz
// replaces, rather than updates, a prior one in caller-held state.
type Quiz struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Questions  []Question `json:"questions"`
	CreatedAt  time.Time  `json:"createdAt"`
	SourceName string     `json:"pdfName"`
}

// Validate validates the quiz
func (z *Quiz) Validate() error {
	if z.ID == "" {
		return NewInvalidInputError("quiz ID is required")
	}
	if z.Title == "" {
		return NewInvalidInputError("quiz title is required")
	}
	if len(z.Questions) == 0 {
		return NewInvalidInputError("quiz must have at least one question")
	}
	for i := range z.Questions {
		if err := z.Questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
