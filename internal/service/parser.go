package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"quizflow/internal/domain"
)

// parsedQuestion is the duck-typed question shape the completion service
// returns. The answer may arrive as a letter ("A".."D"), a numeric index, or
// under a correctAnswer key; everything is normalized to a zero-based index.
type parsedQuestion struct {
	Question      string          `json:"question"`
	Options       []string        `json:"options"`
	Answer        json.RawMessage `json:"answer"`
	CorrectAnswer *int            `json:"correctAnswer"`
	CorrectSnake  *int            `json:"correct_answer"`
	Explanation   string          `json:"explanation"`
}

type parsedQuiz struct {
	Title     string           `json:"title"`
	Questions []parsedQuestion `json:"questions"`
}

// ParseCompletion parses raw completion text as a quiz payload and validates
// it. It accepts either a bare JSON array of questions or an object with a
// questions array (title optional), optionally wrapped in a markdown code
// fence. On any violation the whole response is discarded: no partial repair
// is attempted beyond answer normalization.
func ParseCompletion(raw string) (string, []domain.Question, error) {
	payload := stripCodeFence(raw)
	if payload == "" {
		return "", nil, domain.NewInvalidCompletionShapeError("completion response is empty", nil)
	}

	var title string
	var items []parsedQuestion
	if strings.HasPrefix(payload, "[") {
		if err := json.Unmarshal([]byte(payload), &items); err != nil {
			return "", nil, domain.NewInvalidCompletionShapeError("completion response is not a JSON question array", err)
		}
	} else {
		var quiz parsedQuiz
		if err := json.Unmarshal([]byte(payload), &quiz); err != nil {
			return "", nil, domain.NewInvalidCompletionShapeError("completion response is not valid JSON", err)
		}
		title = strings.TrimSpace(quiz.Title)
		items = quiz.Questions
	}

	if len(items) == 0 {
		return "", nil, domain.NewInvalidCompletionShapeError("completion response contains no questions", nil)
	}

	questions := make([]domain.Question, 0, len(items))
	for i, item := range items {
		index, err := resolveAnswer(item)
		if err != nil {
			return "", nil, domain.NewInvalidCompletionShapeError(fmt.Sprintf("question %d: %v", i+1, err), nil)
		}
		question := domain.Question{
			Text:         strings.TrimSpace(item.Question),
			Options:      item.Options,
			CorrectIndex: index,
			Explanation:  strings.TrimSpace(item.Explanation),
		}
		if err := question.Validate(); err != nil {
			return "", nil, domain.NewInvalidCompletionShapeError(fmt.Sprintf("question %d is invalid", i+1), err)
		}
		questions = append(questions, question)
	}
	return title, questions, nil
}

// resolveAnswer normalizes the answer field to a zero-based option index.
func resolveAnswer(item parsedQuestion) (int, error) {
	if item.CorrectAnswer != nil {
		return *item.CorrectAnswer, nil
	}
	if item.CorrectSnake != nil {
		return *item.CorrectSnake, nil
	}
	if len(item.Answer) == 0 {
		return 0, fmt.Errorf("missing answer")
	}

	var letter string
	if err := json.Unmarshal(item.Answer, &letter); err == nil {
		letter = strings.ToUpper(strings.TrimSpace(letter))
		if len(letter) == 1 && letter[0] >= 'A' && letter[0] <= 'D' {
			return int(letter[0] - 'A'), nil
		}
		return 0, fmt.Errorf("answer %q is not a letter A-D", letter)
	}

	var index int
	if err := json.Unmarshal(item.Answer, &index); err == nil {
		return index, nil
	}
	return 0, fmt.Errorf("answer is neither a letter nor an index")
}

// stripCodeFence removes a surrounding markdown code fence, which some
// models wrap around JSON despite instructions.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
