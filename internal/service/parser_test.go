package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizflow/internal/domain"
)

const validQuestionArray = `[
	{
		"question": "What is supervised learning?",
		"options": ["Learning with labels", "Learning without labels", "Learning by reward", "Learning by transfer"],
		"answer": "A",
		"explanation": "It uses labeled training data."
	},
	{
		"question": "What inspired neural networks?",
		"options": ["File systems", "Database indexes", "Biological neurons", "Quantum mechanics"],
		"answer": "c"
	}
]`

func TestParseCompletion_BareArray(t *testing.T) {
	title, questions, err := ParseCompletion(validQuestionArray)
	require.NoError(t, err)
	assert.Empty(t, title)
	require.Len(t, questions, 2)

	assert.Equal(t, "What is supervised learning?", questions[0].Text)
	assert.Equal(t, 0, questions[0].CorrectIndex)
	assert.Equal(t, "It uses labeled training data.", questions[0].Explanation)

	// Lowercase letters normalize too.
	assert.Equal(t, 2, questions[1].CorrectIndex)
}

func TestParseCompletion_ObjectWithTitle(t *testing.T) {
	raw := `{
		"title": "Machine Learning Basics",
		"questions": [
			{
				"question": "Which learning type uses rewards?",
				"options": ["Supervised", "Unsupervised", "Reinforcement", "Transfer"],
				"correctAnswer": 2
			}
		]
	}`

	title, questions, err := ParseCompletion(raw)
	require.NoError(t, err)
	assert.Equal(t, "Machine Learning Basics", title)
	require.Len(t, questions, 1)
	assert.Equal(t, 2, questions[0].CorrectIndex)
}

func TestParseCompletion_NumericAnswer(t *testing.T) {
	raw := `[{"question": "Pick the third option.", "options": ["a", "b", "c", "d"], "answer": 2}]`

	_, questions, err := ParseCompletion(raw)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, 2, questions[0].CorrectIndex)
}

func TestParseCompletion_SnakeCaseAnswerKey(t *testing.T) {
	raw := `[{"question": "Pick the last option.", "options": ["a", "b", "c", "d"], "correct_answer": 3}]`

	_, questions, err := ParseCompletion(raw)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, 3, questions[0].CorrectIndex)
}

func TestParseCompletion_CodeFence(t *testing.T) {
	fenced := "```json\n" + validQuestionArray + "\n```"

	_, questions, err := ParseCompletion(fenced)
	require.NoError(t, err)
	assert.Len(t, questions, 2)
}

func TestParseCompletion_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty response", ""},
		{"whitespace only", "   \n  "},
		{"not json", "I could not generate a quiz for this document."},
		{"broken array", `[{"question": "q"`},
		{"empty array", `[]`},
		{"object without questions", `{"title": "Empty"}`},
		{"missing answer", `[{"question": "q?", "options": ["a", "b", "c", "d"]}]`},
		{"letter out of range", `[{"question": "q?", "options": ["a", "b", "c", "d"], "answer": "E"}]`},
		{"index out of range", `[{"question": "q?", "options": ["a", "b", "c", "d"], "correctAnswer": 7}]`},
		{"negative index", `[{"question": "q?", "options": ["a", "b", "c", "d"], "answer": -1}]`},
		{"wrong option count", `[{"question": "q?", "options": ["a", "b", "c"], "answer": "A"}]`},
		{"blank question text", `[{"question": "  ", "options": ["a", "b", "c", "d"], "answer": "A"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, questions, err := ParseCompletion(tt.raw)
			require.Error(t, err)
			assert.Equal(t, domain.ErrInvalidCompletionShape, domain.CodeOf(err))
			assert.Empty(t, title)
			assert.Nil(t, questions)
		})
	}
}

func TestParseCompletion_DiscardsWholeResponseOnOneBadQuestion(t *testing.T) {
	raw := `[
		{"question": "Good question?", "options": ["a", "b", "c", "d"], "answer": "A"},
		{"question": "Bad question?", "options": ["a", "b"], "answer": "A"}
	]`

	_, questions, err := ParseCompletion(raw)
	require.Error(t, err)
	assert.Nil(t, questions)
	assert.Equal(t, domain.ErrInvalidCompletionShape, domain.CodeOf(err))
}
