package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptBuilder_Build(t *testing.T) {
	builder := PromptBuilder{CharBudget: 2500}

	t.Run("Deterministic", func(t *testing.T) {
		first := builder.Build("Some document text about machine learning.", 4, "")
		second := builder.Build("Some document text about machine learning.", 4, "")
		assert.Equal(t, first, second)
	})

	t.Run("EmbedsTextAndCount", func(t *testing.T) {
		prompt := builder.Build("Some document text about machine learning.", 5, "")
		assert.Contains(t, prompt.User, "Some document text about machine learning.")
		assert.Contains(t, prompt.User, "create a 5-question multiple choice quiz")
		assert.Contains(t, prompt.User, "Ensure exactly 5 questions.")
		assert.NotContains(t, prompt.User, continuationMarker)
	})

	t.Run("DifficultyLine", func(t *testing.T) {
		withDifficulty := builder.Build("text", 4, "hard")
		assert.Contains(t, withDifficulty.User, "Difficulty level: hard.")

		withoutDifficulty := builder.Build("text", 4, "")
		assert.NotContains(t, withoutDifficulty.User, "Difficulty level")
	})
}

func TestPromptBuilder_Truncation(t *testing.T) {
	builder := PromptBuilder{CharBudget: 50}
	text := strings.Repeat("abcdefghij", 10)

	prompt := builder.Build(text, 4, "")
	assert.Contains(t, prompt.User, text[:50]+continuationMarker)
	assert.NotContains(t, prompt.User, text[:51])

	t.Run("AtBudgetIsUntouched", func(t *testing.T) {
		exact := builder.Build(text[:50], 4, "")
		assert.Contains(t, exact.User, text[:50])
		assert.NotContains(t, exact.User, continuationMarker)
	})

	t.Run("ZeroBudgetDisablesTruncation", func(t *testing.T) {
		unbounded := PromptBuilder{}.Build(text, 4, "")
		assert.Contains(t, unbounded.User, text)
		assert.NotContains(t, unbounded.User, continuationMarker)
	})
}

func TestPrompt_Messages(t *testing.T) {
	prompt := PromptBuilder{CharBudget: 2500}.Build("document text", 4, "")
	messages := prompt.Messages()

	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, systemInstruction, messages[0].Content)
	assert.Equal(t, "user", messages[1].Role)
	assert.Equal(t, prompt.User, messages[1].Content)
}
