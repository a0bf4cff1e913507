package service

import (
	"fmt"
	"strings"

	"quizflow/internal/domain"
)

// continuationMarker is appended when the document text exceeds the prompt
// character budget.
const continuationMarker = "...(content continues)"

const systemInstruction = "You are a teacher creating comprehension quizzes from document text. " +
	"Generate questions ONLY about the actual readable content, facts, concepts, and information presented in the text. " +
	"NEVER ask about document structure, headers, metadata, technical formatting, or PDF-specific details. " +
	"Focus on meaningful information that demonstrates understanding of the material. " +
	"Each question should have 4 options labeled A, B, C, and D. Only one option should be correct. " +
	"Return the questions in a JSON array format."

// Prompt is a system instruction plus a user instruction, ready for one
// completion request.
type Prompt struct {
	System string
	User   string
}

// Messages converts the prompt to chat-completion messages.
func (p Prompt) Messages() []domain.ChatMessage {
	return []domain.ChatMessage{
		{Role: "system", Content: p.System},
		{Role: "user", Content: p.User},
	}
}

// PromptBuilder constructs deterministic prompts: the same inputs always
// produce the same prompt text.
type PromptBuilder struct {
	CharBudget int
}

// Build embeds a bounded prefix of the filtered document text together with
// the required output shape.
func (b PromptBuilder) Build(text string, numQuestions int, difficulty string) Prompt {
	bounded := text
	if b.CharBudget > 0 && len(text) > b.CharBudget {
		bounded = text[:b.CharBudget] + continuationMarker
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on the following document content, create a %d-question multiple choice quiz that tests comprehension of the actual text.\n", numQuestions)
	if difficulty != "" {
		fmt.Fprintf(&sb, "Difficulty level: %s.\n", difficulty)
	}
	sb.WriteString(`Focus on:
- Factual information presented in the text
- Key concepts and ideas explained
- Main topics and themes
- Important details and examples
- Definitions and explanations

STRICTLY AVOID questions about:
- Document structure or formatting
- Headers, footers, or metadata
- PDF technical details
- File size, page count, or creation info
- Fonts, colors, or layout elements

Format your response as a JSON array where each question has:
- "question": the question text about the content
- "options": an array of 4 strings (A, B, C, D)
- "answer": one of "A", "B", "C", or "D"
- "explanation": a short explanation of the correct answer

Document Content (readable text only):
`)
	sb.WriteString(bounded)
	fmt.Fprintf(&sb, "\n\nCreate questions that test understanding of the actual material, not technical aspects. Ensure exactly %d questions.", numQuestions)

	return Prompt{System: systemInstruction, User: sb.String()}
}
