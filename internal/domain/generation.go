package domain

import (
	"context"
	"strings"
)

// GenerationRequest carries everything needed to build a quiz from one
// uploaded document. It is immutable and created fresh per invocation.
type GenerationRequest struct {
	DocumentPayload string // base64 data URI or raw base64 bytes
	SourceName      string // original file name, used for the quiz title
	QuestionCount   int
	Model           string // requested model identifier, may be overridden by config
	Difficulty      string // easy, medium or hard; empty means unspecified
}

// Validate validates the generation request
func (r *GenerationRequest) Validate() error {
	if strings.TrimSpace(r.DocumentPayload) == "" {
		return NewInvalidInputError("document payload is required")
	}
	if r.QuestionCount < 1 {
		return NewInvalidInputError("question count must be at least 1")
	}
	switch r.Difficulty {
	case "", DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return NewInvalidInputError("difficulty must be easy, medium or hard")
	}
	return nil
}

// DegradeReason tags a quiz that was produced by a fallback path rather than
// the model working on the caller's document. It is observability metadata
// only: a degraded quiz is shape-identical to a successful one.
type DegradeReason string

const (
	ReasonNone                   DegradeReason = ""
	ReasonExtractionFailed       DegradeReason = "extraction_failed"
	ReasonUnreadableContent      DegradeReason = "unreadable_content"
	ReasonCompletionUnavailable  DegradeReason = "completion_unavailable"
	ReasonInvalidCompletionShape DegradeReason = "invalid_completion_shape"
)

// GenerationResult is the outcome of one pipeline invocation. Reason is empty
// on success and carries the degrade reason otherwise; the Quiz is schema
// valid either way.
type GenerationResult struct {
	Quiz   *Quiz
	Reason DegradeReason
}

// Degraded reports whether the quiz came from a fallback path.
func (r *GenerationResult) Degraded() bool {
	return r.Reason != ReasonNone
}

// ExtractedText is the ordered per-page text of a decoded document.
type ExtractedText struct {
	Pages []string
}

// Combined joins the page texts with a blank-line separator.
func (e *ExtractedText) Combined() string {
	return strings.Join(e.Pages, "\n\n")
}

// TextExtractor decodes an encoded document payload and returns its per-page
// text. A payload that cannot be decoded or parsed as a paginated container
// yields an EXTRACTION_FAILED error, which callers treat as "no usable text",
// not as a fatal condition.
type TextExtractor interface {
	Extract(payload string) (*ExtractedText, error)
}

// ChatMessage is one message of a chat-completion conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is a single round trip to the completion service.
type CompletionRequest struct {
	Model       string
	Messages    []ChatMessage
	MaxTokens   int
	Temperature float64
}

// CompletionClient sends a built prompt to the external completion service
// and returns the raw response text. Implementations retry transient
// failures internally and return COMPLETION_UNAVAILABLE once retries are
// exhausted; a missing credential yields MISSING_CREDENTIAL without any
// network I/O.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// TitleDeriver produces a short quiz title from a file name. It never fails:
// implementations fall back to a deterministic filename-derived title when
// the completion service cannot be used.
type TitleDeriver interface {
	DeriveTitle(ctx context.Context, fileName string) string
}

// Cache is the key-value store port used by the quiz archive and the
// analytics log.
type Cache interface {
	HSet(ctx context.Context, key, field, value string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HLen(ctx context.Context, key string) (int64, error)
	RPush(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}
