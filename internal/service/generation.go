package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"quizflow/internal/config"
	"quizflow/internal/domain"
	"quizflow/internal/extractor"
	"quizflow/internal/logger"
	"quizflow/internal/util"
)

// QuizService runs the document-to-quiz pipeline.
type QuizService interface {
	GenerateQuiz(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error)
}

type quizService struct {
	extractor  domain.TextExtractor
	completion domain.CompletionClient
	titles     domain.TitleDeriver
	prompts    PromptBuilder
	cfg        *config.Config
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	extractor domain.TextExtractor,
	completion domain.CompletionClient,
	titles domain.TitleDeriver,
	cfg *config.Config,
) QuizService {
	return &quizService{
		extractor:  extractor,
		completion: completion,
		titles:     titles,
		prompts:    PromptBuilder{CharBudget: cfg.Generation.PromptCharBudget},
		cfg:        cfg,
	}
}

// GenerateQuiz implements QuizService. It always returns a schema-valid quiz
// with exactly the requested question count; the only hard failures are an
// invalid request and a missing credential. Every other failure degrades
// through the ladder: extraction -> sample-content substitution -> fallback
// questions.
func (s *quizService) GenerateQuiz(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Title derivation runs concurrently and never blocks quiz generation on
	// failure: DeriveTitle has its own local fallback.
	titleCh := make(chan string, 1)
	go func() {
		titleCh <- s.titles.DeriveTitle(ctx, req.SourceName)
	}()

	text, reason := s.sourceText(req)
	model := s.selectModel(req.Model)

	prompt := s.prompts.Build(text, req.QuestionCount, req.Difficulty)
	payloadTitle, questions, err := s.generateFromCompletion(ctx, model, prompt, req.QuestionCount)
	if err != nil {
		if domain.CodeOf(err) == domain.ErrMissingCredential {
			return nil, err
		}
		reason = reasonFor(err)
		logger.Get().Warn("completion path failed, using fallback questions",
			zap.String("source", req.SourceName),
			zap.String("reason", string(reason)),
			zap.Error(err),
		)
		questions = GenerateFallbackQuestions(req.QuestionCount)
	}

	title := <-titleCh
	if payloadTitle != "" {
		title = payloadTitle
	}

	quiz := &domain.Quiz{
		ID:         util.NewULID(),
		Title:      title,
		Questions:  questions,
		CreatedAt:  time.Now().UTC(),
		SourceName: req.SourceName,
	}

	logger.Get().Info("quiz generated",
		zap.String("quiz_id", quiz.ID),
		zap.String("source", req.SourceName),
		zap.Int("questions", len(quiz.Questions)),
		zap.String("degrade_reason", string(reason)),
	)
	return &domain.GenerationResult{Quiz: quiz, Reason: reason}, nil
}

// sourceText is the first rung of the degrade ladder: extract and filter the
// document, and substitute the curated sample block when the document yields
// no usable text. The pipeline still attempts an AI-authored quiz either way.
func (s *quizService) sourceText(req *domain.GenerationRequest) (string, domain.DegradeReason) {
	extracted, err := s.extractor.Extract(req.DocumentPayload)
	if err != nil {
		logger.Get().Warn("text extraction failed, substituting sample content",
			zap.String("source", req.SourceName),
			zap.Error(err),
		)
		return sampleDocumentContent, domain.ReasonExtractionFailed
	}

	cleaned, readable := extractor.FilterContent(extracted.Combined())
	if !readable {
		logger.Get().Warn("document text failed the meaningfulness gate, substituting sample content",
			zap.String("source", req.SourceName),
			zap.Int("filtered_length", len(cleaned)),
		)
		return sampleDocumentContent, domain.ReasonUnreadableContent
	}
	return cleaned, domain.ReasonNone
}

// generateFromCompletion runs the prompt -> completion -> parse/validate rung.
func (s *quizService) generateFromCompletion(ctx context.Context, model string, prompt Prompt, count int) (string, []domain.Question, error) {
	content, err := s.completion.Complete(ctx, domain.CompletionRequest{
		Model:       model,
		Messages:    prompt.Messages(),
		MaxTokens:   s.cfg.OpenRouter.MaxTokens,
		Temperature: s.cfg.OpenRouter.Temperature,
	})
	if err != nil {
		return "", nil, err
	}

	title, questions, err := ParseCompletion(content)
	if err != nil {
		return "", nil, err
	}
	if len(questions) != count {
		return "", nil, domain.NewInvalidCompletionShapeError("completion returned a different question count than requested", nil)
	}
	return title, questions, nil
}

// selectModel honors the caller-selected model unless configuration forces a
// fixed one.
func (s *quizService) selectModel(requested string) string {
	if s.cfg.OpenRouter.ForceModel != "" {
		return s.cfg.OpenRouter.ForceModel
	}
	if requested != "" {
		return requested
	}
	return s.cfg.OpenRouter.DefaultModel
}

func reasonFor(err error) domain.DegradeReason {
	if domain.CodeOf(err) == domain.ErrInvalidCompletionShape {
		return domain.ReasonInvalidCompletionShape
	}
	return domain.ReasonCompletionUnavailable
}
