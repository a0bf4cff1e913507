package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"quizflow/internal/config"
	"quizflow/internal/domain"
	"quizflow/internal/dto"
	"quizflow/internal/service"
)

// QuizHandler handles quiz generation HTTP requests
type QuizHandler struct {
	service service.QuizService
	cfg     *config.Config
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService, cfg *config.Config) *QuizHandler {
	return &QuizHandler{
		service: service,
		cfg:     cfg,
	}
}

// GenerateQuiz handles POST /api/generate-quiz
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body is not valid JSON")
	}
	if len(req.Files) == 0 {
		return domain.NewInvalidInputError("at least one file is required")
	}

	numQuestions := h.cfg.Generation.DefaultQuestionCount
	var model, difficulty string
	if req.Customization != nil {
		if req.Customization.NumQuestions > 0 {
			numQuestions = req.Customization.NumQuestions
		}
		model = req.Customization.Model
		difficulty = req.Customization.Difficulty
	}

	file := req.Files[0]
	result, err := h.service.GenerateQuiz(c.Context(), &domain.GenerationRequest{
		DocumentPayload: file.Data,
		SourceName:      file.Name,
		QuestionCount:   numQuestions,
		Model:           model,
		Difficulty:      difficulty,
	})
	if err != nil {
		return err
	}

	quiz := result.Quiz
	return c.JSON(dto.GenerateQuizResponse{
		Success:        true,
		ID:             quiz.ID,
		Title:          quiz.Title,
		Questions:      toQuestionResponses(quiz.Questions),
		CreatedAt:      quiz.CreatedAt,
		PDFName:        quiz.SourceName,
		DegradedReason: string(result.Reason),
	})
}

// Health handles GET /api/health
func (h *QuizHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	})
}

func toQuestionResponses(questions []domain.Question) []dto.QuestionResponse {
	out := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, dto.QuestionResponse{
			Question:      q.Text,
			Options:       q.Options,
			CorrectAnswer: q.CorrectIndex,
			Explanation:   q.Explanation,
		})
	}
	return out
}
