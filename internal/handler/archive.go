package handler

import (
	"github.com/gofiber/fiber/v2"

	"quizflow/internal/domain"
	"quizflow/internal/dto"
	"quizflow/internal/service"
)

// ArchiveHandler handles quiz backup and analytics HTTP requests
type ArchiveHandler struct {
	service service.ArchiveService
}

// NewArchiveHandler creates a new ArchiveHandler instance
func NewArchiveHandler(service service.ArchiveService) *ArchiveHandler {
	return &ArchiveHandler{service: service}
}

// ListQuizzes handles GET /api/quizzes
func (h *ArchiveHandler) ListQuizzes(c *fiber.Ctx) error {
	quizzes, err := h.service.ListQuizzes(c.Context())
	if err != nil {
		return err
	}

	out := make([]dto.ArchivedQuiz, 0, len(quizzes))
	for _, quiz := range quizzes {
		out = append(out, dto.ArchivedQuiz{
			ID:         quiz.ID,
			Title:      quiz.Title,
			Questions:  toQuestionResponses(quiz.Questions),
			CreatedAt:  quiz.CreatedAt,
			SourceName: quiz.SourceName,
		})
	}
	return c.JSON(out)
}

// BackupQuizzes handles POST /api/quizzes/backup
func (h *ArchiveHandler) BackupQuizzes(c *fiber.Ctx) error {
	var req dto.BackupRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body is not valid JSON")
	}

	quizzes := make([]domain.Quiz, 0, len(req.Quizzes))
	for _, archived := range req.Quizzes {
		questions := make([]domain.Question, 0, len(archived.Questions))
		for _, q := range archived.Questions {
			questions = append(questions, domain.Question{
				Text:         q.Question,
				Options:      q.Options,
				CorrectIndex: q.CorrectAnswer,
				Explanation:  q.Explanation,
			})
		}
		quizzes = append(quizzes, domain.Quiz{
			ID:         archived.ID,
			Title:      archived.Title,
			Questions:  questions,
			CreatedAt:  archived.CreatedAt,
			SourceName: archived.SourceName,
		})
	}

	count, err := h.service.SaveQuizzes(c.Context(), quizzes)
	if err != nil {
		return err
	}
	return c.JSON(dto.BackupResponse{Success: true, Count: count})
}

// RecordAnalytics handles POST /api/analytics
func (h *ArchiveHandler) RecordAnalytics(c *fiber.Ctx) error {
	var req dto.AnalyticsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body is not valid JSON")
	}
	if err := h.service.RecordEvent(c.Context(), req.Event, req.Data); err != nil {
		return err
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// ClearData handles DELETE /api/data
func (h *ArchiveHandler) ClearData(c *fiber.Ctx) error {
	if err := h.service.Clear(c.Context()); err != nil {
		return err
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
