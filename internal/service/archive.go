package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"go.uber.org/zap"

	"quizflow/internal/domain"
	"quizflow/internal/logger"
)

const (
	// ArchiveKey is the hash holding archived quizzes, keyed by quiz ID so
	// repeated backups merge instead of duplicating.
	ArchiveKey = "quizflow:quizzes"
	// AnalyticsKey is the list holding usage events in arrival order.
	AnalyticsKey = "quizflow:analytics"
)

// AnalyticsEvent is one recorded usage event.
type AnalyticsEvent struct {
	Event     string                 `json:"event"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// ArchiveService persists caller-held quizzes server-side and records
// anonymous usage analytics. It is a collaborator of the pipeline, never a
// dependency: archive failures do not affect quiz generation.
type ArchiveService interface {
	SaveQuizzes(ctx context.Context, quizzes []domain.Quiz) (int64, error)
	ListQuizzes(ctx context.Context) ([]domain.Quiz, error)
	RecordEvent(ctx context.Context, event string, data map[string]interface{}) error
	Clear(ctx context.Context) error
}

type archiveService struct {
	cache domain.Cache
}

// NewArchiveService creates a new instance of archiveService
func NewArchiveService(cache domain.Cache) ArchiveService {
	return &archiveService{cache: cache}
}

// SaveQuizzes merges the given quizzes into the archive by ID and returns
// the total number of archived quizzes after the merge.
func (s *archiveService) SaveQuizzes(ctx context.Context, quizzes []domain.Quiz) (int64, error) {
	for i := range quizzes {
		quiz := quizzes[i]
		if quiz.ID == "" {
			return 0, domain.NewInvalidInputError("archived quiz must have an ID")
		}
		payload, err := json.Marshal(quiz)
		if err != nil {
			return 0, domain.NewInternalError("failed to encode quiz for archive", err)
		}
		if err := s.cache.HSet(ctx, ArchiveKey, quiz.ID, string(payload)); err != nil {
			return 0, domain.NewArchiveUnavailableError(err)
		}
	}

	total, err := s.cache.HLen(ctx, ArchiveKey)
	if err != nil {
		return 0, domain.NewArchiveUnavailableError(err)
	}
	return total, nil
}

// ListQuizzes returns all archived quizzes, oldest first.
func (s *archiveService) ListQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	entries, err := s.cache.HGetAll(ctx, ArchiveKey)
	if err != nil {
		return nil, domain.NewArchiveUnavailableError(err)
	}

	quizzes := make([]domain.Quiz, 0, len(entries))
	for id, payload := range entries {
		var quiz domain.Quiz
		if err := json.Unmarshal([]byte(payload), &quiz); err != nil {
			// Skip unreadable entries rather than failing the whole listing.
			logger.Get().Warn("skipping corrupt archive entry", zap.String("quiz_id", id), zap.Error(err))
			continue
		}
		quizzes = append(quizzes, quiz)
	}
	sort.Slice(quizzes, func(i, j int) bool {
		return quizzes[i].CreatedAt.Before(quizzes[j].CreatedAt)
	})
	return quizzes, nil
}

// RecordEvent appends one analytics event.
func (s *archiveService) RecordEvent(ctx context.Context, event string, data map[string]interface{}) error {
	if event == "" {
		return domain.NewInvalidInputError("analytics event name is required")
	}
	payload, err := json.Marshal(AnalyticsEvent{
		Event:     event,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return domain.NewInternalError("failed to encode analytics event", err)
	}
	if err := s.cache.RPush(ctx, AnalyticsKey, string(payload)); err != nil {
		return domain.NewArchiveUnavailableError(err)
	}
	return nil
}

// Clear removes all archived quizzes and analytics events.
func (s *archiveService) Clear(ctx context.Context) error {
	if err := s.cache.Delete(ctx, ArchiveKey, AnalyticsKey); err != nil {
		return domain.NewArchiveUnavailableError(err)
	}
	return nil
}
