// Package quiz scores self-assessment submissions and persists the
// results.
package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/relately/backend/internal/database"
)

var ErrUnknownKind = errors.New("unknown quiz kind")

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// SaveResult scores the answers and stores the result row.
func (s *Service) SaveResult(ctx context.Context, userID uuid.UUID, kind string, answers map[string]int) (database.QuizResult, error) {
	if kind != KindRelationshipHealth && kind != KindStayOrLeave {
		return database.QuizResult{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	score := Score(answers)
	assessment, recommendation := Assess(kind, score)

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return database.QuizResult{}, fmt.Errorf("could not marshal answers: %w", err)
	}

	row := database.QuizResult{
		ID:             uuid.New(),
		UserID:         userID,
		Kind:           kind,
		Score:          score,
		Assessment:     assessment,
		Recommendation: recommendation,
		Answers:        datatypes.JSON(answersJSON),
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return database.QuizResult{}, fmt.Errorf("failed to save quiz result: %w", err)
	}
	return row, nil
}

// History returns the user's results newest first.
func (s *Service) History(ctx context.Context, userID uuid.UUID) ([]database.QuizResult, error) {
	var rows []database.QuizResult
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// Latest returns the most recent result, or nil when the user has none;
// having no results is not an error.
func (s *Service) Latest(ctx context.Context, userID uuid.UUID) (*database.QuizResult, error) {
	var row database.QuizResult
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
