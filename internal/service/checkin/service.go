// Package checkin persists daily mood check-ins and derives simple
// per-day mood analytics from them.
package checkin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/relately/backend/internal/database"
)

var (
	ErrNotFound     = errors.New("check-in not found")
	ErrInvalidMood  = errors.New("mood score must be between 1 and 10")
	ErrInvalidRange = errors.New("unknown analytics timeframe")
)

// Timeframes accepted by Analytics.
const (
	TimeframeWeek    = "7days"
	TimeframeMonth   = "30days"
	TimeframeQuarter = "90days"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, moodScore int, notes string, tags []string) (database.Checkin, error) {
	if moodScore < 1 || moodScore > 10 {
		return database.Checkin{}, ErrInvalidMood
	}

	tagsJSON, err := marshalTags(tags)
	if err != nil {
		return database.Checkin{}, err
	}

	row := database.Checkin{
		ID:        uuid.New(),
		UserID:    userID,
		MoodScore: moodScore,
		Notes:     notes,
		Tags:      tagsJSON,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return database.Checkin{}, fmt.Errorf("failed to create check-in: %w", err)
	}
	return row, nil
}

// History returns the user's check-ins newest first, paginated.
func (s *Service) History(ctx context.Context, userID uuid.UUID, limit, page int) ([]database.Checkin, error) {
	if limit <= 0 {
		limit = 30
	}
	if page < 0 {
		page = 0
	}

	var rows []database.Checkin
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(page * limit).
		Find(&rows).Error
	return rows, err
}

// MoodPoint is one day's average mood score.
type MoodPoint struct {
	Date    string  `json:"date"`
	Average float64 `json:"average"`
}

// Analytics averages mood scores per UTC day over the requested window,
// oldest day first.
func (s *Service) Analytics(ctx context.Context, userID uuid.UUID, timeframe string) ([]MoodPoint, error) {
	var days int
	switch timeframe {
	case TimeframeWeek:
		days = 7
	case TimeframeMonth, "":
		days = 30
	case TimeframeQuarter:
		days = 90
	default:
		return nil, ErrInvalidRange
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	var rows []database.Checkin
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, cutoff).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	type bucket struct {
		count int
		total int
	}
	byDay := make(map[string]*bucket)
	for _, row := range rows {
		day := row.CreatedAt.UTC().Format("2006-01-02")
		b := byDay[day]
		if b == nil {
			b = &bucket{}
			byDay[day] = b
		}
		b.count++
		b.total += row.MoodScore
	}

	days2 := make([]string, 0, len(byDay))
	for day := range byDay {
		days2 = append(days2, day)
	}
	sort.Strings(days2)

	points := make([]MoodPoint, 0, len(days2))
	for _, day := range days2 {
		b := byDay[day]
		points = append(points, MoodPoint{Date: day, Average: float64(b.total) / float64(b.count)})
	}
	return points, nil
}

// Update applies the given fields to a check-in the user owns.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, moodScore *int, notes *string, tags []string) (database.Checkin, error) {
	updates := map[string]any{}
	if moodScore != nil {
		if *moodScore < 1 || *moodScore > 10 {
			return database.Checkin{}, ErrInvalidMood
		}
		updates["mood_score"] = *moodScore
	}
	if notes != nil {
		updates["notes"] = *notes
	}
	if tags != nil {
		tagsJSON, err := marshalTags(tags)
		if err != nil {
			return database.Checkin{}, err
		}
		updates["tags"] = tagsJSON
	}

	if len(updates) > 0 {
		result := s.db.WithContext(ctx).
			Model(&database.Checkin{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(updates)
		if result.Error != nil {
			return database.Checkin{}, result.Error
		}
		if result.RowsAffected == 0 {
			return database.Checkin{}, ErrNotFound
		}
	}

	var row database.Checkin
	if err := s.db.WithContext(ctx).First(&row, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return database.Checkin{}, ErrNotFound
		}
		return database.Checkin{}, err
	}
	return row, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&database.Checkin{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalTags(tags []string) (datatypes.JSON, error) {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("could not marshal tags: %w", err)
	}
	return datatypes.JSON(raw), nil
}
