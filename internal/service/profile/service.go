// Package profile reads and updates the user's profile record. Onboarding
// is a sequence of partial updates ending with the completed flag.
package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/relately/backend/internal/database"
)

var ErrUnknownField = errors.New("unknown profile field")

// allowedFields whitelists what a partial update may touch.
var allowedFields = map[string]bool{
	"username":                true,
	"first_name":              true,
	"last_name":               true,
	"partner_name":            true,
	"age":                     true,
	"bio":                     true,
	"profile_picture_url":     true,
	"phone_number":            true,
	"device_token":            true,
	"email_notifications":     true,
	"text_notifications":      true,
	"push_notifications":      true,
	"relationship_status":     true,
	"relationship_start_date": true,
	"anniversary_date":        true,
	"partner_birthdate":       true,
	"love_languages":          true,
	"relationship_goals":      true,
	"onboarding_completed":    true,
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Get returns the user's profile, creating an empty row on first access so
// the client always has something to render.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (database.Profile, error) {
	var row database.Profile
	err := s.db.WithContext(ctx).First(&row, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = database.Profile{ID: userID, UpdatedAt: time.Now().UTC()}
		if createErr := s.db.WithContext(ctx).Create(&row).Error; createErr != nil {
			return database.Profile{}, fmt.Errorf("failed to create profile: %w", createErr)
		}
		return row, nil
	}
	if err != nil {
		return database.Profile{}, err
	}
	return row, nil
}

// Update applies a partial field map and bumps updated_at.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, updates map[string]any) (database.Profile, error) {
	for field := range updates {
		if !allowedFields[field] {
			return database.Profile{}, fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	// Ensure the row exists before updating it.
	if _, err := s.Get(ctx, userID); err != nil {
		return database.Profile{}, err
	}

	updates["updated_at"] = time.Now().UTC()
	if err := s.db.WithContext(ctx).
		Model(&database.Profile{}).
		Where("id = ?", userID).
		Updates(updates).Error; err != nil {
		return database.Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}

	var row database.Profile
	if err := s.db.WithContext(ctx).First(&row, "id = ?", userID).Error; err != nil {
		return database.Profile{}, err
	}
	return row, nil
}
