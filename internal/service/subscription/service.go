// Package subscription records the entitlement flag written after a
// platform purchase. Receipt contents are opaque here; the store purchase
// flow happens on-device.
package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/relately/backend/internal/database"
)

var ErrEmptyReceipt = errors.New("purchase receipt is required")

// Status values.
const (
	StatusNone    = "none"
	StatusActive  = "active"
	StatusExpired = "expired"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Verify accepts an opaque platform receipt and upserts the user's status
// flag.
func (s *Service) Verify(ctx context.Context, userID uuid.UUID, productID, receipt string) (database.Subscription, error) {
	if receipt == "" {
		return database.Subscription{}, ErrEmptyReceipt
	}

	row := database.Subscription{
		UserID:    userID,
		ProductID: productID,
		Status:    StatusActive,
		UpdatedAt: time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(&row).Error
	if err != nil {
		return database.Subscription{}, err
	}
	return row, nil
}

// Status returns the user's entitlement; users without a row get
// StatusNone.
func (s *Service) Status(ctx context.Context, userID uuid.UUID) (database.Subscription, error) {
	var row database.Subscription
	err := s.db.WithContext(ctx).First(&row, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Subscription{UserID: userID, Status: StatusNone}, nil
	}
	if err != nil {
		return database.Subscription{}, err
	}
	return row, nil
}
