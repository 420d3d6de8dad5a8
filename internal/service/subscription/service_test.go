package subscription_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relately/backend/internal/database"
	"github.com/relately/backend/internal/service/subscription"
)

func openTestDB(t *testing.T) *subscription.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.GetMigrator(db).Migrate())

	return subscription.NewService(db)
}

func TestVerifyRequiresReceipt(t *testing.T) {
	svc := openTestDB(t)

	_, err := svc.Verify(context.Background(), uuid.New(), "premium_monthly", "")
	assert.ErrorIs(t, err, subscription.ErrEmptyReceipt)
}

func TestVerifyUpsertsSingleRow(t *testing.T) {
	svc := openTestDB(t)
	userID := uuid.New()

	row, err := svc.Verify(context.Background(), userID, "premium_monthly", "receipt-1")
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusActive, row.Status)

	// Re-verifying with a new product replaces, not duplicates.
	row, err = svc.Verify(context.Background(), userID, "premium_yearly", "receipt-2")
	require.NoError(t, err)
	assert.Equal(t, "premium_yearly", row.ProductID)

	status, err := svc.Status(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "premium_yearly", status.ProductID)
	assert.Equal(t, subscription.StatusActive, status.Status)
}

func TestStatusDefaultsToNone(t *testing.T) {
	svc := openTestDB(t)
	userID := uuid.New()

	status, err := svc.Status(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusNone, status.Status)
	assert.Equal(t, userID, status.UserID)
}
