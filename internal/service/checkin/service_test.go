package checkin_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relately/backend/internal/database"
	"github.com/relately/backend/internal/service/checkin"
)

func openTestDB(t *testing.T) *checkin.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.GetMigrator(db).Migrate())

	return checkin.NewService(db)
}

func TestCreateValidatesMoodScore(t *testing.T) {
	svc := openTestDB(t)
	userID := uuid.New()

	_, err := svc.Create(context.Background(), userID, 0, "", nil)
	assert.ErrorIs(t, err, checkin.ErrInvalidMood)

	_, err = svc.Create(context.Background(), userID, 11, "", nil)
	assert.ErrorIs(t, err, checkin.ErrInvalidMood)

	row, err := svc.Create(context.Background(), userID, 7, "good day", []string{"date-night"})
	require.NoError(t, err)
	assert.Equal(t, 7, row.MoodScore)
	assert.JSONEq(t, `["date-night"]`, string(row.Tags))
}

func TestCreateWithoutTagsStoresEmptyArray(t *testing.T) {
	svc := openTestDB(t)

	row, err := svc.Create(context.Background(), uuid.New(), 5, "", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(row.Tags))
}

func TestHistoryNewestFirstAndPaginated(t *testing.T) {
	svc := openTestDB(t)
	userID := uuid.New()

	for i := 1; i <= 5; i++ {
		_, err := svc.Create(context.Background(), userID, i, fmt.Sprintf("entry %d", i), nil)
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	rows, err := svc.History(context.Background(), userID, 2, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "entry 5", rows[0].Notes)
	assert.Equal(t, "entry 4", rows[1].Notes)

	rows, err = svc.History(context.Background(), userID, 2, 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "entry 1", rows[0].Notes)
}

func TestAnalyticsAveragesPerDay(t *testing.T) {
	svc := openTestDB(t)
	userID := uuid.New()

	// Two check-ins today average together into one point.
	_, err := svc.Create(context.Background(), userID, 4, "", nil)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), userID, 8, "", nil)
	require.NoError(t, err)

	points, err := svc.Analytics(context.Background(), userID, checkin.TimeframeWeek)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), points[0].Date)
	assert.InDelta(t, 6.0, points[0].Average, 0.001)
}

func TestAnalyticsRejectsUnknownTimeframe(t *testing.T) {
	svc := openTestDB(t)

	_, err := svc.Analytics(context.Background(), uuid.New(), "14days")
	assert.ErrorIs(t, err, checkin.ErrInvalidRange)
}

func TestUpdateScopedToOwner(t *testing.T) {
	svc := openTestDB(t)
	owner := uuid.New()

	row, err := svc.Create(context.Background(), owner, 3, "rough", nil)
	require.NoError(t, err)

	newScore := 6
	updated, err := svc.Update(context.Background(), owner, row.ID, &newScore, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, updated.MoodScore)
	assert.Equal(t, "rough", updated.Notes, "untouched fields must survive a partial update")

	_, err = svc.Update(context.Background(), uuid.New(), row.ID, &newScore, nil, nil)
	assert.ErrorIs(t, err, checkin.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc := openTestDB(t)
	userID := uuid.New()

	row, err := svc.Create(context.Background(), userID, 5, "", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), userID, row.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), userID, row.ID), checkin.ErrNotFound)
}
