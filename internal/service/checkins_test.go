package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errorvalues "github.com/Sofya-Khabibulina/HabitTracker/internal/error_values"
)

func TestRecordCheckInIsIdempotentPerDay(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()
	today := time.Now()

	habitID, err := store.CreateHabit(ctx, 1, "reading", "daily")
	require.NoError(t, err)

	recorded, err := store.RecordCheckIn(ctx, 1, habitID, today)
	require.NoError(t, err)
	assert.True(t, recorded)

	recorded, err = store.RecordCheckIn(ctx, 1, habitID, today)
	require.NoError(t, err)
	assert.False(t, recorded)

	assert.Equal(t, 1, store.TotalCheckIns(1, habitID))
	assert.True(t, store.HasCheckedInToday(1, habitID, today))
}

func TestRecordCheckInUnknownHabit(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	_, err := store.RecordCheckIn(context.Background(), 1, "missing", time.Now())
	assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
}

func TestCurrentStreak(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()
	today := time.Now()

	habitID, err := store.CreateHabit(ctx, 1, "reading", "daily")
	require.NoError(t, err)

	assert.Equal(t, 0, store.CurrentStreak(1, habitID, today))

	// Check-ins today, yesterday and the day before; a gap at day -3.
	for i := 0; i < 3; i++ {
		recorded, err := store.RecordCheckIn(ctx, 1, habitID, today.AddDate(0, 0, -i))
		require.NoError(t, err)
		require.True(t, recorded)
	}
	recorded, err := store.RecordCheckIn(ctx, 1, habitID, today.AddDate(0, 0, -4))
	require.NoError(t, err)
	require.True(t, recorded)

	assert.Equal(t, 3, store.CurrentStreak(1, habitID, today))
}

func TestCurrentStreakHorizonCap(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()
	today := time.Now()

	habitID, err := store.CreateHabit(ctx, 1, "reading", "daily")
	require.NoError(t, err)

	// A 400-day unbroken run still reports the one-year horizon.
	for i := 0; i < 400; i++ {
		recorded, err := store.RecordCheckIn(ctx, 1, habitID, today.AddDate(0, 0, -i))
		require.NoError(t, err)
		require.True(t, recorded)
	}
	assert.Equal(t, 365, store.CurrentStreak(1, habitID, today))
	assert.Equal(t, 400, store.TotalCheckIns(1, habitID))
}

func TestSetStreakHorizon(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()
	today := time.Now()

	habitID, err := store.CreateHabit(ctx, 1, "reading", "daily")
	require.NoError(t, err)
	for i := 0; i < 40; i++ {
		recorded, err := store.RecordCheckIn(ctx, 1, habitID, today.AddDate(0, 0, -i))
		require.NoError(t, err)
		require.True(t, recorded)
	}

	store.SetStreakHorizon(30)
	assert.Equal(t, 30, store.CurrentStreak(1, habitID, today))

	// Non-positive overrides are ignored.
	store.SetStreakHorizon(0)
	assert.Equal(t, 30, store.CurrentStreak(1, habitID, today))
}

func TestCheckInHistorySurvivesSoftDelete(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()
	today := time.Now()

	habitID, err := store.CreateHabit(ctx, 1, "reading", "daily")
	require.NoError(t, err)
	recorded, err := store.RecordCheckIn(ctx, 1, habitID, today)
	require.NoError(t, err)
	require.True(t, recorded)

	deleted, err := store.SoftDeleteHabit(ctx, 1, habitID)
	require.NoError(t, err)
	require.True(t, deleted)

	assert.Equal(t, 1, store.TotalCheckIns(1, habitID))
	snapshot := store.Statistics()
	assert.Equal(t, 1, snapshot.TotalCheckIns)
}
