package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sofya-Khabibulina/HabitTracker/internal/repository"
	"github.com/Sofya-Khabibulina/HabitTracker/pkg/entity"
)

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "data.json")
	store := repository.NewFileStore(path)
	ctx := context.Background()

	doc := repository.NewDocument()
	doc.Users["1"] = &entity.User{
		ID:         1,
		Language:   "en",
		CreatedAt:  time.Now().Truncate(time.Second),
		LastActive: time.Now().Truncate(time.Second),
	}
	doc.Habits["h1"] = &entity.Habit{
		ID:        "h1",
		UserID:    1,
		Name:      "reading",
		Frequency: entity.FrequencyDaily,
		CreatedAt: time.Now().Truncate(time.Second),
		Active:    true,
	}
	doc.BotStats.TotalCommands = 5

	require.NoError(t, store.Persist(ctx, doc))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Contains(t, loaded.Users, "1")
	assert.Equal(t, "en", loaded.Users["1"].Language)
	require.Contains(t, loaded.Habits, "h1")
	assert.Equal(t, entity.FrequencyDaily, loaded.Habits["h1"].Frequency)
	assert.Equal(t, 5, loaded.BotStats.TotalCommands)
}

func TestFileStoreMissingFileYieldsEmptyDocument(t *testing.T) {
	t.Parallel()
	store := repository.NewFileStore(filepath.Join(t.TempDir(), "nope.json"))

	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Users)
	assert.Empty(t, doc.Habits)
	assert.Empty(t, doc.CheckIns)
	assert.Empty(t, doc.BannedUsers)
}

func TestFileStoreCorruptFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := repository.NewFileStore(path).Load(context.Background())
	assert.Error(t, err)
}

func TestFileStorePersistCreatesDirectory(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "storage", "data.json")
	store := repository.NewFileStore(path)

	require.NoError(t, store.Persist(context.Background(), repository.NewDocument()))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestFileStorePartialFieldsNormalized(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"users":{}}`), 0o644))

	doc, err := repository.NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, doc.Habits)
	assert.NotNil(t, doc.CheckIns)
	assert.NotNil(t, doc.BannedUsers)
	assert.False(t, doc.BotStats.StartDate.IsZero())
}
