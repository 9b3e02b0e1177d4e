package service

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"strconv"
	"sync"
	"time"

	errorvalues "github.com/Sofya-Khabibulina/HabitTracker/internal/error_values"
	"github.com/Sofya-Khabibulina/HabitTracker/internal/repository"
	"github.com/Sofya-Khabibulina/HabitTracker/pkg/entity"
)

// HabitStore owns the whole durable dataset. Every mutating call holds the
// write lock across both the in-memory change and the file write, so a
// successful return means the data is on disk. Reads take the read lock
// and never observe a half-applied mutation.
type HabitStore struct {
	mu            sync.RWMutex
	doc           *repository.Document
	persister     repository.PersisterI
	streakHorizon int
}

func NewHabitStore(ctx context.Context, persister repository.PersisterI) (*HabitStore, error) {
	if persister == nil {
		log.Fatal("provided nil persister")
	}
	doc, err := persister.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	return &HabitStore{
		doc:           doc,
		persister:     persister,
		streakHorizon: defaultStreakHorizonDays,
	}, nil
}

// SetStreakHorizon caps how many days back CurrentStreak walks.
// Non-positive values keep the current horizon.
func (s *HabitStore) SetStreakHorizon(days int) {
	if days <= 0 {
		return
	}
	s.mu.Lock()
	s.streakHorizon = days
	s.mu.Unlock()
}

// persist writes the dataset out under the already-held write lock. The
// in-memory mutation stays committed even when the write fails; memory and
// disk may disagree until the next successful persist.
func (s *HabitStore) persist(ctx context.Context) error {
	if err := s.persister.Persist(ctx, s.doc); err != nil {
		slog.Error("persisting dataset failed", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %s", errorvalues.ErrStorage, err.Error())
	}
	return nil
}

func userKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

func (s *HabitStore) UpsertUserLanguage(ctx context.Context, userID int64, lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	key := userKey(userID)
	user, ok := s.doc.Users[key]
	if !ok {
		user = &entity.User{
			ID:        userID,
			CreatedAt: now,
		}
		s.doc.Users[key] = user
	}
	user.Language = lang
	user.LastActive = now
	return s.persist(ctx)
}

// TouchActivity stamps the user's last-activity time. Unknown users are a
// silent no-op so the caller doesn't have to order it after registration.
func (s *HabitStore) TouchActivity(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.doc.Users[userKey(userID)]
	if !ok {
		return nil
	}
	user.LastActive = time.Now()
	return s.persist(ctx)
}

func (s *HabitStore) GetUser(userID int64) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.doc.Users[userKey(userID)]
	if !ok {
		return nil, errorvalues.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *HabitStore) IncrementCommandCount(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.BotStats.TotalCommands++
	return s.persist(ctx)
}
