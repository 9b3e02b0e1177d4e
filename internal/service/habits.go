package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	errorvalues "github.com/Sofya-Khabibulina/HabitTracker/internal/error_values"
	"github.com/Sofya-Khabibulina/HabitTracker/pkg/entity"
)

// CreateHabit validates the input, stores the new habit and returns its id.
func (s *HabitStore) CreateHabit(ctx context.Context, userID int64, name, frequency string) (string, error) {
	name = strings.TrimSpace(name)
	req := CreateHabitRequest{
		Name:      name,
		Frequency: strings.TrimSpace(frequency),
	}
	if err := validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			for _, fieldErr := range validationErrors {
				if fieldErr.Field() == "Frequency" {
					return "", errorvalues.ErrUnknownFrequency
				}
			}
			return "", errorvalues.ErrInvalidHabitName
		}
		return "", errors.New("validation unexpected error: " + err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	habit := &entity.Habit{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Frequency: entity.Frequency(req.Frequency),
		CreatedAt: time.Now(),
		Active:    true,
	}
	s.doc.Habits[habit.ID] = habit
	if err := s.persist(ctx); err != nil {
		return habit.ID, err
	}
	return habit.ID, nil
}

// ListHabits returns the user's active habits ordered by creation time.
func (s *HabitStore) ListHabits(userID int64) []*entity.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	habits := make([]*entity.Habit, 0)
	for _, habit := range s.doc.Habits {
		if habit.UserID == userID && habit.Active {
			h := *habit
			habits = append(habits, &h)
		}
	}
	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})
	return habits
}

// GetHabit looks up a habit owned by the user. A habit that exists but
// belongs to someone else reports the same not-found error, so callers
// can't probe for foreign habit ids.
func (s *HabitStore) GetHabit(userID int64, habitID string) (*entity.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	habit, err := s.getOwnedHabit(userID, habitID)
	if err != nil {
		return nil, err
	}
	h := *habit
	return &h, nil
}

// getOwnedHabit is the lock-free lookup shared by habit and check-in
// operations; the caller must hold at least the read lock.
func (s *HabitStore) getOwnedHabit(userID int64, habitID string) (*entity.Habit, error) {
	habit, ok := s.doc.Habits[habitID]
	if !ok || habit.UserID != userID {
		return nil, errorvalues.ErrHabitNotFound
	}
	return habit, nil
}

// SoftDeleteHabit deactivates the habit but keeps the record and its
// check-in history for statistics. Returns false when nothing was deleted.
func (s *HabitStore) SoftDeleteHabit(ctx context.Context, userID int64, habitID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	habit, err := s.getOwnedHabit(userID, habitID)
	if err != nil || !habit.Active {
		return false, nil
	}
	now := time.Now()
	habit.Active = false
	habit.DeletedAt = &now
	if err := s.persist(ctx); err != nil {
		return true, err
	}
	return true, nil
}
