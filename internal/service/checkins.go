package service

import (
	"context"
	"time"

	"github.com/Sofya-Khabibulina/HabitTracker/pkg/entity"
)

// defaultStreakHorizonDays bounds the backward walk in CurrentStreak; a
// streak never reports more than one year even for an unbroken longer run
// unless STREAK_HORIZON_DAYS says otherwise.
const defaultStreakHorizonDays = 365

// RecordCheckIn marks the habit done for the given calendar day. A second
// call for the same day returns false without touching anything.
func (s *HabitStore) RecordCheckIn(ctx context.Context, userID int64, habitID string, today time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.getOwnedHabit(userID, habitID); err != nil {
		return false, err
	}
	id := entity.CheckInID(habitID, today)
	if _, exists := s.doc.CheckIns[id]; exists {
		return false, nil
	}
	s.doc.CheckIns[id] = &entity.CheckIn{
		ID:        id,
		UserID:    userID,
		HabitID:   habitID,
		Date:      today.Format(entity.DateLayout),
		Timestamp: time.Now(),
	}
	if err := s.persist(ctx); err != nil {
		return true, err
	}
	return true, nil
}

func (s *HabitStore) HasCheckedInToday(userID int64, habitID string, today time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	checkIn, ok := s.doc.CheckIns[entity.CheckInID(habitID, today)]
	return ok && checkIn.UserID == userID
}

// CurrentStreak counts consecutive checked-in days walking backward from
// today, stopping at the first gap or at the horizon.
func (s *HabitStore) CurrentStreak(userID int64, habitID string, today time.Time) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	streak := 0
	for i := 0; i < s.streakHorizon; i++ {
		day := today.AddDate(0, 0, -i)
		checkIn, ok := s.doc.CheckIns[entity.CheckInID(habitID, day)]
		if !ok || checkIn.UserID != userID {
			break
		}
		streak++
	}
	return streak
}

func (s *HabitStore) TotalCheckIns(userID int64, habitID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, checkIn := range s.doc.CheckIns {
		if checkIn.UserID == userID && checkIn.HabitID == habitID {
			count++
		}
	}
	return count
}
