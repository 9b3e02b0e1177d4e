package service

import (
	"context"
	"time"

	"github.com/Sofya-Khabibulina/HabitTracker/pkg/entity"
)

// Ban records a ban for the user. Returns false when the user is already
// banned so the caller can answer "already banned" instead of pretending
// the ban just happened.
func (s *HabitStore) Ban(ctx context.Context, userID int64, reason string, byAdminID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := userKey(userID)
	if _, banned := s.doc.BannedUsers[key]; banned {
		return false, nil
	}
	s.doc.BannedUsers[key] = &entity.BanRecord{
		UserID:   userID,
		Reason:   reason,
		BannedBy: byAdminID,
		BannedAt: time.Now(),
	}
	if err := s.persist(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// Unban removes the ban record. Returns false when the user wasn't banned.
func (s *HabitStore) Unban(ctx context.Context, userID int64, byAdminID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := userKey(userID)
	if _, banned := s.doc.BannedUsers[key]; !banned {
		return false, nil
	}
	delete(s.doc.BannedUsers, key)
	if err := s.persist(ctx); err != nil {
		return true, err
	}
	return true, nil
}

func (s *HabitStore) IsBanned(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, banned := s.doc.BannedUsers[userKey(userID)]
	return banned
}

func (s *HabitStore) BanStatus(userID int64) (bool, *entity.BanRecord) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, banned := s.doc.BannedUsers[userKey(userID)]
	if !banned {
		return false, nil
	}
	r := *record
	return true, &r
}
