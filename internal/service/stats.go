package service

import (
	"time"

	"github.com/Sofya-Khabibulina/HabitTracker/pkg/entity"
)

// Statistics aggregates the whole dataset into one snapshot. Ties for the
// most popular frequency break deterministically in the enum's canonical
// order (daily, weekly, 3_times_week).
func (s *HabitStore) Statistics() entity.StatsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today := now.Format(entity.DateLayout)

	snapshot := entity.StatsSnapshot{
		TotalUsers:      len(s.doc.Users),
		TotalHabits:     len(s.doc.Habits),
		TotalCheckIns:   len(s.doc.CheckIns),
		BannedUsers:     len(s.doc.BannedUsers),
		TotalCommands:   s.doc.BotStats.TotalCommands,
		UsersByLanguage: make(map[string]int),
	}

	for _, user := range s.doc.Users {
		if !user.LastActive.Before(weekAgo) {
			snapshot.ActiveUsers7d++
		}
		if !user.CreatedAt.Before(todayStart) {
			snapshot.NewUsersToday++
		}
		lang := user.Language
		if lang == "" {
			lang = "en"
		}
		snapshot.UsersByLanguage[lang]++
	}

	frequencyCount := make(map[entity.Frequency]int)
	for _, habit := range s.doc.Habits {
		if habit.Active {
			snapshot.ActiveHabits++
			frequencyCount[habit.Frequency]++
		}
	}
	snapshot.MostPopularFrequency = entity.FrequencyDaily
	best := 0
	for _, freq := range entity.Frequencies {
		if frequencyCount[freq] > best {
			best = frequencyCount[freq]
			snapshot.MostPopularFrequency = freq
		}
	}

	for _, checkIn := range s.doc.CheckIns {
		if checkIn.Date == today {
			snapshot.CheckInsToday++
		}
	}

	users := snapshot.TotalUsers
	if users == 0 {
		users = 1
	}
	snapshot.AvgHabitsPerUser = float64(snapshot.ActiveHabits) / float64(users)
	return snapshot
}

// ActiveUsersForBroadcast lists users who aren't banned and were active in
// the last week.
func (s *HabitStore) ActiveUsersForBroadcast() []entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	weekAgo := time.Now().AddDate(0, 0, -7)
	users := make([]entity.User, 0)
	for key, user := range s.doc.Users {
		if _, banned := s.doc.BannedUsers[key]; banned {
			continue
		}
		if user.LastActive.Before(weekAgo) {
			continue
		}
		users = append(users, *user)
	}
	return users
}
