package service

import (
	"context"
	"time"

	"github.com/Sofya-Khabibulina/HabitTracker/pkg/entity"
)

// HabitStoreI is the full store surface consumed by the handler layers.
type HabitStoreI interface {
	// Creates the user on first contact, sets language and stamps activity
	UpsertUserLanguage(ctx context.Context, userID int64, lang string) error
	// Stamps last-activity; no-op for unknown users
	TouchActivity(ctx context.Context, userID int64) error
	GetUser(userID int64) (*entity.User, error)
	IncrementCommandCount(ctx context.Context) error

	CreateHabit(ctx context.Context, userID int64, name, frequency string) (string, error)
	ListHabits(userID int64) []*entity.Habit
	GetHabit(userID int64, habitID string) (*entity.Habit, error)
	SoftDeleteHabit(ctx context.Context, userID int64, habitID string) (bool, error)

	RecordCheckIn(ctx context.Context, userID int64, habitID string, today time.Time) (bool, error)
	HasCheckedInToday(userID int64, habitID string, today time.Time) bool
	CurrentStreak(userID int64, habitID string, today time.Time) int
	TotalCheckIns(userID int64, habitID string) int

	Ban(ctx context.Context, userID int64, reason string, byAdminID int64) (bool, error)
	Unban(ctx context.Context, userID int64, byAdminID int64) (bool, error)
	IsBanned(userID int64) bool
	BanStatus(userID int64) (bool, *entity.BanRecord)

	Statistics() entity.StatsSnapshot
	ActiveUsersForBroadcast() []entity.User
}

// HabitCreator is the slice of the store the creation wizard needs.
type HabitCreator interface {
	CreateHabit(ctx context.Context, userID int64, name, frequency string) (string, error)
}
