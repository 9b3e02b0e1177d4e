package entity

import (
	"time"
)

// Frequency is the closed set of habit schedules a user can pick.
type Frequency string

const (
	FrequencyDaily          Frequency = "daily"
	FrequencyWeekly         Frequency = "weekly"
	FrequencyThreeTimesWeek Frequency = "3_times_week"
)

// Frequencies lists all valid values in canonical order.
var Frequencies = []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyThreeTimesWeek}

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyThreeTimesWeek:
		return true
	}
	return false
}

// DateLayout is the calendar-date format used in check-in keys.
const DateLayout = "2006-01-02"

type User struct {
	ID         int64     `json:"user_id"`
	Language   string    `json:"language"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
}

type Habit struct {
	ID        string     `json:"id"`
	UserID    int64      `json:"user_id"`
	Name      string     `json:"name"`
	Frequency Frequency  `json:"frequency"`
	CreatedAt time.Time  `json:"created_at"`
	Active    bool       `json:"active"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// CheckIn records that a habit was performed on a calendar date.
// ID is "<habitID>_<date>", so there is at most one per habit per day.
type CheckIn struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	HabitID   string    `json:"habit_id"`
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}

func CheckInID(habitID string, day time.Time) string {
	return habitID + "_" + day.Format(DateLayout)
}

type BanRecord struct {
	UserID   int64     `json:"user_id"`
	Reason   string    `json:"reason"`
	BannedBy int64     `json:"banned_by"`
	BannedAt time.Time `json:"banned_at"`
}

type StatsSnapshot struct {
	TotalUsers           int            `json:"total_users"`
	ActiveUsers7d        int            `json:"active_users_7d"`
	NewUsersToday        int            `json:"new_users_today"`
	UsersByLanguage      map[string]int `json:"users_by_language"`
	TotalHabits          int            `json:"total_habits"`
	ActiveHabits         int            `json:"active_habits"`
	MostPopularFrequency Frequency      `json:"most_popular_frequency"`
	TotalCheckIns        int            `json:"total_checkins"`
	CheckInsToday        int            `json:"checkins_today"`
	AvgHabitsPerUser     float64        `json:"avg_habits_per_user"`
	BannedUsers          int            `json:"banned_users"`
	TotalCommands        int            `json:"total_commands"`
}
