package repository

import (
	"time"

	"github.com/Sofya-Khabibulina/HabitTracker/pkg/entity"
)

// BotStats is the small counters block kept alongside the entity collections.
type BotStats struct {
	TotalCommands int       `json:"total_commands"`
	StartDate     time.Time `json:"start_date"`
}

// Document is the whole persisted dataset. It is read in full on startup
// and written in full on every mutation.
type Document struct {
	Users       map[string]*entity.User      `json:"users"`
	Habits      map[string]*entity.Habit     `json:"habits"`
	CheckIns    map[string]*entity.CheckIn   `json:"checkins"`
	BannedUsers map[string]*entity.BanRecord `json:"banned_users"`
	BotStats    BotStats                     `json:"bot_stats"`
}

func NewDocument() *Document {
	return &Document{
		Users:       make(map[string]*entity.User),
		Habits:      make(map[string]*entity.Habit),
		CheckIns:    make(map[string]*entity.CheckIn),
		BannedUsers: make(map[string]*entity.BanRecord),
		BotStats: BotStats{
			StartDate: time.Now(),
		},
	}
}

// normalize fills in maps that are missing from an older or hand-edited file.
func (d *Document) normalize() {
	if d.Users == nil {
		d.Users = make(map[string]*entity.User)
	}
	if d.Habits == nil {
		d.Habits = make(map[string]*entity.Habit)
	}
	if d.CheckIns == nil {
		d.CheckIns = make(map[string]*entity.CheckIn)
	}
	if d.BannedUsers == nil {
		d.BannedUsers = make(map[string]*entity.BanRecord)
	}
	if d.BotStats.StartDate.IsZero() {
		d.BotStats.StartDate = time.Now()
	}
}
