package model

import "time"

type User struct {
	ID        string `json:"id" gorm:"primaryKey"`
	Email     string `json:"email" gorm:"unique;not null"`
	Name      string `json:"name" gorm:"not null"`
	Password  string `json:"-"`
	Role      string `json:"role" gorm:"default:user"` // user, admin
	LastLogin time.Time
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserStats keeps the mutable per-user counters that streaks and
// achievements read. One row per user.
type UserStats struct {
	ID               string     `json:"id" gorm:"primaryKey"`
	UserID           string     `json:"user_id" gorm:"uniqueIndex;not null"`
	TotalMinutes     int        `json:"total_minutes" gorm:"default:0"`
	CurrentStreak    int        `json:"current_streak" gorm:"default:0"`
	LastActivityDate *time.Time `json:"last_activity_date"`
	QuestionsAsked   int        `json:"questions_asked" gorm:"default:0"`
	ScenariosFailed  int        `json:"scenarios_failed" gorm:"default:0"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
