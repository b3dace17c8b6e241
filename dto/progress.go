package dto

import "time"

// ==================== PROGRESS DTOs ====================

type ProgressResponse struct {
	ModulesCompleted   int                 `json:"modules_completed"`
	WorkflowsCompleted int                 `json:"workflows_completed"`
	ScenariosSolved    int                 `json:"scenarios_solved"`
	AverageScore       int                 `json:"average_score"`
	TotalMinutes       int                 `json:"total_minutes"`
	CurrentStreak      int                 `json:"current_streak"`
	QuestionsAsked     int                 `json:"questions_asked"`
	CategoryBreakdown  map[string]int      `json:"category_breakdown"`
	Achievements       []AchievementView   `json:"achievements"`
	ActivityFeed       []ActivityFeedEntry `json:"activity_feed"`
}

type AchievementView struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Earned      bool       `json:"earned"`
	EarnedAt    *time.Time `json:"earned_at,omitempty"`
}

type ActivityFeedEntry struct {
	Type      string    `json:"type"`
	RefID     string    `json:"ref_id,omitempty"`
	Title     string    `json:"title"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
