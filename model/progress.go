package model

import (
	"encoding/json"
	"time"
)

// ModuleCompletion records a finished module. One row per user+module.
type ModuleCompletion struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"index:idx_module_completion,unique;not null"`
	ModuleID    string    `json:"module_id" gorm:"index:idx_module_completion,unique;not null"`
	CompletedAt time.Time `json:"completed_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// WorkflowCompletion records a finished workflow. One row per user+workflow.
type WorkflowCompletion struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"index:idx_workflow_completion,unique;not null"`
	WorkflowID  string    `json:"workflow_id" gorm:"index:idx_workflow_completion,unique;not null"`
	CompletedAt time.Time `json:"completed_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// ActiveWorkflow tracks an in-progress workflow run and its step history
type ActiveWorkflow struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	UserID      string          `json:"user_id" gorm:"index:idx_active_workflow,unique;not null"`
	WorkflowID  string          `json:"workflow_id" gorm:"index:idx_active_workflow,unique;not null"`
	CurrentStep int             `json:"current_step" gorm:"default:0"`
	StepHistory json.RawMessage `json:"step_history" gorm:"type:text"` // JSON array of StepHistoryEntry
	StartedAt   time.Time       `json:"started_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StepHistoryEntry is one entry of ActiveWorkflow.StepHistory
type StepHistoryEntry struct {
	Step        int       `json:"step"`
	Input       string    `json:"input"`
	Feedback    string    `json:"feedback"`
	CompletedAt time.Time `json:"completed_at"`
}

// ScenarioAttempt is an append-only record of a scored submission
type ScenarioAttempt struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"index;not null"`
	ScenarioID string    `json:"scenario_id" gorm:"index;not null"`
	Answer     string    `json:"answer" gorm:"type:text"`
	Score      int       `json:"score" gorm:"not null"`
	IsCorrect  bool      `json:"is_correct" gorm:"not null"`
	Feedback   string    `json:"feedback" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
}

// ActivityLogEntry is an append-only feed of user activity
type ActivityLogEntry struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	Type      string    `json:"type" gorm:"not null"` // module, workflow, scenario, achievement, chat
	RefID     string    `json:"ref_id"`
	Title     string    `json:"title"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// UserAchievement tracks which achievements users have earned
type UserAchievement struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"index:idx_user_achievement,unique;not null"`
	AchievementID string    `json:"achievement_id" gorm:"index:idx_user_achievement,unique;not null"`
	EarnedAt      time.Time `json:"earned_at"`
	CreatedAt     time.Time `json:"created_at"`
}
