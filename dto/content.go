package dto

import (
	"encoding/json"
	"time"
)

// ==================== MODULE DTOs ====================

type ModuleListItem struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Difficulty    string    `json:"difficulty"`
	EstimatedTime int       `json:"estimated_time"`
	Order         int       `json:"order"`
	Completed     bool      `json:"completed"`
	CompletedAt   time.Time `json:"completed_at,omitempty"`
}

type ModuleDetailResponse struct {
	ModuleListItem
	Content json.RawMessage `json:"content"`
}

type CompleteModuleRequest struct {
	ModuleID string `json:"module_id" validate:"required"`
}

func (c CompleteModuleRequest) Validate() error {
	return GetValidator().Struct(c)
}

type CreateModuleRequest struct {
	Title         string          `json:"title" validate:"required,max=200"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Difficulty    string          `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	EstimatedTime int             `json:"estimated_time" validate:"omitempty,min=1"`
	Order         int             `json:"order"`
	Content       json.RawMessage `json:"content"`
}

func (c CreateModuleRequest) Validate() error {
	return GetValidator().Struct(c)
}

// ==================== WORKFLOW DTOs ====================

type WorkflowStepView struct {
	Title         string `json:"title"`
	Instruction   string `json:"instruction"`
	ToolReference string `json:"tool_reference"`
	InputPrompt   string `json:"input_prompt,omitempty"`
}

type WorkflowListItem struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	Difficulty      string  `json:"difficulty"`
	EstimatedTime   int     `json:"estimated_time"`
	TotalSteps      int     `json:"total_steps"`
	CurrentStep     int     `json:"current_step"`
	ProgressPercent float64 `json:"progress_percent"`
	Completed       bool    `json:"completed"`
}

type WorkflowDetailResponse struct {
	WorkflowListItem
	Steps       []WorkflowStepView `json:"steps"`
	StepHistory json.RawMessage    `json:"step_history,omitempty"`
}

type AdvanceWorkflowRequest struct {
	WorkflowID string `json:"workflow_id" validate:"required"`
	StepIndex  int    `json:"step_index" validate:"min=0"`
	Input      string `json:"input"`
	Complete   bool   `json:"complete"`
}

func (a AdvanceWorkflowRequest) Validate() error {
	return GetValidator().Struct(a)
}

type WorkflowStateResponse struct {
	WorkflowID      string          `json:"workflow_id"`
	Status          string          `json:"status"` // not_started, in_progress, completed
	CurrentStep     int             `json:"current_step"`
	TotalSteps      int             `json:"total_steps"`
	ProgressPercent float64         `json:"progress_percent"`
	StepHistory     json.RawMessage `json:"step_history,omitempty"`
	NewAchievements []string        `json:"new_achievements,omitempty"`
}

type WorkflowHintRequest struct {
	WorkflowID string `json:"workflow_id" validate:"required"`
	StepIndex  int    `json:"step_index" validate:"min=0"`
	Question   string `json:"question"`
}

func (w WorkflowHintRequest) Validate() error {
	return GetValidator().Struct(w)
}

type WorkflowHintResponse struct {
	Hint string `json:"hint"`
}

type CreateWorkflowRequest struct {
	Title         string          `json:"title" validate:"required,max=200"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Difficulty    string          `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	EstimatedTime int             `json:"estimated_time" validate:"omitempty,min=1"`
	Steps         json.RawMessage `json:"steps" validate:"required"`
}

func (c CreateWorkflowRequest) Validate() error {
	return GetValidator().Struct(c)
}

// ==================== SCENARIO DTOs ====================

type ScenarioListItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	Attempts    int    `json:"attempts"`
	BestScore   int    `json:"best_score"`
	Solved      bool   `json:"solved"`
}

type ScenarioDetailResponse struct {
	ScenarioListItem
	Context   json.RawMessage `json:"context"`
	Questions json.RawMessage `json:"questions"`
}

type SubmitScenarioRequest struct {
	ScenarioID string `json:"scenario_id" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
}

func (s SubmitScenarioRequest) Validate() error {
	return GetValidator().Struct(s)
}

type SubmitScenarioResponse struct {
	Score           int      `json:"score"`
	IsCorrect       bool     `json:"is_correct"`
	Feedback        string   `json:"feedback"`
	Attempts        int      `json:"attempts"`
	BestScore       int      `json:"best_score"`
	NewAchievements []string `json:"new_achievements,omitempty"`
}

type CreateScenarioRequest struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Difficulty  string          `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Context     json.RawMessage `json:"context"`
	Questions   json.RawMessage `json:"questions"`
	IdealAnswer string          `json:"ideal_answer"`
	Rubric      string          `json:"rubric"`
}

func (c CreateScenarioRequest) Validate() error {
	return GetValidator().Struct(c)
}

// ==================== DATASET DTOs ====================

type UploadDatasetRequest struct {
	Type        string          `json:"type" validate:"required,oneof=pi helium10 adsLibrary"`
	Category    string          `json:"category"`
	Data        json.RawMessage `json:"data" validate:"required"`
	Description string          `json:"description"`
}

func (u UploadDatasetRequest) Validate() error {
	return GetValidator().Struct(u)
}

type SystemStatsResponse struct {
	Users         int64 `json:"users"`
	Modules       int64 `json:"modules"`
	Workflows     int64 `json:"workflows"`
	Scenarios     int64 `json:"scenarios"`
	Datasets      int64 `json:"datasets"`
	Conversations int64 `json:"conversations"`
}
