package model

import (
	"encoding/json"
	"time"
)

// Module represents a self-contained learning unit
type Module struct {
	ID            string          `json:"id" gorm:"primaryKey"`
	Title         string          `json:"title" gorm:"not null"`
	Description   string          `json:"description" gorm:"type:text"`
	Category      string          `json:"category" gorm:"default:General"`
	Difficulty    string          `json:"difficulty" gorm:"default:beginner"` // beginner, intermediate, advanced
	EstimatedTime int             `json:"estimated_time" gorm:"default:30"`  // in minutes
	Order         int             `json:"order" gorm:"default:0"`
	Content       json.RawMessage `json:"content" gorm:"type:text"` // JSON sections
	IsActive      bool            `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Workflow represents a multi-step guided exercise
type Workflow struct {
	ID            string          `json:"id" gorm:"primaryKey"`
	Title         string          `json:"title" gorm:"not null"`
	Description   string          `json:"description" gorm:"type:text"`
	Category      string          `json:"category" gorm:"default:General"`
	Difficulty    string          `json:"difficulty" gorm:"default:beginner"`
	EstimatedTime int             `json:"estimated_time" gorm:"default:30"` // in minutes
	Steps         json.RawMessage `json:"steps" gorm:"type:text"`           // JSON array of WorkflowStep
	IsActive      bool            `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// WorkflowStep is one entry of Workflow.Steps
type WorkflowStep struct {
	Title         string `json:"title"`
	Instruction   string `json:"instruction"`
	ToolReference string `json:"tool_reference"` // pi, helium10, adsLibrary, none
	InputPrompt   string `json:"input_prompt,omitempty"`
	ExpectedInput string `json:"expected_input,omitempty"`
}

// Scenario represents a scored simulation exercise
type Scenario struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	Title       string          `json:"title" gorm:"not null"`
	Description string          `json:"description" gorm:"type:text"`
	Category    string          `json:"category" gorm:"default:General"`
	Difficulty  string          `json:"difficulty" gorm:"default:beginner"`
	Context     json.RawMessage `json:"context" gorm:"type:text"`   // ScenarioContext
	Questions   json.RawMessage `json:"questions" gorm:"type:text"` // JSON array of ScenarioQuestion
	IdealAnswer string          `json:"ideal_answer" gorm:"type:text"`
	Rubric      string          `json:"rubric" gorm:"type:text"`
	IsActive    bool            `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ScenarioContext bundles the market data a scenario presents to the
// learner. Only the slots relevant to the scenario are populated.
type ScenarioContext struct {
	Situation      string          `json:"situation,omitempty"`
	PiData         json.RawMessage `json:"pi_data,omitempty"`
	Helium10Data   json.RawMessage `json:"helium10_data,omitempty"`
	AdsLibraryData json.RawMessage `json:"ads_library_data,omitempty"`
	MarketData     json.RawMessage `json:"market_data,omitempty"`
	InternalAudit  json.RawMessage `json:"internal_audit,omitempty"`
	Metrics        json.RawMessage `json:"metrics,omitempty"`
}

// ScenarioQuestion is one entry of Scenario.Questions
type ScenarioQuestion struct {
	Text    string                   `json:"text"`
	Options []ScenarioQuestionOption `json:"options,omitempty"`
}

type ScenarioQuestionOption struct {
	Text        string `json:"text"`
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation,omitempty"`
}

// Dataset holds seeded market-intelligence records used for chat retrieval
type Dataset struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	Type        string          `json:"type" gorm:"index;not null"` // pi, helium10, adsLibrary
	Category    string          `json:"category" gorm:"default:General"`
	Data        json.RawMessage `json:"data" gorm:"type:text"`
	Description string          `json:"description" gorm:"type:text"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
