package services

import (
	"time"

	"github.com/alphabatem/common/context"
)

// Achievement describes one badge in the static catalog.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// AchievementSnapshot is the progress state the award rules read.
type AchievementSnapshot struct {
	WorkflowsCompleted int
	QuestionsAsked     int
	CurrentStreak      int
	ScenariosAced      int
	Earned             map[string]bool
}

// ActivityData carries the attributes of the activity that triggered a check.
type ActivityData struct {
	Score             int
	Completed         bool
	CompletionMinutes float64
}

var achievementCatalog = []Achievement{
	{ID: "first_steps", Title: "First Steps", Description: "Complete your first workflow", Icon: "trophy"},
	{ID: "curious_mind", Title: "Curious Mind", Description: "Ask 10 questions to the AI", Icon: "target"},
	{ID: "question_master", Title: "Question Master", Description: "Ask 50 questions", Icon: "brain"},
	{ID: "perfect_score", Title: "Perfect Score", Description: "Score 100% on any scenario", Icon: "star"},
	{ID: "scenario_ace", Title: "Scenario Ace", Description: "Complete 5 scenarios with high scores", Icon: "cards"},
	{ID: "week_warrior", Title: "Week Warrior", Description: "7-day learning streak", Icon: "fire"},
	{ID: "fast_learner", Title: "Fast Learner", Description: "Complete a workflow in under 20 minutes", Icon: "rocket"},
	{ID: "night_owl", Title: "Night Owl", Description: "Complete an activity between 12 AM and 5 AM", Icon: "owl"},
	{ID: "early_bird", Title: "Early Bird", Description: "Complete an activity between 5 AM and 8 AM", Icon: "sunrise"},
}

// AchievementService evaluates the award rules against a progress snapshot.
type AchievementService struct {
	context.DefaultService
}

const ACHIEVEMENT_SVC = "achievement_svc"

func (svc AchievementService) Id() string {
	return ACHIEVEMENT_SVC
}

func (svc *AchievementService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AchievementService) Start() error {
	return nil
}

// Catalog returns the full achievement list.
func (svc *AchievementService) Catalog() []Achievement {
	return achievementCatalog
}

// Lookup returns the catalog entry for id.
func (svc *AchievementService) Lookup(id string) (Achievement, bool) {
	for _, a := range achievementCatalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// CheckAchievements returns the achievements newly earned by an activity of
// activityType at now. Already-earned ids are never returned again.
func (svc *AchievementService) CheckAchievements(snapshot AchievementSnapshot, activityType string, data ActivityData, now time.Time) []Achievement {
	var newAchievements []Achievement

	award := func(id string) {
		if snapshot.Earned[id] {
			return
		}
		if a, ok := svc.Lookup(id); ok {
			snapshot.Earned[id] = true
			newAchievements = append(newAchievements, a)
		}
	}

	if snapshot.Earned == nil {
		snapshot.Earned = map[string]bool{}
	}

	hour := now.Hour()

	// Time based
	if hour >= 0 && hour < 5 {
		award("night_owl")
	}
	if hour >= 5 && hour < 8 {
		award("early_bird")
	}

	// Stats based
	if snapshot.WorkflowsCompleted >= 1 {
		award("first_steps")
	}
	if snapshot.QuestionsAsked >= 10 {
		award("curious_mind")
	}
	if snapshot.QuestionsAsked >= 50 {
		award("question_master")
	}
	if snapshot.CurrentStreak >= 7 {
		award("week_warrior")
	}
	if snapshot.ScenariosAced >= 5 {
		award("scenario_ace")
	}

	// Activity specific
	if activityType == "scenario" && data.Score == 100 {
		award("perfect_score")
	}
	if activityType == "workflow" && data.Completed && data.CompletionMinutes > 0 && data.CompletionMinutes < 20 {
		award("fast_learner")
	}

	return newAchievements
}
