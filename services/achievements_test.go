package services

import (
	"testing"
	"time"

	"github.com/sellerpath/lms_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// afternoon avoids the night_owl and early_bird windows.
var afternoon = time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

func achievementIDs(achievements []Achievement) []string {
	ids := make([]string, 0, len(achievements))
	for _, a := range achievements {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestCatalog_ContainsAllBadges(t *testing.T) {
	svc := &AchievementService{}

	catalog := svc.Catalog()
	assert.Len(t, catalog, 9)

	a, ok := svc.Lookup("week_warrior")
	require.True(t, ok)
	assert.Equal(t, "Week Warrior", a.Title)

	_, ok = svc.Lookup("does_not_exist")
	assert.False(t, ok)
}

func TestCheckAchievements_FirstWorkflow(t *testing.T) {
	svc := &AchievementService{}

	earned := svc.CheckAchievements(AchievementSnapshot{
		WorkflowsCompleted: 1,
		Earned:             map[string]bool{},
	}, shared.ActivityWorkflow, ActivityData{Completed: true, CompletionMinutes: 45}, afternoon)

	assert.Equal(t, []string{"first_steps"}, achievementIDs(earned))
}

func TestCheckAchievements_QuestionThresholds(t *testing.T) {
	svc := &AchievementService{}

	earned := svc.CheckAchievements(AchievementSnapshot{
		QuestionsAsked: 10,
		Earned:         map[string]bool{},
	}, shared.ActivityChat, ActivityData{}, afternoon)
	assert.Equal(t, []string{"curious_mind"}, achievementIDs(earned))

	earned = svc.CheckAchievements(AchievementSnapshot{
		QuestionsAsked: 50,
		Earned:         map[string]bool{},
	}, shared.ActivityChat, ActivityData{}, afternoon)
	assert.ElementsMatch(t, []string{"curious_mind", "question_master"}, achievementIDs(earned))
}

func TestCheckAchievements_EarnedSetSuppressesRepeats(t *testing.T) {
	svc := &AchievementService{}

	earned := svc.CheckAchievements(AchievementSnapshot{
		QuestionsAsked: 25,
		Earned:         map[string]bool{"curious_mind": true},
	}, shared.ActivityChat, ActivityData{}, afternoon)

	assert.Empty(t, earned)
}

func TestCheckAchievements_StreakAndAced(t *testing.T) {
	svc := &AchievementService{}

	earned := svc.CheckAchievements(AchievementSnapshot{
		CurrentStreak: 7,
		ScenariosAced: 5,
		Earned:        map[string]bool{},
	}, shared.ActivityScenario, ActivityData{Score: 85}, afternoon)

	assert.ElementsMatch(t, []string{"week_warrior", "scenario_ace"}, achievementIDs(earned))
}

func TestCheckAchievements_PerfectScore(t *testing.T) {
	svc := &AchievementService{}

	earned := svc.CheckAchievements(AchievementSnapshot{
		Earned: map[string]bool{},
	}, shared.ActivityScenario, ActivityData{Score: 100}, afternoon)
	assert.Equal(t, []string{"perfect_score"}, achievementIDs(earned))

	earned = svc.CheckAchievements(AchievementSnapshot{
		Earned: map[string]bool{},
	}, shared.ActivityScenario, ActivityData{Score: 99}, afternoon)
	assert.Empty(t, earned)

	// Score only counts on scenario activity.
	earned = svc.CheckAchievements(AchievementSnapshot{
		Earned: map[string]bool{},
	}, shared.ActivityChat, ActivityData{Score: 100}, afternoon)
	assert.Empty(t, earned)
}

func TestCheckAchievements_FastLearner(t *testing.T) {
	svc := &AchievementService{}

	earned := svc.CheckAchievements(AchievementSnapshot{
		Earned: map[string]bool{"first_steps": true},
	}, shared.ActivityWorkflow, ActivityData{Completed: true, CompletionMinutes: 12}, afternoon)
	assert.Equal(t, []string{"fast_learner"}, achievementIDs(earned))

	earned = svc.CheckAchievements(AchievementSnapshot{
		Earned: map[string]bool{"first_steps": true},
	}, shared.ActivityWorkflow, ActivityData{Completed: true, CompletionMinutes: 25}, afternoon)
	assert.Empty(t, earned)

	// An abandoned run never counts, however fast.
	earned = svc.CheckAchievements(AchievementSnapshot{
		Earned: map[string]bool{"first_steps": true},
	}, shared.ActivityWorkflow, ActivityData{Completed: false, CompletionMinutes: 5}, afternoon)
	assert.Empty(t, earned)
}

func TestCheckAchievements_TimeOfDayWindows(t *testing.T) {
	svc := &AchievementService{}

	night := time.Date(2025, 3, 10, 2, 30, 0, 0, time.UTC)
	earned := svc.CheckAchievements(AchievementSnapshot{
		Earned: map[string]bool{},
	}, shared.ActivityChat, ActivityData{}, night)
	assert.Equal(t, []string{"night_owl"}, achievementIDs(earned))

	dawn := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	earned = svc.CheckAchievements(AchievementSnapshot{
		Earned: map[string]bool{},
	}, shared.ActivityChat, ActivityData{}, dawn)
	assert.Equal(t, []string{"early_bird"}, achievementIDs(earned))

	// Boundaries: 5 AM belongs to early_bird, 8 AM to neither.
	five := time.Date(2025, 3, 10, 5, 0, 0, 0, time.UTC)
	earned = svc.CheckAchievements(AchievementSnapshot{
		Earned: map[string]bool{},
	}, shared.ActivityChat, ActivityData{}, five)
	assert.Equal(t, []string{"early_bird"}, achievementIDs(earned))

	eight := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	earned = svc.CheckAchievements(AchievementSnapshot{
		Earned: map[string]bool{},
	}, shared.ActivityChat, ActivityData{}, eight)
	assert.Empty(t, earned)
}
