package services

import (
	"testing"

	"github.com/sellerpath/lms_api/model"
	"github.com/sellerpath/lms_api/services/repositories"
	"github.com/sellerpath/lms_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgressService(store *SqliteService) *ProgressService {
	db := store.Db()
	return &ProgressService{
		db:             store,
		achievementSvc: &AchievementService{},
		userRepo:       repositories.NewUserRepository(db),
		contentRepo:    repositories.NewContentRepository(db),
		progressRepo:   repositories.NewProgressRepository(db),
	}
}

func seedUser(t *testing.T, store *SqliteService, id string) {
	t.Helper()
	_, err := repositories.NewUserRepository(store.Db()).CreateUser(&model.User{
		ID:    id,
		Email: id + "@example.com",
		Name:  "Test User",
		Role:  shared.RoleUser,
	})
	require.NoError(t, err)
}

func seedScenario(t *testing.T, store *SqliteService, id, category string) {
	t.Helper()
	_, err := repositories.NewContentRepository(store.Db()).CreateScenario(&model.Scenario{
		ID:       id,
		Title:    "Test Scenario",
		Category: category,
		IsActive: true,
	})
	require.NoError(t, err)
}

func seedAttempt(t *testing.T, store *SqliteService, userID, scenarioID string, score int) {
	t.Helper()
	err := repositories.NewProgressRepository(store.Db()).CreateScenarioAttempt(&model.ScenarioAttempt{
		UserID:     userID,
		ScenarioID: scenarioID,
		Answer:     "answer",
		Score:      score,
		IsCorrect:  score > 70,
	})
	require.NoError(t, err)
}

func TestGetProgress_BestScorePerScenario(t *testing.T) {
	store := newTestStore(t)
	svc := newProgressService(store)
	seedUser(t, store, "user-1")
	seedScenario(t, store, "s1", "PPC")
	seedScenario(t, store, "s2", "PPC")
	seedAttempt(t, store, "user-1", "s1", 70)
	seedAttempt(t, store, "user-1", "s1", 90)
	seedAttempt(t, store, "user-1", "s2", 50)

	resp, err := svc.GetProgress("user-1", shared.RoleUser, "")
	require.NoError(t, err)

	// Best of 90 and 50, not all three attempts.
	assert.Equal(t, 2, resp.ScenariosSolved)
	assert.Equal(t, 70, resp.AverageScore)
	assert.Equal(t, 70, resp.CategoryBreakdown["PPC"])
}

func TestGetProgress_UntouchedCategoriesAppearAtZero(t *testing.T) {
	store := newTestStore(t)
	svc := newProgressService(store)
	seedUser(t, store, "user-1")
	seedScenario(t, store, "s1", "PPC")
	seedAttempt(t, store, "user-1", "s1", 80)

	_, err := repositories.NewContentRepository(store.Db()).CreateModule(&model.Module{
		ID:       "m1",
		Title:    "Listing Basics",
		Category: "Listing",
		IsActive: true,
	})
	require.NoError(t, err)

	resp, err := svc.GetProgress("user-1", shared.RoleUser, "")
	require.NoError(t, err)

	assert.Equal(t, 80, resp.CategoryBreakdown["PPC"])
	assert.Equal(t, 0, resp.CategoryBreakdown["Listing"])
}

func TestGetProgress_CompletionsCountAsHundred(t *testing.T) {
	store := newTestStore(t)
	svc := newProgressService(store)
	seedUser(t, store, "user-1")

	contentRepo := repositories.NewContentRepository(store.Db())
	progressRepo := repositories.NewProgressRepository(store.Db())

	_, err := contentRepo.CreateModule(&model.Module{
		ID: "m1", Title: "Module", Category: "Listing", EstimatedTime: 10, IsActive: true,
	})
	require.NoError(t, err)
	inserted, err := progressRepo.CompleteModule("user-1", "m1")
	require.NoError(t, err)
	require.True(t, inserted)

	resp, err := svc.GetProgress("user-1", shared.RoleUser, "")
	require.NoError(t, err)

	assert.Equal(t, 1, resp.ModulesCompleted)
	assert.Equal(t, 100, resp.CategoryBreakdown["Listing"])
	// 5 minutes per completed module.
	assert.Equal(t, 5, resp.TotalMinutes)
}

func TestGetProgress_TimeInvested(t *testing.T) {
	store := newTestStore(t)
	svc := newProgressService(store)
	seedUser(t, store, "user-1")
	seedScenario(t, store, "s1", "PPC")
	seedScenario(t, store, "s2", "PPC")
	seedAttempt(t, store, "user-1", "s1", 60)
	seedAttempt(t, store, "user-1", "s2", 60)

	seedWorkflow(t, store, "wf1", 2)
	progressRepo := repositories.NewProgressRepository(store.Db())
	inserted, err := progressRepo.CompleteWorkflow("user-1", "wf1")
	require.NoError(t, err)
	require.True(t, inserted)

	resp, err := svc.GetProgress("user-1", shared.RoleUser, "")
	require.NoError(t, err)

	// Half the 60 minute workflow estimate plus 8 per unique scenario.
	assert.Equal(t, 30+16, resp.TotalMinutes)
	assert.Equal(t, 1, resp.WorkflowsCompleted)
}

func TestGetProgress_EmptyStateFallsBackToGeneral(t *testing.T) {
	store := newTestStore(t)
	svc := newProgressService(store)
	seedUser(t, store, "user-1")

	resp, err := svc.GetProgress("user-1", shared.RoleUser, "")
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"General": 0}, resp.CategoryBreakdown)
	assert.Equal(t, 0, resp.ScenariosSolved)
	assert.Equal(t, 0, resp.AverageScore)
	assert.Len(t, resp.Achievements, 9)
	for _, a := range resp.Achievements {
		assert.False(t, a.Earned)
	}
}

func TestGetProgress_AccessControl(t *testing.T) {
	store := newTestStore(t)
	svc := newProgressService(store)
	seedUser(t, store, "user-1")
	seedUser(t, store, "user-2")

	_, err := svc.GetProgress("user-1", shared.RoleUser, "user-2")
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.StatusCode)
	assert.Equal(t, "Not authorized", appErr.Message)

	_, err = svc.GetProgress("admin-1", shared.RoleAdmin, "user-2")
	require.NoError(t, err)
}

func TestGetProgress_UnknownUser(t *testing.T) {
	store := newTestStore(t)
	svc := newProgressService(store)

	_, err := svc.GetProgress("missing", shared.RoleUser, "")
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestGetProgress_DeletedScenarioAttemptsIgnored(t *testing.T) {
	store := newTestStore(t)
	svc := newProgressService(store)
	seedUser(t, store, "user-1")
	seedScenario(t, store, "s1", "PPC")
	seedAttempt(t, store, "user-1", "s1", 90)
	seedAttempt(t, store, "user-1", "gone", 100)

	resp, err := svc.GetProgress("user-1", shared.RoleUser, "")
	require.NoError(t, err)

	assert.Equal(t, 1, resp.ScenariosSolved)
	assert.Equal(t, 90, resp.AverageScore)
}
