package services

import (
	"encoding/json"
	"testing"

	"github.com/sellerpath/lms_api/dto"
	"github.com/sellerpath/lms_api/model"
	"github.com/sellerpath/lms_api/services/repositories"
	"github.com/sellerpath/lms_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContentService(store *SqliteService) *ContentService {
	db := store.Db()
	return &ContentService{
		db:           store,
		streakSvc:    &StreakService{},
		achSvc:       &AchievementService{},
		userRepo:     repositories.NewUserRepository(db),
		contentRepo:  repositories.NewContentRepository(db),
		datasetRepo:  repositories.NewDatasetRepository(db),
		progressRepo: repositories.NewProgressRepository(db),
		convRepo:     repositories.NewConversationRepository(db),
	}
}

func seedModule(t *testing.T, store *SqliteService, id, category string) {
	t.Helper()
	_, err := repositories.NewContentRepository(store.Db()).CreateModule(&model.Module{
		ID:       id,
		Title:    "Module " + id,
		Category: category,
		IsActive: true,
	})
	require.NoError(t, err)
}

func TestCompleteModule_IsIdempotent(t *testing.T) {
	store := newTestStore(t)
	svc := newContentService(store)
	seedModule(t, store, "m1", "PPC")

	_, err := svc.CompleteModule("user-1", "m1")
	require.NoError(t, err)

	// The repeat call records nothing new.
	titles, err := svc.CompleteModule("user-1", "m1")
	require.NoError(t, err)
	assert.Empty(t, titles)

	completions, err := svc.progressRepo.GetModuleCompletions("user-1")
	require.NoError(t, err)
	assert.Len(t, completions, 1)

	stats, err := svc.userRepo.GetOrCreateStats("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CurrentStreak)
}

func TestCompleteModule_UnknownModule(t *testing.T) {
	store := newTestStore(t)
	svc := newContentService(store)

	_, err := svc.CompleteModule("user-1", "missing")
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestGetModules_MergesCompletions(t *testing.T) {
	store := newTestStore(t)
	svc := newContentService(store)
	seedModule(t, store, "m1", "PPC")
	seedModule(t, store, "m2", "Listing")

	_, err := svc.CompleteModule("user-1", "m1")
	require.NoError(t, err)

	items, err := svc.GetModules("user-1")
	require.NoError(t, err)
	require.Len(t, items, 2)

	byID := map[string]dto.ModuleListItem{}
	for _, item := range items {
		byID[item.ID] = item
	}
	assert.True(t, byID["m1"].Completed)
	assert.False(t, byID["m2"].Completed)
}

func TestCategories_Distinct(t *testing.T) {
	store := newTestStore(t)
	svc := newContentService(store)
	seedModule(t, store, "m1", "PPC")
	seedModule(t, store, "m2", "PPC")
	seedModule(t, store, "m3", "Listing")

	categories, err := svc.Categories()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"PPC", "Listing"}, categories)
}

func TestCreateWorkflow_RequiresSteps(t *testing.T) {
	store := newTestStore(t)
	svc := newContentService(store)

	_, err := svc.CreateWorkflow(dto.CreateWorkflowRequest{
		Title: "Empty",
		Steps: json.RawMessage("[]"),
	})
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)

	_, err = svc.CreateWorkflow(dto.CreateWorkflowRequest{
		Title: "Bad",
		Steps: json.RawMessage("not json"),
	})
	require.Error(t, err)
}

func TestDeleteWorkflow_SoftDeletes(t *testing.T) {
	store := newTestStore(t)
	svc := newContentService(store)
	seedWorkflow(t, store, "wf1", 2)

	require.NoError(t, svc.DeleteWorkflow("wf1"))

	_, err := svc.contentRepo.GetWorkflow("wf1")
	assert.Error(t, err)

	// Deleting twice reports not found.
	err = svc.DeleteWorkflow("wf1")
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestSystemStats_CountsEntities(t *testing.T) {
	store := newTestStore(t)
	svc := newContentService(store)
	seedUser(t, store, "user-1")
	seedModule(t, store, "m1", "PPC")
	seedWorkflow(t, store, "wf1", 2)
	seedScenario(t, store, "s1", "PPC")

	stats, err := svc.SystemStats()
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.Users)
	assert.Equal(t, int64(1), stats.Modules)
	assert.Equal(t, int64(1), stats.Workflows)
	assert.Equal(t, int64(1), stats.Scenarios)
	assert.Equal(t, int64(0), stats.Datasets)
	assert.Equal(t, int64(0), stats.Conversations)
}
