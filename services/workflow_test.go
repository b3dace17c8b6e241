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

func newWorkflowService(store *SqliteService) *WorkflowService {
	db := store.Db()
	return &WorkflowService{
		db:           store,
		streakSvc:    &StreakService{},
		achSvc:       &AchievementService{},
		userRepo:     repositories.NewUserRepository(db),
		contentRepo:  repositories.NewContentRepository(db),
		progressRepo: repositories.NewProgressRepository(db),
	}
}

func seedWorkflow(t *testing.T, store *SqliteService, id string, stepCount int) *model.Workflow {
	t.Helper()

	steps := make([]model.WorkflowStep, 0, stepCount)
	for i := 0; i < stepCount; i++ {
		steps = append(steps, model.WorkflowStep{
			Title:       "Step",
			Instruction: "Do the thing",
			InputPrompt: "What did you do",
		})
	}
	encoded, err := json.Marshal(steps)
	require.NoError(t, err)

	workflow, err := repositories.NewContentRepository(store.Db()).CreateWorkflow(&model.Workflow{
		ID:            id,
		Title:         "Test Workflow",
		Category:      "PPC",
		EstimatedTime: 60,
		Steps:         encoded,
		IsActive:      true,
	})
	require.NoError(t, err)
	return workflow
}

func TestAdvance_CreatesRunAndTracksProgress(t *testing.T) {
	store := newTestStore(t)
	svc := newWorkflowService(store)
	seedWorkflow(t, store, "wf_test", 2)

	state, err := svc.Advance("user-1", dto.AdvanceWorkflowRequest{
		WorkflowID: "wf_test",
		StepIndex:  0,
		Input:      "done with step one",
	})
	require.NoError(t, err)

	assert.Equal(t, WorkflowStatusInProgress, state.Status)
	assert.Equal(t, 1, state.CurrentStep)
	assert.Equal(t, 2, state.TotalSteps)
	assert.Equal(t, 50.0, state.ProgressPercent)

	active, err := svc.progressRepo.GetActiveWorkflow("user-1", "wf_test")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, 1, active.CurrentStep)

	var history []model.StepHistoryEntry
	require.NoError(t, json.Unmarshal(active.StepHistory, &history))
	require.Len(t, history, 1)
	assert.Equal(t, "done with step one", history[0].Input)

	stats, err := svc.userRepo.GetOrCreateStats("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.NotNil(t, stats.LastActivityDate)
}

func TestAdvance_LastStepCompletesOnce(t *testing.T) {
	store := newTestStore(t)
	svc := newWorkflowService(store)
	seedWorkflow(t, store, "wf_test", 2)

	_, err := svc.Advance("user-1", dto.AdvanceWorkflowRequest{WorkflowID: "wf_test", StepIndex: 0, Input: "a"})
	require.NoError(t, err)

	state, err := svc.Advance("user-1", dto.AdvanceWorkflowRequest{WorkflowID: "wf_test", StepIndex: 1, Input: "b"})
	require.NoError(t, err)

	assert.Equal(t, WorkflowStatusCompleted, state.Status)
	assert.Equal(t, 2, state.CurrentStep)
	assert.Equal(t, 100.0, state.ProgressPercent)
	assert.Contains(t, state.NewAchievements, "First Steps")

	completions, err := svc.progressRepo.GetWorkflowCompletions("user-1")
	require.NoError(t, err)
	assert.Len(t, completions, 1)
}

func TestAdvance_CompletedWorkflowIsTerminal(t *testing.T) {
	store := newTestStore(t)
	svc := newWorkflowService(store)
	seedWorkflow(t, store, "wf_test", 2)

	_, err := svc.Advance("user-1", dto.AdvanceWorkflowRequest{WorkflowID: "wf_test", StepIndex: 0, Input: "a"})
	require.NoError(t, err)
	_, err = svc.Advance("user-1", dto.AdvanceWorkflowRequest{WorkflowID: "wf_test", StepIndex: 1, Input: "b"})
	require.NoError(t, err)

	state, err := svc.Advance("user-1", dto.AdvanceWorkflowRequest{WorkflowID: "wf_test", StepIndex: 0, Input: "again"})
	require.NoError(t, err)

	assert.Equal(t, WorkflowStatusCompleted, state.Status)
	assert.Equal(t, 2, state.CurrentStep)
	assert.Empty(t, state.NewAchievements)

	completions, err := svc.progressRepo.GetWorkflowCompletions("user-1")
	require.NoError(t, err)
	assert.Len(t, completions, 1)

	// History is untouched by the replay.
	active, err := svc.progressRepo.GetActiveWorkflow("user-1", "wf_test")
	require.NoError(t, err)
	require.NotNil(t, active)
	var history []model.StepHistoryEntry
	require.NoError(t, json.Unmarshal(active.StepHistory, &history))
	assert.Len(t, history, 2)
}

func TestAdvance_ExplicitCompleteFlag(t *testing.T) {
	store := newTestStore(t)
	svc := newWorkflowService(store)
	seedWorkflow(t, store, "wf_test", 3)

	state, err := svc.Advance("user-1", dto.AdvanceWorkflowRequest{
		WorkflowID: "wf_test",
		StepIndex:  0,
		Input:      "skipping ahead",
		Complete:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, WorkflowStatusCompleted, state.Status)

	completions, err := svc.progressRepo.GetWorkflowCompletions("user-1")
	require.NoError(t, err)
	assert.Len(t, completions, 1)
}

func TestAdvance_StepIndexOutOfRange(t *testing.T) {
	store := newTestStore(t)
	svc := newWorkflowService(store)
	seedWorkflow(t, store, "wf_test", 2)

	_, err := svc.Advance("user-1", dto.AdvanceWorkflowRequest{WorkflowID: "wf_test", StepIndex: 2, Input: "x"})
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)
	assert.Equal(t, "Step index out of range", appErr.Message)
}

func TestAdvance_UnknownWorkflow(t *testing.T) {
	store := newTestStore(t)
	svc := newWorkflowService(store)

	_, err := svc.Advance("user-1", dto.AdvanceWorkflowRequest{WorkflowID: "missing", StepIndex: 0})
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestGetWorkflows_MergesCompletionState(t *testing.T) {
	store := newTestStore(t)
	svc := newWorkflowService(store)
	seedWorkflow(t, store, "wf_done", 2)
	seedWorkflow(t, store, "wf_active", 4)
	seedWorkflow(t, store, "wf_untouched", 3)

	_, err := svc.Advance("user-1", dto.AdvanceWorkflowRequest{WorkflowID: "wf_done", StepIndex: 0, Input: "a"})
	require.NoError(t, err)
	_, err = svc.Advance("user-1", dto.AdvanceWorkflowRequest{WorkflowID: "wf_done", StepIndex: 1, Input: "b"})
	require.NoError(t, err)
	_, err = svc.Advance("user-1", dto.AdvanceWorkflowRequest{WorkflowID: "wf_active", StepIndex: 0, Input: "a"})
	require.NoError(t, err)

	items, err := svc.GetWorkflows("user-1")
	require.NoError(t, err)
	require.Len(t, items, 3)

	byID := map[string]dto.WorkflowListItem{}
	for _, item := range items {
		byID[item.ID] = item
	}

	assert.True(t, byID["wf_done"].Completed)
	assert.Equal(t, 100.0, byID["wf_done"].ProgressPercent)

	assert.False(t, byID["wf_active"].Completed)
	assert.Equal(t, 1, byID["wf_active"].CurrentStep)
	assert.Equal(t, 25.0, byID["wf_active"].ProgressPercent)

	assert.False(t, byID["wf_untouched"].Completed)
	assert.Equal(t, 0, byID["wf_untouched"].CurrentStep)
}
