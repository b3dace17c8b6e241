package services

import (
	"encoding/json"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/sellerpath/lms_api/dto"
	"github.com/sellerpath/lms_api/model"
	"github.com/sellerpath/lms_api/services/repositories"
	"github.com/sellerpath/lms_api/shared"
	log "github.com/sirupsen/logrus"
)

const (
	WorkflowStatusNotStarted = "not_started"
	WorkflowStatusInProgress = "in_progress"
	WorkflowStatusCompleted  = "completed"
)

// WorkflowService drives the multi-step exercise engine.
type WorkflowService struct {
	context.DefaultService

	db        DbService
	streakSvc *StreakService
	achSvc    *AchievementService
	aiSvc     *AIService

	userRepo     *repositories.UserRepository
	contentRepo  *repositories.ContentRepository
	progressRepo *repositories.ProgressRepository
}

const WORKFLOW_SVC = "workflow_svc"

func (svc WorkflowService) Id() string {
	return WORKFLOW_SVC
}

func (svc *WorkflowService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *WorkflowService) Start() error {
	svc.streakSvc = svc.Service(STREAK_SVC).(*StreakService)
	svc.achSvc = svc.Service(ACHIEVEMENT_SVC).(*AchievementService)
	svc.aiSvc = svc.Service(AI_SVC).(*AIService)

	if s, ok := svc.Service(SQLITE_SVC).(*SqliteService); ok && s != nil {
		svc.db = s
	} else {
		svc.db = svc.Service(POSTGRES_SVC).(*PostgresService)
	}
	db := svc.db.Db()
	svc.userRepo = repositories.NewUserRepository(db)
	svc.contentRepo = repositories.NewContentRepository(db)
	svc.progressRepo = repositories.NewProgressRepository(db)
	return nil
}

// ==================== VIEWS ====================

func (svc *WorkflowService) GetWorkflows(userID string) ([]dto.WorkflowListItem, error) {
	workflows, err := svc.contentRepo.GetWorkflows()
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	completions, err := svc.progressRepo.GetWorkflowCompletions(userID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	completed := map[string]bool{}
	for _, c := range completions {
		completed[c.WorkflowID] = true
	}

	active, err := svc.progressRepo.GetActiveWorkflows(userID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	currentSteps := map[string]int{}
	for _, a := range active {
		currentSteps[a.WorkflowID] = a.CurrentStep
	}

	items := make([]dto.WorkflowListItem, 0, len(workflows))
	for _, w := range workflows {
		item := workflowListItem(&w)
		if completed[w.ID] {
			item.Completed = true
			item.CurrentStep = item.TotalSteps
			item.ProgressPercent = 100
		} else if step, ok := currentSteps[w.ID]; ok {
			item.CurrentStep = step
			if item.TotalSteps > 0 {
				item.ProgressPercent = float64(step) / float64(item.TotalSteps) * 100
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func (svc *WorkflowService) GetWorkflow(userID, workflowID string) (*dto.WorkflowDetailResponse, error) {
	workflow, err := svc.contentRepo.GetWorkflow(workflowID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	steps, err := workflowSteps(workflow)
	if err != nil {
		return nil, err
	}

	item := workflowListItem(workflow)
	detail := &dto.WorkflowDetailResponse{WorkflowListItem: item}
	for _, s := range steps {
		detail.Steps = append(detail.Steps, dto.WorkflowStepView{
			Title:         s.Title,
			Instruction:   s.Instruction,
			ToolReference: s.ToolReference,
			InputPrompt:   s.InputPrompt,
		})
	}

	done, err := svc.progressRepo.HasCompletedWorkflow(userID, workflowID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	if done {
		detail.Completed = true
		detail.CurrentStep = len(steps)
		detail.ProgressPercent = 100
		return detail, nil
	}

	active, err := svc.progressRepo.GetActiveWorkflow(userID, workflowID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	if active != nil {
		detail.CurrentStep = active.CurrentStep
		detail.StepHistory = active.StepHistory
		if len(steps) > 0 {
			detail.ProgressPercent = float64(active.CurrentStep) / float64(len(steps)) * 100
		}
	}
	return detail, nil
}

// ==================== STEP ENGINE ====================

// Advance records the learner's input for a step and moves the run forward.
// The first advance creates the active entry. The run completes when the
// cursor passes the last step or the request says so explicitly. Advancing a
// workflow that is already completed returns its terminal state unchanged.
func (svc *WorkflowService) Advance(userID string, req dto.AdvanceWorkflowRequest) (*dto.WorkflowStateResponse, error) {
	workflow, err := svc.contentRepo.GetWorkflow(req.WorkflowID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	steps, err := workflowSteps(workflow)
	if err != nil {
		return nil, err
	}
	totalSteps := len(steps)

	if req.StepIndex >= totalSteps {
		return nil, shared.NewBadRequestError(nil, "Step index out of range")
	}

	done, err := svc.progressRepo.HasCompletedWorkflow(userID, req.WorkflowID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	if done {
		return &dto.WorkflowStateResponse{
			WorkflowID:      workflow.ID,
			Status:          WorkflowStatusCompleted,
			CurrentStep:     totalSteps,
			TotalSteps:      totalSteps,
			ProgressPercent: 100,
		}, nil
	}

	active, err := svc.progressRepo.GetActiveWorkflow(userID, req.WorkflowID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	if active == nil {
		active, err = svc.progressRepo.CreateActiveWorkflow(&model.ActiveWorkflow{
			UserID:      userID,
			WorkflowID:  req.WorkflowID,
			StepHistory: json.RawMessage("[]"),
		})
		if err != nil {
			return nil, svc.db.HandleError(err)
		}
	}

	var history []model.StepHistoryEntry
	if len(active.StepHistory) > 0 {
		if err := json.Unmarshal(active.StepHistory, &history); err != nil {
			log.WithError(err).Warn("Resetting unreadable step history")
			history = nil
		}
	}
	history = append(history, model.StepHistoryEntry{
		Step:        req.StepIndex,
		Input:       req.Input,
		Feedback:    "Step completed",
		CompletedAt: time.Now(),
	})
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to encode step history")
	}

	active.StepHistory = historyJSON
	active.CurrentStep = req.StepIndex + 1
	if active.CurrentStep > totalSteps {
		active.CurrentStep = totalSteps
	}

	isComplete := req.Complete || active.CurrentStep >= totalSteps

	if err := svc.progressRepo.UpdateActiveWorkflow(active); err != nil {
		return nil, svc.db.HandleError(err)
	}

	now := time.Now()
	stats, err := svc.userRepo.GetOrCreateStats(userID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	svc.streakSvc.ApplyStreak(stats, now)
	if err := svc.userRepo.UpdateStats(stats); err != nil {
		return nil, svc.db.HandleError(err)
	}

	state := &dto.WorkflowStateResponse{
		WorkflowID:  workflow.ID,
		Status:      WorkflowStatusInProgress,
		CurrentStep: active.CurrentStep,
		TotalSteps:  totalSteps,
		StepHistory: historyJSON,
	}
	if totalSteps > 0 {
		state.ProgressPercent = float64(active.CurrentStep) / float64(totalSteps) * 100
	}

	if !isComplete {
		return state, nil
	}

	inserted, err := svc.progressRepo.CompleteWorkflow(userID, req.WorkflowID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	state.Status = WorkflowStatusCompleted
	state.CurrentStep = totalSteps
	state.ProgressPercent = 100

	if !inserted {
		return state, nil
	}

	if err := svc.progressRepo.LogActivity(&model.ActivityLogEntry{
		UserID: userID,
		Type:   shared.ActivityWorkflow,
		RefID:  workflow.ID,
		Title:  "Completed workflow: " + workflow.Title,
	}); err != nil {
		log.WithError(err).Warn("Failed to log workflow activity")
	}

	completionMinutes := now.Sub(active.StartedAt).Minutes()
	newAchievements, err := evaluateAndAward(svc.achSvc, svc.userRepo, svc.progressRepo,
		userID, shared.ActivityWorkflow,
		ActivityData{Completed: true, CompletionMinutes: completionMinutes}, now)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	for _, a := range newAchievements {
		state.NewAchievements = append(state.NewAchievements, a.Title)
	}

	return state, nil
}

// Hint asks the AI coach for a nudge on the given step.
func (svc *WorkflowService) Hint(req dto.WorkflowHintRequest) (*dto.WorkflowHintResponse, error) {
	workflow, err := svc.contentRepo.GetWorkflow(req.WorkflowID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	steps, err := workflowSteps(workflow)
	if err != nil {
		return nil, err
	}
	if req.StepIndex >= len(steps) {
		return nil, shared.NewBadRequestError(nil, "Step index out of range")
	}

	hint, err := svc.aiSvc.Hint(workflow, steps[req.StepIndex], req.Question)
	if err != nil {
		return nil, err
	}
	return &dto.WorkflowHintResponse{Hint: hint}, nil
}

func workflowSteps(workflow *model.Workflow) ([]model.WorkflowStep, error) {
	var steps []model.WorkflowStep
	if err := json.Unmarshal(workflow.Steps, &steps); err != nil {
		return nil, shared.NewInternalError(err, "Workflow steps are unreadable")
	}
	return steps, nil
}

func workflowListItem(w *model.Workflow) dto.WorkflowListItem {
	totalSteps := 0
	var steps []model.WorkflowStep
	if err := json.Unmarshal(w.Steps, &steps); err == nil {
		totalSteps = len(steps)
	}

	return dto.WorkflowListItem{
		ID:            w.ID,
		Title:         w.Title,
		Description:   w.Description,
		Category:      w.Category,
		Difficulty:    w.Difficulty,
		EstimatedTime: w.EstimatedTime,
		TotalSteps:    totalSteps,
	}
}
