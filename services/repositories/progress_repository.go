package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/sellerpath/lms_api/model"
	"gorm.io/gorm"
)

// ProgressRepository handles completions, attempts, activity and achievements
type ProgressRepository struct {
	BaseRepository
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// ==================== MODULE COMPLETION METHODS ====================

func (r *ProgressRepository) HasCompletedModule(userID, moduleID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.ModuleCompletion{}).
		Where("user_id = ? AND module_id = ?", userID, moduleID).Count(&count).Error
	return count > 0, err
}

// CompleteModule inserts the completion once; a repeat call is a no-op.
func (r *ProgressRepository) CompleteModule(userID, moduleID string) (bool, error) {
	done, err := r.HasCompletedModule(userID, moduleID)
	if err != nil {
		return false, err
	}
	if done {
		return false, nil
	}

	id, _ := uuid.NewV7()
	completion := model.ModuleCompletion{
		ID:          id.String(),
		UserID:      userID,
		ModuleID:    moduleID,
		CompletedAt: time.Now(),
		CreatedAt:   time.Now(),
	}
	if err := r.db.Create(&completion).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *ProgressRepository) GetModuleCompletions(userID string) ([]model.ModuleCompletion, error) {
	var completions []model.ModuleCompletion
	err := r.db.Where("user_id = ?", userID).Find(&completions).Error
	return completions, err
}

// ==================== WORKFLOW COMPLETION METHODS ====================

func (r *ProgressRepository) HasCompletedWorkflow(userID, workflowID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.WorkflowCompletion{}).
		Where("user_id = ? AND workflow_id = ?", userID, workflowID).Count(&count).Error
	return count > 0, err
}

func (r *ProgressRepository) CompleteWorkflow(userID, workflowID string) (bool, error) {
	done, err := r.HasCompletedWorkflow(userID, workflowID)
	if err != nil {
		return false, err
	}
	if done {
		return false, nil
	}

	id, _ := uuid.NewV7()
	completion := model.WorkflowCompletion{
		ID:          id.String(),
		UserID:      userID,
		WorkflowID:  workflowID,
		CompletedAt: time.Now(),
		CreatedAt:   time.Now(),
	}
	if err := r.db.Create(&completion).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *ProgressRepository) GetWorkflowCompletions(userID string) ([]model.WorkflowCompletion, error) {
	var completions []model.WorkflowCompletion
	err := r.db.Where("user_id = ?", userID).Find(&completions).Error
	return completions, err
}

// ==================== ACTIVE WORKFLOW METHODS ====================

func (r *ProgressRepository) GetActiveWorkflow(userID, workflowID string) (*model.ActiveWorkflow, error) {
	var active model.ActiveWorkflow
	err := r.db.Where("user_id = ? AND workflow_id = ?", userID, workflowID).First(&active).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &active, nil
}

func (r *ProgressRepository) GetActiveWorkflows(userID string) ([]model.ActiveWorkflow, error) {
	var active []model.ActiveWorkflow
	err := r.db.Where("user_id = ?", userID).Find(&active).Error
	return active, err
}

func (r *ProgressRepository) CreateActiveWorkflow(active *model.ActiveWorkflow) (*model.ActiveWorkflow, error) {
	if active.ID == "" {
		id, _ := uuid.NewV7()
		active.ID = id.String()
	}
	active.StartedAt = time.Now()
	active.CreatedAt = time.Now()
	active.UpdatedAt = time.Now()

	if err := r.db.Create(active).Error; err != nil {
		return nil, err
	}
	return active, nil
}

func (r *ProgressRepository) UpdateActiveWorkflow(active *model.ActiveWorkflow) error {
	active.UpdatedAt = time.Now()
	return r.db.Save(active).Error
}

func (r *ProgressRepository) DeleteActiveWorkflow(userID, workflowID string) error {
	return r.db.Where("user_id = ? AND workflow_id = ?", userID, workflowID).
		Delete(&model.ActiveWorkflow{}).Error
}

// ==================== SCENARIO ATTEMPT METHODS ====================

func (r *ProgressRepository) CreateScenarioAttempt(attempt *model.ScenarioAttempt) error {
	if attempt.ID == "" {
		id, _ := uuid.NewV7()
		attempt.ID = id.String()
	}
	attempt.CreatedAt = time.Now()
	return r.db.Create(attempt).Error
}

func (r *ProgressRepository) GetScenarioAttempts(userID string) ([]model.ScenarioAttempt, error) {
	var attempts []model.ScenarioAttempt
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&attempts).Error
	return attempts, err
}

func (r *ProgressRepository) GetAttemptsForScenario(userID, scenarioID string) ([]model.ScenarioAttempt, error) {
	var attempts []model.ScenarioAttempt
	err := r.db.Where("user_id = ? AND scenario_id = ?", userID, scenarioID).
		Order("created_at ASC").Find(&attempts).Error
	return attempts, err
}

// ==================== ACTIVITY LOG METHODS ====================

func (r *ProgressRepository) LogActivity(entry *model.ActivityLogEntry) error {
	if entry.ID == "" {
		id, _ := uuid.NewV7()
		entry.ID = id.String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return r.db.Create(entry).Error
}

// GetRecentActivity returns the newest entries first.
func (r *ProgressRepository) GetRecentActivity(userID string, limit int) ([]model.ActivityLogEntry, error) {
	var entries []model.ActivityLogEntry
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

// ==================== ACHIEVEMENT METHODS ====================

func (r *ProgressRepository) GetUserAchievements(userID string) ([]model.UserAchievement, error) {
	var achievements []model.UserAchievement
	err := r.db.Where("user_id = ?", userID).Find(&achievements).Error
	return achievements, err
}

func (r *ProgressRepository) HasAchievement(userID, achievementID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.UserAchievement{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).Count(&count).Error
	return count > 0, err
}

func (r *ProgressRepository) AwardAchievement(userID, achievementID string) error {
	id, _ := uuid.NewV7()
	achievement := model.UserAchievement{
		ID:            id.String(),
		UserID:        userID,
		AchievementID: achievementID,
		EarnedAt:      time.Now(),
		CreatedAt:     time.Now(),
	}
	return r.db.Create(&achievement).Error
}
