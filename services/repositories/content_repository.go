package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/sellerpath/lms_api/model"
	"gorm.io/gorm"
)

// ContentRepository handles module, workflow, scenario and dataset storage
type ContentRepository struct {
	BaseRepository
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// ==================== MODULE METHODS ====================

func (r *ContentRepository) CreateModule(module *model.Module) (*model.Module, error) {
	if module.ID == "" {
		id, _ := uuid.NewV7()
		module.ID = id.String()
	}
	module.CreatedAt = time.Now()
	module.UpdatedAt = time.Now()

	if err := r.db.Create(module).Error; err != nil {
		return nil, err
	}
	return module, nil
}

func (r *ContentRepository) GetModule(id string) (*model.Module, error) {
	var module model.Module
	if err := r.db.Where("id = ? AND is_active = ?", id, true).First(&module).Error; err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *ContentRepository) GetModules() ([]model.Module, error) {
	var modules []model.Module
	if err := r.db.Where("is_active = ?", true).Order("\"order\" ASC").Find(&modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}

func (r *ContentRepository) CountModules() (int64, error) {
	var count int64
	err := r.db.Model(&model.Module{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// ==================== WORKFLOW METHODS ====================

func (r *ContentRepository) CreateWorkflow(workflow *model.Workflow) (*model.Workflow, error) {
	if workflow.ID == "" {
		id, _ := uuid.NewV7()
		workflow.ID = id.String()
	}
	workflow.CreatedAt = time.Now()
	workflow.UpdatedAt = time.Now()

	if err := r.db.Create(workflow).Error; err != nil {
		return nil, err
	}
	return workflow, nil
}

func (r *ContentRepository) GetWorkflow(id string) (*model.Workflow, error) {
	var workflow model.Workflow
	if err := r.db.Where("id = ? AND is_active = ?", id, true).First(&workflow).Error; err != nil {
		return nil, err
	}
	return &workflow, nil
}

func (r *ContentRepository) GetWorkflows() ([]model.Workflow, error) {
	var workflows []model.Workflow
	if err := r.db.Where("is_active = ?", true).Order("created_at ASC").Find(&workflows).Error; err != nil {
		return nil, err
	}
	return workflows, nil
}

func (r *ContentRepository) DeleteWorkflow(id string) error {
	return r.db.Model(&model.Workflow{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *ContentRepository) CountWorkflows() (int64, error) {
	var count int64
	err := r.db.Model(&model.Workflow{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// ==================== SCENARIO METHODS ====================

func (r *ContentRepository) CreateScenario(scenario *model.Scenario) (*model.Scenario, error) {
	if scenario.ID == "" {
		id, _ := uuid.NewV7()
		scenario.ID = id.String()
	}
	scenario.CreatedAt = time.Now()
	scenario.UpdatedAt = time.Now()

	if err := r.db.Create(scenario).Error; err != nil {
		return nil, err
	}
	return scenario, nil
}

func (r *ContentRepository) GetScenario(id string) (*model.Scenario, error) {
	var scenario model.Scenario
	if err := r.db.Where("id = ? AND is_active = ?", id, true).First(&scenario).Error; err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (r *ContentRepository) GetScenarios() ([]model.Scenario, error) {
	var scenarios []model.Scenario
	if err := r.db.Where("is_active = ?", true).Order("created_at ASC").Find(&scenarios).Error; err != nil {
		return nil, err
	}
	return scenarios, nil
}

// GetScenariosByIDs returns active scenarios matching ids; deleted ones
// are silently absent from the result.
func (r *ContentRepository) GetScenariosByIDs(ids []string) ([]model.Scenario, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var scenarios []model.Scenario
	if err := r.db.Where("id IN ? AND is_active = ?", ids, true).Find(&scenarios).Error; err != nil {
		return nil, err
	}
	return scenarios, nil
}

func (r *ContentRepository) DeleteScenario(id string) error {
	return r.db.Model(&model.Scenario{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *ContentRepository) CountScenarios() (int64, error) {
	var count int64
	err := r.db.Model(&model.Scenario{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
