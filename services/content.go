package services

import (
	"context"
	"encoding/json"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/sellerpath/lms_api/dto"
	"github.com/sellerpath/lms_api/model"
	"github.com/sellerpath/lms_api/services/repositories"
	"github.com/sellerpath/lms_api/shared"
	log "github.com/sirupsen/logrus"
)

// ContentService serves the module catalog joined with per-user progress
// and the admin content-management operations.
type ContentService struct {
	appContext.DefaultService

	db           DbService
	redisSvc     *RedisService
	streakSvc    *StreakService
	achSvc       *AchievementService
	userRepo     *repositories.UserRepository
	contentRepo  *repositories.ContentRepository
	datasetRepo  *repositories.DatasetRepository
	progressRepo *repositories.ProgressRepository
	convRepo     *repositories.ConversationRepository
}

const CONTENT_SVC = "content_svc"

const categoryCacheKey = "content:categories"

func (svc ContentService) Id() string {
	return CONTENT_SVC
}

func (svc *ContentService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ContentService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.streakSvc = svc.Service(STREAK_SVC).(*StreakService)
	svc.achSvc = svc.Service(ACHIEVEMENT_SVC).(*AchievementService)

	if s, ok := svc.Service(SQLITE_SVC).(*SqliteService); ok && s != nil {
		svc.db = s
	} else {
		svc.db = svc.Service(POSTGRES_SVC).(*PostgresService)
	}
	db := svc.db.Db()
	svc.userRepo = repositories.NewUserRepository(db)
	svc.contentRepo = repositories.NewContentRepository(db)
	svc.datasetRepo = repositories.NewDatasetRepository(db)
	svc.progressRepo = repositories.NewProgressRepository(db)
	svc.convRepo = repositories.NewConversationRepository(db)
	return nil
}

// ==================== MODULES ====================

func (svc *ContentService) GetModules(userID string) ([]dto.ModuleListItem, error) {
	modules, err := svc.contentRepo.GetModules()
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	completions, err := svc.progressRepo.GetModuleCompletions(userID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	completedAt := map[string]time.Time{}
	for _, c := range completions {
		completedAt[c.ModuleID] = c.CompletedAt
	}

	items := make([]dto.ModuleListItem, 0, len(modules))
	for _, m := range modules {
		item := moduleListItem(&m)
		if at, ok := completedAt[m.ID]; ok {
			item.Completed = true
			item.CompletedAt = at
		}
		items = append(items, item)
	}
	return items, nil
}

func (svc *ContentService) GetModule(userID, moduleID string) (*dto.ModuleDetailResponse, error) {
	module, err := svc.contentRepo.GetModule(moduleID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	completed, err := svc.progressRepo.HasCompletedModule(userID, moduleID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	item := moduleListItem(module)
	item.Completed = completed
	return &dto.ModuleDetailResponse{
		ModuleListItem: item,
		Content:        module.Content,
	}, nil
}

// CompleteModule records the completion once and runs the streak and
// achievement pipeline. Completing an already-finished module is a no-op.
func (svc *ContentService) CompleteModule(userID, moduleID string) ([]string, error) {
	module, err := svc.contentRepo.GetModule(moduleID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	inserted, err := svc.progressRepo.CompleteModule(userID, moduleID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	if !inserted {
		return nil, nil
	}

	if err := svc.progressRepo.LogActivity(&model.ActivityLogEntry{
		UserID: userID,
		Type:   shared.ActivityModule,
		RefID:  module.ID,
		Title:  "Completed module: " + module.Title,
	}); err != nil {
		log.WithError(err).Warn("Failed to log module activity")
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

	newAchievements, err := evaluateAndAward(svc.achSvc, svc.userRepo, svc.progressRepo,
		userID, shared.ActivityModule, ActivityData{}, now)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	titles := make([]string, 0, len(newAchievements))
	for _, a := range newAchievements {
		titles = append(titles, a.Title)
	}
	return titles, nil
}

func moduleListItem(m *model.Module) dto.ModuleListItem {
	return dto.ModuleListItem{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Category:      m.Category,
		Difficulty:    m.Difficulty,
		EstimatedTime: m.EstimatedTime,
		Order:         m.Order,
	}
}

// Categories returns the distinct module categories, cached in Redis.
func (svc *ContentService) Categories() ([]string, error) {
	ctx := context.Background()

	if svc.redisSvc != nil {
		var cached []string
		if err := svc.redisSvc.GetJSON(ctx, categoryCacheKey, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	modules, err := svc.contentRepo.GetModules()
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	seen := map[string]bool{}
	var categories []string
	for _, m := range modules {
		cat := m.Category
		if cat == "" {
			cat = "General"
		}
		if !seen[cat] {
			seen[cat] = true
			categories = append(categories, cat)
		}
	}

	if svc.redisSvc != nil {
		if err := svc.redisSvc.Set(ctx, categoryCacheKey, categories, 10*time.Minute); err != nil {
			log.WithError(err).Warn("Failed to cache module categories")
		}
	}
	return categories, nil
}

// ==================== ADMIN OPERATIONS ====================

func (svc *ContentService) CreateModule(req dto.CreateModuleRequest) (*model.Module, error) {
	module, err := svc.contentRepo.CreateModule(&model.Module{
		Title:         req.Title,
		Description:   req.Description,
		Category:      defaultString(req.Category, "General"),
		Difficulty:    defaultString(req.Difficulty, shared.DifficultyBeginner),
		EstimatedTime: defaultInt(req.EstimatedTime, 30),
		Order:         req.Order,
		Content:       req.Content,
		IsActive:      true,
	})
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	svc.invalidateCategories()
	return module, nil
}

func (svc *ContentService) CreateWorkflow(req dto.CreateWorkflowRequest) (*model.Workflow, error) {
	var steps []model.WorkflowStep
	if err := json.Unmarshal(req.Steps, &steps); err != nil || len(steps) == 0 {
		return nil, shared.NewBadRequestError(err, "Workflow requires at least one step")
	}

	workflow, err := svc.contentRepo.CreateWorkflow(&model.Workflow{
		Title:         req.Title,
		Description:   req.Description,
		Category:      defaultString(req.Category, "General"),
		Difficulty:    defaultString(req.Difficulty, shared.DifficultyBeginner),
		EstimatedTime: defaultInt(req.EstimatedTime, 30),
		Steps:         req.Steps,
		IsActive:      true,
	})
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	return workflow, nil
}

func (svc *ContentService) DeleteWorkflow(id string) error {
	if _, err := svc.contentRepo.GetWorkflow(id); err != nil {
		return svc.db.HandleError(err)
	}
	return svc.db.HandleError(svc.contentRepo.DeleteWorkflow(id))
}

func (svc *ContentService) CreateScenario(req dto.CreateScenarioRequest) (*model.Scenario, error) {
	scenario, err := svc.contentRepo.CreateScenario(&model.Scenario{
		Title:       req.Title,
		Description: req.Description,
		Category:    defaultString(req.Category, "General"),
		Difficulty:  defaultString(req.Difficulty, shared.DifficultyBeginner),
		Context:     req.Context,
		Questions:   req.Questions,
		IdealAnswer: req.IdealAnswer,
		Rubric:      req.Rubric,
		IsActive:    true,
	})
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	return scenario, nil
}

func (svc *ContentService) DeleteScenario(id string) error {
	if _, err := svc.contentRepo.GetScenario(id); err != nil {
		return svc.db.HandleError(err)
	}
	return svc.db.HandleError(svc.contentRepo.DeleteScenario(id))
}

func (svc *ContentService) UploadDataset(req dto.UploadDatasetRequest) (*model.Dataset, error) {
	dataset, err := svc.datasetRepo.CreateDataset(&model.Dataset{
		Type:        req.Type,
		Category:    defaultString(req.Category, "General"),
		Data:        req.Data,
		Description: req.Description,
	})
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	return dataset, nil
}

// SystemStats counts the core entities for the admin dashboard.
func (svc *ContentService) SystemStats() (*dto.SystemStatsResponse, error) {
	users, err := svc.userRepo.CountUsers()
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	modules, err := svc.contentRepo.CountModules()
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	workflows, err := svc.contentRepo.CountWorkflows()
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	scenarios, err := svc.contentRepo.CountScenarios()
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	datasets, err := svc.datasetRepo.CountDatasets()
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	conversations, err := svc.convRepo.CountConversations()
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	return &dto.SystemStatsResponse{
		Users:         users,
		Modules:       modules,
		Workflows:     workflows,
		Scenarios:     scenarios,
		Datasets:      datasets,
		Conversations: conversations,
	}, nil
}

func (svc *ContentService) invalidateCategories() {
	if svc.redisSvc == nil {
		return
	}
	if err := svc.redisSvc.Delete(context.Background(), categoryCacheKey); err != nil {
		log.WithError(err).Warn("Failed to invalidate category cache")
	}
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func defaultInt(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}
