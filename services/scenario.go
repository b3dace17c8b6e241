package services

import (
	"time"

	"github.com/alphabatem/common/context"
	"github.com/sellerpath/lms_api/dto"
	"github.com/sellerpath/lms_api/model"
	"github.com/sellerpath/lms_api/services/repositories"
	"github.com/sellerpath/lms_api/shared"
	log "github.com/sirupsen/logrus"
)

// ScenarioService serves the simulation catalog and the scored submission flow.
type ScenarioService struct {
	context.DefaultService

	db        DbService
	streakSvc *StreakService
	achSvc    *AchievementService
	aiSvc     *AIService

	userRepo     *repositories.UserRepository
	contentRepo  *repositories.ContentRepository
	progressRepo *repositories.ProgressRepository
}

const SCENARIO_SVC = "scenario_svc"

func (svc ScenarioService) Id() string {
	return SCENARIO_SVC
}

func (svc *ScenarioService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ScenarioService) Start() error {
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

func (svc *ScenarioService) GetScenarios(userID string) ([]dto.ScenarioListItem, error) {
	scenarios, err := svc.contentRepo.GetScenarios()
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	attempts, err := svc.progressRepo.GetScenarioAttempts(userID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	attemptCount := map[string]int{}
	bestScore := map[string]int{}
	solved := map[string]bool{}
	for _, a := range attempts {
		attemptCount[a.ScenarioID]++
		if a.Score > bestScore[a.ScenarioID] {
			bestScore[a.ScenarioID] = a.Score
		}
		if a.IsCorrect {
			solved[a.ScenarioID] = true
		}
	}

	items := make([]dto.ScenarioListItem, 0, len(scenarios))
	for _, s := range scenarios {
		items = append(items, dto.ScenarioListItem{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			Category:    s.Category,
			Difficulty:  s.Difficulty,
			Attempts:    attemptCount[s.ID],
			BestScore:   bestScore[s.ID],
			Solved:      solved[s.ID],
		})
	}
	return items, nil
}

func (svc *ScenarioService) GetScenario(userID, scenarioID string) (*dto.ScenarioDetailResponse, error) {
	scenario, err := svc.contentRepo.GetScenario(scenarioID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	attempts, err := svc.progressRepo.GetAttemptsForScenario(userID, scenarioID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	item := dto.ScenarioListItem{
		ID:          scenario.ID,
		Title:       scenario.Title,
		Description: scenario.Description,
		Category:    scenario.Category,
		Difficulty:  scenario.Difficulty,
		Attempts:    len(attempts),
	}
	for _, a := range attempts {
		if a.Score > item.BestScore {
			item.BestScore = a.Score
		}
		if a.IsCorrect {
			item.Solved = true
		}
	}

	return &dto.ScenarioDetailResponse{
		ScenarioListItem: item,
		Context:          scenario.Context,
		Questions:        scenario.Questions,
	}, nil
}

// ==================== SUBMISSION ====================

// Submit grades answer with the AI evaluator, appends the attempt, applies
// the streak, logs activity and checks achievements with the new score.
func (svc *ScenarioService) Submit(userID string, req dto.SubmitScenarioRequest) (*dto.SubmitScenarioResponse, error) {
	scenario, err := svc.contentRepo.GetScenario(req.ScenarioID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	evaluation := svc.aiSvc.EvaluateScenario(scenario, req.Answer)

	if err := svc.progressRepo.CreateScenarioAttempt(&model.ScenarioAttempt{
		UserID:     userID,
		ScenarioID: scenario.ID,
		Answer:     req.Answer,
		Score:      evaluation.Score,
		IsCorrect:  evaluation.IsCorrect,
		Feedback:   evaluation.Feedback,
	}); err != nil {
		return nil, svc.db.HandleError(err)
	}

	if !evaluation.IsCorrect {
		if err := svc.userRepo.IncrementScenariosFailed(userID); err != nil {
			log.WithError(err).Warn("Failed to increment failed scenarios")
		}
	}

	if err := svc.progressRepo.LogActivity(&model.ActivityLogEntry{
		UserID: userID,
		Type:   shared.ActivityScenario,
		RefID:  scenario.ID,
		Title:  "Attempted scenario: " + scenario.Title,
		Detail: evaluation.Feedback,
	}); err != nil {
		log.WithError(err).Warn("Failed to log scenario activity")
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
		userID, shared.ActivityScenario, ActivityData{Score: evaluation.Score}, now)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	attempts, err := svc.progressRepo.GetAttemptsForScenario(userID, scenario.ID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	best := 0
	for _, a := range attempts {
		if a.Score > best {
			best = a.Score
		}
	}

	resp := &dto.SubmitScenarioResponse{
		Score:     evaluation.Score,
		IsCorrect: evaluation.IsCorrect,
		Feedback:  evaluation.Feedback,
		Attempts:  len(attempts),
		BestScore: best,
	}
	for _, a := range newAchievements {
		resp.NewAchievements = append(resp.NewAchievements, a.Title)
	}
	return resp, nil
}
