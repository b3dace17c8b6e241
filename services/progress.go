package services

import (
	"math"

	"github.com/alphabatem/common/context"
	"github.com/sellerpath/lms_api/dto"
	"github.com/sellerpath/lms_api/model"
	"github.com/sellerpath/lms_api/services/repositories"
	"github.com/sellerpath/lms_api/shared"
)

// ProgressService aggregates completions, attempts and activity into the
// learner dashboard view.
type ProgressService struct {
	context.DefaultService

	db             DbService
	achievementSvc *AchievementService

	userRepo     *repositories.UserRepository
	contentRepo  *repositories.ContentRepository
	progressRepo *repositories.ProgressRepository
}

const PROGRESS_SVC = "progress_svc"

func (svc ProgressService) Id() string {
	return PROGRESS_SVC
}

func (svc *ProgressService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ProgressService) Start() error {
	svc.achievementSvc = svc.Service(ACHIEVEMENT_SVC).(*AchievementService)

	if s, ok := svc.Service(SQLITE_SVC).(*SqliteService); ok && s != nil {
		svc.db = s
	} else {
		svc.db = svc.Service(POSTGRES_SVC).(*PostgresService)
	}
	svc.userRepo = repositories.NewUserRepository(svc.db.Db())
	svc.contentRepo = repositories.NewContentRepository(svc.db.Db())
	svc.progressRepo = repositories.NewProgressRepository(svc.db.Db())
	return nil
}

// GetProgress builds the dashboard for targetUserID. Callers may only read
// their own progress unless they hold the admin role.
func (svc *ProgressService) GetProgress(callerID, callerRole, targetUserID string) (*dto.ProgressResponse, error) {
	if targetUserID == "" {
		targetUserID = callerID
	}
	if targetUserID != callerID && callerRole != shared.RoleAdmin {
		return nil, shared.NewForbiddenError(nil, "Not authorized")
	}

	if _, err := svc.userRepo.GetUser(targetUserID); err != nil {
		return nil, svc.db.HandleError(err)
	}

	stats, err := svc.userRepo.GetOrCreateStats(targetUserID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	moduleCompletions, err := svc.progressRepo.GetModuleCompletions(targetUserID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	workflowCompletions, err := svc.progressRepo.GetWorkflowCompletions(targetUserID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	attempts, err := svc.progressRepo.GetScenarioAttempts(targetUserID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	best, err := svc.bestScores(attempts)
	if err != nil {
		return nil, err
	}

	uniqueSolved := len(best)
	averageScore := 0
	if uniqueSolved > 0 {
		total := 0
		for _, b := range best {
			total += b.score
		}
		averageScore = int(math.Round(float64(total) / float64(uniqueSolved)))
	}

	breakdown, err := svc.categoryBreakdown(best, moduleCompletions, workflowCompletions)
	if err != nil {
		return nil, err
	}

	totalMinutes, err := svc.timeInvested(workflowCompletions, uniqueSolved, len(moduleCompletions))
	if err != nil {
		return nil, err
	}

	feed, err := svc.activityFeed(targetUserID)
	if err != nil {
		return nil, err
	}

	achievements, err := svc.achievementViews(targetUserID)
	if err != nil {
		return nil, err
	}

	return &dto.ProgressResponse{
		ModulesCompleted:   len(moduleCompletions),
		WorkflowsCompleted: len(workflowCompletions),
		ScenariosSolved:    uniqueSolved,
		AverageScore:       averageScore,
		TotalMinutes:       totalMinutes,
		CurrentStreak:      stats.CurrentStreak,
		QuestionsAsked:     stats.QuestionsAsked,
		CategoryBreakdown:  breakdown,
		Achievements:       achievements,
		ActivityFeed:       feed,
	}, nil
}

type bestScore struct {
	score    int
	category string
}

// bestScores keeps the highest score per scenario, dropping attempts whose
// scenario has since been deleted.
func (svc *ProgressService) bestScores(attempts []model.ScenarioAttempt) (map[string]bestScore, error) {
	ids := make([]string, 0, len(attempts))
	seen := map[string]bool{}
	for _, a := range attempts {
		if !seen[a.ScenarioID] {
			seen[a.ScenarioID] = true
			ids = append(ids, a.ScenarioID)
		}
	}

	scenarios, err := svc.contentRepo.GetScenariosByIDs(ids)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	categories := map[string]string{}
	for _, s := range scenarios {
		cat := s.Category
		if cat == "" {
			cat = "General"
		}
		categories[s.ID] = cat
	}

	best := map[string]bestScore{}
	for _, a := range attempts {
		cat, ok := categories[a.ScenarioID]
		if !ok {
			continue
		}
		if current, ok := best[a.ScenarioID]; !ok || a.Score > current.score {
			best[a.ScenarioID] = bestScore{score: a.Score, category: cat}
		}
	}
	return best, nil
}

// categoryBreakdown averages scores per category. Buckets start from every
// module category so untouched areas still appear at zero; completed modules
// and workflows count as 100.
func (svc *ProgressService) categoryBreakdown(best map[string]bestScore, moduleCompletions []model.ModuleCompletion, workflowCompletions []model.WorkflowCompletion) (map[string]int, error) {
	type bucket struct {
		total int
		count int
	}
	buckets := map[string]*bucket{}

	modules, err := svc.contentRepo.GetModules()
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	moduleCategories := map[string]string{}
	for _, m := range modules {
		cat := m.Category
		if cat == "" {
			cat = "General"
		}
		moduleCategories[m.ID] = cat
		if _, ok := buckets[cat]; !ok {
			buckets[cat] = &bucket{}
		}
	}

	add := func(cat string, score int) {
		if cat == "" {
			cat = "General"
		}
		if _, ok := buckets[cat]; !ok {
			buckets[cat] = &bucket{}
		}
		buckets[cat].total += score
		buckets[cat].count++
	}

	for _, b := range best {
		add(b.category, b.score)
	}

	workflows, err := svc.contentRepo.GetWorkflows()
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	workflowCategories := map[string]string{}
	for _, w := range workflows {
		workflowCategories[w.ID] = w.Category
	}
	for _, wc := range workflowCompletions {
		if cat, ok := workflowCategories[wc.WorkflowID]; ok {
			add(cat, 100)
		}
	}

	for _, mc := range moduleCompletions {
		if cat, ok := moduleCategories[mc.ModuleID]; ok {
			add(cat, 100)
		}
	}

	breakdown := map[string]int{}
	for cat, b := range buckets {
		if b.count == 0 {
			breakdown[cat] = 0
			continue
		}
		breakdown[cat] = int(math.Round(float64(b.total) / float64(b.count)))
	}

	if len(breakdown) == 0 {
		breakdown["General"] = 0
	}
	return breakdown, nil
}

// timeInvested estimates learning minutes: half the workflow estimate
// (default 15), 8 per unique scenario, 5 per module.
func (svc *ProgressService) timeInvested(workflowCompletions []model.WorkflowCompletion, uniqueScenarios, modules int) (int, error) {
	workflows, err := svc.contentRepo.GetWorkflows()
	if err != nil {
		return 0, svc.db.HandleError(err)
	}
	estimates := map[string]int{}
	for _, w := range workflows {
		estimates[w.ID] = w.EstimatedTime
	}

	totalMinutes := 0
	for _, wc := range workflowCompletions {
		if est, ok := estimates[wc.WorkflowID]; ok && est > 0 {
			totalMinutes += int(math.Round(float64(est) * 0.5))
		} else {
			totalMinutes += 15
		}
	}
	totalMinutes += uniqueScenarios * 8
	totalMinutes += modules * 5
	return totalMinutes, nil
}

// activityFeed returns the last 10 entries, newest first.
func (svc *ProgressService) activityFeed(userID string) ([]dto.ActivityFeedEntry, error) {
	entries, err := svc.progressRepo.GetRecentActivity(userID, 10)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	feed := make([]dto.ActivityFeedEntry, 0, len(entries))
	for _, e := range entries {
		feed = append(feed, dto.ActivityFeedEntry{
			Type:      e.Type,
			RefID:     e.RefID,
			Title:     e.Title,
			Detail:    e.Detail,
			Timestamp: e.CreatedAt,
		})
	}
	return feed, nil
}

// achievementViews merges the earned set into the full catalog.
func (svc *ProgressService) achievementViews(userID string) ([]dto.AchievementView, error) {
	earned, err := svc.progressRepo.GetUserAchievements(userID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	earnedAt := map[string]model.UserAchievement{}
	for _, ua := range earned {
		earnedAt[ua.AchievementID] = ua
	}

	catalog := svc.achievementSvc.Catalog()
	views := make([]dto.AchievementView, 0, len(catalog))
	for _, a := range catalog {
		view := dto.AchievementView{
			ID:          a.ID,
			Name:        a.Title,
			Description: a.Description,
			Icon:        a.Icon,
		}
		if ua, ok := earnedAt[a.ID]; ok {
			t := ua.EarnedAt
			view.Earned = true
			view.EarnedAt = &t
		}
		views = append(views, view)
	}
	return views, nil
}
