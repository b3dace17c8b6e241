package services

import (
	"time"

	"github.com/sellerpath/lms_api/model"
	"github.com/sellerpath/lms_api/services/repositories"
	"github.com/sellerpath/lms_api/shared"
	log "github.com/sirupsen/logrus"
)

const acedScoreThreshold = 80

// evaluateAndAward snapshots the user's progress, runs the award rules and
// persists any newly earned achievements with activity-log entries.
func evaluateAndAward(
	achSvc *AchievementService,
	userRepo *repositories.UserRepository,
	progressRepo *repositories.ProgressRepository,
	userID, activityType string,
	data ActivityData,
	now time.Time,
) ([]Achievement, error) {
	stats, err := userRepo.GetOrCreateStats(userID)
	if err != nil {
		return nil, err
	}

	workflowCompletions, err := progressRepo.GetWorkflowCompletions(userID)
	if err != nil {
		return nil, err
	}

	attempts, err := progressRepo.GetScenarioAttempts(userID)
	if err != nil {
		return nil, err
	}
	aced := map[string]bool{}
	for _, a := range attempts {
		if a.Score >= acedScoreThreshold {
			aced[a.ScenarioID] = true
		}
	}

	earned, err := progressRepo.GetUserAchievements(userID)
	if err != nil {
		return nil, err
	}
	earnedSet := map[string]bool{}
	for _, ua := range earned {
		earnedSet[ua.AchievementID] = true
	}

	snapshot := AchievementSnapshot{
		WorkflowsCompleted: len(workflowCompletions),
		QuestionsAsked:     stats.QuestionsAsked,
		CurrentStreak:      stats.CurrentStreak,
		ScenariosAced:      len(aced),
		Earned:             earnedSet,
	}

	newAchievements := achSvc.CheckAchievements(snapshot, activityType, data, now)
	for _, a := range newAchievements {
		if err := progressRepo.AwardAchievement(userID, a.ID); err != nil {
			log.WithError(err).WithField("achievement", a.ID).Error("Failed to persist achievement")
			continue
		}
		if err := progressRepo.LogActivity(&model.ActivityLogEntry{
			UserID: userID,
			Type:   shared.ActivityAchievement,
			RefID:  a.ID,
			Title:  "Unlocked achievement: " + a.Title,
		}); err != nil {
			log.WithError(err).Warn("Failed to log achievement activity")
		}
	}

	return newAchievements, nil
}
