package services

import (
	"time"

	"github.com/alphabatem/common/context"
	"github.com/sellerpath/lms_api/model"
)

// StreakService applies the calendar-day learning streak rules.
type StreakService struct {
	context.DefaultService
}

const STREAK_SVC = "streak_svc"

func (svc StreakService) Id() string {
	return STREAK_SVC
}

func (svc *StreakService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *StreakService) Start() error {
	return nil
}

// ApplyStreak updates the streak counters on stats for an activity at now.
// Same calendar day keeps the count and refreshes the timestamp, the day
// after the last activity extends the streak, anything else resets to 1.
func (svc *StreakService) ApplyStreak(stats *model.UserStats, now time.Time) {
	today := truncateToDay(now)

	if stats.LastActivityDate == nil {
		stats.CurrentStreak = 1
		stats.LastActivityDate = &now
		return
	}

	lastDay := truncateToDay(*stats.LastActivityDate)

	if today.Equal(lastDay) {
		stats.LastActivityDate = &now
		return
	}

	yesterday := today.AddDate(0, 0, -1)
	if yesterday.Equal(lastDay) {
		stats.CurrentStreak++
	} else {
		stats.CurrentStreak = 1
	}

	stats.LastActivityDate = &now
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
