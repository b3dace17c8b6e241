package services

import (
	"testing"
	"time"

	"github.com/sellerpath/lms_api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyStreak_FirstActivity(t *testing.T) {
	svc := &StreakService{}
	stats := &model.UserStats{}
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	svc.ApplyStreak(stats, now)

	assert.Equal(t, 1, stats.CurrentStreak)
	require.NotNil(t, stats.LastActivityDate)
	assert.Equal(t, now, *stats.LastActivityDate)
}

func TestApplyStreak_SameDayKeepsCount(t *testing.T) {
	svc := &StreakService{}
	morning := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 3, 10, 22, 15, 0, 0, time.UTC)
	stats := &model.UserStats{CurrentStreak: 4, LastActivityDate: &morning}

	svc.ApplyStreak(stats, evening)

	assert.Equal(t, 4, stats.CurrentStreak)
	assert.Equal(t, evening, *stats.LastActivityDate)
}

func TestApplyStreak_NextDayExtends(t *testing.T) {
	svc := &StreakService{}
	yesterday := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	today := time.Date(2025, 3, 11, 0, 5, 0, 0, time.UTC)
	stats := &model.UserStats{CurrentStreak: 4, LastActivityDate: &yesterday}

	svc.ApplyStreak(stats, today)

	assert.Equal(t, 5, stats.CurrentStreak)
	assert.Equal(t, today, *stats.LastActivityDate)
}

func TestApplyStreak_GapResets(t *testing.T) {
	svc := &StreakService{}
	lastWeek := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	stats := &model.UserStats{CurrentStreak: 12, LastActivityDate: &lastWeek}

	svc.ApplyStreak(stats, now)

	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, now, *stats.LastActivityDate)
}

func TestApplyStreak_TwoDayGapResets(t *testing.T) {
	svc := &StreakService{}
	last := time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	stats := &model.UserStats{CurrentStreak: 3, LastActivityDate: &last}

	svc.ApplyStreak(stats, now)

	assert.Equal(t, 1, stats.CurrentStreak)
}
