package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/sellerpath/lms_api/model"
	"gorm.io/gorm"
)

// RateLimitRepository persists the windowed request counters.
type RateLimitRepository struct {
	BaseRepository
}

func NewRateLimitRepository(db *gorm.DB) *RateLimitRepository {
	return &RateLimitRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (r *RateLimitRepository) GetRateLimit(identifier, endpointType string) (*model.RateLimit, error) {
	var rateLimit model.RateLimit
	err := r.db.Where("identifier = ? AND endpoint_type = ?", identifier, endpointType).First(&rateLimit).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rateLimit, nil
}

func (r *RateLimitRepository) SaveRateLimit(rateLimit *model.RateLimit) error {
	if rateLimit.ID == "" {
		id, _ := uuid.NewV7()
		rateLimit.ID = id.String()
	}
	return r.db.Save(rateLimit).Error
}

func (r *RateLimitRepository) UpdateRateLimit(rateLimit *model.RateLimit) error {
	return r.db.Save(rateLimit).Error
}

func (r *RateLimitRepository) ResetRateLimit(identifier, endpointType string) error {
	return r.db.Where("identifier = ? AND endpoint_type = ?", identifier, endpointType).
		Delete(&model.RateLimit{}).Error
}

// CleanupOldRecords drops counters whose window and block have both lapsed.
func (r *RateLimitRepository) CleanupOldRecords(olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)
	return r.db.Where("window_start < ? AND (blocked_until IS NULL OR blocked_until < ?)", cutoff, time.Now()).
		Delete(&model.RateLimit{}).Error
}

func (r *RateLimitRepository) CountRecords() (int64, error) {
	var count int64
	err := r.db.Model(&model.RateLimit{}).Count(&count).Error
	return count, err
}

func (r *RateLimitRepository) CountBlocked() (int64, error) {
	var count int64
	err := r.db.Model(&model.RateLimit{}).Where("blocked_until > ?", time.Now()).Count(&count).Error
	return count, err
}
