package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/sellerpath/lms_api/model"
	"gorm.io/gorm"
)

// UserRepository handles user and user-stats database operations
type UserRepository struct {
	BaseRepository
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (r *UserRepository) GetUser(userID string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) CreateUser(user *model.User) (*model.User, error) {
	if user.ID == "" {
		id, _ := uuid.NewV7()
		user.ID = id.String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	if err := r.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) UpdateUser(user *model.User) error {
	user.UpdatedAt = time.Now()
	return r.db.Save(user).Error
}

func (r *UserRepository) UpdateLastLogin(userID string) error {
	now := time.Now()
	return r.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"last_login": now,
		"updated_at": now,
	}).Error
}

func (r *UserRepository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Count(&count).Error
	return count, err
}

// ==================== USER STATS METHODS ====================

// GetOrCreateStats returns the stats row for a user, creating a zeroed
// row on first touch.
func (r *UserRepository) GetOrCreateStats(userID string) (*model.UserStats, error) {
	var stats model.UserStats
	err := r.db.Where("user_id = ?", userID).First(&stats).Error
	if err == nil {
		return &stats, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	id, _ := uuid.NewV7()
	stats = model.UserStats{
		ID:        id.String(),
		UserID:    userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := r.db.Create(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *UserRepository) UpdateStats(stats *model.UserStats) error {
	stats.UpdatedAt = time.Now()
	return r.db.Save(stats).Error
}

func (r *UserRepository) IncrementQuestionsAsked(userID string) error {
	return r.db.Model(&model.UserStats{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
		"questions_asked": gorm.Expr("questions_asked + 1"),
		"updated_at":      time.Now(),
	}).Error
}

func (r *UserRepository) IncrementScenariosFailed(userID string) error {
	return r.db.Model(&model.UserStats{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
		"scenarios_failed": gorm.Expr("scenarios_failed + 1"),
		"updated_at":       time.Now(),
	}).Error
}
