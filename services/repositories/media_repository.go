package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/sellerpath/lms_api/model"
	"gorm.io/gorm"
)

// MediaRepository handles uploaded attachment records
type MediaRepository struct {
	BaseRepository
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (r *MediaRepository) CreateMediaAsset(asset *model.MediaAsset) error {
	if asset.ID == "" {
		id, _ := uuid.NewV7()
		asset.ID = id.String()
	}
	asset.CreatedAt = time.Now()
	return r.db.Create(asset).Error
}

func (r *MediaRepository) GetMediaAsset(id string) (*model.MediaAsset, error) {
	var asset model.MediaAsset
	if err := r.db.Where("id = ?", id).First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *MediaRepository) GetUserMediaAssets(userID string) ([]model.MediaAsset, error) {
	var assets []model.MediaAsset
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&assets).Error
	return assets, err
}

func (r *MediaRepository) DeleteMediaAsset(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.MediaAsset{}).Error
}
