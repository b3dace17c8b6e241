package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/sellerpath/lms_api/model"
	"gorm.io/gorm"
)

// DatasetRepository handles the seeded market-intelligence records
type DatasetRepository struct {
	BaseRepository
}

func NewDatasetRepository(db *gorm.DB) *DatasetRepository {
	return &DatasetRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (r *DatasetRepository) CreateDataset(dataset *model.Dataset) (*model.Dataset, error) {
	if dataset.ID == "" {
		id, _ := uuid.NewV7()
		dataset.ID = id.String()
	}
	dataset.CreatedAt = time.Now()
	dataset.UpdatedAt = time.Now()

	if err := r.db.Create(dataset).Error; err != nil {
		return nil, err
	}
	return dataset, nil
}

func (r *DatasetRepository) GetDatasetsByType(datasetType string) ([]model.Dataset, error) {
	var datasets []model.Dataset
	if err := r.db.Where("type = ?", datasetType).Find(&datasets).Error; err != nil {
		return nil, err
	}
	return datasets, nil
}

func (r *DatasetRepository) GetDatasets() ([]model.Dataset, error) {
	var datasets []model.Dataset
	if err := r.db.Find(&datasets).Error; err != nil {
		return nil, err
	}
	return datasets, nil
}

func (r *DatasetRepository) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(&model.Dataset{}).Error
}

func (r *DatasetRepository) CountDatasets() (int64, error) {
	var count int64
	err := r.db.Model(&model.Dataset{}).Count(&count).Error
	return count, err
}
