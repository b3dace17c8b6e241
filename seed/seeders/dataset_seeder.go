package seeders

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sellerpath/lms_api/model"
	"gorm.io/gorm"
)

// DatasetSeeder handles seeding marketplace intelligence datasets
type DatasetSeeder struct {
	db *gorm.DB
}

// NewDatasetSeeder creates a new dataset seeder
func NewDatasetSeeder(db *gorm.DB) *DatasetSeeder {
	return &DatasetSeeder{db: db}
}

type datasetFixture struct {
	Type     string
	Category string
	Data     map[string]interface{}
}

// SeedDatasets seeds sample records for each data source
func (s *DatasetSeeder) SeedDatasets() error {
	fixtures := s.getFixtures()

	now := time.Now()
	created := 0
	for _, f := range fixtures {
		var count int64
		if err := s.db.Model(&model.Dataset{}).
			Where("type = ? AND category = ?", f.Type, f.Category).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			log.Printf("Dataset %s/%s already exists, skipping", f.Type, f.Category)
			continue
		}

		data, err := json.Marshal(f.Data)
		if err != nil {
			return err
		}

		id, _ := uuid.NewV7()
		dataset := model.Dataset{
			ID:          id.String(),
			Type:        f.Type,
			Category:    f.Category,
			Data:        data,
			Description: fmt.Sprintf("Sample %s data for %s", f.Type, f.Category),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.db.Create(&dataset).Error; err != nil {
			log.Printf("Error creating dataset %s/%s: %v", f.Type, f.Category, err)
			return err
		}
		created++
	}

	log.Printf("Dataset seeding completed successfully (%d created)", created)
	return nil
}

func (s *DatasetSeeder) getFixtures() []datasetFixture {
	return []datasetFixture{
		{
			Type:     "pi",
			Category: "Kitchen",
			Data: map[string]interface{}{
				"category":       "Kitchen",
				"market_size":    "$2.4B",
				"growth_rate":    "8.5% YoY",
				"top_brands":     []string{"OXO", "KitchenAid", "Cuisinart"},
				"share_of_voice": map[string]interface{}{"organic": "62%", "paid": "38%"},
				"avg_price":      24.99,
			},
		},
		{
			Type:     "pi",
			Category: "Fitness",
			Data: map[string]interface{}{
				"category":       "Fitness",
				"market_size":    "$1.1B",
				"growth_rate":    "12.3% YoY",
				"top_brands":     []string{"Gaiam", "Manduka", "BalanceFrom"},
				"share_of_voice": map[string]interface{}{"organic": "55%", "paid": "45%"},
				"avg_price":      32.50,
			},
		},
		{
			Type:     "helium10",
			Category: "Keyword Research",
			Data: map[string]interface{}{
				"category": "Keyword Research",
				"keywords": []map[string]interface{}{
					{"phrase": "yoga mat non slip", "search_volume": 74200, "cpc": 1.12, "competing_products": 4213},
					{"phrase": "yoga mat for sensitive knees", "search_volume": 1850, "cpc": 0.64, "competing_products": 312},
					{"phrase": "travel yoga mat foldable", "search_volume": 5400, "cpc": 0.89, "competing_products": 876},
				},
			},
		},
		{
			Type:     "helium10",
			Category: "PPC",
			Data: map[string]interface{}{
				"category": "PPC",
				"bids": []map[string]interface{}{
					{"keyword": "leather wallet men", "suggested_bid": 1.45, "range_low": 0.98, "range_high": 2.10},
					{"keyword": "slim wallet rfid", "suggested_bid": 1.22, "range_low": 0.85, "range_high": 1.80},
				},
			},
		},
		{
			Type:     "adsLibrary",
			Category: "Creative Analysis",
			Data: map[string]interface{}{
				"category": "Creative Analysis",
				"ads": []map[string]interface{}{
					{"brand": "HydraFlow", "format": "video", "hook": "POV: you finally found a bottle that doesn't leak", "running_days": 45},
					{"brand": "PeakForm", "format": "carousel", "hook": "5 reasons trainers recommend this mat", "running_days": 120},
				},
			},
		},
	}
}
