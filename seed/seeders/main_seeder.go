package seeders

import (
	"log"

	"github.com/sellerpath/lms_api/model"
	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

// NewMainSeeder creates a new main seeder
func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders in the correct order
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	userSeeder := NewUserSeeder(s.db)
	if err := userSeeder.SeedUsers(); err != nil {
		log.Printf("User seeding failed: %v", err)
		return err
	}

	datasetSeeder := NewDatasetSeeder(s.db)
	if err := datasetSeeder.SeedDatasets(); err != nil {
		log.Printf("Dataset seeding failed: %v", err)
		return err
	}

	moduleSeeder := NewModuleSeeder(s.db)
	if err := moduleSeeder.SeedModules(); err != nil {
		log.Printf("Module seeding failed: %v", err)
		return err
	}

	workflowSeeder := NewWorkflowSeeder(s.db)
	if err := workflowSeeder.SeedWorkflows(); err != nil {
		log.Printf("Workflow seeding failed: %v", err)
		return err
	}

	scenarioSeeder := NewScenarioSeeder(s.db)
	if err := scenarioSeeder.SeedScenarios(); err != nil {
		log.Printf("Scenario seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// DestroyAll removes seeded entities so a fresh seed starts clean
func (s *MainSeeder) DestroyAll() error {
	tables := []interface{}{
		&model.Dataset{},
		&model.Scenario{},
		&model.Workflow{},
		&model.Module{},
		&model.UserStats{},
		&model.User{},
	}
	for _, table := range tables {
		if err := s.db.Where("1 = 1").Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedUsersOnly seeds only demo users
func (s *MainSeeder) SeedUsersOnly() error {
	return NewUserSeeder(s.db).SeedUsers()
}

// SeedDatasetsOnly seeds only marketplace datasets
func (s *MainSeeder) SeedDatasetsOnly() error {
	return NewDatasetSeeder(s.db).SeedDatasets()
}

// SeedModulesOnly seeds only learning modules
func (s *MainSeeder) SeedModulesOnly() error {
	return NewModuleSeeder(s.db).SeedModules()
}

// SeedWorkflowsOnly seeds only workflows
func (s *MainSeeder) SeedWorkflowsOnly() error {
	return NewWorkflowSeeder(s.db).SeedWorkflows()
}

// SeedScenariosOnly seeds only scenarios
func (s *MainSeeder) SeedScenariosOnly() error {
	return NewScenarioSeeder(s.db).SeedScenarios()
}
