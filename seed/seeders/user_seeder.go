package seeders

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sellerpath/lms_api/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserSeeder handles seeding demo accounts
type UserSeeder struct {
	db *gorm.DB
}

// NewUserSeeder creates a new user seeder
func NewUserSeeder(db *gorm.DB) *UserSeeder {
	return &UserSeeder{db: db}
}

// SeedUsers creates the demo and admin accounts
func (s *UserSeeder) SeedUsers() error {
	users := []struct {
		Name  string
		Email string
		Role  string
	}{
		{Name: "Demo User", Email: "demo@example.com", Role: "user"},
		{Name: "Admin User", Email: "admin@example.com", Role: "admin"},
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), 12)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, u := range users {
		var existing model.User
		err := s.db.Where("email = ?", u.Email).First(&existing).Error
		if err == nil {
			log.Printf("User %s already exists, skipping", u.Email)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		id, _ := uuid.NewV7()
		user := model.User{
			ID:        id.String(),
			Email:     u.Email,
			Name:      u.Name,
			Password:  string(hashed),
			Role:      u.Role,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.db.Create(&user).Error; err != nil {
			log.Printf("Error creating user %s: %v", u.Email, err)
			return err
		}

		statsID, _ := uuid.NewV7()
		stats := model.UserStats{
			ID:        statsID.String(),
			UserID:    user.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.db.Create(&stats).Error; err != nil {
			log.Printf("Error creating stats for %s: %v", u.Email, err)
			return err
		}

		log.Printf("Created user: %s (password: password123)", u.Email)
	}

	log.Println("User seeding completed successfully")
	return nil
}
