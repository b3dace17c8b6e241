package services

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/alphabatem/common/context"
	"github.com/sellerpath/lms_api/model"
	"github.com/sellerpath/lms_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type SqliteService struct {
	context.DefaultService
	db *gorm.DB

	database string
}

const SQLITE_SVC = "sqlite_svc"

// Id returns Service ID
func (ds SqliteService) Id() string {
	return SQLITE_SVC
}

// Db Access to raw SqliteService db
func (ds SqliteService) Db() *gorm.DB {
	return ds.db
}

// Configure the service
func (ds *SqliteService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DB_DATABASE")
	if ds.database == "" {
		ds.database = "lms.db"
	}

	return ds.DefaultService.Configure(ctx)
}

// Start the service and open connection to the database
// Migrate any tables that have changed since last runtime
func (ds *SqliteService) Start() (err error) {
	ds.db, err = gorm.Open(sqlite.Open(ds.database), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return err
	}

	err = ds.db.AutoMigrate(Models()...)
	if err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

func (ds *SqliteService) Shutdown() {
}

// Models lists every table the stores migrate
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.UserStats{},
		&model.Module{},
		&model.Workflow{},
		&model.Scenario{},
		&model.Dataset{},
		&model.ModuleCompletion{},
		&model.WorkflowCompletion{},
		&model.ActiveWorkflow{},
		&model.ScenarioAttempt{},
		&model.ActivityLogEntry{},
		&model.UserAchievement{},
		&model.Conversation{},
		&model.MediaAsset{},
		&model.RateLimit{},
		&model.RateLimitConfig{},
	}
}

// HandleError maps store failures onto the API error taxonomy
func (ds *SqliteService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewNotFoundError(err, "Record not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &shared.AppError{StatusCode: http.StatusConflict, Message: "Record already exists", Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewBadRequestError(err, "Invalid reference")
	default:
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return &shared.AppError{StatusCode: http.StatusConflict, Message: "Record already exists", Err: err}
		}

		log.WithError(err).Error("Database error occurred")
		return shared.NewInternalError(err, "Database error")
	}
}
