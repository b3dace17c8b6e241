package main

import (
	"github.com/sellerpath/lms_api/services"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, err := context.NewCtx(
		&services.SqliteService{},
		&services.RedisService{},
		&services.JWTService{},
		&services.MinIOService{},
		&services.MonitoringService{},

		&services.StreakService{},
		&services.AchievementService{},
		&services.AIService{},

		&services.AuthService{},
		&services.ContentService{},
		&services.WorkflowService{},
		&services.ScenarioService{},
		&services.ProgressService{},
		&services.ChatService{},
		&services.MediaService{},
		&services.RateLimitService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}
