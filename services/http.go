package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	"github.com/sellerpath/lms_api/services/handlers"
	"github.com/sellerpath/lms_api/shared"
)

type HttpService struct {
	context.DefaultService

	authSvc       *AuthService
	contentSvc    *ContentService
	workflowSvc   *WorkflowService
	scenarioSvc   *ScenarioService
	progressSvc   *ProgressService
	chatSvc       *ChatService
	mediaSvc      *MediaService
	rateLimitSvc  *RateLimitService
	monitoringSvc *MonitoringService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.contentSvc = svc.Service(CONTENT_SVC).(*ContentService)
	svc.workflowSvc = svc.Service(WORKFLOW_SVC).(*WorkflowService)
	svc.scenarioSvc = svc.Service(SCENARIO_SVC).(*ScenarioService)
	svc.progressSvc = svc.Service(PROGRESS_SVC).(*ProgressService)
	svc.chatSvc = svc.Service(CHAT_SVC).(*ChatService)
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	app := fiber.New(fiber.Config{
		AppName:      "SellerPath LMS API",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, DELETE, OPTIONS",
		ExposeHeaders: "X-RateLimit-Remaining, X-RateLimit-Reset, Retry-After",
	}))
	app.Use(MonitoringMiddleware(svc.monitoringSvc))
	app.Use(svc.rateLimitSvc.IPRateLimit())

	app.Get("/ping", svc.ping)

	svc.registerRoutes(app)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseJSON(c, http.StatusNotFound, "Page not found", nil)
	})

	svc.server = app
	log.WithField("port", svc.port).Info("HTTP server starting")
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

func (svc *HttpService) registerRoutes(app *fiber.App) {
	authHandler := handlers.NewAuthHandler(svc.authSvc)
	moduleHandler := handlers.NewModuleHandler(svc.contentSvc)
	workflowHandler := handlers.NewWorkflowHandler(svc.workflowSvc)
	scenarioHandler := handlers.NewScenarioHandler(svc.scenarioSvc)
	progressHandler := handlers.NewProgressHandler(svc.progressSvc)
	chatHandler := handlers.NewChatHandler(svc.chatSvc)
	mediaHandler := handlers.NewMediaHandler(svc.mediaSvc)
	adminHandler := handlers.NewAdminHandler(svc.contentSvc)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	auth := v1.Group("/auth")
	auth.Post("/register", svc.rateLimitSvc.RateLimit("register"), authHandler.Register)
	auth.Post("/login", svc.rateLimitSvc.RateLimit("login"), authHandler.Login)
	auth.Post("/refresh", svc.rateLimitSvc.RateLimit("refresh"), authHandler.RefreshToken)
	auth.Get("/me", svc.authSvc.RequiredAuth(), authHandler.Me)

	modules := v1.Group("/modules", svc.authSvc.RequiredAuth())
	modules.Get("/", moduleHandler.GetModules)
	modules.Get("/categories", moduleHandler.GetCategories)
	modules.Get("/:id", moduleHandler.GetModule)
	modules.Post("/:id/complete", moduleHandler.CompleteModule)

	workflows := v1.Group("/workflows", svc.authSvc.RequiredAuth())
	workflows.Get("/", workflowHandler.GetWorkflows)
	workflows.Post("/advance", workflowHandler.Advance)
	workflows.Post("/hint", svc.rateLimitSvc.UserBasedRateLimit("workflow_hint"), workflowHandler.Hint)
	workflows.Get("/:id", workflowHandler.GetWorkflow)

	scenarios := v1.Group("/scenarios", svc.authSvc.RequiredAuth())
	scenarios.Get("/", scenarioHandler.GetScenarios)
	scenarios.Post("/submit", svc.rateLimitSvc.UserBasedRateLimit("scenario_submit"), scenarioHandler.Submit)
	scenarios.Get("/:id", scenarioHandler.GetScenario)

	progress := v1.Group("/progress", svc.authSvc.RequiredAuth())
	progress.Get("/", progressHandler.GetProgress)
	progress.Get("/user/:userId", progressHandler.GetUserProgress)

	chat := v1.Group("/chat", svc.authSvc.RequiredAuth())
	chat.Post("/message", svc.rateLimitSvc.UserBasedRateLimit("chat_message"), chatHandler.SendMessage)
	chat.Get("/conversations", chatHandler.GetConversations)
	chat.Get("/history/:conversationId", chatHandler.GetHistory)
	chat.Delete("/:conversationId", chatHandler.DeleteConversation)

	upload := v1.Group("/upload", svc.authSvc.RequiredAuth())
	upload.Post("/", svc.rateLimitSvc.UserBasedRateLimit("upload"), mediaHandler.Upload)
	upload.Delete("/:id", mediaHandler.Delete)

	admin := v1.Group("/admin", svc.authSvc.RequiredAuth(), svc.authSvc.RequireRole(shared.RoleAdmin))
	admin.Post("/modules", adminHandler.CreateModule)
	admin.Post("/workflows", adminHandler.CreateWorkflow)
	admin.Delete("/workflows/:id", adminHandler.DeleteWorkflow)
	admin.Post("/scenarios", adminHandler.CreateScenario)
	admin.Delete("/scenarios/:id", adminHandler.DeleteScenario)
	admin.Post("/datasets", adminHandler.UploadDataset)
	admin.Get("/stats", adminHandler.GetStats)
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, http.StatusOK, "Success", "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.WithError(err).Error("Unhandled request error")
	return shared.ResponseJSON(c, http.StatusInternalServerError, "Internal server error", nil)
}
