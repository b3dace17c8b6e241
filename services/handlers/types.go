package handlers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/sellerpath/lms_api/dto"
	"github.com/sellerpath/lms_api/model"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(refreshToken string) (*dto.TokenPair, error)
	GetProfile(userID string) (*dto.UserInfo, error)
	RequiredAuth() fiber.Handler
	RequireRole(role string) fiber.Handler
}

type ContentServiceInterface interface {
	GetModules(userID string) ([]dto.ModuleListItem, error)
	GetModule(userID, moduleID string) (*dto.ModuleDetailResponse, error)
	CompleteModule(userID, moduleID string) ([]string, error)
	Categories() ([]string, error)
	CreateModule(req dto.CreateModuleRequest) (*model.Module, error)
	CreateWorkflow(req dto.CreateWorkflowRequest) (*model.Workflow, error)
	DeleteWorkflow(id string) error
	CreateScenario(req dto.CreateScenarioRequest) (*model.Scenario, error)
	DeleteScenario(id string) error
	UploadDataset(req dto.UploadDatasetRequest) (*model.Dataset, error)
	SystemStats() (*dto.SystemStatsResponse, error)
}

type WorkflowServiceInterface interface {
	GetWorkflows(userID string) ([]dto.WorkflowListItem, error)
	GetWorkflow(userID, workflowID string) (*dto.WorkflowDetailResponse, error)
	Advance(userID string, req dto.AdvanceWorkflowRequest) (*dto.WorkflowStateResponse, error)
	Hint(req dto.WorkflowHintRequest) (*dto.WorkflowHintResponse, error)
}

type ScenarioServiceInterface interface {
	GetScenarios(userID string) ([]dto.ScenarioListItem, error)
	GetScenario(userID, scenarioID string) (*dto.ScenarioDetailResponse, error)
	Submit(userID string, req dto.SubmitScenarioRequest) (*dto.SubmitScenarioResponse, error)
}

type ProgressServiceInterface interface {
	GetProgress(callerID, callerRole, targetUserID string) (*dto.ProgressResponse, error)
}

type ChatServiceInterface interface {
	SendMessage(userID string, req dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetConversations(userID string) ([]dto.ConversationListItem, error)
	GetHistory(userID, conversationID string) (*dto.ConversationHistoryResponse, error)
	DeleteConversation(userID, conversationID string) error
}

type MediaServiceInterface interface {
	UploadAttachment(userID string, file *multipart.FileHeader) (*dto.UploadResponse, error)
	DeleteAttachment(userID, assetID string) error
}
