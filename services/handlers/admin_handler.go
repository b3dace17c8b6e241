package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/sellerpath/lms_api/dto"
	"github.com/sellerpath/lms_api/shared"
)

type AdminHandler struct {
	contentSvc ContentServiceInterface
}

func NewAdminHandler(contentSvc ContentServiceInterface) *AdminHandler {
	return &AdminHandler{
		contentSvc: contentSvc,
	}
}

// @Summary Create module
// @Description Create a learning module
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param moduleRequest body dto.CreateModuleRequest true "Module definition"
// @Success 201 {object} shared.Response{data=model.Module}
// @Router /api/v1/admin/modules [post]
func (h *AdminHandler) CreateModule(c *fiber.Ctx) error {
	var req dto.CreateModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	module, err := h.contentSvc.CreateModule(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Module created", module)
}

// @Summary Create workflow
// @Description Create a multi-step workflow
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param workflowRequest body dto.CreateWorkflowRequest true "Workflow definition"
// @Success 201 {object} shared.Response{data=model.Workflow}
// @Router /api/v1/admin/workflows [post]
func (h *AdminHandler) CreateWorkflow(c *fiber.Ctx) error {
	var req dto.CreateWorkflowRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	workflow, err := h.contentSvc.CreateWorkflow(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Workflow created", workflow)
}

// @Summary Delete workflow
// @Description Deactivate a workflow
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "Workflow ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/admin/workflows/{id} [delete]
func (h *AdminHandler) DeleteWorkflow(c *fiber.Ctx) error {
	if err := h.contentSvc.DeleteWorkflow(c.Params("id")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Workflow deleted", nil)
}

// @Summary Create scenario
// @Description Create an AI-scored scenario
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param scenarioRequest body dto.CreateScenarioRequest true "Scenario definition"
// @Success 201 {object} shared.Response{data=model.Scenario}
// @Router /api/v1/admin/scenarios [post]
func (h *AdminHandler) CreateScenario(c *fiber.Ctx) error {
	var req dto.CreateScenarioRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	scenario, err := h.contentSvc.CreateScenario(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Scenario created", scenario)
}

// @Summary Delete scenario
// @Description Deactivate a scenario
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "Scenario ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/admin/scenarios/{id} [delete]
func (h *AdminHandler) DeleteScenario(c *fiber.Ctx) error {
	if err := h.contentSvc.DeleteScenario(c.Params("id")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Scenario deleted", nil)
}

// @Summary Upload dataset
// @Description Store a marketplace dataset used for scenarios and chat retrieval
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param datasetRequest body dto.UploadDatasetRequest true "Dataset payload"
// @Success 201 {object} shared.Response{data=model.Dataset}
// @Router /api/v1/admin/datasets [post]
func (h *AdminHandler) UploadDataset(c *fiber.Ctx) error {
	var req dto.UploadDatasetRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	dataset, err := h.contentSvc.UploadDataset(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Dataset uploaded", dataset)
}

// @Summary System stats
// @Description Entity counts for the admin dashboard
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.SystemStatsResponse}
// @Router /api/v1/admin/stats [get]
func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.contentSvc.SystemStats()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", stats)
}
