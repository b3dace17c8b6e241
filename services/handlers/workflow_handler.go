package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/sellerpath/lms_api/dto"
	"github.com/sellerpath/lms_api/shared"
)

type WorkflowHandler struct {
	workflowSvc WorkflowServiceInterface
}

func NewWorkflowHandler(workflowSvc WorkflowServiceInterface) *WorkflowHandler {
	return &WorkflowHandler{
		workflowSvc: workflowSvc,
	}
}

// @Summary List workflows
// @Description List workflows with the caller's progress state
// @Tags workflows
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=[]dto.WorkflowListItem}
// @Router /api/v1/workflows [get]
func (h *WorkflowHandler) GetWorkflows(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	workflows, err := h.workflowSvc.GetWorkflows(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", workflows)
}

// @Summary Get workflow
// @Description Get a workflow with its steps and the caller's step history
// @Tags workflows
// @Produce json
// @Security Bearer
// @Param id path string true "Workflow ID"
// @Success 200 {object} shared.Response{data=dto.WorkflowDetailResponse}
// @Router /api/v1/workflows/{id} [get]
func (h *WorkflowHandler) GetWorkflow(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	workflowID := c.Params("id")

	workflow, err := h.workflowSvc.GetWorkflow(userID, workflowID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", workflow)
}

// @Summary Advance workflow
// @Description Record the input for a step and advance the workflow run
// @Tags workflows
// @Accept json
// @Produce json
// @Security Bearer
// @Param advanceRequest body dto.AdvanceWorkflowRequest true "Step input"
// @Success 200 {object} shared.Response{data=dto.WorkflowStateResponse}
// @Router /api/v1/workflows/advance [post]
func (h *WorkflowHandler) Advance(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.AdvanceWorkflowRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	state, err := h.workflowSvc.Advance(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", state)
}

// @Summary Get step hint
// @Description Ask the AI coach for a hint on a workflow step
// @Tags workflows
// @Accept json
// @Produce json
// @Security Bearer
// @Param hintRequest body dto.WorkflowHintRequest true "Hint request"
// @Success 200 {object} shared.Response{data=dto.WorkflowHintResponse}
// @Router /api/v1/workflows/hint [post]
func (h *WorkflowHandler) Hint(c *fiber.Ctx) error {
	var req dto.WorkflowHintRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	hint, err := h.workflowSvc.Hint(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", hint)
}
