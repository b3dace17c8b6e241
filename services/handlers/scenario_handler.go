package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/sellerpath/lms_api/dto"
	"github.com/sellerpath/lms_api/shared"
)

type ScenarioHandler struct {
	scenarioSvc ScenarioServiceInterface
}

func NewScenarioHandler(scenarioSvc ScenarioServiceInterface) *ScenarioHandler {
	return &ScenarioHandler{
		scenarioSvc: scenarioSvc,
	}
}

// @Summary List scenarios
// @Description List scenarios with the caller's attempt stats
// @Tags scenarios
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=[]dto.ScenarioListItem}
// @Router /api/v1/scenarios [get]
func (h *ScenarioHandler) GetScenarios(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	scenarios, err := h.scenarioSvc.GetScenarios(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", scenarios)
}

// @Summary Get scenario
// @Description Get a scenario with its data context and questions
// @Tags scenarios
// @Produce json
// @Security Bearer
// @Param id path string true "Scenario ID"
// @Success 200 {object} shared.Response{data=dto.ScenarioDetailResponse}
// @Router /api/v1/scenarios/{id} [get]
func (h *ScenarioHandler) GetScenario(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	scenarioID := c.Params("id")

	scenario, err := h.scenarioSvc.GetScenario(userID, scenarioID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", scenario)
}

// @Summary Submit scenario answer
// @Description Grade a free-text answer and record the attempt
// @Tags scenarios
// @Accept json
// @Produce json
// @Security Bearer
// @Param submitRequest body dto.SubmitScenarioRequest true "Answer"
// @Success 200 {object} shared.Response{data=dto.SubmitScenarioResponse}
// @Router /api/v1/scenarios/submit [post]
func (h *ScenarioHandler) Submit(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.SubmitScenarioRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.scenarioSvc.Submit(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
