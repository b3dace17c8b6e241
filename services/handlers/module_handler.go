package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/sellerpath/lms_api/shared"
)

type ModuleHandler struct {
	contentSvc ContentServiceInterface
}

func NewModuleHandler(contentSvc ContentServiceInterface) *ModuleHandler {
	return &ModuleHandler{
		contentSvc: contentSvc,
	}
}

// @Summary List modules
// @Description List learning modules with the caller's completion state
// @Tags modules
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=[]dto.ModuleListItem}
// @Router /api/v1/modules [get]
func (h *ModuleHandler) GetModules(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	modules, err := h.contentSvc.GetModules(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", modules)
}

// @Summary List module categories
// @Description List the distinct module categories
// @Tags modules
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=[]string}
// @Router /api/v1/modules/categories [get]
func (h *ModuleHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.contentSvc.Categories()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", categories)
}

// @Summary Get module
// @Description Get a module with its full content
// @Tags modules
// @Produce json
// @Security Bearer
// @Param id path string true "Module ID"
// @Success 200 {object} shared.Response{data=dto.ModuleDetailResponse}
// @Router /api/v1/modules/{id} [get]
func (h *ModuleHandler) GetModule(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	moduleID := c.Params("id")

	module, err := h.contentSvc.GetModule(userID, moduleID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", module)
}

// @Summary Complete module
// @Description Mark a module completed and return any new achievements
// @Tags modules
// @Produce json
// @Security Bearer
// @Param id path string true "Module ID"
// @Success 200 {object} shared.Response{data=[]string}
// @Router /api/v1/modules/{id}/complete [post]
func (h *ModuleHandler) CompleteModule(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	moduleID := c.Params("id")

	newAchievements, err := h.contentSvc.CompleteModule(userID, moduleID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Module completed", newAchievements)
}
