package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/sellerpath/lms_api/shared"
)

type ProgressHandler struct {
	progressSvc ProgressServiceInterface
}

func NewProgressHandler(progressSvc ProgressServiceInterface) *ProgressHandler {
	return &ProgressHandler{
		progressSvc: progressSvc,
	}
}

// @Summary Get own progress
// @Description Aggregate the caller's progress, achievements and activity feed
// @Tags progress
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.ProgressResponse}
// @Router /api/v1/progress [get]
func (h *ProgressHandler) GetProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	role, _ := c.Locals(shared.UserRole).(string)

	progress, err := h.progressSvc.GetProgress(userID, role, userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", progress)
}

// @Summary Get user progress
// @Description Aggregate another user's progress. Admin only unless self
// @Tags progress
// @Produce json
// @Security Bearer
// @Param userId path string true "User ID"
// @Success 200 {object} shared.Response{data=dto.ProgressResponse}
// @Router /api/v1/progress/user/{userId} [get]
func (h *ProgressHandler) GetUserProgress(c *fiber.Ctx) error {
	callerID := c.Locals(shared.UserID).(string)
	role, _ := c.Locals(shared.UserRole).(string)
	targetID := c.Params("userId")

	progress, err := h.progressSvc.GetProgress(callerID, role, targetID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", progress)
}
