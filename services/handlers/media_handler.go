package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/sellerpath/lms_api/shared"
)

type MediaHandler struct {
	mediaSvc MediaServiceInterface
}

func NewMediaHandler(mediaSvc MediaServiceInterface) *MediaHandler {
	return &MediaHandler{
		mediaSvc: mediaSvc,
	}
}

// @Summary Upload chat attachment
// @Description Upload a file to attach to a chat message
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param file formData file true "File to upload"
// @Success 201 {object} shared.Response{data=dto.UploadResponse}
// @Router /api/v1/upload [post]
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	file, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "No file provided")
	}

	resp, err := h.mediaSvc.UploadAttachment(userID, file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "File uploaded", resp)
}

// @Summary Delete attachment
// @Description Delete one of the caller's uploaded attachments
// @Tags media
// @Produce json
// @Security Bearer
// @Param id path string true "Attachment ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/upload/{id} [delete]
func (h *MediaHandler) Delete(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	assetID := c.Params("id")

	if err := h.mediaSvc.DeleteAttachment(userID, assetID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Attachment deleted", nil)
}
