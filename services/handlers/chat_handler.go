package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/sellerpath/lms_api/dto"
	"github.com/sellerpath/lms_api/shared"
)

type ChatHandler struct {
	chatSvc ChatServiceInterface
}

func NewChatHandler(chatSvc ChatServiceInterface) *ChatHandler {
	return &ChatHandler{
		chatSvc: chatSvc,
	}
}

// @Summary Send chat message
// @Description Send a message to the AI assistant, creating a conversation if needed
// @Tags chat
// @Accept json
// @Produce json
// @Security Bearer
// @Param messageRequest body dto.SendMessageRequest true "Message"
// @Success 200 {object} shared.Response{data=dto.SendMessageResponse}
// @Router /api/v1/chat/message [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.chatSvc.SendMessage(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary List conversations
// @Description List the caller's conversations, newest first
// @Tags chat
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=[]dto.ConversationListItem}
// @Router /api/v1/chat/conversations [get]
func (h *ChatHandler) GetConversations(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	conversations, err := h.chatSvc.GetConversations(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", conversations)
}

// @Summary Get conversation history
// @Description Get the full message history of a conversation
// @Tags chat
// @Produce json
// @Security Bearer
// @Param conversationId path string true "Conversation ID"
// @Success 200 {object} shared.Response{data=dto.ConversationHistoryResponse}
// @Router /api/v1/chat/history/{conversationId} [get]
func (h *ChatHandler) GetHistory(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	conversationID := c.Params("conversationId")

	history, err := h.chatSvc.GetHistory(userID, conversationID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", history)
}

// @Summary Delete conversation
// @Description Delete one of the caller's conversations
// @Tags chat
// @Produce json
// @Security Bearer
// @Param conversationId path string true "Conversation ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/chat/{conversationId} [delete]
func (h *ChatHandler) DeleteConversation(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	conversationID := c.Params("conversationId")

	if err := h.chatSvc.DeleteConversation(userID, conversationID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Conversation deleted", nil)
}
