package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"assistantia/service"
)

type ChatController struct {
	chat   *service.ChatService
	logger *logrus.Logger
}

func NewChatController(chat *service.ChatService, logger *logrus.Logger) *ChatController {
	return &ChatController{chat: chat, logger: logger}
}

// Chat runs one turn against the LLM provider.
func (ctrl *ChatController) Chat(c *gin.Context) {
	var input struct {
		Message        string `json:"message" binding:"required,min=1,max=5000"`
		ConversationID string `json:"conversation_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		ctrl.logger.Warnf("[%s] Invalid input, %s", c.GetString("requestId"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	result, err := ctrl.chat.Chat(c.Request.Context(), currentUser(c), input.Message, input.ConversationID)
	if err != nil {
		ctrl.logger.Warnf("[%s] Chat turn failed: %s", c.GetString("requestId"), err)
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
