package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"assistantia/service"
)

type HistoryController struct {
	history *service.HistoryService
	logger  *logrus.Logger
}

func NewHistoryController(history *service.HistoryService, logger *logrus.Logger) *HistoryController {
	return &HistoryController{history: history, logger: logger}
}

// Page serves one slice of a conversation's messages.
func (ctrl *HistoryController) Page(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		offset = 0
	}

	page, err := ctrl.history.Page(c.Request.Context(), currentUser(c), c.Param("id"), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ClearConversation deletes one conversation and its messages.
func (ctrl *HistoryController) ClearConversation(c *gin.Context) {
	deleted, err := ctrl.history.ClearConversation(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// ClearAll wipes everything the caller owns.
func (ctrl *HistoryController) ClearAll(c *gin.Context) {
	deleted, err := ctrl.history.ClearAll(c.Request.Context(), currentUser(c))
	if err != nil {
		ctrl.logger.Warnf("[%s] Failed to clear history: %s", c.GetString("requestId"), err)
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
