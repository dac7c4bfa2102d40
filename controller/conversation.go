package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"assistantia/service"
)

type ConversationController struct {
	conversations *service.ConversationService
	logger        *logrus.Logger
}

func NewConversationController(conversations *service.ConversationService, logger *logrus.Logger) *ConversationController {
	return &ConversationController{conversations: conversations, logger: logger}
}

func (ctrl *ConversationController) Create(c *gin.Context) {
	var input struct {
		Title string `json:"title" binding:"max=80"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		ctrl.logger.Warnf("[%s] Invalid input, %s", c.GetString("requestId"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	conv, err := ctrl.conversations.Create(c.Request.Context(), currentUser(c), input.Title)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, conv)
}

func (ctrl *ConversationController) List(c *gin.Context) {
	convs, err := ctrl.conversations.List(c.Request.Context(), currentUser(c))
	if err != nil {
		ctrl.logger.Warnf("[%s] Failed to list conversations: %s", c.GetString("requestId"), err)
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": convs})
}

func (ctrl *ConversationController) Rename(c *gin.Context) {
	var input struct {
		Title string `json:"title" binding:"required,max=80"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		ctrl.logger.Warnf("[%s] Invalid input, %s", c.GetString("requestId"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	conv, err := ctrl.conversations.Rename(c.Request.Context(), currentUser(c), c.Param("id"), input.Title)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}

func (ctrl *ConversationController) Delete(c *gin.Context) {
	counts, err := ctrl.conversations.Delete(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
