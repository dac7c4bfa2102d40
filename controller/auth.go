package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"assistantia/service"
)

// AuthController ...
type AuthController struct {
	users  *service.UserService
	logger *logrus.Logger
}

func NewAuthController(users *service.UserService, logger *logrus.Logger) *AuthController {
	return &AuthController{users: users, logger: logger}
}

func (ctrl *AuthController) Register(c *gin.Context) {
	ctrl.logger.Infof("[%s] Handling user registration request", c.GetString("requestId"))

	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6,max=200"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		ctrl.logger.Warnf("[%s] Invalid input, %s", c.GetString("requestId"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := ctrl.users.Register(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		ctrl.logger.Warnf("[%s] Failed to register %s: %s", c.GetString("requestId"), service.NormalizeEmail(input.Email), err)
		fail(c, err)
		return
	}

	ctrl.logger.Infof("[%s] User %s registered successfully", c.GetString("requestId"), user.Email)
	c.JSON(http.StatusCreated, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"created_at": user.CreatedAt,
	})
}

func (ctrl *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	token, err := ctrl.users.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		ctrl.logger.Warnf("[%s] Login failed for %s: %s", c.GetString("requestId"), service.NormalizeEmail(input.Email), err)
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (ctrl *AuthController) Me(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"created_at": user.CreatedAt,
		"role":       user.Role,
	})
}

// DeleteMe removes the caller's account and everything it owns.
func (ctrl *AuthController) DeleteMe(c *gin.Context) {
	user := currentUser(c)

	result, err := ctrl.users.DeleteAccount(c.Request.Context(), user.ID)
	if err != nil {
		ctrl.logger.Warnf("[%s] Failed to delete account %s: %s", c.GetString("requestId"), user.ID, err)
		fail(c, err)
		return
	}

	ctrl.logger.Infof("[%s] Account %s deleted (%d conversations, %d messages)",
		c.GetString("requestId"), user.ID, result.DeletedConversations, result.DeletedMessages)
	c.JSON(http.StatusOK, result)
}
